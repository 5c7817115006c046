package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Davazzzz/eBay-car-parts-automation-tool/internal/model"
)

func analysis(name string, roiVal float64, tier model.Tier, soldCount int) model.PartAnalysis {
	res := model.PartAnalysis{PartName: name, Tier: tier, SoldCount: soldCount}
	if roiVal > 0 {
		res.ROI = &roiVal
	}
	return res
}

func TestSortByROI(t *testing.T) {
	t.Parallel()

	in := []model.PartAnalysis{
		analysis("low", 1.2, model.TierLow, 3),
		analysis("none-a", 0, model.TierUnknown, 9),
		analysis("high", 6.5, model.TierHigh, 5),
		analysis("none-b", 0, model.TierUnknown, 1),
		analysis("medium", 3.0, model.TierMedium, 7),
	}

	got := SortByROI(in)

	names := make([]string, 0, len(got))
	for _, r := range got {
		names = append(names, r.PartName)
	}
	// Missing ROI sorts last, relative order preserved.
	assert.Equal(t, []string{"high", "medium", "low", "none-a", "none-b"}, names)

	// Input untouched.
	assert.Equal(t, "low", in[0].PartName)
}

func TestSortBySoldCount(t *testing.T) {
	t.Parallel()

	in := []model.PartAnalysis{
		analysis("a", 1, model.TierLow, 3),
		analysis("b", 1, model.TierLow, 9),
		analysis("c", 1, model.TierLow, 5),
	}

	got := SortBySoldCount(in)
	assert.Equal(t, "b", got[0].PartName)
	assert.Equal(t, "c", got[1].PartName)
	assert.Equal(t, "a", got[2].PartName)
}

func TestFilterByMinROI(t *testing.T) {
	t.Parallel()

	in := []model.PartAnalysis{
		analysis("keep", 5.0, model.TierHigh, 1),
		analysis("drop", 4.99, model.TierMedium, 1),
		analysis("no-roi", 0, model.TierUnknown, 1),
	}

	got := FilterByMinROI(in, 5.0)
	require.Len(t, got, 1)
	assert.Equal(t, "keep", got[0].PartName)
}

func TestFilterByTier(t *testing.T) {
	t.Parallel()

	in := []model.PartAnalysis{
		analysis("h1", 6, model.TierHigh, 1),
		analysis("m", 3, model.TierMedium, 1),
		analysis("h2", 8, model.TierHigh, 1),
	}

	got := FilterByTier(in, model.TierHigh)
	require.Len(t, got, 2)
	assert.Equal(t, "h1", got[0].PartName)
	assert.Equal(t, "h2", got[1].PartName)
}

func TestTopN(t *testing.T) {
	t.Parallel()

	in := []model.PartAnalysis{
		analysis("a", 1, model.TierLow, 1),
		analysis("b", 2, model.TierMedium, 1),
	}

	assert.Len(t, TopN(in, 1), 1)
	assert.Len(t, TopN(in, 5), 2)
	assert.Empty(t, TopN(in, 0))
	assert.Empty(t, TopN(nil, 3))
}
