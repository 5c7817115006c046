package analyzer

import (
	"sort"

	"github.com/Davazzzz/eBay-car-parts-automation-tool/internal/model"
)

// Post-processing helpers over analysis results. All are pure: they
// copy, never mutate their input.

// FilterByTier keeps results in the given tier.
func FilterByTier(results []model.PartAnalysis, tier model.Tier) []model.PartAnalysis {
	out := make([]model.PartAnalysis, 0, len(results))
	for _, r := range results {
		if r.Tier == tier {
			out = append(out, r)
		}
	}
	return out
}

// FilterByMinROI keeps results whose ROI is at least min. Results
// without an ROI are dropped.
func FilterByMinROI(results []model.PartAnalysis, min float64) []model.PartAnalysis {
	out := make([]model.PartAnalysis, 0, len(results))
	for _, r := range results {
		if r.ROI != nil && *r.ROI >= min {
			out = append(out, r)
		}
	}
	return out
}

// SortByROI sorts by ROI descending. Results without an ROI sort last,
// keeping their relative order.
func SortByROI(results []model.PartAnalysis) []model.PartAnalysis {
	out := make([]model.PartAnalysis, len(results))
	copy(out, results)
	sort.SliceStable(out, func(i, j int) bool {
		ri, rj := out[i].ROI, out[j].ROI
		switch {
		case ri == nil:
			return false
		case rj == nil:
			return true
		default:
			return *ri > *rj
		}
	})
	return out
}

// SortBySoldCount sorts by sold count descending.
func SortBySoldCount(results []model.PartAnalysis) []model.PartAnalysis {
	out := make([]model.PartAnalysis, len(results))
	copy(out, results)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].SoldCount > out[j].SoldCount
	})
	return out
}

// TopN returns the first n results, or fewer when the slice is shorter.
func TopN(results []model.PartAnalysis, n int) []model.PartAnalysis {
	if n < 0 {
		n = 0
	}
	if n > len(results) {
		n = len(results)
	}
	out := make([]model.PartAnalysis, n)
	copy(out, results[:n])
	return out
}
