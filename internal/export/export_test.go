package export

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Davazzzz/eBay-car-parts-automation-tool/internal/model"
)

func testParts() []model.SavedPart {
	return []model.SavedPart{
		{
			PartName:      "Headlight",
			EbayTitle:     "2013 Honda Accord Headlight Assembly OEM",
			EbayURL:       "https://www.ebay.com/itm/334455",
			ImageURL:      "https://i.ebayimg.com/images/g/abc/s-l500.jpg",
			EbaySoldPrice: 299.99,
			JunkyardPrice: 39.99,
			JunkyardParts: []string{"headlight"},
			ROI:           7.5,
			Tier:          model.TierHigh,
			VehicleType:   model.VehicleTypeCar,
			Year:          "2013",
			Make:          "Honda",
			Model:         "Accord",
			YouTubeLink:   "https://youtu.be/install-1",
			Notes:         "Driver side, minor scuff",
			SavedAt:       time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC),
		},
		{
			PartName:      "Tailgate",
			EbaySoldPrice: 1250,
			JunkyardPrice: 100,
			ROI:           12.5,
			Tier:          model.TierHigh,
			VehicleType:   model.VehicleTypeTruck,
			Year:          "2015",
			Make:          "Ford",
			Model:         "F-150",
			ManualEntry:   true,
			SavedAt:       time.Date(2024, 3, 16, 9, 0, 0, 0, time.UTC),
		},
	}
}

func TestSplitByVehicleType(t *testing.T) {
	t.Parallel()

	parts := []model.SavedPart{
		{PartName: "a", VehicleType: model.VehicleTypeCar},
		{PartName: "b", VehicleType: model.VehicleTypeTruck},
		{PartName: "c"}, // untyped rides with the trucks
	}

	cars, trucks := splitByVehicleType(parts)
	require.Len(t, cars, 1)
	require.Len(t, trucks, 2)
	require.Equal(t, "a", cars[0].PartName)
	require.Equal(t, "c", trucks[1].PartName)
}
