package saved

import (
	"strings"

	"github.com/rotisserie/eris"

	"github.com/Davazzzz/eBay-car-parts-automation-tool/internal/model"
	"github.com/Davazzzz/eBay-car-parts-automation-tool/internal/roi"
)

// ErrValidation is returned for malformed manual-entry input. Nothing
// that fails validation reaches the store.
var ErrValidation = eris.New("saved: invalid manual entry")

// NewManualEntry builds a saved part from hand-entered prices. The ROI
// and tier are computed with the classifier rules: both prices positive
// yields ebaySold/junkyard, anything else leaves the ROI at zero with
// the unknown tier. A zero junkyard price is legal (the part may not be
// in any price list yet); negative prices and an empty name are not.
func NewManualEntry(name string, junkyardPrice, ebaySoldPrice float64, vehicleType model.VehicleType, youtubeLink, notes string) (model.SavedPart, error) {
	if strings.TrimSpace(name) == "" {
		return model.SavedPart{}, eris.Wrap(ErrValidation, "part name is required")
	}
	if junkyardPrice < 0 || ebaySoldPrice < 0 {
		return model.SavedPart{}, eris.Wrap(ErrValidation, "prices cannot be negative")
	}

	part := model.SavedPart{
		PartName:      name,
		JunkyardPrice: junkyardPrice,
		EbaySoldPrice: ebaySoldPrice,
		Tier:          model.TierUnknown,
		VehicleType:   vehicleType,
		YouTubeLink:   youtubeLink,
		Notes:         notes,
		ManualEntry:   true,
	}
	if junkyardPrice > 0 && ebaySoldPrice > 0 {
		part.ROI = ebaySoldPrice / junkyardPrice
		part.Tier = roi.TierFor(part.ROI)
	}
	return part, nil
}
