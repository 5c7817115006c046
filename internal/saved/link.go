package saved

import (
	"strings"

	"github.com/Davazzzz/eBay-car-parts-automation-tool/internal/catalog"
	"github.com/Davazzzz/eBay-car-parts-automation-tool/internal/linkparse"
	"github.com/Davazzzz/eBay-car-parts-automation-tool/internal/model"
	"github.com/Davazzzz/eBay-car-parts-automation-tool/internal/roi"
)

// ListingOptions carries the user-supplied fields that accompany a
// listing URL when saving a part from one.
type ListingOptions struct {
	// CustomName overrides the part name extracted from the listing title.
	CustomName string
	// SelectedParts are junkyard catalog entries the user matched to the
	// listing. Their prices are summed into the junkyard cost.
	SelectedParts []string
	VehicleType   model.VehicleType
	YouTubeLink   string
	Notes         string
}

// NewFromListing builds a saved part from a scraped eBay listing.
//
// The part name is the custom name when given, else the first selected
// junkyard part, else the name extracted from the listing title. The
// junkyard cost sums the catalog prices of the selected parts; when no
// selection priced out, the catalog is searched for a fuzzy match on
// the part name instead, and the matched entry is recorded so exports
// show where the price came from.
func NewFromListing(res linkparse.Result, cat *catalog.Catalog, opts ListingOptions) model.SavedPart {
	name := strings.TrimSpace(opts.CustomName)
	if name == "" && len(opts.SelectedParts) > 0 {
		name = strings.TrimSpace(opts.SelectedParts[0])
	}
	if name == "" {
		name = linkparse.ExtractPartName(res.Title)
	}

	var junkyardPrice float64
	var junkyardParts []string
	if cat != nil {
		for _, sel := range opts.SelectedParts {
			if price, ok := cat.Lookup(sel); ok {
				junkyardPrice += price
				junkyardParts = append(junkyardParts, sel)
			}
		}
		if junkyardPrice == 0 {
			if entry, ok := cat.Match(name); ok {
				junkyardPrice = entry.Price
				junkyardParts = []string{entry.Name}
			}
		}
	}

	vehicleType := opts.VehicleType
	if vehicleType == "" {
		vehicleType = model.VehicleTypeCar
	}

	part := model.SavedPart{
		PartName:      name,
		EbayTitle:     res.Title,
		EbayURL:       res.URL,
		EbaySoldPrice: res.Price,
		JunkyardPrice: junkyardPrice,
		JunkyardParts: junkyardParts,
		Tier:          model.TierUnknown,
		VehicleType:   vehicleType,
		Year:          res.Year,
		Make:          res.Make,
		YouTubeLink:   opts.YouTubeLink,
		Notes:         opts.Notes,
	}
	if junkyardPrice > 0 && res.Price > 0 {
		part.ROI = res.Price / junkyardPrice
		part.Tier = roi.TierFor(part.ROI)
	}
	return part
}
