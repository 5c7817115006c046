package model

import "time"

// Tier buckets an ROI ratio for quick scanning.
type Tier string

const (
	TierLow     Tier = "low"
	TierMedium  Tier = "medium"
	TierHigh    Tier = "high"
	TierUnknown Tier = "unknown"
)

// Label returns the display form of the tier ("Low", "Medium", ...).
func (t Tier) Label() string {
	switch t {
	case TierLow:
		return "Low"
	case TierMedium:
		return "Medium"
	case TierHigh:
		return "High"
	default:
		return "Unknown"
	}
}

// PartAnalysis is the per-part result of a market analysis. Price fields
// are pointers so that "no data" is distinguishable from a real zero:
// an empty sold window yields nil, never 0. Error is set when the
// marketplace call for this part failed; the other parts of a batch are
// unaffected.
type PartAnalysis struct {
	PartName           string   `json:"part_name"`
	JunkyardPrice      *float64 `json:"junkyard_price,omitempty"`
	MedianSoldPrice    *float64 `json:"median_sold_price,omitempty"`
	AverageSoldPrice   *float64 `json:"average_sold_price,omitempty"`
	SoldCount          int      `json:"sold_count"`
	ActiveListingCount int      `json:"active_listings"`
	ROI                *float64 `json:"roi,omitempty"`
	Tier               Tier     `json:"roi_rating"`
	BestListing        *Listing `json:"best_listing,omitempty"`
	Error              string   `json:"error,omitempty"`
}

// Errored reports whether the marketplace lookup for this part failed.
func (p PartAnalysis) Errored() bool {
	return p.Error != ""
}

// Report is the envelope for one analysis run. It is returned to the
// caller and never cached in shared state, so repeated or concurrent
// runs cannot observe each other's results.
type Report struct {
	ID          string         `json:"id"`
	Vehicle     Vehicle        `json:"vehicle"`
	GeneratedAt time.Time      `json:"generated_at"`
	Results     []PartAnalysis `json:"results"`
	Summary     ReportSummary  `json:"summary"`
}

// ReportSummary condenses a report for display headers.
type ReportSummary struct {
	TotalParts   int       `json:"total_parts"`
	ErroredParts int       `json:"errored_parts"`
	HighROICount int       `json:"high_roi_count"`
	TopParts     []TopPart `json:"top_5_parts"`
	VehicleInfo  string    `json:"vehicle_info"`
}

// TopPart is a summary line for the highest-ROI parts.
type TopPart struct {
	Name string   `json:"name"`
	ROI  *float64 `json:"roi"`
}
