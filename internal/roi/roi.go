// Package roi computes the resale return-on-investment ratio for a part
// and buckets it into a rating tier.
//
// The ratio is median eBay sold price divided by junkyard acquisition
// price. Thresholds: below 2.0 is low, 2.0 up to but not including 5.0
// is medium, 5.0 and above is high. A missing or non-positive input on
// either side yields no ratio and the unknown tier.
package roi

import "github.com/Davazzzz/eBay-car-parts-automation-tool/internal/model"

const (
	// MediumThreshold is the smallest ratio rated medium.
	MediumThreshold = 2.0
	// HighThreshold is the smallest ratio rated high.
	HighThreshold = 5.0
)

// Classify returns the ROI ratio and its tier. The ratio is nil, and the
// tier unknown, when either price is nil or not positive.
func Classify(junkyardPrice, medianSold *float64) (*float64, model.Tier) {
	if junkyardPrice == nil || medianSold == nil {
		return nil, model.TierUnknown
	}
	if *junkyardPrice <= 0 || *medianSold <= 0 {
		return nil, model.TierUnknown
	}
	ratio := *medianSold / *junkyardPrice
	return &ratio, TierFor(ratio)
}

// TierFor buckets an already-computed ratio. Callers that compute the
// ratio themselves (manual saved entries) use this directly.
func TierFor(ratio float64) model.Tier {
	switch {
	case ratio >= HighThreshold:
		return model.TierHigh
	case ratio >= MediumThreshold:
		return model.TierMedium
	default:
		return model.TierLow
	}
}
