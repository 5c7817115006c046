package analyzer

import (
	"context"

	"github.com/google/uuid"

	"github.com/Davazzzz/eBay-car-parts-automation-tool/internal/model"
)

const topPartsCount = 5

// Report runs a batch and wraps the results with identity and a
// summary for the presentation layer. Results come back sorted by ROI
// descending. Every call builds a fresh report; nothing is retained
// between calls.
func (a *Analyzer) Report(ctx context.Context, vehicle model.Vehicle, partNames []string) model.Report {
	results := SortByROI(a.Analyze(ctx, vehicle, partNames))
	return model.Report{
		ID:          uuid.NewString(),
		Vehicle:     vehicle,
		GeneratedAt: a.now(),
		Results:     results,
		Summary:     buildSummary(vehicle, results),
	}
}

func buildSummary(vehicle model.Vehicle, results []model.PartAnalysis) model.ReportSummary {
	s := model.ReportSummary{
		TotalParts:  len(results),
		VehicleInfo: vehicle.Info(),
		TopParts:    make([]model.TopPart, 0, topPartsCount),
	}

	for _, r := range results {
		if r.Errored() {
			s.ErroredParts++
		}
		if r.Tier == model.TierHigh {
			s.HighROICount++
		}
	}

	for _, r := range results {
		if len(s.TopParts) == topPartsCount {
			break
		}
		if r.ROI == nil {
			continue
		}
		s.TopParts = append(s.TopParts, model.TopPart{Name: r.PartName, ROI: r.ROI})
	}

	return s
}
