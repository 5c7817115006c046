// Package export renders the saved parts list as CSV, an XLSX workbook,
// or a standalone HTML page.
package export

import (
	"time"

	"github.com/Davazzzz/eBay-car-parts-automation-tool/internal/model"
)

// Hex colors shared by the XLSX and HTML renderers.
const (
	colorHeader = "667EEA"
	colorHigh   = "28A745"
	colorMedium = "FFC107"
	colorLow    = "DC3545"
)

// splitByVehicleType partitions parts into cars and everything else.
// Trucks, SUVs, and entries with no type recorded all land in the second
// group.
func splitByVehicleType(parts []model.SavedPart) (cars, trucks []model.SavedPart) {
	for _, p := range parts {
		if p.VehicleType == model.VehicleTypeCar {
			cars = append(cars, p)
		} else {
			trucks = append(trucks, p)
		}
	}
	return cars, trucks
}

func tierColor(t model.Tier) string {
	switch t {
	case model.TierHigh:
		return colorHigh
	case model.TierMedium:
		return colorMedium
	default:
		return colorLow
	}
}

func formatAdded(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02 15:04")
}
