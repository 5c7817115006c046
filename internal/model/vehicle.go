package model

import "strings"

// VehicleType buckets a vehicle for list grouping and exports.
type VehicleType string

const (
	VehicleTypeCar   VehicleType = "car"
	VehicleTypeTruck VehicleType = "truck"
)

// Vehicle describes the donor vehicle a part came from. Year is kept as a
// string because it is only ever concatenated into search queries.
type Vehicle struct {
	Year  string      `json:"year"`
	Make  string      `json:"make"`
	Model string      `json:"model"`
	Trim  string      `json:"trim,omitempty"`
	Type  VehicleType `json:"vehicle_type,omitempty"`
}

// Query builds the marketplace search string for a part on this vehicle,
// e.g. "2013 Honda Accord EX-L 2.4L HEADLIGHT used".
func (v Vehicle) Query(partName string) string {
	fields := []string{v.Year, v.Make, v.Model, v.Trim, partName, "used"}
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			parts = append(parts, f)
		}
	}
	return strings.Join(parts, " ")
}

// Info returns the human-readable vehicle description.
func (v Vehicle) Info() string {
	parts := make([]string, 0, 4)
	for _, f := range []string{v.Year, v.Make, v.Model, v.Trim} {
		if f = strings.TrimSpace(f); f != "" {
			parts = append(parts, f)
		}
	}
	return strings.Join(parts, " ")
}
