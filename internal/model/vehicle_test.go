package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVehicle_Query(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		vehicle Vehicle
		part    string
		want    string
	}{
		{
			name:    "full vehicle",
			vehicle: Vehicle{Year: "2013", Make: "Honda", Model: "Accord", Trim: "EX-L 2.4L"},
			part:    "headlight",
			want:    "2013 Honda Accord EX-L 2.4L headlight used",
		},
		{
			name:    "no trim",
			vehicle: Vehicle{Year: "2008", Make: "Ford", Model: "F-150"},
			part:    "tailgate",
			want:    "2008 Ford F-150 tailgate used",
		},
		{
			name:    "part only",
			vehicle: Vehicle{},
			part:    "alternator",
			want:    "alternator used",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, tc.vehicle.Query(tc.part))
		})
	}
}

func TestVehicle_Info(t *testing.T) {
	t.Parallel()

	v := Vehicle{Year: "2013", Make: "Honda", Model: "Accord", Trim: "EX-L"}
	assert.Equal(t, "2013 Honda Accord EX-L", v.Info())

	assert.Equal(t, "", Vehicle{}.Info())
}

func TestTier_Label(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Low", TierLow.Label())
	assert.Equal(t, "Medium", TierMedium.Label())
	assert.Equal(t, "High", TierHigh.Label())
	assert.Equal(t, "Unknown", TierUnknown.Label())
}

func TestPartAnalysis_Errored(t *testing.T) {
	t.Parallel()

	ok := PartAnalysis{PartName: "headlight"}
	assert.False(t, ok.Errored())

	bad := PartAnalysis{PartName: "headlight", Error: "search failed"}
	assert.True(t, bad.Errored())
}

func TestListing_Sold(t *testing.T) {
	t.Parallel()

	assert.True(t, Listing{IsActive: false}.Sold())
	assert.False(t, Listing{IsActive: true}.Sold())
}

func TestSavedPart_VehicleInfo(t *testing.T) {
	t.Parallel()

	p := SavedPart{Year: "2015", Make: "Ford", Model: "F-150"}
	assert.Equal(t, "2015 Ford F-150", p.VehicleInfo())

	assert.Equal(t, "", SavedPart{PartName: "Hood"}.VehicleInfo())
}
