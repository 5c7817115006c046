package model

import "time"

// SavedPart is a user-curated entry in the saved-parts list. Identity is
// the part name, compared case-insensitively; saving an existing name
// replaces the prior entry. The store trusts the prices and ROI given at
// save time and never recomputes them.
type SavedPart struct {
	PartName      string      `json:"part_name"`
	EbayTitle     string      `json:"ebay_title,omitempty"`
	EbayURL       string      `json:"ebay_url,omitempty"`
	ImageURL      string      `json:"image_url,omitempty"`
	EbaySoldPrice float64     `json:"ebay_sold_price"`
	JunkyardPrice float64     `json:"junkyard_price"`
	JunkyardParts []string    `json:"junkyard_parts,omitempty"`
	ROI           float64     `json:"roi"`
	Tier          Tier        `json:"roi_rating"`
	VehicleType   VehicleType `json:"vehicle_type,omitempty"`
	Year          string      `json:"year,omitempty"`
	Make          string      `json:"make,omitempty"`
	Model         string      `json:"model,omitempty"`
	YouTubeLink   string      `json:"youtube_link,omitempty"`
	Notes         string      `json:"notes,omitempty"`
	ManualEntry   bool        `json:"manual_entry,omitempty"`
	SavedAt       time.Time   `json:"saved_at"`
}

// VehicleInfo returns "year make model" for display, or "" when unset.
func (p SavedPart) VehicleInfo() string {
	v := Vehicle{Year: p.Year, Make: p.Make, Model: p.Model}
	return v.Info()
}
