package model

import "time"

// Listing is a single marketplace record for a part query, either a
// completed sale or a currently active listing. Records are produced at
// the marketplace boundary and never mutated afterward.
type Listing struct {
	Title    string    `json:"title"`
	Price    float64   `json:"price"`
	SoldDate time.Time `json:"sold_date,omitempty"`
	IsActive bool      `json:"is_active"`
	ImageURL string    `json:"image_url,omitempty"`
	URL      string    `json:"url"`
}

// Sold reports whether the record is a completed sale.
func (l Listing) Sold() bool {
	return !l.IsActive
}
