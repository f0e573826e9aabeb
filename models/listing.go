// Package models defines the persisted listing record.
package models

import (
	"time"
)

// Listing represents one scraped land listing. URL is the unique key
// for deduplication across the whole dataset; pointer fields are absent
// when the source text could not be normalized.
type Listing struct {
	Title         string    `json:"title"`
	Address       string    `json:"address"`
	PriceRaw      string    `json:"price_raw"`
	PriceTotal    *int64    `json:"price_total,omitempty"`
	PricePerPerch *int64    `json:"price_per_perch,omitempty"`
	SizePerches   *float64  `json:"size_perches,omitempty"`
	Latitude      *float64  `json:"latitude,omitempty"`
	Longitude     *float64  `json:"longitude,omitempty"`
	PostedDate    string    `json:"posted_date,omitempty"`
	URL           string    `json:"url"`
	Source        string    `json:"source"`
	Region        string    `json:"region"`
	ScrapedAt     time.Time `json:"scraped_at"`
}

// SetCoords sets the coordinate pair. The pair is all-or-nothing; this
// is the only way coordinates are attached to a listing.
func (l *Listing) SetCoords(lat, lng float64) {
	l.Latitude = &lat
	l.Longitude = &lng
}

// HasCoords reports whether the listing carries a complete pair
func (l *Listing) HasCoords() bool {
	return l.Latitude != nil && l.Longitude != nil
}

// Valid reports whether the listing may be stored
func (l *Listing) Valid() bool {
	return l.URL != ""
}
