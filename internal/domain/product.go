package domain

import (
	"slices"
	"time"
)

// Product is one catalog row. The catalog is loaded from a flat CSV file
// and is immutable at runtime; a reload replaces the whole set.
type Product struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Price     float64   `json:"price"`
	ImageURL  string    `json:"image_url,omitempty"` // remote image, as listed in the catalog
	ImagePath string    `json:"-"`                   // local file ingested by the importer
	BlurHash  string    `json:"blur_hash,omitempty"`
	MoodTags  []string  `json:"mood_tags"` // normalized slugs, catalog order
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// HasTag reports whether the product carries the given normalized tag.
func (p *Product) HasTag(tag string) bool {
	return slices.Contains(p.MoodTags, tag)
}

// HasLocalImage reports whether the importer ingested an image for this
// product into local storage.
func (p *Product) HasLocalImage() bool {
	return p.ImagePath != ""
}
