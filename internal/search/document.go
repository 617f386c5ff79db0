// Package search provides full-text product search using Bleve with
// fuzzy matching, mood-tag filtering, and facet counts.
package search

import (
	"github.com/moodshopapp/moodshop-server/internal/domain"
)

// SearchDocument is the document structure for the Bleve index.
type SearchDocument struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	MoodTags []string `json:"mood_tags,omitempty"`
	Price    float64  `json:"price"`

	// Timestamps for sorting. Unix millis.
	CreatedAt int64 `json:"created_at"`
	UpdatedAt int64 `json:"updated_at"`
}

// ToMap converts the document to a map with lowercase field names.
// Bleve by default uses Go struct field names (capitalized), but the
// mapping uses lowercase names, so we convert explicitly.
func (d *SearchDocument) ToMap() map[string]interface{} {
	m := map[string]interface{}{
		"id":         d.ID,
		"name":       d.Name,
		"price":      d.Price,
		"created_at": d.CreatedAt,
		"updated_at": d.UpdatedAt,
	}

	if len(d.MoodTags) > 0 {
		m["mood_tags"] = d.MoodTags
	}

	return m
}

// ProductToSearchDocument converts a domain Product to a SearchDocument.
func ProductToSearchDocument(p *domain.Product) *SearchDocument {
	return &SearchDocument{
		ID:        p.ID,
		Name:      p.Name,
		MoodTags:  p.MoodTags,
		Price:     p.Price,
		CreatedAt: p.CreatedAt.UnixMilli(),
		UpdatedAt: p.UpdatedAt.UnixMilli(),
	}
}
