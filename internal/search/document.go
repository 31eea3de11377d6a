// Package search provides full-text item search using Bleve.
// Items are indexed by name, description, categories, and tags with
// fuzzy matching for typo tolerance.
package search

import (
	"github.com/altusecase/altuse-server/internal/domain"
)

// ItemDocument is the document structure for the Bleve index.
//
// Design note: category and tag names are denormalized into the item
// document so a single query covers everything a visitor might type.
// The index is rebuilt from the store on demand, so staleness after a
// category edit is bounded by the next rebuild.
type ItemDocument struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Slug        string   `json:"slug"`
	Description string   `json:"description,omitempty"`
	ImageURL    string   `json:"image_url,omitempty"`
	Categories  []string `json:"categories,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	CreatedAt   int64    `json:"created_at"` // Unix millis
}

// DocumentFromItem builds an index document from an item and its
// denormalized relations.
func DocumentFromItem(item *domain.Item, categories, tags []string) *ItemDocument {
	return &ItemDocument{
		ID:          item.ID,
		Name:        item.Name,
		Slug:        item.Slug,
		Description: item.SEODescription,
		ImageURL:    item.ImageURL,
		Categories:  categories,
		Tags:        tags,
		CreatedAt:   item.CreatedAt.UnixMilli(),
	}
}

// ToMap converts the document to a map with lowercase field names.
// Bleve by default uses Go struct field names (capitalized), but our
// mapping uses lowercase names, so we convert explicitly.
func (d *ItemDocument) ToMap() map[string]interface{} {
	m := map[string]interface{}{
		"id":         d.ID,
		"name":       d.Name,
		"slug":       d.Slug,
		"created_at": d.CreatedAt,
	}
	if d.Description != "" {
		m["description"] = d.Description
	}
	if d.ImageURL != "" {
		m["image_url"] = d.ImageURL
	}
	if len(d.Categories) > 0 {
		m["categories"] = d.Categories
	}
	if len(d.Tags) > 0 {
		m["tags"] = d.Tags
	}
	return m
}
