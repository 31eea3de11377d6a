// Package domain defines the core entities of the Alt Use Case catalog.
package domain

import "time"

// Item is an everyday object users look up alternative uses for.
// The slug is the source of truth for item identity: at most one Item
// exists per slug, enforced by the generation pipeline's pre-check and
// backed by a unique constraint in the store.
type Item struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Slug           string    `json:"slug"`
	ImageURL       string    `json:"image_url,omitempty"`
	Attribution    string    `json:"attribution,omitempty"` // "Photo by {photographer} on Pexels"
	AffiliateLink  string    `json:"affiliate_link,omitempty"`
	SEOTitle       string    `json:"seo_title"`
	SEODescription string    `json:"seo_description"`
	CanonicalURL   string    `json:"canonical_url"` // Site-relative: "/use/{slug}"
	CreatedAt      time.Time `json:"created_at"`
}

// ItemFull is an Item hydrated with its related rows.
// The read path always returns this shape; the slices are never nil,
// even for items with zero related rows.
type ItemFull struct {
	Item
	Uses       []Use      `json:"uses"`
	Categories []Category `json:"categories"`
	Tags       []string   `json:"tags"` // Tag names, not IDs
}

// Use is one suggested alternative application of an Item.
type Use struct {
	ID            string     `json:"id"`
	ItemID        string     `json:"item_id"`
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	Difficulty    Difficulty `json:"difficulty"`
	ImageURL      string     `json:"image_url,omitempty"`
	AffiliateLink string     `json:"affiliate_link,omitempty"`
	VotesYes      int        `json:"votes_yes"`
	VotesNo       int        `json:"votes_no"`
	CreatedAt     time.Time  `json:"created_at"`
}

// Difficulty labels how hard an alternative use is to pull off.
type Difficulty string

// Valid difficulty labels.
const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Difficulties lists all valid labels in ascending order of effort.
var Difficulties = []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard}

// Valid reports whether d is one of the known difficulty labels.
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// VoteKind identifies which counter a vote increments.
type VoteKind string

// Vote kinds.
const (
	VoteYes VoteKind = "yes"
	VoteNo  VoteKind = "no"
)

// Valid reports whether v is a known vote kind.
func (v VoteKind) Valid() bool {
	return v == VoteYes || v == VoteNo
}
