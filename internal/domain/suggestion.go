package domain

import "time"

// SuggestionStatus tracks the review state of a user-submitted item idea.
type SuggestionStatus string

const (
	SuggestionPending  SuggestionStatus = "pending"
	SuggestionApproved SuggestionStatus = "approved"
	SuggestionRejected SuggestionStatus = "rejected"
)

// Valid reports whether s is one of the known statuses.
func (s SuggestionStatus) Valid() bool {
	switch s {
	case SuggestionPending, SuggestionApproved, SuggestionRejected:
		return true
	}
	return false
}

// Suggestion is a visitor-submitted request for an item to be generated.
// Email is optional and only used for follow-up; it is never published.
type Suggestion struct {
	ID          string           `json:"id"`
	ItemName    string           `json:"item_name"`
	Description string           `json:"description,omitempty"`
	Email       string           `json:"email,omitempty"`
	Status      SuggestionStatus `json:"status"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}
