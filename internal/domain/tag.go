package domain

import "time"

// Tag is a free-form label attached to items.
// Tags are created lazily the first time a name is seen, either by the
// generation pipeline or by the admin edit flow. Name is the identity;
// lookups are exact-match on name.
type Tag struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// ItemTag is the join row linking an Item to a Tag.
// A duplicate insert of the same pair is treated as success by writers.
type ItemTag struct {
	ItemID string `json:"item_id"`
	TagID  string `json:"tag_id"`
}
