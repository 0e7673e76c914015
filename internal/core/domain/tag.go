package domain

import "time"

// Tag labels documents within an organization. Listings can be filtered by
// tag membership.
type Tag struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Color     string    `json:"color,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
