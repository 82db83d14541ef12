package models

import "github.com/google/uuid"

// Stop represents an ordered waypoint within a trip. Stops have no stable
// identity across edits: updating a post's stop list replaces all of them.
type Stop struct {
	ID          uuid.UUID `json:"id" db:"id"`
	PostID      uuid.UUID `json:"post_id" db:"post_id"`
	Order       int       `json:"order" db:"order"`
	Name        string    `json:"name" db:"name"`
	Location    string    `json:"location" db:"location"`
	Description *string   `json:"description" db:"description"`
	Days        *int      `json:"days" db:"days"`
}
