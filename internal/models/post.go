package models

import (
	"time"

	"github.com/google/uuid"
)

// Valid trip statuses
const (
	StatusPlanned    = "planned"
	StatusCompleted  = "completed"
	StatusInProgress = "in_progress"
)

// ValidStatus reports whether s is one of the allowed trip statuses.
func ValidStatus(s string) bool {
	switch s {
	case StatusPlanned, StatusCompleted, StatusInProgress:
		return true
	}
	return false
}

// Post represents a trip plan authored by a user. It is the aggregate
// root for Stops and Reviews: deleting a Post removes both.
type Post struct {
	ID         uuid.UUID `json:"id" db:"id"`
	OwnerID    uuid.UUID `json:"owner_id" db:"owner_id"`
	Body       string    `json:"body" db:"body"`
	Status     string    `json:"status" db:"status"`
	TripLength *int      `json:"trip_length" db:"trip_length"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at"`
}

// OwnedBy reports whether userID may mutate or delete this post.
// Every post mutation endpoint goes through this single check.
func (p *Post) OwnedBy(userID uuid.UUID) bool {
	return p.OwnerID == userID
}

// PostDetail is a post joined with its owner, ordered stops and reviews,
// as returned by list and detail reads.
type PostDetail struct {
	Post
	OwnerUsername string
	Stops         []Stop
	Reviews       []ReviewDetail
}
