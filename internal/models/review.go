package models

import (
	"time"

	"github.com/google/uuid"
)

// Review represents a rating and comment a user left on a trip.
// At most one review exists per (post, user) pair.
type Review struct {
	ID        uuid.UUID `json:"id" db:"id"`
	PostID    uuid.UUID `json:"post_id" db:"post_id"`
	UserID    uuid.UUID `json:"user_id" db:"user_id"`
	Rating    int       `json:"rating" db:"rating"`
	Reviews   string    `json:"reviews" db:"reviews"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// AuthoredBy reports whether userID may edit or delete this review.
func (r *Review) AuthoredBy(userID uuid.UUID) bool {
	return r.UserID == userID
}

// ReviewDetail is a review joined with its reviewer's username.
type ReviewDetail struct {
	Review
	ReviewerUsername string
}
