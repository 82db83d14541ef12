package store

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"PATHFINDER_BACK-END/internal/models"
)

// Reviews persists trip reviews.
type Reviews struct {
	pool *pgxpool.Pool
}

// NewReviews creates a new Reviews store
func NewReviews(pool *pgxpool.Pool) *Reviews {
	return &Reviews{pool: pool}
}

// Create inserts a review. A second review by the same user on the same
// post hits the (post_id, user_id) unique constraint and surfaces as
// ErrAlreadyReviewed, which also covers concurrent duplicate submissions.
func (s *Reviews) Create(ctx context.Context, r *models.Review) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO reviews (id, post_id, user_id, rating, reviews, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		r.ID, r.PostID, r.UserID, r.Rating, r.Reviews, r.CreatedAt, r.UpdatedAt)
	if err != nil {
		if _, ok := isUniqueViolation(err); ok {
			return ErrAlreadyReviewed
		}
		return err
	}
	return nil
}

// ByID returns a review by primary key.
func (s *Reviews) ByID(ctx context.Context, id uuid.UUID) (*models.Review, error) {
	var r models.Review
	err := s.pool.QueryRow(ctx,
		`SELECT id, post_id, user_id, rating, reviews, created_at, updated_at FROM reviews WHERE id = $1`,
		id).Scan(&r.ID, &r.PostID, &r.UserID, &r.Rating, &r.Reviews, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &r, nil
}

// Update writes the mutable review fields.
func (s *Reviews) Update(ctx context.Context, r *models.Review) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE reviews SET rating = $1, reviews = $2, updated_at = $3 WHERE id = $4`,
		r.Rating, r.Reviews, r.UpdatedAt, r.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a review.
func (s *Reviews) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM reviews WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ExistsForUser reports whether userID already reviewed postID.
func (s *Reviews) ExistsForUser(ctx context.Context, postID, userID uuid.UUID) (bool, error) {
	var exists bool
	err := s.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM reviews WHERE post_id = $1 AND user_id = $2)`,
		postID, userID).Scan(&exists)
	return exists, err
}
