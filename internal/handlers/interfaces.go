package handlers

import (
	"context"

	"github.com/google/uuid"

	"PATHFINDER_BACK-END/internal/models"
)

// UserStore defines the user persistence the handlers depend on.
type UserStore interface {
	Create(ctx context.Context, u *models.User) error
	ByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	ByCredential(ctx context.Context, credential string) (*models.User, error)
	ByEmail(ctx context.Context, email string) (*models.User, error)
}

// PostStore defines the trip persistence the handlers depend on.
type PostStore interface {
	List(ctx context.Context) ([]models.PostDetail, error)
	Get(ctx context.Context, id uuid.UUID) (*models.PostDetail, error)
	ByID(ctx context.Context, id uuid.UUID) (*models.Post, error)
	Create(ctx context.Context, p *models.Post, stops []models.Stop) error
	Update(ctx context.Context, p *models.Post, stops []models.Stop, replaceStops bool) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// ReviewStore defines the review persistence the handlers depend on.
type ReviewStore interface {
	Create(ctx context.Context, r *models.Review) error
	ByID(ctx context.Context, id uuid.UUID) (*models.Review, error)
	Update(ctx context.Context, r *models.Review) error
	Delete(ctx context.Context, id uuid.UUID) error
	ExistsForUser(ctx context.Context, postID, userID uuid.UUID) (bool, error)
}
