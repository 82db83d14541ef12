package store

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"PATHFINDER_BACK-END/internal/models"
)

// Users persists user records.
type Users struct {
	pool *pgxpool.Pool
}

// NewUsers creates a new Users store
func NewUsers(pool *pgxpool.Pool) *Users {
	return &Users{pool: pool}
}

const userColumns = `id, email, username, first_name, last_name, password_hash, created_at, updated_at`

// Create inserts a new user. Duplicate email or username surfaces as
// ErrEmailTaken / ErrUsernameTaken via the unique constraints.
func (s *Users) Create(ctx context.Context, u *models.User) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO users (id, email, username, first_name, last_name, password_hash, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		u.ID, u.Email, u.Username, u.FirstName, u.LastName, u.PasswordHash, u.CreatedAt, u.UpdatedAt)
	if err != nil {
		if constraint, ok := isUniqueViolation(err); ok {
			if strings.Contains(constraint, "email") {
				return ErrEmailTaken
			}
			return ErrUsernameTaken
		}
		return err
	}
	return nil
}

// ByID returns a user by primary key.
func (s *Users) ByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return s.byQuery(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

// ByCredential returns the user whose email or username equals credential.
func (s *Users) ByCredential(ctx context.Context, credential string) (*models.User, error) {
	return s.byQuery(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1 OR username = $1`, credential)
}

// ByEmail returns a user by email.
func (s *Users) ByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.byQuery(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
}

func (s *Users) byQuery(ctx context.Context, query string, arg any) (*models.User, error) {
	var u models.User
	err := s.pool.QueryRow(ctx, query, arg).Scan(
		&u.ID, &u.Email, &u.Username, &u.FirstName, &u.LastName, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}
