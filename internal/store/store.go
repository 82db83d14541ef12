// Package store implements Postgres persistence for users, posts, stops
// and reviews, plus the Redis-backed session revocation list. Handlers
// depend on these types through small consumer-side interfaces.
package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Domain-level persistence outcomes handlers map to HTTP status codes.
var (
	ErrNotFound        = errors.New("record not found")
	ErrEmailTaken      = errors.New("email already registered")
	ErrUsernameTaken   = errors.New("username already taken")
	ErrAlreadyReviewed = errors.New("user already reviewed this post")
)

const schema = `
CREATE TABLE IF NOT EXISTS users (
	id            UUID PRIMARY KEY,
	email         VARCHAR(255) NOT NULL UNIQUE,
	username      VARCHAR(30)  NOT NULL UNIQUE,
	first_name    VARCHAR(100) NOT NULL,
	last_name     VARCHAR(100) NOT NULL,
	password_hash TEXT         NOT NULL,
	created_at    TIMESTAMPTZ  NOT NULL,
	updated_at    TIMESTAMPTZ  NOT NULL
);

CREATE TABLE IF NOT EXISTS posts (
	id          UUID PRIMARY KEY,
	owner_id    UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	body        TEXT NOT NULL CHECK (body <> ''),
	status      VARCHAR(20) NOT NULL CHECK (status IN ('planned', 'completed', 'in_progress')),
	trip_length INTEGER CHECK (trip_length >= 1),
	created_at  TIMESTAMPTZ NOT NULL,
	updated_at  TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS stops (
	id          UUID PRIMARY KEY,
	post_id     UUID NOT NULL REFERENCES posts(id) ON DELETE CASCADE,
	"order"     INTEGER NOT NULL CHECK ("order" >= 1),
	name        VARCHAR(100) NOT NULL CHECK (name <> ''),
	location    VARCHAR(255) NOT NULL CHECK (location <> ''),
	description TEXT,
	days        INTEGER CHECK (days >= 1)
);

CREATE TABLE IF NOT EXISTS reviews (
	id         UUID PRIMARY KEY,
	post_id    UUID NOT NULL REFERENCES posts(id) ON DELETE CASCADE,
	user_id    UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	rating     INTEGER NOT NULL CHECK (rating BETWEEN 1 AND 5),
	reviews    TEXT NOT NULL CHECK (reviews <> ''),
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL,
	CONSTRAINT reviews_post_id_user_id_key UNIQUE (post_id, user_id)
);
`

// Migrate creates the schema if it does not exist. The unique constraint
// on reviews(post_id, user_id) backs the one-review-per-user-per-trip
// rule so concurrent duplicate submissions cannot both land.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, schema)
	return err
}

// isUniqueViolation reports whether err is a Postgres unique-constraint
// violation, and if so on which constraint.
func isUniqueViolation(err error) (constraint string, ok bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return pgErr.ConstraintName, true
	}
	return "", false
}
