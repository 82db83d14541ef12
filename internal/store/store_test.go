package store

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestIsUniqueViolation(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"}

	constraint, ok := isUniqueViolation(pgErr)
	assert.True(t, ok)
	assert.Equal(t, "users_email_key", constraint)

	// Wrapped errors still unwrap to the pg error.
	constraint, ok = isUniqueViolation(fmt.Errorf("insert user: %w", pgErr))
	assert.True(t, ok)
	assert.Equal(t, "users_email_key", constraint)

	_, ok = isUniqueViolation(&pgconn.PgError{Code: "23503"})
	assert.False(t, ok)

	_, ok = isUniqueViolation(errors.New("plain error"))
	assert.False(t, ok)

	_, ok = isUniqueViolation(nil)
	assert.False(t, ok)
}
