package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrNotFound marks a requested row as absent.
	ErrNotFound = errors.New("not found")
	// ErrConstraint marks a unique-key conflict, e.g. a duplicate module
	// code or username.
	ErrConstraint = errors.New("unique constraint violation")
	// ErrNoRowsAffected marks a write that touched zero rows when exactly
	// one was expected. Multi-step writes roll back fully when it occurs.
	ErrNoRowsAffected = errors.New("no rows affected")
)

// isUniqueViolation reports whether err is a PostgreSQL unique_violation.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// nullIfEmpty maps an empty string to SQL NULL.
func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func orEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
