package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/klasurapp/backend/internal/model"
)

// querier is the query surface shared by pgxpool.Pool and pgx.Tx. It lets
// the account aggregate reuse user statements inside its own transaction.
type querier interface {
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

// UserRepository handles the base user records (nutzer) owned by accounts.
type UserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

// CreateIn inserts a user through the given connection or transaction.
func (r *UserRepository) CreateIn(ctx context.Context, db querier, u *model.User) error {
	err := db.QueryRow(ctx,
		`INSERT INTO nutzer (first_name, last_name, email, role) VALUES ($1, $2, $3, $4) RETURNING id`,
		u.FirstName, u.LastName, u.Email, u.Role,
	).Scan(&u.ID)
	if isUniqueViolation(err) {
		return fmt.Errorf("user email %q: %w", u.Email, ErrConstraint)
	}
	return err
}

// GetByID retrieves a user by id.
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	u := &model.User{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, first_name, last_name, email, role FROM nutzer WHERE id = $1`, id,
	).Scan(&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.Role)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("user %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

// UpdateIn rewrites a user through the given connection or transaction.
func (r *UserRepository) UpdateIn(ctx context.Context, db querier, u *model.User) error {
	tag, err := db.Exec(ctx,
		`UPDATE nutzer SET first_name = $1, last_name = $2, email = $3, role = $4 WHERE id = $5`,
		u.FirstName, u.LastName, u.Email, u.Role, u.ID)
	if isUniqueViolation(err) {
		return fmt.Errorf("user email %q: %w", u.Email, ErrConstraint)
	}
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("user %d: %w", u.ID, ErrNotFound)
	}
	return nil
}
