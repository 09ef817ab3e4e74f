package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/klasurapp/backend/internal/model"
)

// ModuleRepository handles course module data access.
type ModuleRepository struct {
	pool *pgxpool.Pool
}

// NewModuleRepository creates a new ModuleRepository.
func NewModuleRepository(pool *pgxpool.Pool) *ModuleRepository {
	return &ModuleRepository{pool: pool}
}

// Create inserts a new module and assigns its id.
func (r *ModuleRepository) Create(ctx context.Context, m *model.Module) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO modules (name, code, description) VALUES ($1, $2, $3) RETURNING id`,
		m.Name, m.Code, nullIfEmpty(m.Description),
	).Scan(&m.ID)
	if isUniqueViolation(err) {
		return fmt.Errorf("module code %q: %w", m.Code, ErrConstraint)
	}
	return err
}

// GetByID retrieves a module by id.
func (r *ModuleRepository) GetByID(ctx context.Context, id int64) (*model.Module, error) {
	return r.get(ctx, `SELECT id, name, code, description FROM modules WHERE id = $1`, id)
}

// GetByCode retrieves a module by its unique code.
func (r *ModuleRepository) GetByCode(ctx context.Context, code string) (*model.Module, error) {
	return r.get(ctx, `SELECT id, name, code, description FROM modules WHERE code = $1`, code)
}

func (r *ModuleRepository) get(ctx context.Context, query string, arg interface{}) (*model.Module, error) {
	m := &model.Module{}
	var desc *string
	err := r.pool.QueryRow(ctx, query, arg).Scan(&m.ID, &m.Name, &m.Code, &desc)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("module: %w", ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	m.Description = orEmpty(desc)
	return m, nil
}

// List retrieves all modules ordered by name.
func (r *ModuleRepository) List(ctx context.Context) ([]model.Module, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, code, description FROM modules ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var modules []model.Module
	for rows.Next() {
		var m model.Module
		var desc *string
		if err := rows.Scan(&m.ID, &m.Name, &m.Code, &desc); err != nil {
			return nil, err
		}
		m.Description = orEmpty(desc)
		modules = append(modules, m)
	}
	return modules, rows.Err()
}

// Update rewrites an existing module. The module must already have an id.
func (r *ModuleRepository) Update(ctx context.Context, m *model.Module) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE modules SET name = $1, code = $2, description = $3 WHERE id = $4`,
		m.Name, m.Code, nullIfEmpty(m.Description), m.ID)
	if isUniqueViolation(err) {
		return fmt.Errorf("module code %q: %w", m.Code, ErrConstraint)
	}
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("module %d: %w", m.ID, ErrNotFound)
	}
	return nil
}

// Delete removes a module by id. Deleting an absent module is not an
// error; the result reports whether a row was removed.
func (r *ModuleRepository) Delete(ctx context.Context, id int64) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM modules WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
