package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/klasurapp/backend/internal/model"
)

// AccountRepository persists account aggregates: the account row, its
// owned user record and two owned child collections (authored tasks and
// per-task answer text). Both collections are replaced as a whole on every
// write, inside the same transaction as the account row.
type AccountRepository struct {
	pool  *pgxpool.Pool
	users *UserRepository
	tasks *TaskRepository
}

// NewAccountRepository creates a new AccountRepository.
func NewAccountRepository(pool *pgxpool.Pool, users *UserRepository, tasks *TaskRepository) *AccountRepository {
	return &AccountRepository{pool: pool, users: users, tasks: tasks}
}

// Create inserts a new account. If the owned user has no id yet it is
// created first, in the same transaction.
func (r *AccountRepository) Create(ctx context.Context, a *model.Account) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	if a.User.ID == 0 {
		if err := r.users.CreateIn(ctx, tx, a.User); err != nil {
			return err
		}
	}

	err = tx.QueryRow(ctx,
		`INSERT INTO nutzer_konto (username, password_hash, last_login, active, nutzer_id)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id`,
		a.Username, a.PasswordHash, a.LastLogin, a.Active, a.User.ID,
	).Scan(&a.ID)
	if isUniqueViolation(err) {
		return fmt.Errorf("username %q: %w", a.Username, ErrConstraint)
	}
	if err != nil {
		return fmt.Errorf("insert account: %w", err)
	}

	if err := r.saveCollections(ctx, tx, a); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// Update rewrites an account, updates its owned user and unconditionally
// replaces both child collections, all in one transaction.
func (r *AccountRepository) Update(ctx context.Context, a *model.Account) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := execExpectOne(ctx, tx,
		`UPDATE nutzer_konto SET username = $1, password_hash = $2, last_login = $3, active = $4
		 WHERE id = $5`,
		a.Username, a.PasswordHash, a.LastLogin, a.Active, a.ID,
	); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("username %q: %w", a.Username, ErrConstraint)
		}
		return fmt.Errorf("update account %d: %w", a.ID, err)
	}

	if a.User != nil {
		if err := r.users.UpdateIn(ctx, tx, a.User); err != nil {
			return err
		}
	}

	if err := r.deleteCollections(ctx, tx, a.ID); err != nil {
		return err
	}
	if err := r.saveCollections(ctx, tx, a); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// GetByID retrieves an account aggregate by id.
func (r *AccountRepository) GetByID(ctx context.Context, id int64) (*model.Account, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT id, username, password_hash, last_login, active, nutzer_id
		 FROM nutzer_konto WHERE id = $1`, id)
	a, err := r.scanAccount(ctx, row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("account %d: %w", id, ErrNotFound)
	}
	return a, err
}

// GetByUsername retrieves an account aggregate by its unique username.
func (r *AccountRepository) GetByUsername(ctx context.Context, username string) (*model.Account, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT id, username, password_hash, last_login, active, nutzer_id
		 FROM nutzer_konto WHERE username = $1`, username)
	a, err := r.scanAccount(ctx, row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("account %q: %w", username, ErrNotFound)
	}
	return a, err
}

// List retrieves all account aggregates.
func (r *AccountRepository) List(ctx context.Context) ([]*model.Account, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, username, password_hash, last_login, active, nutzer_id
		 FROM nutzer_konto ORDER BY username`)
	if err != nil {
		return nil, err
	}

	type kontoRow struct {
		id           int64
		username     string
		passwordHash string
		lastLogin    *time.Time
		active       bool
		userID       int64
	}
	var collected []kontoRow
	for rows.Next() {
		var kr kontoRow
		if err := rows.Scan(&kr.id, &kr.username, &kr.passwordHash,
			&kr.lastLogin, &kr.active, &kr.userID); err != nil {
			rows.Close()
			return nil, err
		}
		collected = append(collected, kr)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	accounts := make([]*model.Account, 0, len(collected))
	for _, kr := range collected {
		a := &model.Account{
			ID:           kr.id,
			Username:     kr.username,
			PasswordHash: kr.passwordHash,
			LastLogin:    kr.lastLogin,
			Active:       kr.active,
		}
		if err := r.hydrate(ctx, a, kr.userID); err != nil {
			return nil, err
		}
		accounts = append(accounts, a)
	}
	return accounts, nil
}

// Delete removes an account and both child collections in one transaction.
// A missing account reports false, not an error.
func (r *AccountRepository) Delete(ctx context.Context, id int64) (bool, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return false, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := r.deleteCollections(ctx, tx, id); err != nil {
		return false, err
	}
	tag, err := tx.Exec(ctx, `DELETE FROM nutzer_konto WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	if err := tx.Commit(ctx); err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// ─── Helpers ───────────────────────────────────────────────────────────

func (r *AccountRepository) scanAccount(ctx context.Context, row pgx.Row) (*model.Account, error) {
	a := &model.Account{}
	var userID int64
	if err := row.Scan(&a.ID, &a.Username, &a.PasswordHash, &a.LastLogin, &a.Active, &userID); err != nil {
		return nil, err
	}
	if err := r.hydrate(ctx, a, userID); err != nil {
		return nil, err
	}
	return a, nil
}

// hydrate resolves the owned user and loads both child collections.
// Authored task ids whose task no longer exists are skipped, mirroring the
// exam aggregate's tolerance for orphaned references.
func (r *AccountRepository) hydrate(ctx context.Context, a *model.Account, userID int64) error {
	user, err := r.users.GetByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("resolve user %d for account %d: %w", userID, a.ID, err)
	}
	a.User = user

	rows, err := r.pool.Query(ctx,
		`SELECT task_id FROM nutzer_aufgaben WHERE konto_id = $1 ORDER BY task_id`, a.ID)
	if err != nil {
		return fmt.Errorf("load authored tasks: %w", err)
	}
	var taskIDs []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return err
		}
		taskIDs = append(taskIDs, id)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	a.AuthoredTasks = make([]model.Task, 0, len(taskIDs))
	for _, id := range taskIDs {
		t, err := r.tasks.GetByID(ctx, id)
		if errors.Is(err, ErrNotFound) {
			continue
		}
		if err != nil {
			return err
		}
		a.AuthoredTasks = append(a.AuthoredTasks, t)
	}

	answerRows, err := r.pool.Query(ctx,
		`SELECT task_id, answer_text FROM nutzer_antworten WHERE konto_id = $1`, a.ID)
	if err != nil {
		return fmt.Errorf("load task answers: %w", err)
	}
	defer answerRows.Close()

	a.TaskAnswers = make(map[int64]string)
	for answerRows.Next() {
		var (
			taskID int64
			text   string
		)
		if err := answerRows.Scan(&taskID, &text); err != nil {
			return err
		}
		a.TaskAnswers[taskID] = text
	}
	return answerRows.Err()
}

func (r *AccountRepository) saveCollections(ctx context.Context, tx pgx.Tx, a *model.Account) error {
	if len(a.AuthoredTasks) > 0 {
		taskIDs := make([]int64, 0, len(a.AuthoredTasks))
		for _, t := range a.AuthoredTasks {
			if id := t.Base().ID; id != 0 {
				taskIDs = append(taskIDs, id)
			}
		}
		_, err := tx.CopyFrom(ctx,
			pgx.Identifier{"nutzer_aufgaben"},
			[]string{"konto_id", "task_id"},
			pgx.CopyFromSlice(len(taskIDs), func(i int) ([]interface{}, error) {
				return []interface{}{a.ID, taskIDs[i]}, nil
			}),
		)
		if err != nil {
			return fmt.Errorf("insert authored tasks: %w", err)
		}
	}

	if len(a.TaskAnswers) > 0 {
		type entry struct {
			taskID int64
			text   string
		}
		entries := make([]entry, 0, len(a.TaskAnswers))
		for taskID, text := range a.TaskAnswers {
			entries = append(entries, entry{taskID: taskID, text: text})
		}
		_, err := tx.CopyFrom(ctx,
			pgx.Identifier{"nutzer_antworten"},
			[]string{"konto_id", "task_id", "answer_text"},
			pgx.CopyFromSlice(len(entries), func(i int) ([]interface{}, error) {
				return []interface{}{a.ID, entries[i].taskID, entries[i].text}, nil
			}),
		)
		if err != nil {
			return fmt.Errorf("insert task answers: %w", err)
		}
	}
	return nil
}

func (r *AccountRepository) deleteCollections(ctx context.Context, tx pgx.Tx, accountID int64) error {
	if _, err := tx.Exec(ctx, `DELETE FROM nutzer_aufgaben WHERE konto_id = $1`, accountID); err != nil {
		return fmt.Errorf("delete authored tasks: %w", err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM nutzer_antworten WHERE konto_id = $1`, accountID); err != nil {
		return fmt.Errorf("delete task answers: %w", err)
	}
	return nil
}
