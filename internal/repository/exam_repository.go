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

// ExamRepository persists exam aggregates: the base exam row plus an
// ordered many-to-many association to tasks. Writes replace the
// association set as a whole inside one transaction.
type ExamRepository struct {
	pool    *pgxpool.Pool
	modules *ModuleRepository
	tasks   *TaskRepository
}

// NewExamRepository creates a new ExamRepository.
func NewExamRepository(pool *pgxpool.Pool, modules *ModuleRepository, tasks *TaskRepository) *ExamRepository {
	return &ExamRepository{pool: pool, modules: modules, tasks: tasks}
}

// Create inserts a new exam together with its task associations.
func (r *ExamRepository) Create(ctx context.Context, e *model.Exam) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx,
		`INSERT INTO exams (title, description, exam_date, duration_minutes, module_id)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id`,
		e.Title, nullIfEmpty(e.Description), e.ExamDate, e.DurationMinutes, e.Module.ID,
	).Scan(&e.ID)
	if err != nil {
		return fmt.Errorf("insert exam: %w", err)
	}

	if err := r.insertExamTasks(ctx, tx, e); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// Update rewrites an exam and fully replaces its task association set and
// ordering.
func (r *ExamRepository) Update(ctx context.Context, e *model.Exam) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := execExpectOne(ctx, tx,
		`UPDATE exams SET title = $1, description = $2, exam_date = $3,
		        duration_minutes = $4, module_id = $5
		 WHERE id = $6`,
		e.Title, nullIfEmpty(e.Description), e.ExamDate, e.DurationMinutes, e.Module.ID, e.ID,
	); err != nil {
		return fmt.Errorf("update exam %d: %w", e.ID, err)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM exam_tasks WHERE exam_id = $1`, e.ID); err != nil {
		return fmt.Errorf("delete exam tasks: %w", err)
	}
	if err := r.insertExamTasks(ctx, tx, e); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// GetByID retrieves an exam with its module and ordered task list.
func (r *ExamRepository) GetByID(ctx context.Context, id int64) (*model.Exam, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT id, title, description, exam_date, duration_minutes, module_id
		 FROM exams WHERE id = $1`, id)
	e, err := r.scanExam(ctx, row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("exam %d: %w", id, ErrNotFound)
	}
	return e, err
}

// ListByModule retrieves all exams of a module, newest exam date first.
func (r *ExamRepository) ListByModule(ctx context.Context, moduleID int64) ([]*model.Exam, error) {
	return r.list(ctx,
		`SELECT id, title, description, exam_date, duration_minutes, module_id
		 FROM exams WHERE module_id = $1 ORDER BY exam_date DESC`, moduleID)
}

// List retrieves all exams, newest exam date first.
func (r *ExamRepository) List(ctx context.Context) ([]*model.Exam, error) {
	return r.list(ctx,
		`SELECT id, title, description, exam_date, duration_minutes, module_id
		 FROM exams ORDER BY exam_date DESC`)
}

func (r *ExamRepository) list(ctx context.Context, query string, args ...interface{}) ([]*model.Exam, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}

	type examRow struct {
		id              int64
		title           string
		description     *string
		examDate        *time.Time
		durationMinutes *int
		moduleID        int64
	}
	var collected []examRow
	for rows.Next() {
		var er examRow
		if err := rows.Scan(&er.id, &er.title, &er.description, &er.examDate,
			&er.durationMinutes, &er.moduleID); err != nil {
			rows.Close()
			return nil, err
		}
		collected = append(collected, er)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	exams := make([]*model.Exam, 0, len(collected))
	for _, er := range collected {
		e := &model.Exam{
			ID:          er.id,
			Title:       er.title,
			Description: orEmpty(er.description),
			ExamDate:    er.examDate,
		}
		if er.durationMinutes != nil {
			e.DurationMinutes = *er.durationMinutes
		}
		if err := r.hydrate(ctx, e, er.moduleID); err != nil {
			return nil, err
		}
		exams = append(exams, e)
	}
	return exams, nil
}

// Delete removes an exam by id. Association rows are cleaned up by the
// storage-level cascade.
func (r *ExamRepository) Delete(ctx context.Context, id int64) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM exams WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// ─── Helpers ───────────────────────────────────────────────────────────

func (r *ExamRepository) scanExam(ctx context.Context, row pgx.Row) (*model.Exam, error) {
	e := &model.Exam{}
	var (
		description     *string
		durationMinutes *int
		moduleID        int64
	)
	if err := row.Scan(&e.ID, &e.Title, &description, &e.ExamDate, &durationMinutes, &moduleID); err != nil {
		return nil, err
	}
	e.Description = orEmpty(description)
	if durationMinutes != nil {
		e.DurationMinutes = *durationMinutes
	}
	if err := r.hydrate(ctx, e, moduleID); err != nil {
		return nil, err
	}
	return e, nil
}

// hydrate resolves the module reference and loads the ordered task list.
// A task id whose task no longer exists is skipped silently; this is a
// documented tolerance for orphaned association rows, not an error.
func (r *ExamRepository) hydrate(ctx context.Context, e *model.Exam, moduleID int64) error {
	module, err := r.modules.GetByID(ctx, moduleID)
	if err != nil {
		return fmt.Errorf("resolve module %d for exam %d: %w", moduleID, e.ID, err)
	}
	e.Module = module

	rows, err := r.pool.Query(ctx,
		`SELECT task_id FROM exam_tasks WHERE exam_id = $1 ORDER BY task_order`, e.ID)
	if err != nil {
		return fmt.Errorf("load exam tasks: %w", err)
	}
	defer rows.Close()

	var taskIDs []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return err
		}
		taskIDs = append(taskIDs, id)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	e.Tasks = make([]model.Task, 0, len(taskIDs))
	for _, id := range taskIDs {
		t, err := r.tasks.GetByID(ctx, id)
		if errors.Is(err, ErrNotFound) {
			continue
		}
		if err != nil {
			return err
		}
		e.Tasks = append(e.Tasks, t)
	}
	return nil
}

// insertExamTasks writes one association row per task with an explicit
// order number starting at 0. Tasks without an assigned id are skipped.
func (r *ExamRepository) insertExamTasks(ctx context.Context, tx pgx.Tx, e *model.Exam) error {
	type assoc struct {
		taskID int64
		order  int
	}
	assocs := make([]assoc, 0, len(e.Tasks))
	for _, t := range e.Tasks {
		if id := t.Base().ID; id != 0 {
			assocs = append(assocs, assoc{taskID: id, order: len(assocs)})
		}
	}
	if len(assocs) == 0 {
		return nil
	}

	_, err := tx.CopyFrom(ctx,
		pgx.Identifier{"exam_tasks"},
		[]string{"exam_id", "task_id", "task_order"},
		pgx.CopyFromSlice(len(assocs), func(i int) ([]interface{}, error) {
			return []interface{}{e.ID, assocs[i].taskID, assocs[i].order}, nil
		}),
	)
	if err != nil {
		return fmt.Errorf("insert exam tasks: %w", err)
	}
	return nil
}
