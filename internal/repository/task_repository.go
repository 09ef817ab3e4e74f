package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/klasurapp/backend/internal/model"
)

// TaskRepository persists the task variant family using a base table plus
// one subtype table per variant. Every multi-table write runs inside a
// single transaction; no partial task is ever visible.
type TaskRepository struct {
	pool    *pgxpool.Pool
	modules *ModuleRepository
}

// NewTaskRepository creates a new TaskRepository.
func NewTaskRepository(pool *pgxpool.Pool, modules *ModuleRepository) *TaskRepository {
	return &TaskRepository{pool: pool, modules: modules}
}

const taskSelect = `SELECT t.id, t.name, t.text, t.estimated_time_minutes,
	       t.bloom_level, t.task_format, t.module_id,
	       ot.sample_solution, ct.closed_task_type, ct.correct_answer
	FROM tasks t
	LEFT JOIN open_tasks ot ON t.id = ot.task_id
	LEFT JOIN closed_tasks ct ON t.id = ct.task_id`

// Create inserts a task of either variant and assigns its id.
func (r *TaskRepository) Create(ctx context.Context, t model.Task) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	base := t.Base()
	err = tx.QueryRow(ctx,
		`INSERT INTO tasks (name, text, estimated_time_minutes, bloom_level, task_format, module_id)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id`,
		base.Name, base.Text, base.EstimatedTimeMinutes,
		base.BloomLevel.String(), string(t.Format()), base.Module.ID,
	).Scan(&base.ID)
	if err != nil {
		return fmt.Errorf("insert task: %w", err)
	}

	switch v := t.(type) {
	case *model.OpenTask:
		if err := execExpectOne(ctx, tx,
			`INSERT INTO open_tasks (task_id, sample_solution) VALUES ($1, $2)`,
			v.ID, v.SampleSolution); err != nil {
			return fmt.Errorf("insert open task: %w", err)
		}
	case *model.ClosedTask:
		if err := r.insertClosed(ctx, tx, v); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown task variant %T", t)
	}

	return tx.Commit(ctx)
}

// Update rewrites an existing task. If the subtype row does not exist yet
// (e.g. the format changed), it is inserted instead of failing.
func (r *TaskRepository) Update(ctx context.Context, t model.Task) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	base := t.Base()
	if err := execExpectOne(ctx, tx,
		`UPDATE tasks SET name = $1, text = $2, estimated_time_minutes = $3,
		        bloom_level = $4, task_format = $5, module_id = $6
		 WHERE id = $7`,
		base.Name, base.Text, base.EstimatedTimeMinutes,
		base.BloomLevel.String(), string(t.Format()), base.Module.ID, base.ID,
	); err != nil {
		return fmt.Errorf("update task %d: %w", base.ID, err)
	}

	switch v := t.(type) {
	case *model.OpenTask:
		tag, err := tx.Exec(ctx,
			`UPDATE open_tasks SET sample_solution = $1 WHERE task_id = $2`,
			v.SampleSolution, v.ID)
		if err != nil {
			return fmt.Errorf("update open task: %w", err)
		}
		if tag.RowsAffected() == 0 {
			if err := execExpectOne(ctx, tx,
				`INSERT INTO open_tasks (task_id, sample_solution) VALUES ($1, $2)`,
				v.ID, v.SampleSolution); err != nil {
				return fmt.Errorf("insert open task: %w", err)
			}
		}
	case *model.ClosedTask:
		tag, err := tx.Exec(ctx,
			`UPDATE closed_tasks SET closed_task_type = $1, correct_answer = $2 WHERE task_id = $3`,
			string(v.ClosedTaskType), v.CorrectAnswer, v.ID)
		if err != nil {
			return fmt.Errorf("update closed task: %w", err)
		}
		if tag.RowsAffected() == 0 {
			if err := r.insertClosed(ctx, tx, v); err != nil {
				return err
			}
		} else {
			if _, err := tx.Exec(ctx,
				`DELETE FROM closed_task_options WHERE task_id = $1`, v.ID); err != nil {
				return fmt.Errorf("delete options: %w", err)
			}
			if err := r.insertOptions(ctx, tx, v); err != nil {
				return err
			}
		}
	default:
		return fmt.Errorf("unknown task variant %T", t)
	}

	return tx.Commit(ctx)
}

// GetByID retrieves a task by id, materializing the variant selected by
// the stored format discriminator.
func (r *TaskRepository) GetByID(ctx context.Context, id int64) (model.Task, error) {
	var row taskRow
	err := r.pool.QueryRow(ctx, taskSelect+` WHERE t.id = $1`, id).Scan(
		&row.id, &row.name, &row.text, &row.minutes,
		&row.bloom, &row.format, &row.moduleID,
		&row.sampleSolution, &row.closedType, &row.correctAnswer)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("task %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return r.materialize(ctx, row)
}

// ListByModule retrieves all tasks belonging to a module.
func (r *TaskRepository) ListByModule(ctx context.Context, moduleID int64) ([]model.Task, error) {
	rows, err := r.pool.Query(ctx, taskSelect+` WHERE t.module_id = $1 ORDER BY t.id`, moduleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var collected []taskRow
	for rows.Next() {
		var row taskRow
		if err := rows.Scan(
			&row.id, &row.name, &row.text, &row.minutes,
			&row.bloom, &row.format, &row.moduleID,
			&row.sampleSolution, &row.closedType, &row.correctAnswer); err != nil {
			return nil, err
		}
		collected = append(collected, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Materialize after the row set is drained: option loading and module
	// resolution issue their own queries.
	tasks := make([]model.Task, 0, len(collected))
	for _, row := range collected {
		t, err := r.materialize(ctx, row)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, nil
}

// Delete removes a task by id. Subtype rows and options are cleaned up by
// the storage-level cascade.
func (r *TaskRepository) Delete(ctx context.Context, id int64) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// ─── Helpers ───────────────────────────────────────────────────────────

// taskRow is the joined projection of a task and both possible subtypes.
type taskRow struct {
	id             int64
	name           string
	text           string
	minutes        int
	bloom          string
	format         string
	moduleID       int64
	sampleSolution *string
	closedType     *string
	correctAnswer  *string
}

// materialize builds the concrete variant from a joined row. The variant
// is chosen by the stored discriminator, never by which joined columns
// happen to be non-null.
func (r *TaskRepository) materialize(ctx context.Context, row taskRow) (model.Task, error) {
	bloom, err := model.ParseBloomLevel(row.bloom)
	if err != nil {
		return nil, fmt.Errorf("task %d: %w", row.id, err)
	}

	module, err := r.modules.GetByID(ctx, row.moduleID)
	if err != nil {
		return nil, fmt.Errorf("resolve module %d for task %d: %w", row.moduleID, row.id, err)
	}

	base := model.TaskBase{
		ID:                   row.id,
		Name:                 row.name,
		Text:                 row.text,
		EstimatedTimeMinutes: row.minutes,
		BloomLevel:           bloom,
		Module:               module,
	}

	switch model.TaskFormat(row.format) {
	case model.TaskFormatOpen:
		return &model.OpenTask{TaskBase: base, SampleSolution: orEmpty(row.sampleSolution)}, nil
	case model.TaskFormatClosed:
		t := &model.ClosedTask{
			TaskBase:       base,
			ClosedTaskType: model.ClosedTaskType(orEmpty(row.closedType)),
			CorrectAnswer:  orEmpty(row.correctAnswer),
		}
		options, err := r.loadOptions(ctx, row.id)
		if err != nil {
			return nil, err
		}
		t.Options = options
		return t, nil
	default:
		return nil, fmt.Errorf("task %d: unknown format %q", row.id, row.format)
	}
}

// loadOptions returns a closed task's options in their insertion order.
func (r *TaskRepository) loadOptions(ctx context.Context, taskID int64) ([]string, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT option_text FROM closed_task_options WHERE task_id = $1 ORDER BY option_order`,
		taskID)
	if err != nil {
		return nil, fmt.Errorf("load options for task %d: %w", taskID, err)
	}
	defer rows.Close()

	var options []string
	for rows.Next() {
		var opt string
		if err := rows.Scan(&opt); err != nil {
			return nil, err
		}
		options = append(options, opt)
	}
	return options, rows.Err()
}

func (r *TaskRepository) insertClosed(ctx context.Context, tx pgx.Tx, t *model.ClosedTask) error {
	if err := execExpectOne(ctx, tx,
		`INSERT INTO closed_tasks (task_id, closed_task_type, correct_answer) VALUES ($1, $2, $3)`,
		t.ID, string(t.ClosedTaskType), t.CorrectAnswer); err != nil {
		return fmt.Errorf("insert closed task: %w", err)
	}
	return r.insertOptions(ctx, tx, t)
}

// insertOptions writes the option list with an explicit order column so the
// original ordering round-trips exactly.
func (r *TaskRepository) insertOptions(ctx context.Context, tx pgx.Tx, t *model.ClosedTask) error {
	if len(t.Options) == 0 {
		return nil
	}
	_, err := tx.CopyFrom(ctx,
		pgx.Identifier{"closed_task_options"},
		[]string{"task_id", "option_text", "option_order"},
		pgx.CopyFromSlice(len(t.Options), func(i int) ([]interface{}, error) {
			return []interface{}{t.ID, t.Options[i], i}, nil
		}),
	)
	if err != nil {
		return fmt.Errorf("insert options: %w", err)
	}
	return nil
}

// execExpectOne runs a statement that must affect exactly one row.
func execExpectOne(ctx context.Context, tx pgx.Tx, sql string, args ...interface{}) error {
	tag, err := tx.Exec(ctx, sql, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNoRowsAffected
	}
	return nil
}
