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

// AnswerRepository persists the answer variant family with the same
// base-plus-subtype decomposition as TaskRepository.
type AnswerRepository struct {
	pool *pgxpool.Pool
}

// NewAnswerRepository creates a new AnswerRepository.
func NewAnswerRepository(pool *pgxpool.Pool) *AnswerRepository {
	return &AnswerRepository{pool: pool}
}

const answerSelect = `SELECT a.id, a.task_id, a.user_id, a.submission_time,
	       a.is_graded, a.score, a.feedback, a.answer_type,
	       oa.text, ca.selected_option
	FROM answers a
	LEFT JOIN open_answers oa ON a.id = oa.answer_id
	LEFT JOIN closed_answers ca ON a.id = ca.answer_id`

// Create inserts an answer of either variant and assigns its id.
func (r *AnswerRepository) Create(ctx context.Context, a model.Answer) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	base := a.Base()
	err = tx.QueryRow(ctx,
		`INSERT INTO answers (task_id, user_id, submission_time, is_graded, score, feedback, answer_type)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id`,
		base.TaskID, base.UserID, base.SubmissionTime,
		base.Graded, base.Score, nullIfEmpty(base.Feedback), string(a.Type()),
	).Scan(&base.ID)
	if err != nil {
		return fmt.Errorf("insert answer: %w", err)
	}

	if err := r.insertSubtype(ctx, tx, a); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// Update rewrites an existing answer, including its grading state. A
// missing subtype row is inserted instead of failing.
func (r *AnswerRepository) Update(ctx context.Context, a model.Answer) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	base := a.Base()
	if err := execExpectOne(ctx, tx,
		`UPDATE answers SET submission_time = $1, is_graded = $2, score = $3, feedback = $4
		 WHERE id = $5`,
		base.SubmissionTime, base.Graded, base.Score, nullIfEmpty(base.Feedback), base.ID,
	); err != nil {
		return fmt.Errorf("update answer %d: %w", base.ID, err)
	}

	var tag int64
	switch v := a.(type) {
	case *model.OpenAnswer:
		t, err := tx.Exec(ctx,
			`UPDATE open_answers SET text = $1 WHERE answer_id = $2`, v.Text, v.ID)
		if err != nil {
			return fmt.Errorf("update open answer: %w", err)
		}
		tag = t.RowsAffected()
	case *model.ClosedAnswer:
		t, err := tx.Exec(ctx,
			`UPDATE closed_answers SET selected_option = $1 WHERE answer_id = $2`, v.SelectedOption, v.ID)
		if err != nil {
			return fmt.Errorf("update closed answer: %w", err)
		}
		tag = t.RowsAffected()
	default:
		return fmt.Errorf("unknown answer variant %T", a)
	}

	if tag == 0 {
		if err := r.insertSubtype(ctx, tx, a); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

// GetByID retrieves an answer by id.
func (r *AnswerRepository) GetByID(ctx context.Context, id int64) (model.Answer, error) {
	var row answerRow
	err := r.pool.QueryRow(ctx, answerSelect+` WHERE a.id = $1`, id).Scan(
		&row.id, &row.taskID, &row.userID, &row.submissionTime,
		&row.graded, &row.score, &row.feedback, &row.answerType,
		&row.text, &row.selectedOption)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("answer %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return row.materialize()
}

// ListByTask retrieves all answers for a task, most recent first.
func (r *AnswerRepository) ListByTask(ctx context.Context, taskID int64) ([]model.Answer, error) {
	return r.list(ctx, answerSelect+` WHERE a.task_id = $1 ORDER BY a.submission_time DESC`, taskID)
}

// ListByUser retrieves all answers of a user, most recent first.
func (r *AnswerRepository) ListByUser(ctx context.Context, userID int64) ([]model.Answer, error) {
	return r.list(ctx, answerSelect+` WHERE a.user_id = $1 ORDER BY a.submission_time DESC`, userID)
}

// ListUngradedClosed retrieves up to limit closed answers that have not
// been graded yet, oldest first. Used by the grading worker.
func (r *AnswerRepository) ListUngradedClosed(ctx context.Context, limit int) ([]model.Answer, error) {
	return r.list(ctx,
		answerSelect+` WHERE a.is_graded = FALSE AND a.answer_type = 'CLOSED'
		 ORDER BY a.submission_time ASC LIMIT $1`, limit)
}

func (r *AnswerRepository) list(ctx context.Context, query string, arg interface{}) ([]model.Answer, error) {
	rows, err := r.pool.Query(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var answers []model.Answer
	for rows.Next() {
		var row answerRow
		if err := rows.Scan(
			&row.id, &row.taskID, &row.userID, &row.submissionTime,
			&row.graded, &row.score, &row.feedback, &row.answerType,
			&row.text, &row.selectedOption); err != nil {
			return nil, err
		}
		a, err := row.materialize()
		if err != nil {
			return nil, err
		}
		answers = append(answers, a)
	}
	return answers, rows.Err()
}

// Delete removes an answer by id. The subtype row is cleaned up by the
// storage-level cascade.
func (r *AnswerRepository) Delete(ctx context.Context, id int64) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM answers WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// ─── Helpers ───────────────────────────────────────────────────────────

func (r *AnswerRepository) insertSubtype(ctx context.Context, tx pgx.Tx, a model.Answer) error {
	switch v := a.(type) {
	case *model.OpenAnswer:
		if err := execExpectOne(ctx, tx,
			`INSERT INTO open_answers (answer_id, text) VALUES ($1, $2)`, v.ID, v.Text); err != nil {
			return fmt.Errorf("insert open answer: %w", err)
		}
	case *model.ClosedAnswer:
		if err := execExpectOne(ctx, tx,
			`INSERT INTO closed_answers (answer_id, selected_option) VALUES ($1, $2)`,
			v.ID, v.SelectedOption); err != nil {
			return fmt.Errorf("insert closed answer: %w", err)
		}
	default:
		return fmt.Errorf("unknown answer variant %T", a)
	}
	return nil
}

type answerRow struct {
	id             int64
	taskID         int64
	userID         int64
	submissionTime time.Time
	graded         bool
	score          *float64
	feedback       *string
	answerType     string
	text           *string
	selectedOption *string
}

func (row answerRow) materialize() (model.Answer, error) {
	base := model.AnswerBase{
		ID:             row.id,
		TaskID:         row.taskID,
		UserID:         row.userID,
		SubmissionTime: row.submissionTime,
		Graded:         row.graded,
		Score:          row.score,
		Feedback:       orEmpty(row.feedback),
	}

	switch model.AnswerType(row.answerType) {
	case model.AnswerTypeOpen:
		return &model.OpenAnswer{AnswerBase: base, Text: orEmpty(row.text)}, nil
	case model.AnswerTypeClosed:
		return &model.ClosedAnswer{AnswerBase: base, SelectedOption: orEmpty(row.selectedOption)}, nil
	default:
		return nil, fmt.Errorf("answer %d: unknown answer type %q", row.id, row.answerType)
	}
}
