package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/klasurapp/backend/internal/evaluation"
	"github.com/klasurapp/backend/internal/model"
	"github.com/klasurapp/backend/internal/repository"
	"github.com/rs/zerolog"
)

// ErrFormatMismatch marks a submission whose answer variant does not match
// the task's format, e.g. a closed answer for an open task.
var ErrFormatMismatch = errors.New("answer type does not match task format")

// AnswerService handles answer submission, retrieval and grading.
type AnswerService struct {
	answerRepo *repository.AnswerRepository
	taskRepo   *repository.TaskRepository
	log        zerolog.Logger
}

// NewAnswerService creates a new AnswerService.
func NewAnswerService(answerRepo *repository.AnswerRepository, taskRepo *repository.TaskRepository, log zerolog.Logger) *AnswerService {
	return &AnswerService{
		answerRepo: answerRepo,
		taskRepo:   taskRepo,
		log:        log.With().Str("component", "answer_service").Logger(),
	}
}

// Submit validates that the referenced task exists and matches the answer
// variant, then stores the answer.
func (s *AnswerService) Submit(ctx context.Context, a model.Answer) error {
	task, err := s.taskRepo.GetByID(ctx, a.Base().TaskID)
	if err != nil {
		return err
	}
	if string(task.Format()) != string(a.Type()) {
		return fmt.Errorf("task %d is %s: %w", task.Base().ID, task.Format(), ErrFormatMismatch)
	}
	return s.answerRepo.Create(ctx, a)
}

// GetByID retrieves an answer by id.
func (s *AnswerService) GetByID(ctx context.Context, id int64) (model.Answer, error) {
	return s.answerRepo.GetByID(ctx, id)
}

// ListByTask retrieves all answers for a task, most recent first.
func (s *AnswerService) ListByTask(ctx context.Context, taskID int64) ([]model.Answer, error) {
	return s.answerRepo.ListByTask(ctx, taskID)
}

// ListByUser retrieves all answers of a user, most recent first.
func (s *AnswerService) ListByUser(ctx context.Context, userID int64) ([]model.Answer, error) {
	return s.answerRepo.ListByUser(ctx, userID)
}

// Grade records a manual grade on an answer and persists it. Setting the
// score marks the answer as graded.
func (s *AnswerService) Grade(ctx context.Context, id int64, score float64, feedback string) (model.Answer, error) {
	a, err := s.answerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	base := a.Base()
	base.SetScore(&score)
	base.Feedback = feedback

	if err := s.answerRepo.Update(ctx, a); err != nil {
		return nil, err
	}
	s.log.Info().Int64("answer_id", id).Float64("score", score).Msg("answer graded")
	return a, nil
}

// Evaluate fetches an answer and its task and reports correctness. No
// grade is persisted; callers combine this with Grade to store a result.
func (s *AnswerService) Evaluate(ctx context.Context, id int64) (bool, error) {
	a, err := s.answerRepo.GetByID(ctx, id)
	if err != nil {
		return false, err
	}
	t, err := s.taskRepo.GetByID(ctx, a.Base().TaskID)
	if err != nil {
		return false, err
	}
	return evaluation.Evaluate(a, t), nil
}

// Delete removes an answer by id, reporting whether a row was removed.
func (s *AnswerService) Delete(ctx context.Context, id int64) (bool, error) {
	return s.answerRepo.Delete(ctx, id)
}
