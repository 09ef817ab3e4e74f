package worker

import (
	"context"
	"errors"
	"time"

	"github.com/klasurapp/backend/internal/evaluation"
	"github.com/klasurapp/backend/internal/repository"
	"github.com/rs/zerolog"
)

// GradingBatchSize caps how many ungraded answers one worker pass picks up.
const GradingBatchSize = 50

// GradingWorker periodically scores ungraded closed answers. Open answers
// are left for manual grading.
type GradingWorker struct {
	answers  *repository.AnswerRepository
	tasks    *repository.TaskRepository
	interval time.Duration
	log      zerolog.Logger
}

// NewGradingWorker creates a new GradingWorker.
func NewGradingWorker(answers *repository.AnswerRepository, tasks *repository.TaskRepository, interval time.Duration, log zerolog.Logger) *GradingWorker {
	return &GradingWorker{
		answers:  answers,
		tasks:    tasks,
		interval: interval,
		log:      log.With().Str("component", "grading_worker").Logger(),
	}
}

// Start begins the worker loop. Call in a goroutine.
func (w *GradingWorker) Start(ctx context.Context) {
	w.log.Info().Dur("interval", w.interval).Msg("GradingWorker started")

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("GradingWorker stopped")
			return
		case <-ticker.C:
			w.runOnce(ctx)
		}
	}
}

func (w *GradingWorker) runOnce(ctx context.Context) {
	batch, err := w.answers.ListUngradedClosed(ctx, GradingBatchSize)
	if err != nil {
		w.log.Error().Err(err).Msg("Fetching ungraded answers failed")
		return
	}

	for _, answer := range batch {
		task, err := w.tasks.GetByID(ctx, answer.Base().TaskID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				// Task vanished after submission. Leave the answer alone.
				continue
			}
			w.log.Error().Err(err).Int64("answer_id", answer.Base().ID).Msg("Task lookup failed")
			continue
		}

		score := 0.0
		if evaluation.Evaluate(answer, task) {
			score = 1.0
		}
		answer.Base().SetScore(&score)

		if err := w.answers.Update(ctx, answer); err != nil {
			w.log.Error().Err(err).Int64("answer_id", answer.Base().ID).Msg("Persisting grade failed")
			continue
		}
		w.log.Debug().Int64("answer_id", answer.Base().ID).Float64("score", score).Msg("answer auto-graded")
	}
}
