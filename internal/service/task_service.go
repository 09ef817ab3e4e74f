package service

import (
	"context"

	"github.com/klasurapp/backend/internal/model"
	"github.com/klasurapp/backend/internal/repository"
	"github.com/rs/zerolog"
)

// TaskService handles task business logic.
type TaskService struct {
	taskRepo   *repository.TaskRepository
	moduleRepo *repository.ModuleRepository
	log        zerolog.Logger
}

// NewTaskService creates a new TaskService.
func NewTaskService(taskRepo *repository.TaskRepository, moduleRepo *repository.ModuleRepository, log zerolog.Logger) *TaskService {
	return &TaskService{
		taskRepo:   taskRepo,
		moduleRepo: moduleRepo,
		log:        log.With().Str("component", "task_service").Logger(),
	}
}

// Create builds the task variant from the request and stores it.
func (s *TaskService) Create(ctx context.Context, req *model.CreateTaskRequest) (model.Task, error) {
	module, err := s.moduleRepo.GetByID(ctx, req.ModuleID)
	if err != nil {
		return nil, err
	}
	t, err := req.ToTask(module)
	if err != nil {
		return nil, err
	}
	if err := s.taskRepo.Create(ctx, t); err != nil {
		return nil, err
	}
	s.log.Info().Int64("task_id", t.Base().ID).Str("format", string(t.Format())).Msg("task created")
	return t, nil
}

// Update rewrites an existing task with the request's fields.
func (s *TaskService) Update(ctx context.Context, id int64, req *model.CreateTaskRequest) (model.Task, error) {
	module, err := s.moduleRepo.GetByID(ctx, req.ModuleID)
	if err != nil {
		return nil, err
	}
	t, err := req.ToTask(module)
	if err != nil {
		return nil, err
	}
	t.Base().ID = id
	if err := s.taskRepo.Update(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// GetByID retrieves a task by id.
func (s *TaskService) GetByID(ctx context.Context, id int64) (model.Task, error) {
	return s.taskRepo.GetByID(ctx, id)
}

// ListByModule retrieves all tasks of a module.
func (s *TaskService) ListByModule(ctx context.Context, moduleID int64) ([]model.Task, error) {
	return s.taskRepo.ListByModule(ctx, moduleID)
}

// Delete removes a task by id, reporting whether a row was removed.
func (s *TaskService) Delete(ctx context.Context, id int64) (bool, error) {
	return s.taskRepo.Delete(ctx, id)
}
