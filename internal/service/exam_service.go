package service

import (
	"context"

	"github.com/klasurapp/backend/internal/model"
	"github.com/klasurapp/backend/internal/repository"
	"github.com/rs/zerolog"
)

// ExamService handles exam composition.
type ExamService struct {
	examRepo   *repository.ExamRepository
	moduleRepo *repository.ModuleRepository
	taskRepo   *repository.TaskRepository
	log        zerolog.Logger
}

// NewExamService creates a new ExamService.
func NewExamService(examRepo *repository.ExamRepository, moduleRepo *repository.ModuleRepository, taskRepo *repository.TaskRepository, log zerolog.Logger) *ExamService {
	return &ExamService{
		examRepo:   examRepo,
		moduleRepo: moduleRepo,
		taskRepo:   taskRepo,
		log:        log.With().Str("component", "exam_service").Logger(),
	}
}

// Create builds an exam from the request and persists it. Referenced
// tasks must exist; the module must exist.
func (s *ExamService) Create(ctx context.Context, req model.CreateExamRequest) (*model.Exam, error) {
	module, err := s.moduleRepo.GetByID(ctx, req.ModuleID)
	if err != nil {
		return nil, err
	}

	tasks, err := s.resolveTasks(ctx, req.TaskIDs)
	if err != nil {
		return nil, err
	}

	exam := &model.Exam{
		Title:           req.Title,
		Description:     req.Description,
		ExamDate:        req.ExamDate,
		DurationMinutes: req.DurationMinutes,
		Module:          module,
		Tasks:           tasks,
	}
	if err := s.examRepo.Create(ctx, exam); err != nil {
		return nil, err
	}
	s.log.Info().Int64("exam_id", exam.ID).Str("title", exam.Title).Msg("exam created")
	return exam, nil
}

// GetByID retrieves an exam with its ordered tasks.
func (s *ExamService) GetByID(ctx context.Context, id int64) (*model.Exam, error) {
	return s.examRepo.GetByID(ctx, id)
}

// List retrieves all exams.
func (s *ExamService) List(ctx context.Context) ([]*model.Exam, error) {
	return s.examRepo.List(ctx)
}

// ListByModule retrieves all exams of a module, most recent first.
func (s *ExamService) ListByModule(ctx context.Context, moduleID int64) ([]*model.Exam, error) {
	return s.examRepo.ListByModule(ctx, moduleID)
}

// Update overwrites an exam and replaces its task list.
func (s *ExamService) Update(ctx context.Context, id int64, req model.CreateExamRequest) (*model.Exam, error) {
	module, err := s.moduleRepo.GetByID(ctx, req.ModuleID)
	if err != nil {
		return nil, err
	}

	tasks, err := s.resolveTasks(ctx, req.TaskIDs)
	if err != nil {
		return nil, err
	}

	exam := &model.Exam{
		ID:              id,
		Title:           req.Title,
		Description:     req.Description,
		ExamDate:        req.ExamDate,
		DurationMinutes: req.DurationMinutes,
		Module:          module,
		Tasks:           tasks,
	}
	if err := s.examRepo.Update(ctx, exam); err != nil {
		return nil, err
	}
	return exam, nil
}

// Delete removes an exam by id, reporting whether a row was removed.
func (s *ExamService) Delete(ctx context.Context, id int64) (bool, error) {
	return s.examRepo.Delete(ctx, id)
}

func (s *ExamService) resolveTasks(ctx context.Context, ids []int64) ([]model.Task, error) {
	tasks := make([]model.Task, 0, len(ids))
	for _, taskID := range ids {
		t, err := s.taskRepo.GetByID(ctx, taskID)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, nil
}
