package service

import (
	"context"

	"github.com/klasurapp/backend/internal/model"
	"github.com/klasurapp/backend/internal/repository"
	"github.com/rs/zerolog"
)

// ModuleService handles course module business logic.
type ModuleService struct {
	moduleRepo *repository.ModuleRepository
	log        zerolog.Logger
}

// NewModuleService creates a new ModuleService.
func NewModuleService(moduleRepo *repository.ModuleRepository, log zerolog.Logger) *ModuleService {
	return &ModuleService{
		moduleRepo: moduleRepo,
		log:        log.With().Str("component", "module_service").Logger(),
	}
}

// Create stores a new module.
func (s *ModuleService) Create(ctx context.Context, m *model.Module) error {
	if err := s.moduleRepo.Create(ctx, m); err != nil {
		return err
	}
	s.log.Info().Int64("module_id", m.ID).Str("code", m.Code).Msg("module created")
	return nil
}

// GetByID retrieves a module by id.
func (s *ModuleService) GetByID(ctx context.Context, id int64) (*model.Module, error) {
	return s.moduleRepo.GetByID(ctx, id)
}

// GetByCode retrieves a module by its unique code.
func (s *ModuleService) GetByCode(ctx context.Context, code string) (*model.Module, error) {
	return s.moduleRepo.GetByCode(ctx, code)
}

// List retrieves all modules ordered by name.
func (s *ModuleService) List(ctx context.Context) ([]model.Module, error) {
	return s.moduleRepo.List(ctx)
}

// Update rewrites an existing module.
func (s *ModuleService) Update(ctx context.Context, m *model.Module) error {
	return s.moduleRepo.Update(ctx, m)
}

// Delete removes a module by id, reporting whether a row was removed.
func (s *ModuleService) Delete(ctx context.Context, id int64) (bool, error) {
	return s.moduleRepo.Delete(ctx, id)
}
