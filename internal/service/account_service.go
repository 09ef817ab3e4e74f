package service

import (
	"context"
	"time"

	"github.com/klasurapp/backend/internal/model"
	"github.com/klasurapp/backend/internal/repository"
	"github.com/rs/zerolog"
)

// AccountService handles login account aggregates.
type AccountService struct {
	accountRepo *repository.AccountRepository
	taskRepo    *repository.TaskRepository
	log         zerolog.Logger
}

// NewAccountService creates a new AccountService.
func NewAccountService(accountRepo *repository.AccountRepository, taskRepo *repository.TaskRepository, log zerolog.Logger) *AccountService {
	return &AccountService{
		accountRepo: accountRepo,
		taskRepo:    taskRepo,
		log:         log.With().Str("component", "account_service").Logger(),
	}
}

// Create persists a new account with its owned user.
func (s *AccountService) Create(ctx context.Context, req model.CreateAccountRequest) (*model.Account, error) {
	active := true
	if req.Active != nil {
		active = *req.Active
	}

	account := &model.Account{
		Username:     req.Username,
		PasswordHash: req.PasswordHash,
		Active:       active,
		User: &model.User{
			FirstName: req.FirstName,
			LastName:  req.LastName,
			Email:     req.Email,
			Role:      req.Role,
		},
	}
	if err := s.accountRepo.Create(ctx, account); err != nil {
		return nil, err
	}
	s.log.Info().Int64("account_id", account.ID).Str("username", account.Username).Msg("account created")
	return account, nil
}

// GetByID retrieves an account aggregate by id.
func (s *AccountService) GetByID(ctx context.Context, id int64) (*model.Account, error) {
	return s.accountRepo.GetByID(ctx, id)
}

// GetByUsername retrieves an account aggregate by its unique username.
func (s *AccountService) GetByUsername(ctx context.Context, username string) (*model.Account, error) {
	return s.accountRepo.GetByUsername(ctx, username)
}

// List retrieves all accounts.
func (s *AccountService) List(ctx context.Context) ([]*model.Account, error) {
	return s.accountRepo.List(ctx)
}

// Update overwrites an account aggregate. The authored task list and the
// answer map are replaced with the submitted values; referenced tasks
// must exist.
func (s *AccountService) Update(ctx context.Context, id int64, req model.UpdateAccountRequest) (*model.Account, error) {
	existing, err := s.accountRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	tasks := make([]model.Task, 0, len(req.AuthoredTaskIDs))
	for _, taskID := range req.AuthoredTaskIDs {
		t, err := s.taskRepo.GetByID(ctx, taskID)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}

	existing.Username = req.Username
	existing.PasswordHash = req.PasswordHash
	existing.LastLogin = req.LastLogin
	existing.Active = req.Active
	existing.User.FirstName = req.FirstName
	existing.User.LastName = req.LastName
	existing.User.Email = req.Email
	existing.User.Role = req.Role
	existing.AuthoredTasks = tasks
	existing.TaskAnswers = req.TaskAnswers

	if err := s.accountRepo.Update(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

// RecordLogin stamps the account's last login time with the current time.
func (s *AccountService) RecordLogin(ctx context.Context, id int64) error {
	account, err := s.accountRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	now := time.Now()
	account.LastLogin = &now
	return s.accountRepo.Update(ctx, account)
}

// Delete removes an account aggregate, reporting whether a row was removed.
func (s *AccountService) Delete(ctx context.Context, id int64) (bool, error) {
	return s.accountRepo.Delete(ctx, id)
}
