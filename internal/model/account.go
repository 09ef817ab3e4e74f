package model

import "time"

// User is the personal record owned by an account (the "Nutzer").
type User struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
}

// Account is a login account aggregate: the account row, its owned User,
// the set of tasks the user authored and the user's raw answer text per
// task. The two collections are owned by the account and replaced as a
// whole on every write.
type Account struct {
	ID            int64
	Username      string
	PasswordHash  string
	LastLogin     *time.Time
	Active        bool
	User          *User
	AuthoredTasks []Task
	// TaskAnswers maps a task id to the raw answer text the user entered.
	TaskAnswers map[int64]string
}

// AccountPayload is the wire representation of an account aggregate.
// The password hash is never serialized.
type AccountPayload struct {
	ID              int64            `json:"id"`
	Username        string           `json:"username"`
	LastLogin       *time.Time       `json:"last_login,omitempty"`
	Active          bool             `json:"active"`
	User            *User            `json:"user"`
	AuthoredTaskIDs []int64          `json:"authored_task_ids"`
	TaskAnswers     map[int64]string `json:"task_answers"`
}

// NewAccountPayload flattens an account into its wire representation.
func NewAccountPayload(a *Account) AccountPayload {
	taskIDs := make([]int64, 0, len(a.AuthoredTasks))
	for _, t := range a.AuthoredTasks {
		taskIDs = append(taskIDs, t.Base().ID)
	}
	answers := a.TaskAnswers
	if answers == nil {
		answers = map[int64]string{}
	}
	return AccountPayload{
		ID:              a.ID,
		Username:        a.Username,
		LastLogin:       a.LastLogin,
		Active:          a.Active,
		User:            a.User,
		AuthoredTaskIDs: taskIDs,
		TaskAnswers:     answers,
	}
}

// CreateAccountRequest is the payload for creating an account. The password
// hash is produced by an external collaborator (e.g. cmd/create-account);
// the core never hashes passwords itself.
type CreateAccountRequest struct {
	Username     string `json:"username" binding:"required,min=3,max=100"`
	PasswordHash string `json:"password_hash" binding:"required"`
	Active       *bool  `json:"active" binding:"omitempty"`
	FirstName    string `json:"first_name" binding:"required,min=1,max=100"`
	LastName     string `json:"last_name" binding:"required,min=1,max=100"`
	Email        string `json:"email" binding:"required,email,max=255"`
	Role         string `json:"role" binding:"required,min=1,max=50"`
}

// UpdateAccountRequest is the payload for updating an account aggregate.
// Both child collections are replaced with the submitted values.
type UpdateAccountRequest struct {
	Username        string           `json:"username" binding:"required,min=3,max=100"`
	PasswordHash    string           `json:"password_hash" binding:"required"`
	LastLogin       *time.Time       `json:"last_login" binding:"omitempty"`
	Active          bool             `json:"active"`
	FirstName       string           `json:"first_name" binding:"required,min=1,max=100"`
	LastName        string           `json:"last_name" binding:"required,min=1,max=100"`
	Email           string           `json:"email" binding:"required,email,max=255"`
	Role            string           `json:"role" binding:"required,min=1,max=50"`
	AuthoredTaskIDs []int64          `json:"authored_task_ids"`
	TaskAnswers     map[int64]string `json:"task_answers"`
}
