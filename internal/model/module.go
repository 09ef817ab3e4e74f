package model

// Module represents a course module that tasks and exams belong to.
type Module struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Code        string `json:"code"`
	Description string `json:"description,omitempty"`
}

// CreateModuleRequest is the payload for creating a module.
type CreateModuleRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=255"`
	Code        string `json:"code" binding:"required,min=1,max=50"`
	Description string `json:"description" binding:"omitempty,max=2000"`
}

// UpdateModuleRequest is the payload for updating a module.
type UpdateModuleRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=255"`
	Code        string `json:"code" binding:"required,min=1,max=50"`
	Description string `json:"description" binding:"omitempty,max=2000"`
}
