package model

import "time"

// Exam is an assembled exam: base data plus an ordered list of tasks.
type Exam struct {
	ID              int64
	Title           string
	Description     string
	ExamDate        *time.Time
	DurationMinutes int
	Module          *Module
	Tasks           []Task
}

// TotalEstimatedTime sums the estimated minutes of all resolved tasks.
// It is always recomputed from the current task list and never persisted,
// so an exam whose references could only partially be resolved reports the
// total of the tasks that exist.
func (e *Exam) TotalEstimatedTime() int {
	total := 0
	for _, t := range e.Tasks {
		total += t.Base().EstimatedTimeMinutes
	}
	return total
}

// ExamPayload is the wire representation of an exam aggregate.
type ExamPayload struct {
	ID                 int64         `json:"id"`
	Title              string        `json:"title"`
	Description        string        `json:"description,omitempty"`
	ExamDate           *time.Time    `json:"exam_date,omitempty"`
	DurationMinutes    int           `json:"duration_minutes"`
	ModuleID           int64         `json:"module_id"`
	Tasks              []TaskPayload `json:"tasks"`
	TotalEstimatedTime int           `json:"total_estimated_time"`
}

// NewExamPayload flattens an exam into its wire representation.
func NewExamPayload(e *Exam) ExamPayload {
	p := ExamPayload{
		ID:                 e.ID,
		Title:              e.Title,
		Description:        e.Description,
		ExamDate:           e.ExamDate,
		DurationMinutes:    e.DurationMinutes,
		Tasks:              make([]TaskPayload, 0, len(e.Tasks)),
		TotalEstimatedTime: e.TotalEstimatedTime(),
	}
	if e.Module != nil {
		p.ModuleID = e.Module.ID
	}
	for _, t := range e.Tasks {
		p.Tasks = append(p.Tasks, NewTaskPayload(t))
	}
	return p
}

// CreateExamRequest is the payload for creating or updating an exam.
// TaskIDs carries the referenced tasks in their intended order.
type CreateExamRequest struct {
	Title           string     `json:"title" binding:"required,min=1,max=255"`
	Description     string     `json:"description" binding:"omitempty,max=2000"`
	ExamDate        *time.Time `json:"exam_date" binding:"omitempty"`
	DurationMinutes int        `json:"duration_minutes" binding:"required,min=1,max=480"`
	ModuleID        int64      `json:"module_id" binding:"required"`
	TaskIDs         []int64    `json:"task_ids"`
}
