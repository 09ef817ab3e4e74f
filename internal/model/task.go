package model

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownTaskFormat marks a request carrying a format outside
	// OPEN/CLOSED.
	ErrUnknownTaskFormat = errors.New("unknown task format")
	// ErrInvalidClosedTaskType marks a closed task request without a valid
	// closed task type.
	ErrInvalidClosedTaskType = errors.New("invalid closed task type")
)

// TaskFormat is the discriminator distinguishing the two task variants.
type TaskFormat string

const (
	TaskFormatOpen   TaskFormat = "OPEN"
	TaskFormatClosed TaskFormat = "CLOSED"
)

// ClosedTaskType enumerates the supported closed-question formats.
type ClosedTaskType string

const (
	SingleChoice   ClosedTaskType = "SINGLE_CHOICE"
	MultipleChoice ClosedTaskType = "MULTIPLE_CHOICE"
	TrueFalse      ClosedTaskType = "TRUE_FALSE"
	GapText        ClosedTaskType = "GAP_TEXT"
	Matching       ClosedTaskType = "MATCHING"
	Ranking        ClosedTaskType = "RANKING"
)

// Valid reports whether t is one of the supported closed-task types.
func (t ClosedTaskType) Valid() bool {
	switch t {
	case SingleChoice, MultipleChoice, TrueFalse, GapText, Matching, Ranking:
		return true
	}
	return false
}

// Task is an exam task of either variant. The concrete type always matches
// the format discriminator: *OpenTask is OPEN, *ClosedTask is CLOSED.
type Task interface {
	Base() *TaskBase
	Format() TaskFormat
	// Solution returns the reference solution of the task: the sample
	// solution for open tasks, the correct answer for closed ones.
	Solution() string
}

// TaskBase holds the fields shared by both task variants.
type TaskBase struct {
	ID                   int64
	Name                 string
	Text                 string
	EstimatedTimeMinutes int
	BloomLevel           BloomLevel
	Module               *Module
}

// Base returns the shared fields of the task.
func (b *TaskBase) Base() *TaskBase { return b }

// OpenTask is a free-text task graded manually against a sample solution.
type OpenTask struct {
	TaskBase
	SampleSolution string
}

func (t *OpenTask) Format() TaskFormat { return TaskFormatOpen }
func (t *OpenTask) Solution() string   { return t.SampleSolution }

// ClosedTask is a task answered by selecting from predefined options.
// The order of Options is significant and round-trips through storage.
type ClosedTask struct {
	TaskBase
	ClosedTaskType ClosedTaskType
	CorrectAnswer  string
	Options        []string
}

func (t *ClosedTask) Format() TaskFormat { return TaskFormatClosed }
func (t *ClosedTask) Solution() string   { return t.CorrectAnswer }

// TaskPayload is the wire representation of either task variant.
type TaskPayload struct {
	ID                   int64          `json:"id"`
	Name                 string         `json:"name"`
	Text                 string         `json:"text"`
	EstimatedTimeMinutes int            `json:"estimated_time_minutes"`
	BloomLevel           int            `json:"bloom_level"`
	Format               TaskFormat     `json:"format"`
	ModuleID             int64          `json:"module_id"`
	SampleSolution       string         `json:"sample_solution,omitempty"`
	ClosedTaskType       ClosedTaskType `json:"closed_task_type,omitempty"`
	CorrectAnswer        string         `json:"correct_answer,omitempty"`
	Options              []string       `json:"options,omitempty"`
}

// NewTaskPayload flattens a task into its wire representation.
func NewTaskPayload(t Task) TaskPayload {
	base := t.Base()
	p := TaskPayload{
		ID:                   base.ID,
		Name:                 base.Name,
		Text:                 base.Text,
		EstimatedTimeMinutes: base.EstimatedTimeMinutes,
		BloomLevel:           int(base.BloomLevel),
		Format:               t.Format(),
	}
	if base.Module != nil {
		p.ModuleID = base.Module.ID
	}
	switch v := t.(type) {
	case *OpenTask:
		p.SampleSolution = v.SampleSolution
	case *ClosedTask:
		p.ClosedTaskType = v.ClosedTaskType
		p.CorrectAnswer = v.CorrectAnswer
		p.Options = v.Options
	}
	return p
}

// CreateTaskRequest is the payload for creating or updating a task.
type CreateTaskRequest struct {
	Name                 string         `json:"name" binding:"required,min=1,max=255"`
	Text                 string         `json:"text" binding:"required"`
	EstimatedTimeMinutes int            `json:"estimated_time_minutes" binding:"required,min=1"`
	BloomLevel           int            `json:"bloom_level" binding:"required,min=1,max=6"`
	Format               TaskFormat     `json:"format" binding:"required,oneof=OPEN CLOSED"`
	ModuleID             int64          `json:"module_id" binding:"required"`
	SampleSolution       string         `json:"sample_solution"`
	ClosedTaskType       ClosedTaskType `json:"closed_task_type" binding:"omitempty,oneof=SINGLE_CHOICE MULTIPLE_CHOICE TRUE_FALSE GAP_TEXT MATCHING RANKING"`
	CorrectAnswer        string         `json:"correct_answer"`
	Options              []string       `json:"options"`
}

// ToTask builds the concrete task variant for the requested format.
// The module reference must already be resolved by the caller.
func (r *CreateTaskRequest) ToTask(module *Module) (Task, error) {
	base := TaskBase{
		Name:                 r.Name,
		Text:                 r.Text,
		EstimatedTimeMinutes: r.EstimatedTimeMinutes,
		BloomLevel:           BloomLevel(r.BloomLevel),
		Module:               module,
	}

	switch r.Format {
	case TaskFormatOpen:
		return &OpenTask{TaskBase: base, SampleSolution: r.SampleSolution}, nil
	case TaskFormatClosed:
		if !r.ClosedTaskType.Valid() {
			return nil, fmt.Errorf("closed_task_type %q: %w", r.ClosedTaskType, ErrInvalidClosedTaskType)
		}
		return &ClosedTask{
			TaskBase:       base,
			ClosedTaskType: r.ClosedTaskType,
			CorrectAnswer:  r.CorrectAnswer,
			Options:        r.Options,
		}, nil
	default:
		return nil, fmt.Errorf("format %q: %w", r.Format, ErrUnknownTaskFormat)
	}
}
