package model

import "time"

// AnswerType is the discriminator distinguishing the two answer variants.
type AnswerType string

const (
	AnswerTypeOpen   AnswerType = "OPEN"
	AnswerTypeClosed AnswerType = "CLOSED"
)

// Answer is a submitted answer of either variant.
type Answer interface {
	Base() *AnswerBase
	Type() AnswerType
	// AnswerContent returns the submitted content as a string: the free
	// text for open answers, the selected option for closed ones.
	AnswerContent() string
	// IsCorrect reports whether the answer is correct with respect to the
	// given task. Mismatched variant pairings are never correct.
	IsCorrect(task Task) bool
}

// AnswerBase holds the fields shared by both answer variants.
type AnswerBase struct {
	ID             int64
	TaskID         int64
	UserID         int64
	SubmissionTime time.Time
	Graded         bool
	Score          *float64
	Feedback       string
}

// Base returns the shared fields of the answer.
func (b *AnswerBase) Base() *AnswerBase { return b }

// SetScore records a grade. A non-nil score marks the answer as graded, a
// nil score clears the mark. Graded stays independently assignable: it can
// be set without a score, and that asymmetry is intentional.
func (b *AnswerBase) SetScore(score *float64) {
	b.Score = score
	b.Graded = score != nil
}

// OpenAnswer is a free-text answer to an open task.
type OpenAnswer struct {
	AnswerBase
	Text string
}

func (a *OpenAnswer) Type() AnswerType      { return AnswerTypeOpen }
func (a *OpenAnswer) AnswerContent() string { return a.Text }

// IsCorrect for open answers is a view of manual grading: correctness
// cannot be determined automatically, only read off a recorded score.
func (a *OpenAnswer) IsCorrect(Task) bool {
	return a.Graded && a.Score != nil && *a.Score > 0
}

// ClosedAnswer is a selected option submitted for a closed task.
type ClosedAnswer struct {
	AnswerBase
	SelectedOption string
}

func (a *ClosedAnswer) Type() AnswerType      { return AnswerTypeClosed }
func (a *ClosedAnswer) AnswerContent() string { return a.SelectedOption }

// IsCorrect compares the selected option against the task's correct answer.
// Every closed-task type compares by exact string equality; for
// MULTIPLE_CHOICE, MATCHING and RANKING the submitted value must therefore
// use the same encoding as the stored correct answer (e.g. comma-separated
// indices), byte for byte.
func (a *ClosedAnswer) IsCorrect(task Task) bool {
	ct, ok := task.(*ClosedTask)
	if !ok {
		return false
	}

	switch ct.ClosedTaskType {
	case SingleChoice, TrueFalse:
		return a.SelectedOption == ct.CorrectAnswer
	case MultipleChoice:
		// Comma-separated selections, compared verbatim.
		return a.SelectedOption == ct.CorrectAnswer
	case GapText:
		return a.SelectedOption == ct.CorrectAnswer
	case Matching, Ranking:
		// Pair/sequence encodings, also compared verbatim.
		return a.SelectedOption == ct.CorrectAnswer
	default:
		return false
	}
}

// AnswerPayload is the wire representation of either answer variant.
type AnswerPayload struct {
	ID             int64      `json:"id"`
	TaskID         int64      `json:"task_id"`
	UserID         int64      `json:"user_id"`
	SubmissionTime time.Time  `json:"submission_time"`
	IsGraded       bool       `json:"is_graded"`
	Score          *float64   `json:"score,omitempty"`
	Feedback       string     `json:"feedback,omitempty"`
	Type           AnswerType `json:"type"`
	Text           string     `json:"text,omitempty"`
	SelectedOption string     `json:"selected_option,omitempty"`
}

// NewAnswerPayload flattens an answer into its wire representation.
func NewAnswerPayload(a Answer) AnswerPayload {
	base := a.Base()
	p := AnswerPayload{
		ID:             base.ID,
		TaskID:         base.TaskID,
		UserID:         base.UserID,
		SubmissionTime: base.SubmissionTime,
		IsGraded:       base.Graded,
		Score:          base.Score,
		Feedback:       base.Feedback,
		Type:           a.Type(),
	}
	switch v := a.(type) {
	case *OpenAnswer:
		p.Text = v.Text
	case *ClosedAnswer:
		p.SelectedOption = v.SelectedOption
	}
	return p
}

// SubmitAnswerRequest is the payload for submitting an answer.
type SubmitAnswerRequest struct {
	TaskID         int64      `json:"task_id" binding:"required"`
	UserID         int64      `json:"user_id" binding:"required"`
	Type           AnswerType `json:"type" binding:"required,oneof=OPEN CLOSED"`
	Text           string     `json:"text"`
	SelectedOption string     `json:"selected_option"`
}

// ToAnswer builds the concrete answer variant for the requested type with
// the submission time set to now.
func (r *SubmitAnswerRequest) ToAnswer() Answer {
	base := AnswerBase{
		TaskID:         r.TaskID,
		UserID:         r.UserID,
		SubmissionTime: time.Now(),
	}
	if r.Type == AnswerTypeOpen {
		return &OpenAnswer{AnswerBase: base, Text: r.Text}
	}
	return &ClosedAnswer{AnswerBase: base, SelectedOption: r.SelectedOption}
}

// GradeAnswerRequest is the payload for manually grading an answer.
type GradeAnswerRequest struct {
	Score    float64 `json:"score" binding:"min=0"`
	Feedback string  `json:"feedback" binding:"omitempty,max=4000"`
}
