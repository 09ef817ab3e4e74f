package model

import "testing"

func TestTotalEstimatedTime(t *testing.T) {
	exam := &Exam{Title: "Abschlussklausur"}
	if got := exam.TotalEstimatedTime(); got != 0 {
		t.Errorf("empty exam total = %d, want 0", got)
	}

	open := &OpenTask{}
	open.EstimatedTimeMinutes = 15
	closed := &ClosedTask{ClosedTaskType: TrueFalse}
	closed.EstimatedTimeMinutes = 5

	exam.Tasks = []Task{open, closed}
	if got := exam.TotalEstimatedTime(); got != 20 {
		t.Errorf("total = %d, want 20", got)
	}

	// The total follows the current task list, it is never stored.
	exam.Tasks = exam.Tasks[:1]
	if got := exam.TotalEstimatedTime(); got != 15 {
		t.Errorf("total after shrink = %d, want 15", got)
	}
}

func TestNewExamPayloadIncludesDerivedTotal(t *testing.T) {
	open := &OpenTask{}
	open.EstimatedTimeMinutes = 30

	exam := &Exam{
		ID:              4,
		Title:           "Zwischentest",
		DurationMinutes: 60,
		Module:          &Module{ID: 2},
		Tasks:           []Task{open},
	}

	p := NewExamPayload(exam)
	if p.TotalEstimatedTime != 30 {
		t.Errorf("total_estimated_time = %d, want 30", p.TotalEstimatedTime)
	}
	if p.ModuleID != 2 || len(p.Tasks) != 1 {
		t.Errorf("unexpected payload: %+v", p)
	}
}
