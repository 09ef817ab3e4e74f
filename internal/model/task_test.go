package model

import "testing"

func TestCreateTaskRequestToTask(t *testing.T) {
	module := &Module{ID: 1, Name: "Datenbanken", Code: "DB1"}

	t.Run("open", func(t *testing.T) {
		req := CreateTaskRequest{
			Name:                 "Normalformen",
			Text:                 "Erklären Sie die dritte Normalform.",
			EstimatedTimeMinutes: 10,
			BloomLevel:           2,
			Format:               TaskFormatOpen,
			SampleSolution:       "Keine transitiven Abhängigkeiten.",
		}
		task, err := req.ToTask(module)
		if err != nil {
			t.Fatalf("ToTask: %v", err)
		}
		open, ok := task.(*OpenTask)
		if !ok {
			t.Fatalf("expected *OpenTask, got %T", task)
		}
		if open.Format() != TaskFormatOpen {
			t.Errorf("format = %s", open.Format())
		}
		if open.Solution() != req.SampleSolution {
			t.Errorf("solution = %q", open.Solution())
		}
		if open.Module != module {
			t.Error("module reference not carried over")
		}
	})

	t.Run("closed", func(t *testing.T) {
		req := CreateTaskRequest{
			Name:                 "SQL Joins",
			Text:                 "Welcher Join liefert alle Zeilen beider Tabellen?",
			EstimatedTimeMinutes: 3,
			BloomLevel:           1,
			Format:               TaskFormatClosed,
			ClosedTaskType:       SingleChoice,
			CorrectAnswer:        "FULL OUTER JOIN",
			Options:              []string{"INNER JOIN", "LEFT JOIN", "FULL OUTER JOIN"},
		}
		task, err := req.ToTask(module)
		if err != nil {
			t.Fatalf("ToTask: %v", err)
		}
		closed, ok := task.(*ClosedTask)
		if !ok {
			t.Fatalf("expected *ClosedTask, got %T", task)
		}
		if closed.Solution() != "FULL OUTER JOIN" {
			t.Errorf("solution = %q", closed.Solution())
		}
		if len(closed.Options) != 3 || closed.Options[2] != "FULL OUTER JOIN" {
			t.Errorf("options = %v", closed.Options)
		}
	})

	t.Run("closed without type", func(t *testing.T) {
		req := CreateTaskRequest{
			Name:                 "Kaputt",
			Text:                 "...",
			EstimatedTimeMinutes: 1,
			BloomLevel:           1,
			Format:               TaskFormatClosed,
		}
		if _, err := req.ToTask(module); err == nil {
			t.Error("expected error for closed task without closed_task_type")
		}
	})

	t.Run("unknown format", func(t *testing.T) {
		req := CreateTaskRequest{Format: TaskFormat("HYBRID")}
		if _, err := req.ToTask(module); err == nil {
			t.Error("expected error for unknown format")
		}
	})
}

func TestClosedTaskTypeValid(t *testing.T) {
	for _, typ := range []ClosedTaskType{SingleChoice, MultipleChoice, TrueFalse, GapText, Matching, Ranking} {
		if !typ.Valid() {
			t.Errorf("%s should be valid", typ)
		}
	}
	if ClosedTaskType("ESSAY").Valid() {
		t.Error("ESSAY should not be valid")
	}
}
