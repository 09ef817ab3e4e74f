package evaluation

import (
	"testing"

	"github.com/klasurapp/backend/internal/model"
)

func TestEvaluateNilInputs(t *testing.T) {
	task := &model.ClosedTask{ClosedTaskType: model.SingleChoice, CorrectAnswer: "A"}
	answer := &model.ClosedAnswer{SelectedOption: "A"}

	if Evaluate(nil, task) {
		t.Error("nil answer must evaluate to false")
	}
	if Evaluate(answer, nil) {
		t.Error("nil task must evaluate to false")
	}
	if !Evaluate(answer, task) {
		t.Error("matching closed answer must evaluate to true")
	}
}

func TestEvaluateVariantMismatch(t *testing.T) {
	openTask := &model.OpenTask{SampleSolution: "42"}
	closedAnswer := &model.ClosedAnswer{SelectedOption: "42"}
	if Evaluate(closedAnswer, openTask) {
		t.Error("closed answer against open task must be false")
	}

	// An open answer never consults the task, only its own grade.
	closedTask := &model.ClosedTask{ClosedTaskType: model.SingleChoice, CorrectAnswer: "42"}
	openAnswer := &model.OpenAnswer{Text: "42"}
	score := 1.0
	openAnswer.SetScore(&score)
	if !Evaluate(openAnswer, closedTask) {
		t.Error("graded open answer must evaluate via its grade")
	}
}

func TestEvaluateOpenAnswerReflectsGrade(t *testing.T) {
	task := &model.OpenTask{SampleSolution: "Relationale Algebra"}
	answer := &model.OpenAnswer{Text: "Relationale Algebra"}

	if Evaluate(answer, task) {
		t.Error("ungraded open answer must be false even with matching text")
	}

	zero := 0.0
	answer.SetScore(&zero)
	if Evaluate(answer, task) {
		t.Error("zero score must not count as correct")
	}

	half := 0.5
	answer.SetScore(&half)
	if !Evaluate(answer, task) {
		t.Error("positive score must count as correct")
	}
}

// All closed types compare the submitted string verbatim against the stored
// correct answer. A reordered but semantically equal multiple choice
// selection therefore evaluates to false.
func TestEvaluateClosedTypesCompareVerbatim(t *testing.T) {
	tests := []struct {
		name     string
		taskType model.ClosedTaskType
		correct  string
		selected string
		want     bool
	}{
		{"single choice", model.SingleChoice, "B", "B", true},
		{"true false", model.TrueFalse, "false", "true", false},
		{"gap text whitespace", model.GapText, "ACID", "ACID ", false},
		{"multiple choice verbatim", model.MultipleChoice, "0,2", "0,2", true},
		{"multiple choice reordered", model.MultipleChoice, "0,2", "2,0", false},
		{"matching", model.Matching, "A-1,B-2", "A-1,B-2", true},
		{"ranking off by one", model.Ranking, "1,2,3", "1,3,2", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task := &model.ClosedTask{ClosedTaskType: tt.taskType, CorrectAnswer: tt.correct}
			answer := &model.ClosedAnswer{SelectedOption: tt.selected}
			if got := Evaluate(answer, task); got != tt.want {
				t.Errorf("Evaluate() = %v, want %v", got, tt.want)
			}
		})
	}
}
