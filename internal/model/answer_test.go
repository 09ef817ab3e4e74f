package model

import "testing"

func TestSetScoreMarksGraded(t *testing.T) {
	var base AnswerBase

	score := 0.75
	base.SetScore(&score)
	if !base.Graded {
		t.Error("expected Graded after SetScore with non-nil score")
	}
	if base.Score == nil || *base.Score != 0.75 {
		t.Errorf("expected score 0.75, got %v", base.Score)
	}

	base.SetScore(nil)
	if base.Graded {
		t.Error("expected Graded cleared after SetScore(nil)")
	}
	if base.Score != nil {
		t.Errorf("expected nil score, got %v", base.Score)
	}
}

func TestGradedAssignableWithoutScore(t *testing.T) {
	var base AnswerBase
	base.Graded = true

	if base.Score != nil {
		t.Fatalf("expected nil score, got %v", base.Score)
	}
	if !base.Graded {
		t.Error("Graded must stay independently assignable")
	}
}

func TestOpenAnswerIsCorrect(t *testing.T) {
	task := &OpenTask{SampleSolution: "42"}

	positive := 1.0
	zero := 0.0

	tests := []struct {
		name   string
		graded bool
		score  *float64
		want   bool
	}{
		{"ungraded", false, nil, false},
		{"graded without score", true, nil, false},
		{"graded zero score", true, &zero, false},
		{"graded positive score", true, &positive, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := &OpenAnswer{Text: "42"}
			a.Graded = tt.graded
			a.Score = tt.score
			if got := a.IsCorrect(task); got != tt.want {
				t.Errorf("IsCorrect() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestClosedAnswerIsCorrect(t *testing.T) {
	tests := []struct {
		name     string
		taskType ClosedTaskType
		correct  string
		selected string
		want     bool
	}{
		{"single choice match", SingleChoice, "B", "B", true},
		{"single choice mismatch", SingleChoice, "B", "C", false},
		{"true false match", TrueFalse, "true", "true", true},
		{"gap text case sensitive", GapText, "Photosynthese", "photosynthese", false},
		{"multiple choice same encoding", MultipleChoice, "1,3", "1,3", true},
		{"multiple choice reordered selection", MultipleChoice, "1,3", "3,1", false},
		{"ranking exact sequence", Ranking, "2,1,3", "2,1,3", true},
		{"ranking shifted sequence", Ranking, "2,1,3", "1,2,3", false},
		{"matching exact pairs", Matching, "A-1,B-2", "A-1,B-2", true},
		{"unknown type", ClosedTaskType("GUESS"), "x", "x", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task := &ClosedTask{ClosedTaskType: tt.taskType, CorrectAnswer: tt.correct}
			answer := &ClosedAnswer{SelectedOption: tt.selected}
			if got := answer.IsCorrect(task); got != tt.want {
				t.Errorf("IsCorrect() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestClosedAnswerAgainstOpenTask(t *testing.T) {
	answer := &ClosedAnswer{SelectedOption: "42"}
	if answer.IsCorrect(&OpenTask{SampleSolution: "42"}) {
		t.Error("closed answer against open task must never be correct")
	}
}

func TestNewAnswerPayloadVariants(t *testing.T) {
	open := &OpenAnswer{Text: "freitext"}
	open.ID = 7
	open.TaskID = 3

	p := NewAnswerPayload(open)
	if p.Type != AnswerTypeOpen || p.Text != "freitext" || p.SelectedOption != "" {
		t.Errorf("unexpected open payload: %+v", p)
	}

	closed := &ClosedAnswer{SelectedOption: "B"}
	p = NewAnswerPayload(closed)
	if p.Type != AnswerTypeClosed || p.SelectedOption != "B" || p.Text != "" {
		t.Errorf("unexpected closed payload: %+v", p)
	}
}
