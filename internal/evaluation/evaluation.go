// Package evaluation determines the correctness of submitted answers.
// It performs no persistence: callers fetch the answer and its task and
// persist any resulting grade themselves.
package evaluation

import "github.com/klasurapp/backend/internal/model"

// Evaluate reports whether answer is correct with respect to task.
//
// Closed answers are compared against the task's correct answer by exact
// string equality. Open answers cannot be auto-evaluated; their result is a
// view of manual grading (graded with a score above zero). A mismatched
// variant pairing, a nil answer or a nil task evaluates to false rather
// than failing.
func Evaluate(answer model.Answer, task model.Task) bool {
	if answer == nil || task == nil {
		return false
	}
	return answer.IsCorrect(task)
}
