package scoring

import (
	"fmt"
	"strings"
)

// IncompleteResponseError is returned when required questions are unanswered.
// Recoverable: the caller should invite the user to finish the attempt.
type IncompleteResponseError struct {
	MissingQuestionIDs []string
}

func (e *IncompleteResponseError) Error() string {
	return fmt.Sprintf("incomplete response: required questions unanswered: %s",
		strings.Join(e.MissingQuestionIDs, ", "))
}

// InvalidAnswerError is returned when a submitted value lies outside its
// question's declared domain. This is a caller defect, not a user-correctable
// condition.
type InvalidAnswerError struct {
	QuestionID string
	Value      int
}

func (e *InvalidAnswerError) Error() string {
	return fmt.Sprintf("invalid answer for question %s: value %d outside domain", e.QuestionID, e.Value)
}
