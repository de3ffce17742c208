package service

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrSessionSubmitted = errors.New("quiz session already submitted")

// NotFoundError is returned for a question id that is not in the bank.
type NotFoundError struct {
	QuestionID int
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("question %d not found", e.QuestionID)
}

type InvalidAnswerError struct {
	QuestionID int
	Answer     string
}

func (e *InvalidAnswerError) Error() string {
	return fmt.Sprintf("answer %q is not an option of question %d", e.Answer, e.QuestionID)
}

// IncompleteSubmissionError is returned by a gated session that is scored
// before every question has an answer. The session is left as it was.
type IncompleteSubmissionError struct {
	Unanswered []int
}

func (e *IncompleteSubmissionError) Error() string {
	ids := make([]string, len(e.Unanswered))
	for i, id := range e.Unanswered {
		ids[i] = strconv.Itoa(id)
	}
	return fmt.Sprintf("quiz incomplete: %d unanswered (%s)", len(e.Unanswered), strings.Join(ids, ", "))
}
