package service

import (
	"github.com/google/uuid"
)

type SessionState int

const (
	InProgress SessionState = iota
	Submitted
)

func (s SessionState) String() string {
	if s == Submitted {
		return "submitted"
	}
	return "in_progress"
}

type ScoreResult struct {
	Correct int `json:"correct"`
	Total   int `json:"total"`
}

// Percentage is the share of correct answers, rounded down.
func (r ScoreResult) Percentage() int {
	if r.Total == 0 {
		return 0
	}
	return (r.Correct * 100) / r.Total
}

// QuizSession holds one attempt's selections. It is not safe for concurrent
// use; the surface that created it owns it.
type QuizSession struct {
	ID string

	bank       *QuestionBank
	gated      bool
	selections map[int]string
	state      SessionState
}

func NewQuizSession(bank *QuestionBank, gated bool) *QuizSession {
	return &QuizSession{
		ID:         uuid.NewString(),
		bank:       bank,
		gated:      gated,
		selections: make(map[int]string),
		state:      InProgress,
	}
}

func (s *QuizSession) Bank() *QuestionBank { return s.bank }

func (s *QuizSession) Gated() bool { return s.gated }

func (s *QuizSession) State() SessionState { return s.state }

// RecordAnswer sets the selection for a question, replacing any earlier one.
func (s *QuizSession) RecordAnswer(questionID int, answer string) error {
	q, err := s.bank.Get(questionID)
	if err != nil {
		return err
	}
	if s.state == Submitted {
		return ErrSessionSubmitted
	}
	if !q.HasOption(answer) {
		return &InvalidAnswerError{QuestionID: questionID, Answer: answer}
	}
	s.selections[questionID] = answer
	return nil
}

func (s *QuizSession) Selection(questionID int) (string, bool) {
	a, ok := s.selections[questionID]
	return a, ok
}

func (s *QuizSession) Selections() map[int]string {
	out := make(map[int]string, len(s.selections))
	for id, a := range s.selections {
		out[id] = a
	}
	return out
}

// Unanswered lists question ids without a selection, in bank order.
func (s *QuizSession) Unanswered() []int {
	var ids []int
	for _, id := range s.bank.ids() {
		if _, ok := s.selections[id]; !ok {
			ids = append(ids, id)
		}
	}
	return ids
}

func (s *QuizSession) IsComplete() bool {
	for _, id := range s.bank.ids() {
		if _, ok := s.selections[id]; !ok {
			return false
		}
	}
	return true
}

// Score tallies exact matches against the answer key. A gated session must
// be complete and moves to Submitted; an ungated one counts missing answers
// as wrong and stays open.
func (s *QuizSession) Score() (ScoreResult, error) {
	if s.gated && s.state != Submitted && !s.IsComplete() {
		return ScoreResult{}, &IncompleteSubmissionError{Unanswered: s.Unanswered()}
	}

	result := ScoreResult{Total: s.bank.Len()}
	for _, q := range s.bank.questions {
		if a, ok := s.selections[q.ID]; ok && a == q.CorrectAnswer {
			result.Correct++
		}
	}

	if s.gated {
		s.state = Submitted
	}
	return result, nil
}
