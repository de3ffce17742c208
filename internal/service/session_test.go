package service

import (
	"errors"
	"reflect"
	"testing"
)

func newTestSession(t *testing.T, questions []QuizQuestion, gated bool) *QuizSession {
	t.Helper()
	bank, err := NewQuestionBank(questions)
	if err != nil {
		t.Fatal(err)
	}
	return NewQuizSession(bank, gated)
}

func TestRecordAnswerReadBack(t *testing.T) {
	s := newTestSession(t, ClassicQuizQuestions(), true)

	if err := s.RecordAnswer(1, "Hornet"); err != nil {
		t.Fatal(err)
	}
	if got, ok := s.Selection(1); !ok || got != "Hornet" {
		t.Fatalf("Selection(1) = %q, %v", got, ok)
	}
	if _, ok := s.Selection(2); ok {
		t.Fatal("question 2 should be unanswered")
	}
}

func TestRecordAnswerLastWriteWins(t *testing.T) {
	s := newTestSession(t, ClassicQuizQuestions(), true)

	for _, a := range []string{"Hornet", "Bee", "Bee"} {
		if err := s.RecordAnswer(1, a); err != nil {
			t.Fatal(err)
		}
	}
	if got := s.Selections(); !reflect.DeepEqual(got, map[int]string{1: "Bee"}) {
		t.Fatalf("Selections = %v", got)
	}
}

func TestRecordAnswerErrors(t *testing.T) {
	s := newTestSession(t, ClassicQuizQuestions(), true)

	err := s.RecordAnswer(99, "Bee")
	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("unknown question err = %v", err)
	}

	for _, answer := range []string{"bee", " Bee", "Wasp", ""} {
		err = s.RecordAnswer(1, answer)
		var inv *InvalidAnswerError
		if !errors.As(err, &inv) || inv.Answer != answer || inv.QuestionID != 1 {
			t.Fatalf("RecordAnswer(1, %q) err = %v", answer, err)
		}
	}
	if len(s.Selections()) != 0 {
		t.Fatalf("rejected answers were stored: %v", s.Selections())
	}
}

func TestIsCompleteTracksEveryQuestion(t *testing.T) {
	s := newTestSession(t, ClassicQuizQuestions(), true)

	if s.IsComplete() {
		t.Fatal("new session reported complete")
	}
	if got := s.Unanswered(); !reflect.DeepEqual(got, []int{1, 2, 3}) {
		t.Fatalf("Unanswered = %v", got)
	}

	steps := []struct {
		id     int
		answer string
		want   bool
	}{
		{1, "Bee", false},
		{3, "Goat", false},
		{2, "Alligator", true},
		{2, "Crocodile", true},
	}
	for _, st := range steps {
		if err := s.RecordAnswer(st.id, st.answer); err != nil {
			t.Fatal(err)
		}
		if got := s.IsComplete(); got != st.want {
			t.Fatalf("after %d=%q IsComplete = %v, want %v", st.id, st.answer, got, st.want)
		}
	}
	if got := s.Unanswered(); len(got) != 0 {
		t.Fatalf("Unanswered = %v", got)
	}
}

func TestScoreScenarioTwoOfThree(t *testing.T) {
	s := newTestSession(t, ClassicQuizQuestions(), true)
	answers := map[int]string{1: "Bee", 2: "Crocodile", 3: "Goat"}
	for id, a := range answers {
		if err := s.RecordAnswer(id, a); err != nil {
			t.Fatal(err)
		}
	}

	got, err := s.Score()
	if err != nil {
		t.Fatal(err)
	}
	if want := (ScoreResult{Correct: 2, Total: 3}); got != want {
		t.Fatalf("Score = %+v, want %+v", got, want)
	}
	if s.State() != Submitted {
		t.Fatalf("State = %v, want submitted", s.State())
	}

	again, err := s.Score()
	if err != nil || again != got {
		t.Fatalf("second Score = %+v, %v; want %+v", again, err, got)
	}
}

func TestScoreAllCorrectAndAllWrong(t *testing.T) {
	tests := []struct {
		name   string
		pick   func(q QuizQuestion) string
		wantOK int
	}{
		{"all correct", func(q QuizQuestion) string { return q.CorrectAnswer }, 10},
		{"all wrong", func(q QuizQuestion) string {
			for _, o := range q.Options {
				if o != q.CorrectAnswer {
					return o
				}
			}
			return ""
		}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestSession(t, ExtendedQuizQuestions(), true)
			for _, q := range s.Bank().All() {
				if err := s.RecordAnswer(q.ID, tt.pick(q)); err != nil {
					t.Fatal(err)
				}
			}
			got, err := s.Score()
			if err != nil {
				t.Fatal(err)
			}
			if got != (ScoreResult{Correct: tt.wantOK, Total: 10}) {
				t.Fatalf("Score = %+v", got)
			}
		})
	}
}

func TestGatedScoreRejectsIncompleteSession(t *testing.T) {
	s := newTestSession(t, ClassicQuizQuestions(), true)
	_ = s.RecordAnswer(1, "Bee")
	_ = s.RecordAnswer(3, "Deer")

	_, err := s.Score()
	var inc *IncompleteSubmissionError
	if !errors.As(err, &inc) {
		t.Fatalf("Score err = %v, want IncompleteSubmissionError", err)
	}
	if !reflect.DeepEqual(inc.Unanswered, []int{2}) {
		t.Fatalf("Unanswered = %v", inc.Unanswered)
	}
	if s.State() != InProgress {
		t.Fatalf("State = %v after rejected submit", s.State())
	}
	if got := s.Selections(); !reflect.DeepEqual(got, map[int]string{1: "Bee", 3: "Deer"}) {
		t.Fatalf("selections changed: %v", got)
	}

	if err := s.RecordAnswer(2, "Crocodile"); err != nil {
		t.Fatal(err)
	}
	got, err := s.Score()
	if err != nil || got != (ScoreResult{Correct: 3, Total: 3}) {
		t.Fatalf("Score = %+v, %v", got, err)
	}
}

func TestSubmittedSessionRejectsAnswers(t *testing.T) {
	s := newTestSession(t, ClassicQuizQuestions(), true)
	for _, q := range s.Bank().All() {
		_ = s.RecordAnswer(q.ID, q.CorrectAnswer)
	}
	if _, err := s.Score(); err != nil {
		t.Fatal(err)
	}

	if err := s.RecordAnswer(1, "Hornet"); !errors.Is(err, ErrSessionSubmitted) {
		t.Fatalf("err = %v, want ErrSessionSubmitted", err)
	}
	if got, _ := s.Selection(1); got != "Bee" {
		t.Fatalf("Selection(1) = %q after submit", got)
	}
}

func TestUngatedScoreCountsMissingAsWrong(t *testing.T) {
	s := newTestSession(t, ClassicQuizQuestions(), false)
	_ = s.RecordAnswer(1, "Bee")

	got, err := s.Score()
	if err != nil {
		t.Fatal(err)
	}
	if got != (ScoreResult{Correct: 1, Total: 3}) {
		t.Fatalf("Score = %+v", got)
	}
	if s.State() != InProgress {
		t.Fatalf("ungated session should stay open, state = %v", s.State())
	}

	if err := s.RecordAnswer(2, "Crocodile"); err != nil {
		t.Fatal(err)
	}
	got, _ = s.Score()
	if got.Correct != 2 {
		t.Fatalf("rescored Correct = %d", got.Correct)
	}
}

func TestSessionsAreIndependent(t *testing.T) {
	quiz, err := NewPresetQuiz(PresetGated)
	if err != nil {
		t.Fatal(err)
	}
	a, b := quiz.NewSession(), quiz.NewSession()
	if a.ID == b.ID {
		t.Fatal("sessions share an id")
	}
	_ = a.RecordAnswer(1, "Bee")
	if _, ok := b.Selection(1); ok {
		t.Fatal("selection leaked between sessions")
	}
}

func TestPercentage(t *testing.T) {
	if got := (ScoreResult{Correct: 2, Total: 3}).Percentage(); got != 66 {
		t.Fatalf("Percentage = %d", got)
	}
	if got := (ScoreResult{}).Percentage(); got != 0 {
		t.Fatalf("Percentage = %d", got)
	}
}
