package service

import "testing"

func TestTemplatedMessages(t *testing.T) {
	got := TemplatedMessages{}.Message(ScoreResult{Correct: 10, Total: 10})
	if got != "You got 10 out of 10 correct." {
		t.Fatalf("got %q", got)
	}
}

func TestBucketedMessages(t *testing.T) {
	tests := []struct {
		r    ScoreResult
		want string
	}{
		{ScoreResult{3, 3}, "Excellent! You got all answers correct!"},
		{ScoreResult{2, 3}, "Good job! You got 2 out of 3 correct."},
		{ScoreResult{1, 3}, "Nice try! You got 1 correct answer."},
		{ScoreResult{0, 3}, "You can do better next time. Try again!"},
		{ScoreResult{7, 10}, "Good job! You got 7 out of 10 correct."},
		{ScoreResult{10, 10}, "Excellent! You got all answers correct!"},
		{ScoreResult{1, 1}, "Excellent! You got all answers correct!"},
	}
	for _, tt := range tests {
		if got := (BucketedMessages{}).Message(tt.r); got != tt.want {
			t.Errorf("Message(%+v) = %q, want %q", tt.r, got, tt.want)
		}
	}
}

func TestParseMessagePolicy(t *testing.T) {
	for _, name := range []string{"templated", "Bucketed", " templated "} {
		p, err := ParseMessagePolicy(name)
		if err != nil {
			t.Fatalf("ParseMessagePolicy(%q): %v", name, err)
		}
		if PolicyName(p) == "" {
			t.Fatal("empty policy name")
		}
	}
	if _, err := ParseMessagePolicy("emoji"); err == nil {
		t.Fatal("expected error for unknown policy")
	}
	if got := PolicyName(BucketedMessages{}); got != PolicyBucketed {
		t.Fatalf("PolicyName = %q", got)
	}
}

func TestExtendedPresetAllCorrectMessage(t *testing.T) {
	quiz, err := NewPresetQuiz(PresetExtended)
	if err != nil {
		t.Fatal(err)
	}
	s := quiz.NewSession()
	for _, q := range quiz.Bank.All() {
		if err := s.RecordAnswer(q.ID, q.CorrectAnswer); err != nil {
			t.Fatal(err)
		}
	}
	r, err := s.Score()
	if err != nil {
		t.Fatal(err)
	}
	if got := quiz.Message(r); got != "You got 10 out of 10 correct." {
		t.Fatalf("Message = %q", got)
	}
}
