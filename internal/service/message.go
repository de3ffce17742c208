package service

import (
	"fmt"
	"strings"
)

// MessagePolicy turns a score into the text shown to the user.
type MessagePolicy interface {
	Message(r ScoreResult) string
}

type TemplatedMessages struct{}

func (TemplatedMessages) Message(r ScoreResult) string {
	return fmt.Sprintf("You got %d out of %d correct.", r.Correct, r.Total)
}

// BucketedMessages picks an encouragement by where the score falls: all
// right, none right, a single right answer, or anything in between.
type BucketedMessages struct{}

func (BucketedMessages) Message(r ScoreResult) string {
	switch {
	case r.Total > 0 && r.Correct == r.Total:
		return "Excellent! You got all answers correct!"
	case r.Correct == 0:
		return "You can do better next time. Try again!"
	case r.Correct == 1:
		return "Nice try! You got 1 correct answer."
	default:
		return fmt.Sprintf("Good job! You got %d out of %d correct.", r.Correct, r.Total)
	}
}

const (
	PolicyTemplated = "templated"
	PolicyBucketed  = "bucketed"
)

func ParseMessagePolicy(name string) (MessagePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case PolicyTemplated:
		return TemplatedMessages{}, nil
	case PolicyBucketed:
		return BucketedMessages{}, nil
	default:
		return nil, fmt.Errorf("unknown message policy %q (want %s or %s)", name, PolicyTemplated, PolicyBucketed)
	}
}

func PolicyName(p MessagePolicy) string {
	if _, ok := p.(BucketedMessages); ok {
		return PolicyBucketed
	}
	return PolicyTemplated
}
