package service

import (
	"fmt"
)

type MediaKind int

const (
	MediaNone MediaKind = iota
	MediaImage
	MediaAudio
	MediaVideo
)

func (k MediaKind) String() string {
	switch k {
	case MediaImage:
		return "image"
	case MediaAudio:
		return "audio"
	case MediaVideo:
		return "video"
	default:
		return "none"
	}
}

// MediaRef points at an asset rendered next to a question. The zero value
// means the question has no media.
type MediaRef struct {
	Kind MediaKind
	Ref  string
}

func Image(ref string) MediaRef { return MediaRef{Kind: MediaImage, Ref: ref} }
func Audio(ref string) MediaRef { return MediaRef{Kind: MediaAudio, Ref: ref} }
func Video(ref string) MediaRef { return MediaRef{Kind: MediaVideo, Ref: ref} }

func (m MediaRef) IsZero() bool { return m.Kind == MediaNone }

type QuizQuestion struct {
	ID            int
	Text          string
	Media         MediaRef
	CorrectAnswer string
	Options       []string
}

// HasOption reports whether answer is one of the question's options,
// compared byte for byte.
func (q QuizQuestion) HasOption(answer string) bool {
	for _, o := range q.Options {
		if o == answer {
			return true
		}
	}
	return false
}

func (q QuizQuestion) clone() QuizQuestion {
	q.Options = append([]string(nil), q.Options...)
	return q
}

func (q QuizQuestion) validate() error {
	if q.ID <= 0 {
		return fmt.Errorf("question id must be positive, got %d", q.ID)
	}
	if q.Text == "" {
		return fmt.Errorf("question %d: text cannot be empty", q.ID)
	}
	if len(q.Options) < 2 {
		return fmt.Errorf("question %d: need at least 2 options, got %d", q.ID, len(q.Options))
	}
	seen := make(map[string]struct{}, len(q.Options))
	for _, o := range q.Options {
		if o == "" {
			return fmt.Errorf("question %d: empty option", q.ID)
		}
		if _, dup := seen[o]; dup {
			return fmt.Errorf("question %d: duplicate option %q", q.ID, o)
		}
		seen[o] = struct{}{}
	}
	if !q.HasOption(q.CorrectAnswer) {
		return fmt.Errorf("question %d: correct answer %q is not among the options", q.ID, q.CorrectAnswer)
	}
	switch q.Media.Kind {
	case MediaNone:
	case MediaImage, MediaAudio, MediaVideo:
		if q.Media.Ref == "" {
			return fmt.Errorf("question %d: %s media without a reference", q.ID, q.Media.Kind)
		}
	default:
		return fmt.Errorf("question %d: unknown media kind %d", q.ID, q.Media.Kind)
	}
	return nil
}

// QuestionBank is the read-only, ordered set of questions and their answer
// key.
type QuestionBank struct {
	questions []QuizQuestion
	index     map[int]int
}

func NewQuestionBank(questions []QuizQuestion) (*QuestionBank, error) {
	if len(questions) == 0 {
		return nil, fmt.Errorf("question bank is empty")
	}

	bank := &QuestionBank{
		questions: make([]QuizQuestion, 0, len(questions)),
		index:     make(map[int]int, len(questions)),
	}
	for _, q := range questions {
		if err := q.validate(); err != nil {
			return nil, err
		}
		if _, dup := bank.index[q.ID]; dup {
			return nil, fmt.Errorf("duplicate question id %d", q.ID)
		}
		bank.index[q.ID] = len(bank.questions)
		bank.questions = append(bank.questions, q.clone())
	}
	return bank, nil
}

// All returns the questions in definition order.
func (b *QuestionBank) All() []QuizQuestion {
	out := make([]QuizQuestion, len(b.questions))
	for i, q := range b.questions {
		out[i] = q.clone()
	}
	return out
}

func (b *QuestionBank) Get(id int) (QuizQuestion, error) {
	i, ok := b.index[id]
	if !ok {
		return QuizQuestion{}, &NotFoundError{QuestionID: id}
	}
	return b.questions[i].clone(), nil
}

func (b *QuestionBank) Len() int {
	return len(b.questions)
}

// Position returns the 1-based place of a question in the bank, or 0.
func (b *QuestionBank) Position(id int) int {
	i, ok := b.index[id]
	if !ok {
		return 0
	}
	return i + 1
}

func (b *QuestionBank) ids() []int {
	ids := make([]int, len(b.questions))
	for i, q := range b.questions {
		ids[i] = q.ID
	}
	return ids
}

// Settings is what distinguishes one quiz screen from another.
type Settings struct {
	GateOnCompleteness bool
	Messages           MessagePolicy
}

// Quiz binds a bank to the settings used to run sessions over it.
type Quiz struct {
	Title    string
	Bank     *QuestionBank
	Settings Settings
}

func (q *Quiz) NewSession() *QuizSession {
	return NewQuizSession(q.Bank, q.Settings.GateOnCompleteness)
}

func (q *Quiz) Message(r ScoreResult) string {
	if q.Settings.Messages == nil {
		return TemplatedMessages{}.Message(r)
	}
	return q.Settings.Messages.Message(r)
}
