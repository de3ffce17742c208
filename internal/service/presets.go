package service

import (
	"fmt"
	"sort"
)

const (
	PresetClassic  = "classic"
	PresetGated    = "gated"
	PresetExtended = "extended"
)

// Preset is one of the built-in quiz screens.
type Preset struct {
	Title     string
	Questions func() []QuizQuestion
	Settings  Settings
}

var presets = map[string]Preset{
	PresetClassic: {
		Title:     "Animal Quiz",
		Questions: ClassicQuizQuestions,
		Settings:  Settings{GateOnCompleteness: false, Messages: BucketedMessages{}},
	},
	PresetGated: {
		Title:     "Animal Quiz",
		Questions: ClassicQuizQuestions,
		Settings:  Settings{GateOnCompleteness: true, Messages: TemplatedMessages{}},
	},
	PresetExtended: {
		Title:     "Animal Quiz",
		Questions: ExtendedQuizQuestions,
		Settings:  Settings{GateOnCompleteness: true, Messages: TemplatedMessages{}},
	},
}

func LookupPreset(name string) (Preset, error) {
	p, ok := presets[name]
	if !ok {
		return Preset{}, fmt.Errorf("unknown quiz preset %q (available: %v)", name, PresetNames())
	}
	return p, nil
}

func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for n := range presets {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// ClassicQuizQuestions is the three-picture animal quiz.
func ClassicQuizQuestions() []QuizQuestion {
	return []QuizQuestion{
		{
			ID:            1,
			Text:          "What is the name of this insect?",
			Media:         Image("img/bee.jpg"),
			CorrectAnswer: "Bee",
			Options:       []string{"Bee", "Hornet", "Beetle"},
		},
		{
			ID:            2,
			Text:          "Which animal is known to live in water and on land?",
			Media:         Image("img/crocodile.jpg"),
			CorrectAnswer: "Crocodile",
			Options:       []string{"Crocodile", "Alligator", "Monitor Lizard"},
		},
		{
			ID:            3,
			Text:          "This animal is often found in forests. What is it?",
			Media:         Image("img/deer.jpg"),
			CorrectAnswer: "Deer",
			Options:       []string{"Deer", "Elk", "Goat"},
		},
	}
}

// ExtendedQuizQuestions adds sound and video questions to the classic three.
func ExtendedQuizQuestions() []QuizQuestion {
	return append(ClassicQuizQuestions(),
		QuizQuestion{
			ID:            4,
			Text:          "Which animal makes this sound?",
			Media:         Audio("audio/lion.mp3"),
			CorrectAnswer: "Lion",
			Options:       []string{"Lion", "Tiger", "Bear"},
		},
		QuizQuestion{
			ID:            5,
			Text:          "Which bird is singing?",
			Media:         Audio("audio/owl.mp3"),
			CorrectAnswer: "Owl",
			Options:       []string{"Crow", "Owl", "Eagle"},
		},
		QuizQuestion{
			ID:            6,
			Text:          "Which animal is shown in this video?",
			Media:         Video("video/kangaroo.mp4"),
			CorrectAnswer: "Kangaroo",
			Options:       []string{"Wallaby", "Kangaroo", "Rabbit"},
		},
		QuizQuestion{
			ID:            7,
			Text:          "What is the largest land animal?",
			Media:         Image("img/elephant.jpg"),
			CorrectAnswer: "Elephant",
			Options:       []string{"Rhino", "Hippo", "Elephant"},
		},
		QuizQuestion{
			ID:            8,
			Text:          "Which animal makes this sound?",
			Media:         Audio("audio/wolf.mp3"),
			CorrectAnswer: "Wolf",
			Options:       []string{"Dog", "Wolf", "Fox"},
		},
		QuizQuestion{
			ID:            9,
			Text:          "Which animal is swimming in this video?",
			Media:         Video("video/dolphin.mp4"),
			CorrectAnswer: "Dolphin",
			Options:       []string{"Shark", "Dolphin", "Whale"},
		},
		QuizQuestion{
			ID:            10,
			Text:          "Which of these animals is a mammal?",
			CorrectAnswer: "Bat",
			Options:       []string{"Bat", "Penguin", "Frog"},
		},
	)
}

// NewPresetQuiz builds a quiz from a preset's own questions.
func NewPresetQuiz(name string) (*Quiz, error) {
	p, err := LookupPreset(name)
	if err != nil {
		return nil, err
	}
	bank, err := NewQuestionBank(p.Questions())
	if err != nil {
		return nil, fmt.Errorf("preset %s: %w", name, err)
	}
	return &Quiz{Title: p.Title, Bank: bank, Settings: p.Settings}, nil
}
