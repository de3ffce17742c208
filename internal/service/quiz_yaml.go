package service

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type yamlQuiz struct {
	Title     string         `yaml:"title"`
	Questions []yamlQuestion `yaml:"questions"`
}

// yamlQuestion keeps image, audio and video as separate keys so authors can
// write them naturally; at most one may be set.
type yamlQuestion struct {
	ID      int      `yaml:"id"`
	Text    string   `yaml:"text"`
	Image   string   `yaml:"image"`
	Audio   string   `yaml:"audio"`
	Video   string   `yaml:"video"`
	Correct string   `yaml:"correct"`
	Options []string `yaml:"options"`
}

func (y yamlQuestion) media() (MediaRef, error) {
	var refs []MediaRef
	if y.Image != "" {
		refs = append(refs, Image(y.Image))
	}
	if y.Audio != "" {
		refs = append(refs, Audio(y.Audio))
	}
	if y.Video != "" {
		refs = append(refs, Video(y.Video))
	}
	switch len(refs) {
	case 0:
		return MediaRef{}, nil
	case 1:
		return refs[0], nil
	default:
		return MediaRef{}, fmt.Errorf("question %d: only one of image, audio or video may be set", y.ID)
	}
}

func ParseQuizYAML(filename string) ([]QuizQuestion, string, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open file: %w", err)
	}
	return parseQuizYAML(data)
}

func parseQuizYAML(data []byte) ([]QuizQuestion, string, error) {
	var doc yamlQuiz
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, "", fmt.Errorf("decode yaml: %w", err)
	}
	if len(doc.Questions) == 0 {
		return nil, "", fmt.Errorf("no valid questions found in file")
	}

	// Ids are either all given or all left out; mixing the two would let a
	// defaulted id collide with an explicit one.
	explicit := doc.Questions[0].ID != 0
	questions := make([]QuizQuestion, 0, len(doc.Questions))
	for i, y := range doc.Questions {
		if (y.ID != 0) != explicit {
			return nil, "", fmt.Errorf("question %d (%q): set id on every question or on none", i+1, y.Text)
		}
		if !explicit {
			y.ID = i + 1
		}
		media, err := y.media()
		if err != nil {
			return nil, "", err
		}
		questions = append(questions, QuizQuestion{
			ID:            y.ID,
			Text:          y.Text,
			Media:         media,
			CorrectAnswer: y.Correct,
			Options:       y.Options,
		})
	}
	return questions, doc.Title, nil
}
