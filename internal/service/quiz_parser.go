package service

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"unicode/utf8"
)

// ParseQuizQuestions parses questions from a TXT file, one per line:
//
//	"<text>" ; <opt1> | <opt2> | ... ; <correct index> [; image:<ref>]
//
// Media may also be audio:<ref> or video:<ref>. Ids are assigned in order.
func ParseQuizQuestions(filename string) ([]QuizQuestion, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return parseQuizQuestions(file)
}

func parseQuizQuestions(r io.Reader) ([]QuizQuestion, error) {
	var questions []QuizQuestion
	scanner := bufio.NewScanner(r)
	questionID := 1
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		q, err := parseQuestionLine(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		q.ID = questionID
		questions = append(questions, q)
		questionID++
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading file: %w", err)
	}

	if len(questions) == 0 {
		return nil, fmt.Errorf("no valid questions found in file")
	}

	return questions, nil
}

func parseQuestionLine(line string) (QuizQuestion, error) {
	if !strings.HasPrefix(line, `"`) {
		return QuizQuestion{}, fmt.Errorf("invalid format: question must start with a quote")
	}
	quoteEnd := strings.Index(line[1:], `"`) + 1
	if quoteEnd <= 0 {
		return QuizQuestion{}, fmt.Errorf("invalid format: no closing quote")
	}

	text := line[1:quoteEnd]
	if utf8.RuneCountInString(strings.TrimSpace(text)) == 0 {
		return QuizQuestion{}, fmt.Errorf("question cannot be empty")
	}

	remaining := strings.TrimSpace(line[quoteEnd+1:])
	if !strings.HasPrefix(remaining, ";") {
		return QuizQuestion{}, fmt.Errorf("invalid format: expected ';' after question")
	}
	fields := strings.Split(remaining[1:], ";")
	if len(fields) < 2 {
		return QuizQuestion{}, fmt.Errorf("invalid format: need options and correct index")
	}
	if len(fields) > 3 {
		return QuizQuestion{}, fmt.Errorf("invalid format: at most one media reference per question")
	}

	var options []string
	for _, o := range strings.Split(fields[0], "|") {
		options = append(options, strings.TrimSpace(o))
	}

	correct, err := strconv.Atoi(strings.TrimSpace(fields[1]))
	if err != nil {
		return QuizQuestion{}, fmt.Errorf("invalid correct index: %w", err)
	}
	if correct < 0 || correct >= len(options) {
		return QuizQuestion{}, fmt.Errorf("correct index %d out of range for %d options", correct, len(options))
	}

	q := QuizQuestion{
		Text:          text,
		Options:       options,
		CorrectAnswer: options[correct],
	}
	if len(fields) == 3 {
		media, err := parseMediaRef(strings.TrimSpace(fields[2]))
		if err != nil {
			return QuizQuestion{}, err
		}
		q.Media = media
	}
	return q, nil
}

func parseMediaRef(s string) (MediaRef, error) {
	kind, ref, ok := strings.Cut(s, ":")
	if !ok {
		return MediaRef{}, fmt.Errorf("invalid media %q: want kind:ref", s)
	}
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return MediaRef{}, fmt.Errorf("invalid media %q: empty reference", s)
	}
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "image":
		return Image(ref), nil
	case "audio":
		return Audio(ref), nil
	case "video":
		return Video(ref), nil
	default:
		return MediaRef{}, fmt.Errorf("invalid media kind %q", kind)
	}
}

// LoadQuizQuestions reads questions from filename, choosing the format by
// extension. With no filename, or one that does not exist, it falls back to
// the given questions. A file that exists but cannot be parsed is an error.
func LoadQuizQuestions(filename string, fallback func() []QuizQuestion) ([]QuizQuestion, string, error) {
	if filename == "" {
		return fallback(), "", nil
	}

	var (
		questions []QuizQuestion
		title     string
		err       error
	)
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yaml", ".yml":
		questions, title, err = ParseQuizYAML(filename)
	default:
		questions, err = ParseQuizQuestions(filename)
	}
	if errors.Is(err, fs.ErrNotExist) {
		log.Printf("Warning: questions file %s not found, using built-in questions", filename)
		return fallback(), "", nil
	}
	if err != nil {
		return nil, "", fmt.Errorf("load questions from %s: %w", filename, err)
	}

	log.Printf("Successfully loaded %d questions from %s", len(questions), filename)
	return questions, title, nil
}
