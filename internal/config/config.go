package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/PoluyanbIch/GoQuizBot/internal/service"
)

type Config struct {
	TelegramToken string
	TelegramDebug bool

	Preset        string
	QuestionsFile string
	AssetsDir     string

	// nil means "use the preset's choice"
	GateSubmission *bool
	MessagePolicy  string

	HTTPAddr    string
	CORSOrigins []string
}

// Load reads an optional .env file and then the environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("Warning: could not read .env: %v", err)
	}
	return FromEnv()
}

func FromEnv() (Config, error) {
	cfg := Config{
		TelegramToken: os.Getenv("TELEGRAM_BOT_TOKEN"),
		TelegramDebug: envBool("TELEGRAM_DEBUG", false),
		Preset:        envOr("QUIZ_PRESET", service.PresetClassic),
		QuestionsFile: os.Getenv("QUESTIONS_FILE"),
		AssetsDir:     envOr("ASSETS_DIR", "./assets"),
		MessagePolicy: os.Getenv("MESSAGE_POLICY"),
		HTTPAddr:      os.Getenv("HTTP_ADDR"),
		CORSOrigins:   csvOr("CORS_ORIGINS", "*"),
	}

	if v := strings.TrimSpace(os.Getenv("GATE_SUBMISSION")); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return Config{}, fmt.Errorf("GATE_SUBMISSION: %w", err)
		}
		cfg.GateSubmission = &b
	}

	if cfg.TelegramToken == "" && cfg.HTTPAddr == "" {
		return Config{}, errors.New("TELEGRAM_BOT_TOKEN or HTTP_ADDR environment variable is required")
	}
	return cfg, nil
}

// Quiz assembles the quiz described by the configuration: the preset's
// questions and settings, optionally replaced by a questions file and
// overridden by the gating and message policy variables.
func (c Config) Quiz() (*service.Quiz, error) {
	preset, err := service.LookupPreset(c.Preset)
	if err != nil {
		return nil, err
	}

	questions, title, err := service.LoadQuizQuestions(c.QuestionsFile, preset.Questions)
	if err != nil {
		return nil, err
	}
	bank, err := service.NewQuestionBank(questions)
	if err != nil {
		return nil, fmt.Errorf("invalid question bank: %w", err)
	}

	quiz := &service.Quiz{Title: preset.Title, Bank: bank, Settings: preset.Settings}
	if title != "" {
		quiz.Title = title
	}
	if c.GateSubmission != nil {
		quiz.Settings.GateOnCompleteness = *c.GateSubmission
	}
	if c.MessagePolicy != "" {
		p, err := service.ParseMessagePolicy(c.MessagePolicy)
		if err != nil {
			return nil, err
		}
		quiz.Settings.Messages = p
	}
	return quiz, nil
}

func envOr(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func envBool(k string, def bool) bool {
	v := strings.TrimSpace(strings.ToLower(os.Getenv(k)))
	if v == "" {
		return def
	}
	switch v {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	}
	return def
}

func csvOr(k, def string) []string {
	raw := envOr(k, def)
	var out []string
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
