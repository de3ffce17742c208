package telegram

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	answerPrefix = "ans:"
	submitPrefix = "submit:"
)

// Telegram limits callback data to 64 bytes; a UUID plus two small ints fits.
func answerData(sessionID string, questionID, optionIndex int) string {
	return fmt.Sprintf("%s%s:%d:%d", answerPrefix, sessionID, questionID, optionIndex)
}

func submitData(sessionID string) string {
	return submitPrefix + sessionID
}

func parseAnswerData(data string) (sessionID string, questionID, optionIndex int, err error) {
	rest, ok := strings.CutPrefix(data, answerPrefix)
	if !ok {
		return "", 0, 0, fmt.Errorf("missing %q prefix", answerPrefix)
	}
	parts := strings.Split(rest, ":")
	if len(parts) != 3 || parts[0] == "" {
		return "", 0, 0, fmt.Errorf("want session:question:option, got %q", rest)
	}
	questionID, err = strconv.Atoi(parts[1])
	if err != nil {
		return "", 0, 0, fmt.Errorf("question id: %w", err)
	}
	optionIndex, err = strconv.Atoi(parts[2])
	if err != nil {
		return "", 0, 0, fmt.Errorf("option index: %w", err)
	}
	return parts[0], questionID, optionIndex, nil
}
