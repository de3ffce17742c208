package telegram

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/PoluyanbIch/GoQuizBot/internal/service"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// sender is the part of *tgbotapi.BotAPI the handlers use.
type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

type Bot struct {
	api          sender
	updates      *tgbotapi.BotAPI
	quiz         *service.Quiz
	media        *MediaSender
	quizSessions map[int64]*service.QuizSession
}

func NewBot(token string, quiz *service.Quiz, assetsDir string, debug bool) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	api.Debug = debug

	b := newBot(api, quiz, assetsDir)
	b.updates = api
	return b, nil
}

func newBot(api sender, quiz *service.Quiz, assetsDir string) *Bot {
	return &Bot{
		api:          api,
		quiz:         quiz,
		media:        NewMediaSender(api, assetsDir),
		quizSessions: make(map[int64]*service.QuizSession),
	}
}

// Start polls for updates until ctx is cancelled. Updates are handled one at
// a time, so sessions need no locking.
func (b *Bot) Start(ctx context.Context) {
	log.Printf("Authorised on account: %s", b.updates.Self.UserName)

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.updates.GetUpdatesChan(u)

	go func() {
		<-ctx.Done()
		b.updates.StopReceivingUpdates()
	}()

	for update := range updates {
		b.handleUpdate(update)
	}
}

func (b *Bot) handleUpdate(update tgbotapi.Update) {
	if update.Message != nil {
		switch update.Message.Command() {
		case "start":
			b.sendMainMenu(update.Message.Chat.ID)
		case "quiz":
			b.startQuiz(update.Message.Chat.ID)
		case "info":
			b.handleInfo(update.Message.Chat.ID)
		default:
			b.sendMessage(update.Message.Chat.ID, "Unknown command. Try /quiz")
		}
	}
	if update.CallbackQuery != nil {
		b.handleCallback(update.CallbackQuery)
	}
}

func (b *Bot) handleCallback(callback *tgbotapi.CallbackQuery) {
	if callback.Message == nil {
		return
	}
	chatID := callback.Message.Chat.ID
	data := callback.Data

	// Navigation may send a whole form, so its button is released first.
	switch data {
	case "start_quiz":
		b.answerCallback(callback.ID, "")
		b.startQuiz(chatID)
		return
	case "back_to_menu":
		b.answerCallback(callback.ID, "")
		b.sendMainMenu(chatID)
		return
	case "info":
		b.answerCallback(callback.ID, "")
		b.handleInfo(chatID)
		return
	}

	notice := "Unknown command"
	switch {
	case strings.HasPrefix(data, answerPrefix):
		notice = b.handleQuizAnswer(chatID, callback.Message.MessageID, data)
	case strings.HasPrefix(data, submitPrefix):
		notice = b.handleSubmit(chatID, data)
	}
	b.answerCallback(callback.ID, notice)
}

func (b *Bot) answerCallback(callbackID, notice string) {
	callbackConfig := tgbotapi.NewCallback(callbackID, notice)
	if _, err := b.api.Request(callbackConfig); err != nil {
		log.Printf("Error answering callback: %v", err)
	}
}

func (b *Bot) sendMainMenu(chatID int64) {
	msg := tgbotapi.NewMessage(chatID, "📋 *Main menu*")
	msg.ParseMode = tgbotapi.ModeMarkdown

	kb := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🐾 "+b.quiz.Title, "start_quiz"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("ℹ️ About", "info"),
		),
	)
	msg.ReplyMarkup = kb
	if _, err := b.api.Send(msg); err != nil {
		log.Printf("Error sending start message: %v", err)
	}
}

func (b *Bot) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.api.Send(msg); err != nil {
		log.Printf("Error sending msg: %v", err)
	}
}

// startQuiz replaces any previous session in the chat and renders the whole
// form: title, every question with its options, and the submit button.
func (b *Bot) startQuiz(chatID int64) {
	session := b.quiz.NewSession()
	b.quizSessions[chatID] = session

	title := tgbotapi.NewMessage(chatID, fmt.Sprintf("🐾 *%s*", tgbotapi.EscapeText(tgbotapi.ModeMarkdown, b.quiz.Title)))
	title.ParseMode = tgbotapi.ModeMarkdown
	if _, err := b.api.Send(title); err != nil {
		log.Printf("Error sending quiz title: %v", err)
	}

	questions := session.Bank().All()
	for i, q := range questions {
		b.media.Dispatch(chatID, q.Media, fmt.Sprintf("Question %d/%d: %s", i+1, len(questions), q.Text))
		b.sendQuestion(chatID, session.ID, i+1, len(questions), q)
	}

	submit := tgbotapi.NewMessage(chatID, "When you are ready:")
	submit.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📨 SUBMIT ANSWERS", submitData(session.ID)),
		),
	)
	if _, err := b.api.Send(submit); err != nil {
		log.Printf("Error sending submit button: %v", err)
	}
}

func (b *Bot) sendQuestion(chatID int64, sessionID string, position, total int, q service.QuizQuestion) {
	message := fmt.Sprintf("❓ *Question %d/%d*\n\n%s",
		position,
		total,
		tgbotapi.EscapeText(tgbotapi.ModeMarkdown, q.Text))

	msg := tgbotapi.NewMessage(chatID, message)
	msg.ParseMode = tgbotapi.ModeMarkdown
	msg.ReplyMarkup = questionKeyboard(sessionID, q, "")

	if _, err := b.api.Send(msg); err != nil {
		log.Printf("Error sending question %d: %v", q.ID, err)
	}
}

func questionKeyboard(sessionID string, q service.QuizQuestion, selected string) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for i, option := range q.Options {
		label := option
		if option == selected {
			label = "✅ " + option
		}
		button := tgbotapi.NewInlineKeyboardButtonData(label, answerData(sessionID, q.ID, i))
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(button))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// handleQuizAnswer records a selection and redraws that question's keyboard.
// It returns the notice shown on the user's tapped button.
func (b *Bot) handleQuizAnswer(chatID int64, messageID int, data string) string {
	sessionID, questionID, optionIndex, err := parseAnswerData(data)
	if err != nil {
		log.Printf("Bad answer callback %q: %v", data, err)
		return "Unknown command"
	}

	session, ok := b.activeSession(chatID, sessionID)
	if !ok {
		return "This quiz has ended. Start a new one from the menu."
	}

	q, err := session.Bank().Get(questionID)
	if err != nil {
		log.Printf("Answer for unknown question in chat %d: %v", chatID, err)
		return "Unknown question"
	}
	if optionIndex < 0 || optionIndex >= len(q.Options) {
		log.Printf("Answer option %d out of range for question %d", optionIndex, questionID)
		return "Unknown option"
	}
	answer := q.Options[optionIndex]

	if err := session.RecordAnswer(questionID, answer); err != nil {
		if errors.Is(err, service.ErrSessionSubmitted) {
			return "Answers are already submitted. Start again to retry."
		}
		log.Printf("Error recording answer in chat %d: %v", chatID, err)
		return "Could not record that answer"
	}

	edit := tgbotapi.NewEditMessageReplyMarkup(chatID, messageID, questionKeyboard(session.ID, q, answer))
	if _, err := b.api.Request(edit); err != nil {
		log.Printf("Error updating question %d keyboard: %v", questionID, err)
	}
	return "Selected: " + answer
}

func (b *Bot) handleSubmit(chatID int64, data string) string {
	sessionID := strings.TrimPrefix(data, submitPrefix)
	session, ok := b.activeSession(chatID, sessionID)
	if !ok {
		return "This quiz has ended. Start a new one from the menu."
	}

	result, err := session.Score()
	var incomplete *service.IncompleteSubmissionError
	if errors.As(err, &incomplete) {
		numbers := make([]string, len(incomplete.Unanswered))
		for i, id := range incomplete.Unanswered {
			numbers[i] = strconv.Itoa(session.Bank().Position(id))
		}
		b.sendMessage(chatID, fmt.Sprintf(
			"⚠️ Please answer all questions before submitting.\nStill unanswered: %s",
			strings.Join(numbers, ", ")))
		return "Not finished yet"
	}
	if err != nil {
		log.Printf("Error scoring quiz in chat %d: %v", chatID, err)
		return "Could not score the quiz"
	}

	finalMsg := tgbotapi.NewMessage(chatID, fmt.Sprintf(
		"🏁 *Quiz Result*\n\n%s\n📈 %d%%",
		tgbotapi.EscapeText(tgbotapi.ModeMarkdown, b.quiz.Message(result)),
		result.Percentage()))
	finalMsg.ParseMode = tgbotapi.ModeMarkdown
	finalMsg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🎯 Start again", "start_quiz"),
			tgbotapi.NewInlineKeyboardButtonData("🔙 Menu", "back_to_menu"),
		),
	)

	if _, err := b.api.Send(finalMsg); err != nil {
		log.Printf("Error sending final message: %v", err)
	}

	// A submitted gated session takes no more answers; an ungated one stays
	// open for resubmission.
	if session.State() == service.Submitted {
		delete(b.quizSessions, chatID)
	}
	return ""
}

// activeSession returns the chat's current session if the callback belongs
// to it; buttons left over from an earlier attempt do not.
func (b *Bot) activeSession(chatID int64, sessionID string) (*service.QuizSession, bool) {
	session, exists := b.quizSessions[chatID]
	if !exists || session.ID != sessionID {
		return nil, false
	}
	return session, true
}

func (b *Bot) handleInfo(chatID int64) {
	msg := fmt.Sprintf("%s: %d questions. Pick one answer for each question, then press SUBMIT ANSWERS.",
		b.quiz.Title, b.quiz.Bank.Len())
	if b.quiz.Settings.GateOnCompleteness {
		msg += "\nAll questions must be answered before submitting."
	}

	infoMsg := tgbotapi.NewMessage(chatID, msg)
	infoMsg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔙 Back", "back_to_menu"),
		),
	)

	if _, err := b.api.Send(infoMsg); err != nil {
		log.Printf("Error sending info: %v", err)
	}
}
