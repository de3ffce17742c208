package telegram

import (
	"log"
	"path/filepath"

	"github.com/PoluyanbIch/GoQuizBot/internal/service"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// MediaSender uploads question media from the assets directory. Delivery is
// fire-and-forget: failures are logged and never reach the quiz session.
type MediaSender struct {
	api       sender
	assetsDir string
	run       func(func())
}

func NewMediaSender(api sender, assetsDir string) *MediaSender {
	return &MediaSender{
		api:       api,
		assetsDir: assetsDir,
		run:       func(f func()) { go f() },
	}
}

// Dispatch sends the media captioned with its question, since it may arrive
// after the rest of the form.
func (m *MediaSender) Dispatch(chatID int64, media service.MediaRef, caption string) {
	msg := m.chattable(chatID, media, caption)
	if msg == nil {
		return
	}
	m.run(func() {
		if _, err := m.api.Send(msg); err != nil {
			log.Printf("Error sending %s %s: %v", media.Kind, media.Ref, err)
		}
	})
}

func (m *MediaSender) chattable(chatID int64, media service.MediaRef, caption string) tgbotapi.Chattable {
	file := tgbotapi.FilePath(filepath.Join(m.assetsDir, filepath.Clean("/"+media.Ref)))
	switch media.Kind {
	case service.MediaImage:
		msg := tgbotapi.NewPhoto(chatID, file)
		msg.Caption = caption
		return msg
	case service.MediaAudio:
		msg := tgbotapi.NewAudio(chatID, file)
		msg.Caption = caption
		return msg
	case service.MediaVideo:
		msg := tgbotapi.NewVideo(chatID, file)
		msg.Caption = caption
		return msg
	default:
		return nil
	}
}
