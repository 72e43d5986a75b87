package handlers

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// maxMessageRunes is Telegram's limit for the text of one message
const maxMessageRunes = 4096

// MessageSender provides centralized message sending functionality
type MessageSender struct {
	bot    Sender
	logger *zap.Logger
}

// NewMessageSender creates a new MessageSender
func NewMessageSender(bot Sender, logger *zap.Logger) *MessageSender {
	return &MessageSender{
		bot:    bot,
		logger: logger,
	}
}

// Send sends plain text, split into several messages when it is too long.
// The markup is attached to the last part.
func (s *MessageSender) Send(chatID int64, text string, markup interface{}) error {
	parts := splitText(text, maxMessageRunes)
	for i, part := range parts {
		msg := tgbotapi.NewMessage(chatID, part)
		if markup != nil && i == len(parts)-1 {
			msg.ReplyMarkup = markup
		}
		if err := s.send(chatID, msg); err != nil {
			return err
		}
	}
	return nil
}

// SendHTML sends a message that uses Telegram's HTML formatting
func (s *MessageSender) SendHTML(chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	return s.send(chatID, msg)
}

// SendDocument sends a file
func (s *MessageSender) SendDocument(chatID int64, filename string, data []byte) error {
	doc := tgbotapi.NewDocument(chatID, tgbotapi.FileBytes{
		Name:  filename,
		Bytes: data,
	})
	return s.send(chatID, doc)
}

func (s *MessageSender) send(chatID int64, c tgbotapi.Chattable) error {
	if _, err := s.bot.Send(c); err != nil {
		s.logger.Error("failed to send message",
			zap.Error(err),
			zap.Int64("chat_id", chatID),
		)
		return err
	}
	return nil
}

// splitText cuts text into chunks of at most limit runes, preferring line breaks
func splitText(text string, limit int) []string {
	runes := []rune(text)
	if len(runes) <= limit {
		return []string{text}
	}

	var parts []string
	for len(runes) > limit {
		cut := limit
		for i := limit; i > limit/2; i-- {
			if runes[i-1] == '\n' {
				cut = i
				break
			}
		}
		parts = append(parts, string(runes[:cut]))
		runes = runes[cut:]
	}
	if len(runes) > 0 {
		parts = append(parts, string(runes))
	}
	return parts
}
