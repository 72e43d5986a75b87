package handlers

import (
	"context"
	"strconv"
)

// Message represents a normalized Telegram message
type Message struct {
	ChatID    int64
	UserID    int64
	Username  string
	MessageID int
	Text      string
	// Args holds what follows a command, e.g. "pdf" in "/transcript pdf"
	Args string
}

// Handler processes one message or command
type Handler interface {
	Handle(ctx context.Context, msg *Message) error
}

// BaseHandler provides common functionality for all handlers
type BaseHandler struct {
	messageSender *MessageSender
}

// sendMessage is a convenience wrapper for messageSender.Send
func (h *BaseHandler) sendMessage(chatID int64, text string, markup interface{}) error {
	return h.messageSender.Send(chatID, text, markup)
}

// ConnectionID keys the chat session of a Telegram chat
func ConnectionID(chatID int64) string {
	return "telegram:" + strconv.FormatInt(chatID, 10)
}

// connectionHeaders are logged when the chat's session is created
func connectionHeaders(msg *Message) map[string]string {
	headers := map[string]string{"telegram_user_id": strconv.FormatInt(msg.UserID, 10)}
	if msg.Username != "" {
		headers["telegram_username"] = msg.Username
	}
	return headers
}
