package handlers

import (
	"context"
	"fmt"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/samsontands/RAG/internal/entity"
	"github.com/samsontands/RAG/internal/telegram/keyboard"
	"github.com/samsontands/RAG/internal/telegram/render"
	"go.uber.org/zap"
)

// StartHandler handles /start: it opens the chat's session and shows where the
// conversation stands
type StartHandler struct {
	BaseHandler
	chatUC   ChatUsecase
	keyboard *keyboard.Builder
}

func NewStartHandler(sender *MessageSender, chatUC ChatUsecase, keyboard *keyboard.Builder) *StartHandler {
	return &StartHandler{
		BaseHandler: BaseHandler{messageSender: sender},
		chatUC:      chatUC,
		keyboard:    keyboard,
	}
}

func (h *StartHandler) Handle(ctx context.Context, msg *Message) error {
	session, err := h.chatUC.OpenSession(ctx, ConnectionID(msg.ChatID), connectionHeaders(msg))
	if err != nil {
		return fmt.Errorf("open session: %w", err)
	}

	ctxzap.Info(ctx, "telegram chat started",
		zap.String("session_id", session.ID),
		zap.Int("messages", len(session.Messages)),
	)

	if err := h.sendMessage(msg.ChatID, render.MsgWelcome, nil); err != nil {
		return err
	}

	last, ok := session.LastMessage()
	if !ok || last.Role != entity.RoleAssistant {
		return nil
	}
	return h.sendMessage(msg.ChatID, last.Content, h.keyboard.MainKeyboard())
}

// HelpHandler handles /help
type HelpHandler struct {
	BaseHandler
}

func NewHelpHandler(sender *MessageSender) *HelpHandler {
	return &HelpHandler{BaseHandler: BaseHandler{messageSender: sender}}
}

func (h *HelpHandler) Handle(ctx context.Context, msg *Message) error {
	return h.sendMessage(msg.ChatID, render.MsgHelp, nil)
}
