package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/samsontands/RAG/internal/entity"
	"github.com/samsontands/RAG/internal/pkg/logger"
	"github.com/samsontands/RAG/internal/pkg/validator"
	"github.com/samsontands/RAG/internal/telegram/render"
	"go.uber.org/zap"
)

// ChatHandler answers every plain text message as a question about the documents
type ChatHandler struct {
	BaseHandler
	chatUC    ChatUsecase
	validator *validator.Validator
	bot       Sender
	logger    *zap.Logger
}

func NewChatHandler(
	sender *MessageSender,
	chatUC ChatUsecase,
	validator *validator.Validator,
	bot Sender,
	logger *zap.Logger,
) *ChatHandler {
	return &ChatHandler{
		BaseHandler: BaseHandler{messageSender: sender},
		chatUC:      chatUC,
		validator:   validator,
		bot:         bot,
		logger:      logger,
	}
}

func (h *ChatHandler) Handle(ctx context.Context, msg *Message) error {
	if strings.TrimSpace(msg.Text) == "" {
		return h.sendMessage(msg.ChatID, render.MsgTextOnly, nil)
	}

	if err := h.validator.ValidateSubmitMessage(&entity.SubmitMessageRequest{Text: msg.Text}); err != nil {
		return err
	}

	session, err := h.chatUC.OpenSession(ctx, ConnectionID(msg.ChatID), connectionHeaders(msg))
	if err != nil {
		return fmt.Errorf("open session: %w", err)
	}
	ctx = logger.WithSession(ctx, session.ID)

	typing := NewTypingNotifier(h.bot, msg.ChatID, h.logger)
	session, err = h.chatUC.SubmitMessage(ctx, session.ID, msg.Text, typing)
	if err != nil {
		return fmt.Errorf("submit message: %w", err)
	}

	answer, ok := session.LastMessage()
	if !ok || answer.Role != entity.RoleAssistant {
		ctxzap.Warn(ctx, "no answer after turn", zap.String("state", string(session.State())))
		return nil
	}

	return h.sendMessage(msg.ChatID, answer.Content, nil)
}
