package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/samsontands/RAG/internal/entity"
	"github.com/samsontands/RAG/internal/pkg/formatter"
	"github.com/samsontands/RAG/internal/pkg/validator"
	"github.com/samsontands/RAG/internal/telegram/render"
	"go.uber.org/zap"
)

// TranscriptHandler handles /transcript [format]: it sends the conversation as a file
type TranscriptHandler struct {
	BaseHandler
	chatUC     ChatUsecase
	validator  *validator.Validator
	formatters *formatter.Factory
}

func NewTranscriptHandler(sender *MessageSender, chatUC ChatUsecase, validator *validator.Validator) *TranscriptHandler {
	return &TranscriptHandler{
		BaseHandler: BaseHandler{messageSender: sender},
		chatUC:      chatUC,
		validator:   validator,
		formatters:  formatter.NewFactory(),
	}
}

func (h *TranscriptHandler) Handle(ctx context.Context, msg *Message) error {
	format, err := h.validator.ParseTranscriptFormat(strings.ToLower(strings.TrimSpace(msg.Args)))
	if err != nil {
		return h.sendMessage(msg.ChatID, render.ErrInvalidFormat, nil)
	}

	session, err := h.chatUC.OpenSession(ctx, ConnectionID(msg.ChatID), connectionHeaders(msg))
	if err != nil {
		return fmt.Errorf("open session: %w", err)
	}

	fmtr, err := h.formatters.Create(format)
	if err != nil {
		return fmt.Errorf("create formatter: %w", err)
	}

	data, err := fmtr.Format(entity.NewTranscript(session))
	if err != nil {
		return fmt.Errorf("format transcript: %w", err)
	}

	ctxzap.Info(ctx, "sending transcript",
		zap.String("session_id", session.ID),
		zap.String("format", string(format)),
		zap.Int("bytes", len(data)),
	)

	return h.messageSender.SendDocument(msg.ChatID, "chat-"+session.ID+fmtr.FileExtension(), data)
}
