package handlers

import (
	"context"
	"fmt"

	"github.com/samsontands/RAG/internal/telegram/render"
)

// FilesHandler handles /files: it replies with the indexed documents
type FilesHandler struct {
	BaseHandler
	filesUC FilesUsecase
}

func NewFilesHandler(sender *MessageSender, filesUC FilesUsecase) *FilesHandler {
	return &FilesHandler{
		BaseHandler: BaseHandler{messageSender: sender},
		filesUC:     filesUC,
	}
}

func (h *FilesHandler) Handle(ctx context.Context, msg *Message) error {
	table, err := h.filesUC.Table(ctx)
	if err != nil {
		return fmt.Errorf("list files: %w", err)
	}

	if len(table.Rows) == 0 {
		return h.sendMessage(msg.ChatID, render.MsgNoFiles, nil)
	}
	return h.messageSender.SendHTML(msg.ChatID, render.RenderFileTable(table))
}

// SourcesHandler handles /sources: it replies with the upload link
type SourcesHandler struct {
	BaseHandler
	filesUC FilesUsecase
}

func NewSourcesHandler(sender *MessageSender, filesUC FilesUsecase) *SourcesHandler {
	return &SourcesHandler{
		BaseHandler: BaseHandler{messageSender: sender},
		filesUC:     filesUC,
	}
}

func (h *SourcesHandler) Handle(ctx context.Context, msg *Message) error {
	return h.sendMessage(msg.ChatID, render.RenderSources(h.filesUC.Info()), nil)
}
