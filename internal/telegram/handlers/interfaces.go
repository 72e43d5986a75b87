package handlers

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/samsontands/RAG/internal/entity"
	chatuc "github.com/samsontands/RAG/internal/usecase/chat"
)

type ChatUsecase interface {
	OpenSession(ctx context.Context, connectionID string, headers map[string]string) (*entity.Session, error)
	SubmitMessage(ctx context.Context, sessionID, text string, indicator chatuc.WorkingIndicator) (*entity.Session, error)
}

type FilesUsecase interface {
	Table(ctx context.Context) (*entity.FileTable, error)
	Info() entity.WorkspaceInfo
}

// Sender is the part of *tgbotapi.BotAPI the handlers use
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}
