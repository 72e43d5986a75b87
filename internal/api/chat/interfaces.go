package chat

import (
	"context"

	"github.com/samsontands/RAG/internal/entity"
	chatuc "github.com/samsontands/RAG/internal/usecase/chat"
)

type ChatUsecase interface {
	OpenSession(ctx context.Context, connectionID string, headers map[string]string) (*entity.Session, error)
	SubmitMessage(ctx context.Context, sessionID, text string, indicator chatuc.WorkingIndicator) (*entity.Session, error)
}
