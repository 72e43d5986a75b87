package chat

import (
	"context"

	"github.com/samsontands/RAG/internal/entity"
)

type SessionStore interface {
	GetOrCreateSession(ctx context.Context, connectionID string, headers map[string]string) (*entity.Session, bool, error)
	GetSession(ctx context.Context, sessionID string) (*entity.Session, error)
	AppendUserMessage(ctx context.Context, sessionID, text string) (entity.Message, error)
	AppendAssistantMessage(ctx context.Context, sessionID, text string) (entity.Message, error)
	Engine(ctx context.Context, sessionID string) (entity.ChatEngine, error)
	LockTurn(ctx context.Context, sessionID string) (func(), error)
	SetWorking(ctx context.Context, sessionID string, working bool) error
}

// WorkingIndicator is shown to the user while an answer is being produced
type WorkingIndicator interface {
	Start(ctx context.Context)
	Stop()
}
