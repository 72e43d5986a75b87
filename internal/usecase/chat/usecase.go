package chat

import (
	"context"
	"errors"
	"fmt"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/samsontands/RAG/internal/entity"
	"github.com/samsontands/RAG/internal/pkg/logger"
	"go.uber.org/zap"
)

// ChatUsecase drives the conversation of every session: it decides whether an
// assistant turn is owed, produces it and keeps the engine history in step
// with the displayed one.
type ChatUsecase struct {
	store          SessionStore
	fallbackAnswer string
}

func NewUsecase(store SessionStore, fallbackAnswer string) *ChatUsecase {
	return &ChatUsecase{
		store:          store,
		fallbackAnswer: fallbackAnswer,
	}
}

// OpenSession returns the session of a connection, creating a seeded one on first use
func (uc *ChatUsecase) OpenSession(
	ctx context.Context,
	connectionID string,
	headers map[string]string,
) (*entity.Session, error) {
	session, _, err := uc.store.GetOrCreateSession(ctx, connectionID, headers)
	if err != nil {
		return nil, fmt.Errorf("open session: %w", err)
	}
	return session, nil
}

// GetSession returns a snapshot of the session without advancing it
func (uc *ChatUsecase) GetSession(ctx context.Context, sessionID string) (*entity.Session, error) {
	session, err := uc.store.GetSession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	return session, nil
}

// SubmitMessage runs one full turn: it records the user message and produces
// the answer. Blank text is ignored and the session is returned unchanged.
func (uc *ChatUsecase) SubmitMessage(
	ctx context.Context,
	sessionID, text string,
	indicator WorkingIndicator,
) (*entity.Session, error) {
	ctx = logger.WithSession(ctx, sessionID)

	unlock, err := uc.store.LockTurn(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("lock turn: %w", err)
	}
	defer unlock()

	if _, err := uc.store.AppendUserMessage(ctx, sessionID, text); err != nil {
		if errors.Is(err, entity.ErrEmptyInput) {
			ctxzap.Debug(ctx, "empty message ignored")
			return uc.GetSession(ctx, sessionID)
		}
		return nil, fmt.Errorf("append user message: %w", err)
	}

	return uc.advance(ctx, sessionID, indicator)
}

// Advance produces the answer owed to a pending user message, if there is one
func (uc *ChatUsecase) Advance(
	ctx context.Context,
	sessionID string,
	indicator WorkingIndicator,
) (*entity.Session, error) {
	ctx = logger.WithSession(ctx, sessionID)

	unlock, err := uc.store.LockTurn(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("lock turn: %w", err)
	}
	defer unlock()

	return uc.advance(ctx, sessionID, indicator)
}

// ProduceAnswer answers the last user message of the session. It fails with
// entity.ErrNoPendingTurn when the last message is not from the user.
func (uc *ChatUsecase) ProduceAnswer(
	ctx context.Context,
	sessionID string,
	indicator WorkingIndicator,
) (entity.Message, error) {
	ctx = logger.WithSession(ctx, sessionID)

	unlock, err := uc.store.LockTurn(ctx, sessionID)
	if err != nil {
		return entity.Message{}, fmt.Errorf("lock turn: %w", err)
	}
	defer unlock()

	session, err := uc.GetSession(ctx, sessionID)
	if err != nil {
		return entity.Message{}, err
	}

	return uc.produceAnswer(ctx, session, indicator)
}

// advance expects the turn lock to be held
func (uc *ChatUsecase) advance(
	ctx context.Context,
	sessionID string,
	indicator WorkingIndicator,
) (*entity.Session, error) {
	session, err := uc.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if session.State() != entity.StatePendingAnswer {
		return session, nil
	}

	if _, err := uc.produceAnswer(ctx, session, indicator); err != nil {
		return nil, err
	}

	return uc.GetSession(ctx, sessionID)
}

// produceAnswer expects the turn lock to be held
func (uc *ChatUsecase) produceAnswer(
	ctx context.Context,
	session *entity.Session,
	indicator WorkingIndicator,
) (entity.Message, error) {
	question, ok := session.LastMessage()
	if !ok || question.Role != entity.RoleUser {
		return entity.Message{}, entity.ErrNoPendingTurn
	}

	engine, err := uc.store.Engine(ctx, session.ID)
	if err != nil {
		return entity.Message{}, fmt.Errorf("get engine: %w", err)
	}

	content := uc.ask(ctx, session.ID, engine, question.Content, indicator)

	answer, err := uc.store.AppendAssistantMessage(ctx, session.ID, content)
	if err != nil {
		return entity.Message{}, fmt.Errorf("append assistant message: %w", err)
	}
	engine.Append(question, answer)

	return answer, nil
}

// ask runs the chat call with the working indicator shown. The call is not
// cancelled with ctx; the HTTP client timeout bounds it instead. Any failure
// yields the fallback answer.
func (uc *ChatUsecase) ask(
	ctx context.Context,
	sessionID string,
	engine entity.ChatEngine,
	question string,
	indicator WorkingIndicator,
) string {
	callCtx := context.WithoutCancel(ctx)

	if err := uc.store.SetWorking(callCtx, sessionID, true); err != nil {
		ctxzap.Warn(ctx, "failed to mark session as working", zap.Error(err))
	}
	if indicator != nil {
		indicator.Start(callCtx)
	}

	resp, err := engine.Chat(callCtx, question)

	if indicator != nil {
		indicator.Stop()
	}
	if err := uc.store.SetWorking(callCtx, sessionID, false); err != nil {
		ctxzap.Warn(ctx, "failed to clear session working flag", zap.Error(err))
	}

	if err == nil && (resp == nil || resp.Response == nil) {
		err = fmt.Errorf("%w: %w", entity.ErrChatEngine, entity.ErrMalformedChatResponse)
	}
	if err != nil {
		ctxzap.Error(ctx, "chat engine failed, answering with fallback", zap.Error(err))
		return uc.fallbackAnswer
	}

	return renderResponse(ctx, resp)
}
