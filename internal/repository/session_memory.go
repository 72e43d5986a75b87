package repository

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"github.com/samsontands/RAG/internal/config"
	"github.com/samsontands/RAG/internal/entity"
	"go.uber.org/zap"
)

// SessionRepository defines the per-connection conversation store
type SessionRepository interface {
	GetOrCreateSession(ctx context.Context, connectionID string, headers map[string]string) (*entity.Session, bool, error)
	GetSession(ctx context.Context, sessionID string) (*entity.Session, error)
	AppendUserMessage(ctx context.Context, sessionID, text string) (entity.Message, error)
	AppendAssistantMessage(ctx context.Context, sessionID, text string) (entity.Message, error)
	Engine(ctx context.Context, sessionID string) (entity.ChatEngine, error)
	LockTurn(ctx context.Context, sessionID string) (func(), error)
	SetWorking(ctx context.Context, sessionID string, working bool) error
}

// EngineFactory hands out a fresh chat handle for every new session
type EngineFactory interface {
	NewEngine() entity.ChatEngine
}

var _ SessionRepository = &SessionMemory{}

// sessionEntry is the mutable state of one session.
// mu guards the fields; turn serializes whole conversational turns.
type sessionEntry struct {
	mu           sync.Mutex
	turn         chan struct{}
	id           string
	connectionID string
	messages     []entity.Message
	engine       entity.ChatEngine
	working      bool
	createdAt    time.Time
	updatedAt    time.Time
}

// SessionMemory keeps sessions in process memory. Idle sessions expire after the
// configured TTL; nothing is persisted.
type SessionMemory struct {
	mu          sync.Mutex
	sessions    *cache.Cache // session_id -> *sessionEntry
	connections *cache.Cache // connection_id -> session_id
	engines     EngineFactory
	logger      *zap.Logger
	now         func() time.Time
}

func NewSessionMemory(cfg config.SessionConfig, engines EngineFactory, logger *zap.Logger) *SessionMemory {
	s := &SessionMemory{
		sessions:    cache.New(cfg.TTL, cfg.CleanupInterval),
		connections: cache.New(cfg.TTL, cfg.CleanupInterval),
		engines:     engines,
		logger:      logger,
		now:         time.Now,
	}

	s.sessions.OnEvicted(func(sessionID string, v interface{}) {
		entry := v.(*sessionEntry)
		if current, ok := s.connections.Get(entry.connectionID); ok && current.(string) == sessionID {
			s.connections.Delete(entry.connectionID)
		}
		s.logger.Info("chat session expired",
			zap.String("session_id", sessionID),
			zap.String("connection_id", entry.connectionID),
		)
	})

	return s
}

// GetOrCreateSession returns the session bound to connectionID, creating and
// seeding it on first access. The bool reports whether it was created.
func (s *SessionMemory) GetOrCreateSession(
	ctx context.Context,
	connectionID string,
	headers map[string]string,
) (*entity.Session, bool, error) {
	if connectionID == "" {
		return nil, false, fmt.Errorf("%w: connection_id", entity.ErrMissingField)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if sessionID, ok := s.connections.Get(connectionID); ok {
		if entry, ok := s.lookup(sessionID.(string)); ok {
			s.connections.SetDefault(connectionID, entry.id)
			return entry.snapshot(), false, nil
		}
	}

	seed := entity.StarterExchange()
	engine := s.engines.NewEngine()
	engine.Reset(seed)

	now := s.now()
	entry := &sessionEntry{
		turn:         make(chan struct{}, 1),
		id:           "uuid-" + uuid.NewString(),
		connectionID: connectionID,
		messages:     seed,
		engine:       engine,
		createdAt:    now,
		updatedAt:    now,
	}

	s.sessions.SetDefault(entry.id, entry)
	s.connections.SetDefault(connectionID, entry.id)

	s.logger.Info("chat session created",
		zap.String("session_id", entry.id),
		zap.String("connection_id", connectionID),
		zap.Any("headers", headers),
	)

	return entry.snapshot(), true, nil
}

func (s *SessionMemory) GetSession(ctx context.Context, sessionID string) (*entity.Session, error) {
	entry, err := s.entry(sessionID)
	if err != nil {
		return nil, err
	}
	return entry.snapshot(), nil
}

// AppendUserMessage appends a user turn. Blank text yields entity.ErrEmptyInput
// and leaves the history untouched.
func (s *SessionMemory) AppendUserMessage(ctx context.Context, sessionID, text string) (entity.Message, error) {
	if strings.TrimSpace(text) == "" {
		return entity.Message{}, entity.ErrEmptyInput
	}
	return s.appendMessage(sessionID, entity.Message{Role: entity.RoleUser, Content: text})
}

func (s *SessionMemory) AppendAssistantMessage(ctx context.Context, sessionID, text string) (entity.Message, error) {
	return s.appendMessage(sessionID, entity.Message{Role: entity.RoleAssistant, Content: text})
}

func (s *SessionMemory) Engine(ctx context.Context, sessionID string) (entity.ChatEngine, error) {
	entry, err := s.entry(sessionID)
	if err != nil {
		return nil, err
	}
	return entry.engine, nil
}

// LockTurn blocks until no other turn of the session is in progress, or ctx is done.
// The returned func releases the lock.
func (s *SessionMemory) LockTurn(ctx context.Context, sessionID string) (func(), error) {
	entry, err := s.entry(sessionID)
	if err != nil {
		return nil, err
	}

	release := func() { <-entry.turn }

	select {
	case entry.turn <- struct{}{}:
		return release, nil
	default:
	}

	select {
	case entry.turn <- struct{}{}:
		return release, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (s *SessionMemory) SetWorking(ctx context.Context, sessionID string, working bool) error {
	entry, err := s.entry(sessionID)
	if err != nil {
		return err
	}

	entry.mu.Lock()
	entry.working = working
	entry.mu.Unlock()
	return nil
}

// Len returns the number of live sessions
func (s *SessionMemory) Len() int {
	return s.sessions.ItemCount()
}

func (s *SessionMemory) appendMessage(sessionID string, msg entity.Message) (entity.Message, error) {
	entry, err := s.entry(sessionID)
	if err != nil {
		return entity.Message{}, err
	}

	entry.mu.Lock()
	entry.messages = append(entry.messages, msg)
	entry.updatedAt = s.now()
	entry.mu.Unlock()

	return msg, nil
}

// entry looks the session up and extends its lifetime
func (s *SessionMemory) entry(sessionID string) (*sessionEntry, error) {
	entry, ok := s.lookup(sessionID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", entity.ErrSessionNotFound, sessionID)
	}
	return entry, nil
}

func (s *SessionMemory) lookup(sessionID string) (*sessionEntry, bool) {
	v, ok := s.sessions.Get(sessionID)
	if !ok {
		return nil, false
	}
	entry := v.(*sessionEntry)
	s.sessions.SetDefault(sessionID, entry)
	return entry, true
}

func (e *sessionEntry) snapshot() *entity.Session {
	e.mu.Lock()
	defer e.mu.Unlock()

	messages := make([]entity.Message, len(e.messages))
	copy(messages, e.messages)

	return &entity.Session{
		ID:           e.id,
		ConnectionID: e.connectionID,
		Messages:     messages,
		Working:      e.working,
		CreatedAt:    e.createdAt,
		UpdatedAt:    e.updatedAt,
	}
}
