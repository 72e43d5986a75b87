package rag

import (
	"context"
	"sync"

	"github.com/samsontands/RAG/internal/entity"
)

type answerer interface {
	answer(ctx context.Context, req *entity.ChatRequest) (*entity.ChatResponse, error)
}

// Engine is a per-session chat handle. The history is sent along with every
// question so the backend sees the same conversation the user sees.
type Engine struct {
	mu      sync.Mutex
	history []entity.Message
	backend answerer
}

var _ entity.ChatEngine = &Engine{}

func newEngine(backend answerer) *Engine {
	return &Engine{backend: backend}
}

func (e *Engine) Chat(ctx context.Context, query string) (*entity.ChatResponse, error) {
	req := &entity.ChatRequest{
		Prompt:            query,
		History:           e.History(),
		ReturnContextDocs: true,
	}
	return e.backend.answer(ctx, req)
}

func (e *Engine) Reset(messages []entity.Message) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.history = append(make([]entity.Message, 0, len(messages)), messages...)
}

func (e *Engine) Append(messages ...entity.Message) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.history = append(e.history, messages...)
}

func (e *Engine) History() []entity.Message {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make([]entity.Message, len(e.history))
	copy(out, e.history)
	return out
}
