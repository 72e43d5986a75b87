package rag

import (
	"context"
	"fmt"
	"net/http"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/samsontands/RAG/internal/config"
	"github.com/samsontands/RAG/internal/entity"
	pkghttp "github.com/samsontands/RAG/pkg/http"
	"go.uber.org/zap"
)

// Connector talks to a Pathway-style retrieval backend
type Connector struct {
	config    config.RAGConnectorConfig
	connector *pkghttp.Connector
	logger    *zap.Logger
}

func NewConnector(
	cfg config.RAGConnectorConfig,
	logger *zap.Logger,
) *Connector {
	return &Connector{
		connector: newHTTPConnector(cfg.HTTPClientConfig, logger),
		config:    cfg,
		logger:    logger,
	}
}

// NewEngine returns a chat handle with an empty history
func (c *Connector) NewEngine() entity.ChatEngine {
	return newEngine(c)
}

// answer asks the backend one question.
// POST {chat_endpoint} {"prompt", "history", "return_context_docs"}
func (c *Connector) answer(ctx context.Context, req *entity.ChatRequest) (*entity.ChatResponse, error) {
	ctxzap.Debug(ctx, "asking RAG service",
		zap.Int("prompt_length", len(req.Prompt)),
		zap.Int("history_length", len(req.History)),
	)

	var resp entity.ChatResponse
	err := c.connector.DoRequest(ctx, http.MethodPost, c.config.ChatEndpoint, req, &resp,
		pkghttp.WithRetry(c.config.Retry.ToRetryOptions()...),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", entity.ErrChatEngine, err)
	}

	if resp.Response == nil {
		return nil, fmt.Errorf("%w: %w", entity.ErrChatEngine, entity.ErrMalformedChatResponse)
	}

	ctxzap.Debug(ctx, "RAG service answered",
		zap.Int("answer_length", len(*resp.Response)),
		zap.Int("source_count", len(resp.SourceNodes.Nodes)),
	)

	return &resp, nil
}

// ListIndexedFiles fetches the current document listing. No retry, no cache.
// POST {list_endpoint} {}
func (c *Connector) ListIndexedFiles(ctx context.Context) (*entity.IndexedFiles, error) {
	var docs []entity.IndexedDocument
	err := c.connector.DoRequest(ctx, http.MethodPost, c.config.ListEndpoint, struct{}{}, &docs)
	if err != nil {
		ctxzap.Error(ctx, "failed to list indexed files", zap.Error(err))
		return nil, fmt.Errorf("%w: %w", entity.ErrIndexedFilesUnavailable, err)
	}

	ctxzap.Debug(ctx, "indexed files listed", zap.Int("file_count", len(docs)))

	return toIndexedFiles(docs), nil
}
