package rag

import (
	"context"
	"fmt"
	"time"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/samsontands/RAG/internal/entity"
	"go.uber.org/zap"
)

var mockDocuments = []entity.IndexedDocument{
	{Path: "gdrive/handbook/employee-handbook.pdf", ModifiedAt: 1717236000, Status: strPtr("INDEXED")},
	{Path: "sharepoint/finance/q3-report.docx", ModifiedAt: 1719828000, Status: strPtr("INDEXED")},
	{Path: "gdrive/notes/meeting-notes.md", ModifiedAt: 1722506400, Status: strPtr("PARSING")},
}

// MockConnector answers every question locally, for demos and development
type MockConnector struct {
	logger *zap.Logger
}

func NewMockConnector(logger *zap.Logger) *MockConnector {
	return &MockConnector{
		logger: logger,
	}
}

func (m *MockConnector) NewEngine() entity.ChatEngine {
	return newEngine(m)
}

func (m *MockConnector) answer(ctx context.Context, req *entity.ChatRequest) (*entity.ChatResponse, error) {
	ctxzap.Info(ctx, "[MOCK] answering question",
		zap.Int("prompt_length", len(req.Prompt)),
		zap.Int("history_length", len(req.History)),
	)

	// Simulate backend latency
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%w: %w", entity.ErrChatEngine, ctx.Err())
	case <-time.After(300 * time.Millisecond):
	}

	answer := fmt.Sprintf("This is a mock answer to %q based on %d earlier messages.", req.Prompt, len(req.History))
	nodes := make([]entity.SourceNode, 0, 2)
	for _, doc := range mockDocuments[:2] {
		nodes = append(nodes, entity.SourceNode{Metadata: map[string]any{"path": doc.Path}})
	}

	return &entity.ChatResponse{
		Response:    &answer,
		SourceNodes: entity.SourceNodes{Nodes: nodes, Present: true},
	}, nil
}

func (m *MockConnector) ListIndexedFiles(ctx context.Context) (*entity.IndexedFiles, error) {
	ctxzap.Info(ctx, "[MOCK] listing indexed files", zap.Int("file_count", len(mockDocuments)))
	return toIndexedFiles(mockDocuments), nil
}

func strPtr(s string) *string {
	return &s
}
