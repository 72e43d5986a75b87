package files

import (
	"context"
	"errors"
	"net/http"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/samsontands/RAG/internal/entity"
	"github.com/samsontands/RAG/internal/pkg/logger"
	"github.com/samsontands/RAG/internal/pkg/response"
	"go.uber.org/zap"
)

type Handler struct {
	usecase FilesUsecase
}

func NewHandler(usecase FilesUsecase) *Handler {
	return &Handler{usecase: usecase}
}

// ListFiles handles GET /files - Table of the indexed documents
func (h *Handler) ListFiles(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "ListFiles")

	table, err := h.usecase.Table(ctx)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Success(w, table)
}

// GetInfo handles GET /info - Upload location and backend caption
func (h *Handler) GetInfo(w http.ResponseWriter, r *http.Request) {
	response.Success(w, h.usecase.Info())
}

func (h *Handler) handleUsecaseError(ctx context.Context, w http.ResponseWriter, err error) {
	status, message := http.StatusInternalServerError, "internal server error"
	if errors.Is(err, entity.ErrIndexedFilesUnavailable) {
		status, message = http.StatusBadGateway, "indexed files are unavailable"
	}

	ctxzap.Error(ctx, message, zap.Error(err))
	response.Error(w, status, message)
}
