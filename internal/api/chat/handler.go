package chat

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/samsontands/RAG/internal/api/middleware"
	"github.com/samsontands/RAG/internal/entity"
	"github.com/samsontands/RAG/internal/pkg/formatter"
	"github.com/samsontands/RAG/internal/pkg/logger"
	"github.com/samsontands/RAG/internal/pkg/response"
	"github.com/samsontands/RAG/internal/pkg/validator"
	"go.uber.org/zap"
)

const maxBodyBytes = 1 << 20

type Handler struct {
	usecase    ChatUsecase
	validator  *validator.Validator
	formatters *formatter.Factory
}

func NewHandler(usecase ChatUsecase, validator *validator.Validator) *Handler {
	return &Handler{
		usecase:    usecase,
		validator:  validator,
		formatters: formatter.NewFactory(),
	}
}

// GetSession handles GET /chat/session - Get or create the caller's session
func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "GetSession")

	session, err := h.openSession(ctx, r)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Success(w, toSessionDTO(session))
}

// SubmitMessage handles POST /chat/messages - Ask a question and wait for the answer
func (h *Handler) SubmitMessage(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "SubmitMessage")

	var req entity.SubmitMessageRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	if err := h.validator.ValidateSubmitMessage(&req); err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, "validation failed", err)
		return
	}

	session, err := h.openSession(ctx, r)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}
	ctx = logger.WithSession(ctx, session.ID)

	ctxzap.Info(ctx, "submitting message", zap.Int("length", len(req.Text)))

	session, err = h.usecase.SubmitMessage(ctx, session.ID, req.Text, nil)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Success(w, toSessionDTO(session))
}

// GetTranscript handles GET /chat/transcript?format= - Download the conversation
func (h *Handler) GetTranscript(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "GetTranscript")

	format, err := h.validator.ParseTranscriptFormat(r.URL.Query().Get("format"))
	if err != nil {
		ctxzap.Warn(ctx, "invalid format parameter", zap.String("format", r.URL.Query().Get("format")))
		h.respondError(ctx, w, http.StatusBadRequest, "format must be one of: markdown, html, pdf, docx, yaml", err)
		return
	}
	ctx = logger.AddFields(ctx, zap.String("format", string(format)))

	session, err := h.openSession(ctx, r)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	fmtr, err := h.formatters.Create(format)
	if err != nil {
		h.respondError(ctx, w, http.StatusNotImplemented, "format not implemented", err)
		return
	}

	data, err := fmtr.Format(entity.NewTranscript(session))
	if err != nil {
		h.respondError(ctx, w, http.StatusInternalServerError, "failed to format transcript", err)
		return
	}

	ctxzap.Info(ctx, "transcript exported", zap.String("session_id", session.ID), zap.Int("bytes", len(data)))
	response.Attachment(w, fmtr.ContentType(), fmt.Sprintf("chat-%s%s", session.ID, fmtr.FileExtension()), data)
}

func (h *Handler) openSession(ctx context.Context, r *http.Request) (*entity.Session, error) {
	connectionID, headers := middleware.ConnectionFromContext(r.Context())
	return h.usecase.OpenSession(ctx, connectionID, headers)
}

func (h *Handler) respondError(ctx context.Context, w http.ResponseWriter, status int, message string, err error) {
	ctxzap.Error(ctx, message, zap.Error(err))
	response.Error(w, status, message)
}

func (h *Handler) handleUsecaseError(ctx context.Context, w http.ResponseWriter, err error) {
	if errors.Is(err, entity.ErrSessionNotFound) {
		h.respondError(ctx, w, http.StatusNotFound, "session not found", err)
	} else if errors.Is(err, entity.ErrInvalidParameter) || errors.Is(err, entity.ErrMissingField) {
		h.respondError(ctx, w, http.StatusBadRequest, "invalid parameter", err)
	} else if errors.Is(err, entity.ErrNoPendingTurn) {
		h.respondError(ctx, w, http.StatusConflict, "no question is waiting for an answer", err)
	} else {
		h.respondError(ctx, w, http.StatusInternalServerError, "internal server error", err)
	}
}
