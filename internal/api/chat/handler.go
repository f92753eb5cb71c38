package chat

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/tnega/gosearch/internal/entity"
	"github.com/tnega/gosearch/internal/pkg/logger"
	"github.com/tnega/gosearch/internal/pkg/response"
	chatuc "github.com/tnega/gosearch/internal/usecase/chat"
	"go.uber.org/zap"
)

type Handler struct {
	usecase ChatUsecase
}

func NewHandler(usecase ChatUsecase) *Handler {
	return &Handler{usecase: usecase}
}

// StartSessionResponse is returned by POST /chat/sessions
type StartSessionResponse struct {
	SessionID string `json:"session_id"`
	Welcome   string `json:"welcome"`
}

// MessageRequest is the body of POST /chat/sessions/{sessionID}/messages
type MessageRequest struct {
	Message string `json:"message"`
}

// MessageResponse carries the composed answer for one message
type MessageResponse struct {
	SessionID string   `json:"session_id"`
	Answer    string   `json:"answer"`
	Sources   []string `json:"sources,omitempty"`
}

// StartSession handles POST /chat/sessions
func (h *Handler) StartSession(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "StartSession")

	sessionID := uuid.NewString()

	if _, err := h.usecase.StartSession(ctx, sessionID); err != nil {
		ctxzap.Error(ctx, "failed to start session", zap.Error(err))

		status := http.StatusInternalServerError
		if errors.Is(err, entity.ErrMissingAPIKey) || errors.Is(err, entity.ErrStoreConfigMissing) {
			status = http.StatusServiceUnavailable
		}
		response.Error(w, status, err.Error())
		return
	}

	response.Created(w, StartSessionResponse{
		SessionID: sessionID,
		Welcome:   chatuc.WelcomeMessage,
	})
}

// SendMessage handles POST /chat/sessions/{sessionID}/messages
func (h *Handler) SendMessage(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "SendMessage")

	sessionID := chi.URLParam(r, "sessionID")

	var req MessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		ctxzap.Error(ctx, "failed to decode request body", zap.Error(err))
		response.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	answer, err := h.usecase.HandleMessage(ctx, sessionID, req.Message)
	if err != nil {
		switch {
		case errors.Is(err, entity.ErrSessionNotFound):
			response.Error(w, http.StatusNotFound, chatuc.RestartMessage)
		case errors.Is(err, entity.ErrEmptyMessage):
			response.Error(w, http.StatusBadRequest, err.Error())
		default:
			// Query-time failure: the session stays usable, the client gets
			// the same fallback text the transcript recorded.
			response.Error(w, http.StatusBadGateway, chatuc.ErrorMessage(err))
		}
		return
	}

	response.Success(w, MessageResponse{
		SessionID: sessionID,
		Answer:    answer.Text,
		Sources:   answer.Sources,
	})
}

// EndSession handles DELETE /chat/sessions/{sessionID}
func (h *Handler) EndSession(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "EndSession")

	sessionID := chi.URLParam(r, "sessionID")
	h.usecase.EndSession(ctx, sessionID)

	response.NoContent(w)
}
