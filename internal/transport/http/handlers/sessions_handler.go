package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/novatidelabs/synkpay-banking-service/internal/services/sessions"
	"github.com/novatidelabs/synkpay-banking-service/internal/transport/http/dto"
)

type SessionClearer interface {
	Clear(ctx context.Context, callerID string) error
}

type SessionsHandler struct {
	sessions SessionClearer
	log      *zap.Logger
}

func NewSessionsHandler(clearer SessionClearer, log *zap.Logger) *SessionsHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &SessionsHandler{sessions: clearer, log: log}
}

// Clear drops the cached credentials of a caller, typically on logout.
func (h *SessionsHandler) Clear(w http.ResponseWriter, r *http.Request) {
	if h.sessions == nil {
		writeInternal(w, "SESSION_SERVICE_UNAVAILABLE", "session service is unavailable")
		return
	}

	callerID := chi.URLParam(r, "callerId")
	if err := h.sessions.Clear(r.Context(), callerID); err != nil {
		if errors.Is(err, sessions.ErrInvalidInput) {
			writeBadRequest(w, "INVALID_REQUEST", "callerId is required")
			return
		}
		writeUnexpected(w, r, h.log, callerID, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.SessionClearedResponse{CallerID: callerID, Cleared: true})
}
