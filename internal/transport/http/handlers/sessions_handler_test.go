package handlers

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/novatidelabs/synkpay-banking-service/internal/services/sessions"
)

type fakeSessionClearer struct {
	cleared []string
	err     error
}

func (f *fakeSessionClearer) Clear(_ context.Context, callerID string) error {
	if f.err != nil {
		return f.err
	}
	if callerID == "" {
		return sessions.ErrInvalidInput
	}
	f.cleared = append(f.cleared, callerID)
	return nil
}

func newSessionsRouter(clearer SessionClearer) http.Handler {
	h := NewSessionsHandler(clearer, zap.NewNop())
	r := chi.NewRouter()
	r.Delete("/sessions/{callerId}", h.Clear)
	return r
}

func TestSessionsHandlerClear(t *testing.T) {
	clearer := &fakeSessionClearer{}
	rr := serve(newSessionsRouter(clearer), http.MethodDelete, "/sessions/u1", "", nil)

	if rr.Code != http.StatusOK {
		t.Fatalf("unexpected status: got %d want %d", rr.Code, http.StatusOK)
	}
	if len(clearer.cleared) != 1 || clearer.cleared[0] != "u1" {
		t.Fatalf("unexpected cleared callers: %v", clearer.cleared)
	}
}

func TestSessionsHandlerStoreFailure(t *testing.T) {
	clearer := &fakeSessionClearer{err: errors.New("dial tcp: connection refused")}
	rr := serve(newSessionsRouter(clearer), http.MethodDelete, "/sessions/u1", "", nil)

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("unexpected status: got %d want %d", rr.Code, http.StatusInternalServerError)
	}
}
