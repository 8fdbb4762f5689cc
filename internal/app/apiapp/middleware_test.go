package apiapp

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/novatidelabs/synkpay-banking-service/internal/services/internalauth"
	"github.com/novatidelabs/synkpay-banking-service/internal/transport/http/correlation"
	httperrors "github.com/novatidelabs/synkpay-banking-service/internal/transport/http/errors"
)

func TestInternalAuthMiddlewareAllowsMatchingSecret(t *testing.T) {
	mw := InternalAuthMiddleware(internalauth.NewGuard("s3cret", ""), zap.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/currencies", nil)
	req.Header.Set("X-Internal-Auth", "s3cret")
	rr := httptest.NewRecorder()

	mw(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})).ServeHTTP(rr, req)

	if rr.Code != http.StatusNoContent {
		t.Fatalf("unexpected status: got %d want %d", rr.Code, http.StatusNoContent)
	}
}

func TestInternalAuthMiddlewareRejectsWrongSecret(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	mw := InternalAuthMiddleware(internalauth.NewGuard("s3cret", ""), zap.New(core))

	for _, value := range []string{"", "wrong"} {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/currencies", nil)
		if value != "" {
			req.Header.Set("X-Internal-Auth", value)
		}
		rr := httptest.NewRecorder()

		mw(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			t.Fatalf("handler must not be called without the internal secret")
		})).ServeHTTP(rr, req)

		if rr.Code != http.StatusUnauthorized {
			t.Fatalf("unexpected status: got %d want %d", rr.Code, http.StatusUnauthorized)
		}
		var body httperrors.APIError
		if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if body.Code != "UNAUTHORIZED" || body.Message != unauthorizedInternal {
			t.Fatalf("unexpected body: %+v", body)
		}
	}

	if got := logs.FilterLevelExact(zapcore.WarnLevel).Len(); got != 2 {
		t.Fatalf("unexpected warn entries: got %d want 2", got)
	}
	for _, entry := range logs.All() {
		for _, value := range entry.ContextMap() {
			if text, ok := value.(string); ok && strings.Contains(text, "s3cret") {
				t.Fatalf("secret leaked into logs: %+v", entry.ContextMap())
			}
		}
	}
}

func TestInternalAuthMiddlewareMisconfigured(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	mw := InternalAuthMiddleware(internalauth.NewGuard("", ""), zap.New(core))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/currencies", nil)
	req.Header.Set("X-Internal-Auth", "anything")
	rr := httptest.NewRecorder()

	mw(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		t.Fatalf("handler must not be called when the guard is misconfigured")
	})).ServeHTTP(rr, req)

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("unexpected status: got %d want %d", rr.Code, http.StatusInternalServerError)
	}
	var body httperrors.APIError
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.Code != "INTERNAL_AUTH_MISCONFIGURED" {
		t.Fatalf("unexpected code: %q", body.Code)
	}
	if got := logs.FilterLevelExact(zapcore.ErrorLevel).Len(); got != 1 {
		t.Fatalf("unexpected error entries: got %d want 1", got)
	}
}

func TestInternalAuthMiddlewareCustomHeader(t *testing.T) {
	mw := InternalAuthMiddleware(internalauth.NewGuard("s3cret", "X-Gateway-Secret"), zap.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/currencies", nil)
	req.Header.Set("X-Gateway-Secret", "s3cret")
	rr := httptest.NewRecorder()

	mw(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})).ServeHTTP(rr, req)

	if rr.Code != http.StatusNoContent {
		t.Fatalf("unexpected status: got %d want %d", rr.Code, http.StatusNoContent)
	}
}

func TestCorrelationIDIsEchoed(t *testing.T) {
	var seen string
	handler := CorrelationID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = correlation.FromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set(correlation.Header, "corr-42")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if seen != "corr-42" || rr.Header().Get(correlation.Header) != "corr-42" {
		t.Fatalf("unexpected correlation id: context=%q header=%q", seen, rr.Header().Get(correlation.Header))
	}
}

func TestCorrelationIDIsGenerated(t *testing.T) {
	var seen string
	handler := CorrelationID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = correlation.FromContext(r.Context())
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	if _, err := uuid.Parse(seen); err != nil {
		t.Fatalf("generated correlation id is not a uuid: %q", seen)
	}
	if rr.Header().Get(correlation.Header) != seen {
		t.Fatalf("correlation id not echoed: got %q want %q", rr.Header().Get(correlation.Header), seen)
	}
}

func TestRequestLoggerRecordsStatus(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	handler := requestLogger(zap.New(core))(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/health", nil))

	entries := logs.FilterMessage("http_request").All()
	if len(entries) != 1 {
		t.Fatalf("unexpected log entries: got %d want 1", len(entries))
	}
	if status := entries[0].ContextMap()["status"]; status != int64(http.StatusTeapot) {
		t.Fatalf("unexpected status field: %v", status)
	}
}
