package apiapp

import (
	"errors"
	"net/http"
	"strings"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/novatidelabs/synkpay-banking-service/internal/services/internalauth"
	"github.com/novatidelabs/synkpay-banking-service/internal/transport/http/correlation"
	httperrors "github.com/novatidelabs/synkpay-banking-service/internal/transport/http/errors"
)

const (
	requestTimeout         = 60 * time.Second
	maxCorrelationIDLength = 128
	unauthorizedInternal   = "Unauthorized internal request. This service should only be accessed by the API Gateway."
)

func ApplyMiddlewares(r chiRouter, log *zap.Logger) {
	r.Use(CorrelationID)
	r.Use(chimiddleware.RealIP)
	r.Use(requestLogger(log))
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(requestTimeout))
}

// CorrelationID reuses the inbound X-Correlation-Id or mints a new one, and
// echoes it on the response.
func CorrelationID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(r.Header.Get(correlation.Header))
		if id == "" || len(id) > maxCorrelationIDLength {
			id = uuid.NewString()
		}
		w.Header().Set(correlation.Header, id)
		next.ServeHTTP(w, r.WithContext(correlation.WithID(r.Context(), id)))
	})
}

func InternalAuthMiddleware(guard *internalauth.Guard, log *zap.Logger) func(http.Handler) http.Handler {
	if log == nil {
		log = zap.NewNop()
	}
	header := internalauth.DefaultHeader
	if guard != nil {
		header = guard.Header()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			err := guard.Check(r.Header.Get(header))
			switch {
			case err == nil:
				next.ServeHTTP(w, r)
			case errors.Is(err, internalauth.ErrMisconfigured):
				log.Error("internal auth secret is not configured",
					zap.String("path", r.URL.Path),
					zap.String("correlation_id", correlationID(r)),
				)
				httperrors.Write(w, http.StatusInternalServerError, httperrors.APIError{
					Code:    "INTERNAL_AUTH_MISCONFIGURED",
					Message: "internal authentication is not configured",
				})
			default:
				log.Warn("rejected internal request",
					zap.String("path", r.URL.Path),
					zap.String("method", r.Method),
					zap.String("remote_addr", r.RemoteAddr),
					zap.Bool("header_present", r.Header.Get(header) != ""),
					zap.String("correlation_id", correlationID(r)),
				)
				httperrors.Write(w, http.StatusUnauthorized, httperrors.APIError{
					Code:    "UNAUTHORIZED",
					Message: unauthorizedInternal,
				})
			}
		})
	}
}

func requestLogger(log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			if log != nil {
				log.Info("http_request",
					zap.String("method", r.Method),
					zap.String("path", r.URL.Path),
					zap.Int("status", ww.Status()),
					zap.Duration("duration", time.Since(start)),
					zap.String("correlation_id", correlationID(r)),
				)
			}
		})
	}
}

func correlationID(r *http.Request) string {
	id, _ := correlation.FromContext(r.Context())
	return id
}

type chiRouter interface {
	Use(middlewares ...func(http.Handler) http.Handler)
}
