package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/novatidelabs/synkpay-banking-service/internal/transport/http/correlation"
	httperrors "github.com/novatidelabs/synkpay-banking-service/internal/transport/http/errors"
)

const maxRequestBodyBytes = 1 << 20

func decodeJSON(r *http.Request, target any) error {
	decoder := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxRequestBodyBytes))
	decoder.DisallowUnknownFields()
	return decoder.Decode(target)
}

func callerIDFromQuery(r *http.Request) string {
	return strings.TrimSpace(r.URL.Query().Get("callerId"))
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	httperrors.Write(w, status, payload)
}

func writeBadRequest(w http.ResponseWriter, code, message string) {
	httperrors.Write(w, http.StatusBadRequest, httperrors.APIError{Code: code, Message: message})
}

func writeInternal(w http.ResponseWriter, code, message string) {
	httperrors.Write(w, http.StatusInternalServerError, httperrors.APIError{Code: code, Message: message})
}

func writeUnexpected(w http.ResponseWriter, r *http.Request, log *zap.Logger, callerID string, err error) {
	correlationID, _ := correlation.FromContext(r.Context())
	log.Error("unhandled request error",
		zap.Error(err),
		zap.Stack("stack"),
		zap.String("correlation_id", correlationID),
		zap.String("path", r.URL.Path),
		zap.String("method", r.Method),
		zap.String("caller_id", callerID),
	)
	httperrors.WriteInternal(w, r.URL.Path)
}
