package tokens

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/novatidelabs/synkpay-banking-service/internal/services/sessions"
)

const bearerScheme = "Bearer"

// ErrCredentialNotFound means the request carried no credential and the
// caller has no cached session.
var ErrCredentialNotFound = errors.New("credential not found")

type SessionReader interface {
	GetSession(ctx context.Context, callerID string) (sessions.SessionRecord, error)
}

type Resolver struct {
	sessions SessionReader
	log      *zap.Logger
}

func NewResolver(reader SessionReader, log *zap.Logger) *Resolver {
	if log == nil {
		log = zap.NewNop()
	}
	return &Resolver{sessions: reader, log: log}
}

// Resolve returns the access token to present upstream. An inbound
// Authorization value wins over the cached session and short-circuits the
// store lookup entirely.
func (r *Resolver) Resolve(ctx context.Context, callerID, authorization string) (string, error) {
	if token := StripBearer(authorization); token != "" {
		return token, nil
	}

	if r.sessions == nil {
		return "", fmt.Errorf("session reader is nil")
	}

	record, err := r.sessions.GetSession(ctx, callerID)
	if err != nil {
		if errors.Is(err, sessions.ErrSessionNotFound) {
			r.log.Warn("no credential for caller", zap.String("caller_id", callerID))
			return "", ErrCredentialNotFound
		}
		return "", fmt.Errorf("resolve cached session: %w", err)
	}
	if strings.TrimSpace(record.AccessToken) == "" {
		r.log.Warn("cached session has empty access token", zap.String("caller_id", callerID))
		return "", ErrCredentialNotFound
	}

	return record.AccessToken, nil
}

// StripBearer trims surrounding whitespace and removes a leading
// case-insensitive Bearer scheme. Whitespace inside the token is kept.
func StripBearer(value string) string {
	trimmed := strings.TrimSpace(value)
	if len(trimmed) < len(bearerScheme) || !strings.EqualFold(trimmed[:len(bearerScheme)], bearerScheme) {
		return trimmed
	}

	rest := trimmed[len(bearerScheme):]
	if rest == "" {
		return ""
	}
	if r, _ := utf8.DecodeRuneInString(rest); !unicode.IsSpace(r) {
		return trimmed
	}
	return strings.TrimSpace(rest)
}
