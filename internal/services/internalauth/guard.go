package internalauth

import (
	"crypto/subtle"
	"errors"
	"strings"
)

const DefaultHeader = "X-Internal-Auth"

var (
	ErrMisconfigured = errors.New("internal auth secret is not configured")
	ErrUnauthorized  = errors.New("unauthorized internal request")
)

// Guard admits only requests that carry the shared internal secret.
type Guard struct {
	secret string
	header string
}

func NewGuard(secret, header string) *Guard {
	header = strings.TrimSpace(header)
	if header == "" {
		header = DefaultHeader
	}
	return &Guard{secret: secret, header: header}
}

// Header is the name of the request header carrying the secret.
func (g *Guard) Header() string {
	return g.header
}

func (g *Guard) Configured() bool {
	return g != nil && g.secret != ""
}

func (g *Guard) Check(value string) error {
	if !g.Configured() {
		return ErrMisconfigured
	}
	if value == "" {
		return ErrUnauthorized
	}
	if subtle.ConstantTimeCompare([]byte(value), []byte(g.secret)) != 1 {
		return ErrUnauthorized
	}
	return nil
}
