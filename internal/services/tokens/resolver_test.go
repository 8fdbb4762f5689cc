package tokens

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/novatidelabs/synkpay-banking-service/internal/services/sessions"
)

type countingSessionReader struct {
	records map[string]sessions.SessionRecord
	err     error
	calls   int
}

func (c *countingSessionReader) GetSession(_ context.Context, callerID string) (sessions.SessionRecord, error) {
	c.calls++
	if c.err != nil {
		return sessions.SessionRecord{}, c.err
	}
	record, ok := c.records[callerID]
	if !ok {
		return sessions.SessionRecord{}, sessions.ErrSessionNotFound
	}
	return record, nil
}

func TestStripBearer(t *testing.T) {
	testCases := []struct {
		in   string
		want string
	}{
		{in: "Bearer abc", want: "abc"},
		{in: "bearer abc", want: "abc"},
		{in: "BEARER\tabc", want: "abc"},
		{in: "Bearer  tok en  with   spaces  ", want: "tok en  with   spaces"},
		{in: "  Bearer  test-token  ", want: "test-token"},
		{in: "test-token", want: "test-token"},
		{in: "test-token   ", want: "test-token"},
		{in: "Bearerabc", want: "Bearerabc"},
		{in: "Bearer", want: ""},
		{in: "Bearer   ", want: ""},
		{in: "   ", want: ""},
		{in: "", want: ""},
	}

	for _, tc := range testCases {
		if got := StripBearer(tc.in); got != tc.want {
			t.Fatalf("StripBearer(%q): got %q want %q", tc.in, got, tc.want)
		}
	}
}

func TestResolvePrefersInboundCredential(t *testing.T) {
	reader := &countingSessionReader{records: map[string]sessions.SessionRecord{
		"u1": {AccessToken: "tok-1"},
	}}
	resolver := NewResolver(reader, zap.NewNop())

	token, err := resolver.Resolve(context.Background(), "u1", "Bearer abc")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if token != "abc" {
		t.Fatalf("unexpected token: got %q want %q", token, "abc")
	}
	if reader.calls != 0 {
		t.Fatalf("session store must not be queried, calls=%d", reader.calls)
	}
}

func TestResolveFallsBackToCachedSession(t *testing.T) {
	reader := &countingSessionReader{records: map[string]sessions.SessionRecord{
		"u1": {AccessToken: "tok-1"},
	}}
	resolver := NewResolver(reader, zap.NewNop())

	for _, authorization := range []string{"", "   ", "Bearer "} {
		reader.calls = 0
		token, err := resolver.Resolve(context.Background(), "u1", authorization)
		if err != nil {
			t.Fatalf("resolve with %q: %v", authorization, err)
		}
		if token != "tok-1" {
			t.Fatalf("unexpected token: got %q want %q", token, "tok-1")
		}
		if reader.calls != 1 {
			t.Fatalf("session store must be queried exactly once, calls=%d", reader.calls)
		}
	}
}

func TestResolveBareBearerSchemeFallsBackToCache(t *testing.T) {
	reader := &countingSessionReader{records: map[string]sessions.SessionRecord{
		"u1": {AccessToken: "tok-1"},
	}}
	resolver := NewResolver(reader, zap.NewNop())

	token, err := resolver.Resolve(context.Background(), "u1", "Bearer")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if token != "tok-1" || reader.calls != 1 {
		t.Fatalf("unexpected resolution: token=%q calls=%d", token, reader.calls)
	}
}

func TestResolveCredentialNotFound(t *testing.T) {
	reader := &countingSessionReader{records: map[string]sessions.SessionRecord{
		"empty": {AccessToken: " "},
	}}
	resolver := NewResolver(reader, zap.NewNop())

	if _, err := resolver.Resolve(context.Background(), "missing", ""); !errors.Is(err, ErrCredentialNotFound) {
		t.Fatalf("expected ErrCredentialNotFound, got %v", err)
	}
	if _, err := resolver.Resolve(context.Background(), "empty", ""); !errors.Is(err, ErrCredentialNotFound) {
		t.Fatalf("expected ErrCredentialNotFound for empty token, got %v", err)
	}
}

func TestResolvePropagatesStoreFailure(t *testing.T) {
	storeErr := errors.New("dial tcp: connection refused")
	resolver := NewResolver(&countingSessionReader{err: storeErr}, zap.NewNop())

	_, err := resolver.Resolve(context.Background(), "u1", "")
	if !errors.Is(err, storeErr) {
		t.Fatalf("expected wrapped store error, got %v", err)
	}
	if errors.Is(err, ErrCredentialNotFound) {
		t.Fatalf("store failure must not be reported as missing credential")
	}
}
