package sessions

import (
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"time"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrRefreshNotFound = errors.New("refresh record not found")
	ErrInvalidInput    = errors.New("invalid input")
)

type Kind string

const (
	KindAccess  Kind = "access"
	KindRefresh Kind = "refresh"
)

// SessionRecord is the upstream credential cached for a caller by the login flow.
type SessionRecord struct {
	AccessToken          string    `json:"accessToken"`
	AccessTokenExpiresAt time.Time `json:"accessTokenExpiresAt"`
	IssuerHash           string    `json:"issuerHash"`

	invalidExpiry string
}

// UnmarshalJSON also accepts the field names written by the login flow.
func (s *SessionRecord) UnmarshalJSON(data []byte) error {
	var raw struct {
		AccessToken          string          `json:"accessToken"`
		AccessTokenExpiresAt json.RawMessage `json:"accessTokenExpiresAt"`
		IssuerHash           string          `json:"issuerHash"`
		LegacyToken          string          `json:"sdkFinanceToken"`
		LegacyExpiresAt      json.RawMessage `json:"sdkFinanceTokenExpiresAt"`
		LegacyHash           string          `json:"jwtHash"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	expiry := firstPresent(raw.AccessTokenExpiresAt, raw.LegacyExpiresAt)
	expiresAt, ok := parseTimestamp(expiry)

	*s = SessionRecord{
		AccessToken:          firstNonEmpty(raw.AccessToken, raw.LegacyToken),
		AccessTokenExpiresAt: expiresAt,
		IssuerHash:           firstNonEmpty(raw.IssuerHash, raw.LegacyHash),
	}
	if !ok {
		s.invalidExpiry = string(expiry)
	}
	return nil
}

// RefreshRecord lives next to SessionRecord under the same caller and is
// removed together with it.
type RefreshRecord struct {
	RefreshToken          string    `json:"refreshToken"`
	RefreshTokenExpiresAt time.Time `json:"refreshTokenExpiresAt"`
	IssuerHash            string    `json:"issuerHash"`
	IssuerJTIHash         string    `json:"issuerJtiHash"`

	invalidExpiry string
}

func (r *RefreshRecord) UnmarshalJSON(data []byte) error {
	var raw struct {
		RefreshToken          string          `json:"refreshToken"`
		RefreshTokenExpiresAt json.RawMessage `json:"refreshTokenExpiresAt"`
		IssuerHash            string          `json:"issuerHash"`
		IssuerJTIHash         string          `json:"issuerJtiHash"`
		LegacyToken           string          `json:"sdkFinanceRefreshToken"`
		LegacyExpiresAt       json.RawMessage `json:"sdkFinanceRefreshTokenExpiresAt"`
		LegacyHash            string          `json:"jwtRefreshHash"`
		LegacyJTIHash         string          `json:"jwtRefreshJtiHash"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	expiry := firstPresent(raw.RefreshTokenExpiresAt, raw.LegacyExpiresAt)
	expiresAt, ok := parseTimestamp(expiry)

	*r = RefreshRecord{
		RefreshToken:          firstNonEmpty(raw.RefreshToken, raw.LegacyToken),
		RefreshTokenExpiresAt: expiresAt,
		IssuerHash:            firstNonEmpty(raw.IssuerHash, raw.LegacyHash),
		IssuerJTIHash:         firstNonEmpty(raw.IssuerJTIHash, raw.LegacyJTIHash),
	}
	if !ok {
		r.invalidExpiry = string(expiry)
	}
	return nil
}

// parseTimestamp accepts an RFC 3339 string or epoch milliseconds, as a
// number or a numeric string. Absent and null values are the zero time.
// Anything else yields the zero time and false; the token stays usable.
func parseTimestamp(raw json.RawMessage) (time.Time, bool) {
	value := strings.TrimSpace(string(raw))
	if value == "" || value == "null" || value == `""` {
		return time.Time{}, true
	}
	var text string
	if err := json.Unmarshal([]byte(value), &text); err == nil {
		value = strings.TrimSpace(text)
		if value == "" {
			return time.Time{}, true
		}
		if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
			return t, true
		}
	}
	if ms, err := strconv.ParseInt(value, 10, 64); err == nil {
		return time.UnixMilli(ms).UTC(), true
	}
	return time.Time{}, false
}

func firstPresent(values ...json.RawMessage) json.RawMessage {
	for _, v := range values {
		if trimmed := strings.TrimSpace(string(v)); trimmed != "" && trimmed != "null" && trimmed != `""` {
			return v
		}
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
