package sdkfinance

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ResponseError is returned when the upstream answered with a non-2xx
// status. Body holds the upstream error payload as JSON, or nil when the
// upstream sent nothing.
type ResponseError struct {
	Op         string
	StatusCode int
	Body       json.RawMessage
}

func (e *ResponseError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("%s: upstream status=%d", e.Op, e.StatusCode)
}

// RequestError covers every failure that did not produce an upstream
// error response: transport errors, timeouts, malformed payloads.
type RequestError struct {
	Op         string
	StatusCode int
	Err        error
}

func (e *RequestError) Error() string {
	if e == nil {
		return ""
	}
	switch {
	case e.Err != nil && e.StatusCode > 0:
		return fmt.Sprintf("%s: status=%d: %v", e.Op, e.StatusCode, e.Err)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	default:
		return e.Op
	}
}

func (e *RequestError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func errorBody(raw []byte) json.RawMessage {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" {
		return nil
	}
	if json.Valid([]byte(trimmed)) {
		return json.RawMessage(trimmed)
	}
	// Non-JSON bodies (proxies, HTML error pages) are kept as a JSON string.
	encoded, err := json.Marshal(trimmed)
	if err != nil {
		return nil
	}
	return encoded
}
