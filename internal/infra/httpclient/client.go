package httpclient

import (
	"net/http"
	"time"
)

const defaultTimeout = 15 * time.Second

// New returns the long-lived base client shared by every upstream call.
// Per-request authentication is layered on top of its transport.
func New(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.MaxIdleConnsPerHost = 16
	transport.ResponseHeaderTimeout = timeout

	return &http.Client{
		Timeout:   timeout,
		Transport: transport,
	}
}
