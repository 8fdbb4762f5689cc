package sdkfinance

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/oauth2"
)

const maxResponseBytes = 2 * 1024 * 1024

// Factory holds what every authenticated client shares: the upstream base
// URL and the base HTTP client whose transport pools connections.
type Factory struct {
	baseURL string
	base    *http.Client
}

// Client is bound to a single access token. It is cheap to build and is
// meant to live for one request.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewFactory(baseURL string, base *http.Client) (*Factory, error) {
	trimmed := strings.TrimSpace(baseURL)
	if trimmed == "" {
		return nil, errors.New("sdk finance base url is empty")
	}
	parsed, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse sdk finance base url: %w", err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("invalid sdk finance base url: %s", trimmed)
	}
	if base == nil {
		base = http.DefaultClient
	}

	return &Factory{
		baseURL: strings.TrimRight(trimmed, "/"),
		base:    base,
	}, nil
}

// Authenticated returns a client that presents accessToken as a bearer
// credential on every request.
func (f *Factory) Authenticated(accessToken string) *Client {
	source := oauth2.StaticTokenSource(&oauth2.Token{
		AccessToken: accessToken,
		TokenType:   "Bearer",
	})

	return &Client{
		baseURL: f.baseURL,
		httpClient: &http.Client{
			Transport: &oauth2.Transport{
				Base:   f.base.Transport,
				Source: source,
			},
			CheckRedirect: f.base.CheckRedirect,
			Timeout:       f.base.Timeout,
		},
	}
}

func (c *Client) GetCurrencies(ctx context.Context) (json.RawMessage, error) {
	return c.doJSON(ctx, "get currencies", http.MethodGet, "/currencies", nil)
}

func (c *Client) CreateCurrency(ctx context.Context, params CreateCurrencyParams) (json.RawMessage, error) {
	return c.doJSON(ctx, "create currency", http.MethodPost, "/currencies", params)
}

func (c *Client) GetCurrenciesView(ctx context.Context, params CurrencyViewParams) (json.RawMessage, error) {
	return c.doJSON(ctx, "get currencies view", http.MethodPost, "/currencies/view", params)
}

func (c *Client) UpdateCurrency(ctx context.Context, currencyID string, params UpdateCurrencyParams) (json.RawMessage, error) {
	return c.doJSON(ctx, "update currency", http.MethodPatch, "/currencies/"+url.PathEscape(currencyID), params)
}

func (c *Client) SetMainCurrency(ctx context.Context, currencyID string) (json.RawMessage, error) {
	return c.doJSON(ctx, "set main currency", http.MethodPatch, "/currencies/"+url.PathEscape(currencyID)+"/set-main", nil)
}

// doJSON returns a 2xx payload exactly as the upstream sent it, minus
// surrounding whitespace. An empty 2xx body yields nil.
func (c *Client) doJSON(ctx context.Context, op, method, path string, requestBody any) (json.RawMessage, error) {
	if c == nil || c.httpClient == nil {
		return nil, &RequestError{Op: op, Err: errors.New("sdk finance client is not initialized")}
	}

	var bodyReader io.Reader
	if requestBody != nil {
		payload, err := json.Marshal(requestBody)
		if err != nil {
			return nil, &RequestError{Op: op, Err: fmt.Errorf("marshal request body: %w", err)}
		}
		bodyReader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return nil, &RequestError{Op: op, Err: fmt.Errorf("create http request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")
	if bodyReader != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &RequestError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, &RequestError{Op: op, StatusCode: resp.StatusCode, Err: fmt.Errorf("read http response: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &ResponseError{Op: op, StatusCode: resp.StatusCode, Body: errorBody(raw)}
	}

	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, nil
	}
	if !json.Valid(trimmed) {
		return nil, &RequestError{Op: op, StatusCode: resp.StatusCode, Err: errors.New("decode http response: body is not valid json")}
	}
	return json.RawMessage(trimmed), nil
}
