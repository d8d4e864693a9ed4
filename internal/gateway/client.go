// Package gateway talks to the marketplace REST API. Every call is bounded by
// a timeout and is never retried; server error text is passed through as-is.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"marketdash/internal/domain"
	"marketdash/internal/utils"
)

// DefaultTimeout bounds a single call when the client is built without one.
const DefaultTimeout = 15 * time.Second

const maxBodyBytes = 8 << 20

type requestIDKey struct{}

// WithRequestID tags ctx so outgoing calls carry X-Request-ID.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

func requestIDFrom(ctx context.Context) string {
	if v, ok := ctx.Value(requestIDKey{}).(string); ok {
		return v
	}
	return ""
}

// Client is a thin marketplace API client.
type Client struct {
	BaseURL string
	Token   string
	Timeout time.Duration
	HTTP    *http.Client
}

func New(baseURL, token string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		BaseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		Token:   strings.TrimSpace(token),
		Timeout: timeout,
		HTTP:    &http.Client{},
	}
}

func (c *Client) httpClient() *http.Client {
	if c.HTTP != nil {
		return c.HTTP
	}
	return http.DefaultClient
}

func (c *Client) timeout() time.Duration {
	if c.Timeout > 0 {
		return c.Timeout
	}
	return DefaultTimeout
}

// do performs one request and returns the raw body of a 2xx response.
// Any other outcome, including an expired timeout, is a domain.UpstreamError.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout())
	defer cancel()

	endpoint := c.BaseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, domain.InternalError{Msg: "encode request body", Err: err}
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, domain.InternalError{Msg: "build request", Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}
	reqID := requestIDFrom(ctx)
	if reqID != "" {
		req.Header.Set("X-Request-ID", reqID)
	}

	resp, err := c.httpClient().Do(req)
	if err != nil {
		utils.LogEvent(reqID, "gateway", "call_failed", fmt.Sprintf("%s %s err=%v", method, path, err))
		return nil, domain.UpstreamError{Err: fmt.Errorf("%s %s: %w", method, path, err)}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, domain.UpstreamError{Status: resp.StatusCode, Err: fmt.Errorf("read %s %s: %w", method, path, err)}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		utils.LogEvent(reqID, "gateway", "call_rejected", fmt.Sprintf("%s %s status=%d", method, path, resp.StatusCode))
		return nil, upstreamError(resp.StatusCode, raw)
	}
	return raw, nil
}

// upstreamError keeps the server's own {error|message} text.
func upstreamError(status int, raw []byte) error {
	var payload struct {
		Error   any    `json:"error"`
		Message string `json:"message"`
	}
	msg := ""
	if err := json.Unmarshal(raw, &payload); err == nil {
		if s, ok := payload.Error.(string); ok {
			msg = s
		}
		msg = utils.FirstNonEmpty(msg, payload.Message)
	}
	return domain.UpstreamError{Status: status, Message: msg}
}

// decodeList accepts either a bare JSON array or an envelope {"data": [...]}.
func decodeList[T any](raw []byte) ([]T, error) {
	raw = bytes.TrimSpace(raw)
	out := []T{}
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return out, nil
	}
	if raw[0] == '[' {
		if err := json.Unmarshal(raw, &out); err != nil {
			return nil, err
		}
		return out, nil
	}
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, err
	}
	data := bytes.TrimSpace(envelope.Data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return out, nil
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// decodeOne accepts either a bare object or {"data": {...}}.
func decodeOne[T any](raw []byte) (T, error) {
	var out T
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(raw, &envelope); err == nil {
		data := bytes.TrimSpace(envelope.Data)
		if len(data) > 0 && data[0] == '{' {
			err = json.Unmarshal(data, &out)
			return out, err
		}
	}
	err := json.Unmarshal(raw, &out)
	return out, err
}

func getList[T any](ctx context.Context, c *Client, path string, query url.Values) ([]T, error) {
	raw, err := c.do(ctx, http.MethodGet, path, query, nil)
	if err != nil {
		return nil, err
	}
	items, err := decodeList[T](raw)
	if err != nil {
		return nil, domain.UpstreamError{Err: fmt.Errorf("decode %s: %w", path, err)}
	}
	return items, nil
}
