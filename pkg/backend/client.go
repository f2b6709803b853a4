package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const (
	bookingsPath = "/api/bookings"
	ordersPath   = "/api/orders"
	mailerPath   = "/api/mailer/send-email"
)

// Client talks to the rental platform API that accepts finished carts.
type Client interface {
	CreateBooking(ctx context.Context, payload any) (json.RawMessage, error)
	CreateOrder(ctx context.Context, payload any) (json.RawMessage, error)
	SendContactEmail(ctx context.Context, message any) (json.RawMessage, error)
}

// APIError is returned for any non-2xx answer.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("backend responded with status %d: %s", e.StatusCode, e.Message)
}

type httpClient struct {
	baseURL    string
	httpClient *http.Client
}

type Option func(*httpClient)

// WithHTTPClient replaces the instrumented default client.
func WithHTTPClient(c *http.Client) Option {
	return func(h *httpClient) {
		h.httpClient = c
	}
}

// NewClient builds a client for baseURL. Deadlines come from the caller's
// context; timeout only bounds requests made without one.
func NewClient(baseURL string, timeout time.Duration, opts ...Option) Client {
	c := &httpClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
			Timeout:   timeout,
		},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

func (c *httpClient) CreateBooking(ctx context.Context, payload any) (json.RawMessage, error) {
	return c.post(ctx, bookingsPath, payload)
}

func (c *httpClient) CreateOrder(ctx context.Context, payload any) (json.RawMessage, error) {
	return c.post(ctx, ordersPath, payload)
}

func (c *httpClient) SendContactEmail(ctx context.Context, message any) (json.RawMessage, error) {
	return c.post(ctx, mailerPath, message)
}

func (c *httpClient) post(ctx context.Context, path string, body any) (json.RawMessage, error) {

	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request to %s failed: %w", path, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response from %s: %w", path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Message:    errorMessage(resp.StatusCode, respBody),
		}
	}

	if len(bytes.TrimSpace(respBody)) == 0 || !json.Valid(respBody) {
		return nil, nil
	}

	return json.RawMessage(respBody), nil
}

// errorMessage prefers the server's {"message": ...} and falls back to the status text.
func errorMessage(status int, body []byte) string {
	var payload struct {
		Message string `json:"message"`
	}

	if err := json.Unmarshal(body, &payload); err == nil && payload.Message != "" {
		return payload.Message
	}

	return http.StatusText(status)
}
