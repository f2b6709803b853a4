package testutils

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"

	"github.com/aaravmahajanofficial/rental-checkout/internal/api/middleware"
)

// CreateSessionRequest builds a request as it looks after the logging and
// session middleware have run.
func CreateSessionRequest(method, target string, body io.Reader, sessionID string) *http.Request {
	req := httptest.NewRequest(method, target, body)
	req.Header.Set("Content-Type", "application/json")

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ctx := context.WithValue(req.Context(), middleware.LoggerKey, logger)
	ctx = context.WithValue(ctx, middleware.SessionKey, sessionID)

	return req.WithContext(ctx)
}

// CreateRequestWithoutSession builds a request carrying only a logger.
func CreateRequestWithoutSession(method, target string, body io.Reader) *http.Request {
	req := httptest.NewRequest(method, target, body)
	req.Header.Set("Content-Type", "application/json")

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ctx := context.WithValue(req.Context(), middleware.LoggerKey, logger)

	return req.WithContext(ctx)
}
