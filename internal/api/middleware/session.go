package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
)

const SessionHeader = "X-Session-ID"

type sessionContextKey string

const SessionKey = sessionContextKey("session")

// Session resolves the caller's cart session from the X-Session-ID header. A
// request without one starts a new session; the id is echoed back so the
// client can keep it.
func Session(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

		sessionID := r.Header.Get(SessionHeader)
		if sessionID == "" || len(sessionID) > 128 {
			sessionID = uuid.NewString()
		}

		w.Header().Set(SessionHeader, sessionID)

		logger := LoggerFromContext(r.Context()).With(slog.String("session_id", sessionID))

		ctx := context.WithValue(r.Context(), SessionKey, sessionID)
		ctx = context.WithValue(ctx, LoggerKey, logger)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func SessionIDFromContext(ctx context.Context) (string, bool) {
	sessionID, ok := ctx.Value(SessionKey).(string)

	return sessionID, ok && sessionID != ""
}
