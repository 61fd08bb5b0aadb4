package appMiddleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

type contextKey string

const (
	// SessionHeader carries the conversation a request belongs to.
	SessionHeader = "X-Session-ID"

	sessionIDKey contextKey = "sessionID"
)

// Session puts the caller's conversation id into the request context, minting
// a new one when the header is absent or malformed, and echoes it back.
func Session(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(strings.TrimSpace(r.Header.Get(SessionHeader)))
		if err != nil {
			id = uuid.New()
		}
		w.Header().Set(SessionHeader, id.String())
		next.ServeHTTP(w, r.WithContext(WithSessionID(r.Context(), id)))
	})
}

func WithSessionID(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, sessionIDKey, id)
}

func SessionIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(sessionIDKey).(uuid.UUID)
	return id, ok
}
