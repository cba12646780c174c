package httputil

import (
	"context"
	"net/http"
)

// Context key type to avoid collisions
type contextKey string

const (
	userIDKey contextKey = "userID"
)

// WithUserID adds the acting user's id to the request context
func WithUserID(r *http.Request, userID string) *http.Request {
	return r.WithContext(ContextWithUserID(r.Context(), userID))
}

// ContextWithUserID adds userID to ctx
func ContextWithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// GetUserID retrieves userID from context, returns empty string if not found
func GetUserID(r *http.Request) string {
	userID, _ := r.Context().Value(userIDKey).(string)
	return userID
}
