package auth

import "context"

type contextKey struct{}

var userIDContextKey = contextKey{}

// SetUserIDToContext stores the authenticated user id, set by the auth middleware.
func SetUserIDToContext(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDContextKey, userID)
}

// UserIDFromContext returns the authenticated user id, or empty string when
// the request never went through the auth middleware.
func UserIDFromContext(ctx context.Context) string {
	userID, _ := ctx.Value(userIDContextKey).(string)
	return userID
}
