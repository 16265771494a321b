package auth

import (
	"context"
	"net/http"
)

// DefaultUserID is the user every request acts as.
//
// There is no login: until a real authentication layer exists, the
// "current user" is a fixed id configured at startup (CURRENT_USER_ID).
// Handlers never read the constant directly; they take the id from the
// request context so a real auth middleware can replace CurrentUser later
// without touching them.
const DefaultUserID int64 = 1

type contextKey string

const userIDKey contextKey = "userID"

// CurrentUser returns middleware that marks every request as made by userID.
func CurrentUser(userID int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), userID)))
		})
	}
}

// WithUserID returns a copy of ctx carrying userID.
func WithUserID(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// UserIDFromContext returns the current user's id, or false if no middleware
// set one.
func UserIDFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(userIDKey).(int64)
	return id, ok && id > 0
}
