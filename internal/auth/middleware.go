package auth

import (
	"context"
	"net/http"
	"strings"
)

// contextKey is an unexported type for context keys in this package, so no
// other package can read or shadow the authenticated user ID.
type contextKey string

const userIDKey contextKey = "userID"

// RequireAuth is the authentication gate in front of every user-scoped
// route. One transition per request, no state:
//
//	no Authorization header          → 401, halt
//	header present, token invalid    → 403, halt
//	token valid                      → userID into context, continue
//
// The distinction matters: 401 means "you presented nothing", 403 means
// "you presented something and it didn't check out" (tampered, expired,
// signed with another secret).
//
// The documented header form is "Bearer <token>". A bare token is also
// accepted — clients of the previous incarnation of this API sent both
// forms, and rejecting the bare form would strand them.
//
// Downstream handlers must treat the context userID as the sole source of
// identity and never re-derive it from request bodies or query parameters.
func RequireAuth(tokens *TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				http.Error(w, `{"error":"unauthorized","message":"Authorization header missing"}`, http.StatusUnauthorized)
				return
			}

			tokenStr := strings.TrimPrefix(header, "Bearer ")

			userID, err := tokens.Validate(tokenStr)
			if err != nil {
				http.Error(w, `{"error":"forbidden","message":"Invalid or expired token"}`, http.StatusForbidden)
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserIDFromContext retrieves the authenticated user's ID from the request
// context. Returns ("", false) when the request never passed RequireAuth.
func UserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userIDKey).(string)
	return id, ok && id != ""
}
