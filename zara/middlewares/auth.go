// zara/middlewares/auth.go
package middlewares

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"zara/zara/services/auth"
)

type contextKey string

const UserIDKey contextKey = "user_id"

type authError struct {
	status int
	Error  string `json:"error"`
	Msg    string `json:"msg"`
}

var (
	errMissing = authError{http.StatusUnauthorized, "Authorization required", "Request does not contain an access token"}
	errExpired = authError{http.StatusUnauthorized, "Session expired", "Token has expired"}
	errInvalid = authError{http.StatusUnprocessableEntity, "Invalid token", "Signature verification failed"}
)

// AuthMiddleware rejects requests without a valid bearer token.
func AuthMiddleware(tokens *auth.TokenService) func(http.Handler) http.Handler {
	return authenticate(tokens, false)
}

// OptionalAuthMiddleware lets anonymous requests through but still rejects a
// token that is present and bad.
func OptionalAuthMiddleware(tokens *auth.TokenService) func(http.Handler) http.Handler {
	return authenticate(tokens, true)
}

func authenticate(tokens *auth.TokenService, optional bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenStr, ok := bearerToken(r)
			if !ok {
				if optional {
					next.ServeHTTP(w, r)
					return
				}
				writeAuthError(w, errMissing)
				return
			}
			userID, err := tokens.Parse(tokenStr)
			if err != nil {
				if errors.Is(err, auth.ErrExpiredToken) {
					writeAuthError(w, errExpired)
				} else {
					writeAuthError(w, errInvalid)
				}
				return
			}
			ctx := context.WithValue(r.Context(), UserIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserID returns the authenticated caller, if any.
func UserID(ctx context.Context) (int, bool) {
	id, ok := ctx.Value(UserIDKey).(int)
	return id, ok
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", false
	}
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	return parts[1], true
}

func writeAuthError(w http.ResponseWriter, e authError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(e.status)
	json.NewEncoder(w).Encode(e)
}
