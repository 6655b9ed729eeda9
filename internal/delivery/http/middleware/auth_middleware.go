package middleware

import (
	"context"
	"net/http"
	"strings"

	"research-directory/internal/service"
	"research-directory/pkg/jwt"
	"research-directory/pkg/response"
)

type contextKey string

const (
	UsernameKey contextKey = "username"
	TokenIDKey  contextKey = "token_id"
)

// SessionCookieName is the cookie the browser flow stores its token under.
// API clients may send the same token as a bearer header instead.
const SessionCookieName = "session"

type AuthMiddleware struct {
	tokenService *jwt.SessionTokenService
	sessions     service.SessionStore
}

func NewAuthMiddleware(tokenService *jwt.SessionTokenService, sessions service.SessionStore) *AuthMiddleware {
	return &AuthMiddleware{
		tokenService: tokenService,
		sessions:     sessions,
	}
}

// RequireSession gates admin-only routes. It denies before the wrapped
// handler runs, so no side effect (including file writes) can happen for an
// anonymous caller.
func (m *AuthMiddleware) RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenString := extractToken(r)
		if tokenString == "" {
			response.Unauthorized(w, "Authentication required")
			return
		}

		claims, err := m.tokenService.ValidateToken(tokenString)
		if err != nil {
			response.Unauthorized(w, "Invalid or expired session")
			return
		}

		// A token that validates but is absent from the store was revoked
		// by logout.
		exists, err := m.sessions.Exists(r.Context(), claims.TokenID)
		if err != nil {
			response.InternalServerError(w, "Failed to validate session")
			return
		}
		if !exists {
			response.Unauthorized(w, "Session has been revoked")
			return
		}

		ctx := context.WithValue(r.Context(), UsernameKey, claims.Username)
		ctx = context.WithValue(ctx, TokenIDKey, claims.TokenID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func extractToken(r *http.Request) string {
	if cookie, err := r.Cookie(SessionCookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	authHeader := r.Header.Get("Authorization")
	parts := strings.Split(authHeader, " ")
	if len(parts) == 2 && parts[0] == "Bearer" {
		return parts[1]
	}
	return ""
}

// GetUsernameFromContext extracts the session username from context
func GetUsernameFromContext(ctx context.Context) (string, bool) {
	username, ok := ctx.Value(UsernameKey).(string)
	return username, ok
}

// GetTokenIDFromContext extracts the session token ID from context
func GetTokenIDFromContext(ctx context.Context) (string, bool) {
	tokenID, ok := ctx.Value(TokenIDKey).(string)
	return tokenID, ok
}
