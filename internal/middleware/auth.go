package middleware

import (
	"context"
	"net/http"
	"strings"

	"go.uber.org/zap"
)

type contextKey string

const (
	UserIDKey    contextKey = "user_id"
	TokenKey     contextKey = "access_token"
	SessionIDKey contextKey = "session_id"
)

// SessionHeader carries the anonymous cart session identifier
const SessionHeader = "X-Session-ID"

// TokenVerifier resolves a bearer token to its subject
type TokenVerifier interface {
	VerifyToken(token string) (subject string, ok bool)
}

// AuthMiddleware validates bearer tokens and stores the subject in the request context
func AuthMiddleware(verifier TokenVerifier, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString, ok := BearerToken(r)
			if !ok {
				logger.Debug("Missing or malformed authorization header")
				respondUnauthorized(w)
				return
			}

			userID, ok := verifier.VerifyToken(tokenString)
			if !ok {
				logger.Debug("Token validation failed")
				respondUnauthorized(w)
				return
			}

			ctx := context.WithValue(r.Context(), UserIDKey, userID)
			ctx = context.WithValue(ctx, TokenKey, tokenString)

			logger.Debug("User authenticated", zap.String("user_id", userID))

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// BearerToken extracts the token from an "Authorization: Bearer <token>" header
func BearerToken(r *http.Request) (string, bool) {
	authHeader := r.Header.Get("Authorization")
	scheme, token, found := strings.Cut(authHeader, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func respondUnauthorized(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	RespondWithError(w, http.StatusUnauthorized, "not authenticated")
}

// GetUserID extracts user ID from request context
func GetUserID(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(UserIDKey).(string)
	return userID, ok
}

// GetToken extracts the verified bearer token from request context
func GetToken(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(TokenKey).(string)
	return token, ok
}
