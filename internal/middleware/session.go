package middleware

import (
	"context"
	"net/http"
	"strings"

	"storefront/internal/domain"
)

// RequireSession rejects requests without a usable X-Session-ID header and
// stores the session id in the request context
func RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sessionID := strings.TrimSpace(r.Header.Get(SessionHeader))
		if sessionID == "" {
			RespondWithError(w, http.StatusBadRequest, domain.ErrMissingSession.Error())
			return
		}
		if len(sessionID) > domain.MaxSessionIDLength {
			RespondWithError(w, http.StatusBadRequest, domain.ErrSessionTooLong.Error())
			return
		}

		ctx := context.WithValue(r.Context(), SessionIDKey, sessionID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetSessionID extracts the cart session id from request context
func GetSessionID(ctx context.Context) (string, bool) {
	sessionID, ok := ctx.Value(SessionIDKey).(string)
	return sessionID, ok
}
