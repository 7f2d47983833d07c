package http

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"shopez/internal/session"
)

// TokenVerifier checks a bearer token and returns the identity it proves.
type TokenVerifier interface {
	Verify(token string) (*session.Identity, error)
}

// SessionNotifier is fed every verified identity so top-level watchers of
// the session hub see identity changes.
type SessionNotifier interface {
	SetIdentity(id *session.Identity)
}

// AuthMiddleware resolves the acting identity from the Authorization header
// and attaches it to the request context. Requests without a valid token
// pass through anonymously: browsing the catalog needs no session, and cart
// handlers reject anonymous intents themselves. Verified identities are
// also reported to the notifier, if any.
func AuthMiddleware(verifier TokenVerifier, sessions SessionNotifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if ok && token != "" {
				if id, err := verifier.Verify(token); err == nil {
					if sessions != nil {
						sessions.SetIdentity(id)
					}
					r = r.WithContext(session.WithIdentity(r.Context(), id))
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequestIDMiddleware tags each request with a unique id, honoring one the
// client already sent.
func RequestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", requestID)
		next.ServeHTTP(w, r)
	})
}
