package middleware

import (
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/taskfeed/taskfeed-be/internal/auth"
	"github.com/taskfeed/taskfeed-be/internal/http/respond"
)

const bearerPrefix = "Bearer "

// Auth gates protected routes behind a valid bearer token. On success the
// resolved identity is injected into the request context; every failure mode
// collapses to a plain 401 so clients cannot distinguish malformed, expired
// and tampered tokens.
func Auth(tokens *auth.TokenManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				respond.Error(w, http.StatusUnauthorized, "missing authorization header")
				return
			}
			if !strings.HasPrefix(header, bearerPrefix) {
				respond.Error(w, http.StatusUnauthorized, "authorization header must use the Bearer scheme")
				return
			}

			user, err := tokens.Verify(strings.TrimPrefix(header, bearerPrefix))
			if err != nil {
				log.Debug().Err(err).Msg("token verification failed")
				respond.Error(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}

			next.ServeHTTP(w, r.WithContext(auth.WithUser(r.Context(), user)))
		})
	}
}
