package middleware

import (
	"net/http"

	"github.com/avidalh/electrostore-gateway/internal/session"
	"github.com/avidalh/electrostore-gateway/pkg/logger"
)

type identityReader interface {
	Current() session.Identity
}

// SessionContext resolves the current session identity once per request and
// exposes it through the request context and log fields.
func SessionContext(sessions identityReader, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity := sessions.Current()
			if identity.IsZero() {
				next.ServeHTTP(w, r)
				return
			}

			ctx := WithIdentity(r.Context(), identity.UserID, identity.UserName, string(identity.Role))
			if logg != nil {
				ctx = logg.WithUserID(ctx, identity.UserID)
				ctx = logg.WithActorRole(ctx, string(identity.Role))
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
