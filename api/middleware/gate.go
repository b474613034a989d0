package middleware

import (
	"net/http"

	"github.com/avidalh/electrostore-gateway/internal/guard"
	"github.com/avidalh/electrostore-gateway/pkg/enums"
	"github.com/avidalh/electrostore-gateway/pkg/logger"
)

// Gate protects a route subtree. Anonymous visitors are redirected to the
// login page and signed-in users without one of the allowed roles to the
// storefront home, both with 303 so browsers re-issue a GET.
func Gate(sessions identityReader, logg *logger.Logger, allowed ...enums.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity := sessions.Current()
			decision := guard.Evaluate(identity, allowed)
			if decision == guard.DecisionAllow {
				next.ServeHTTP(w, r)
				return
			}

			ctx := r.Context()
			if logg != nil {
				ctx = logg.WithFields(ctx, map[string]any{
					"decision": decision.String(),
					"path":     r.URL.Path,
				})
				logg.Warn(ctx, "access.denied")
			}
			http.Redirect(w, r, decision.RedirectPath(), http.StatusSeeOther)
		})
	}
}
