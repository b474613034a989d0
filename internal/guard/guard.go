package guard

import (
	"github.com/avidalh/electrostore-gateway/internal/session"
	"github.com/avidalh/electrostore-gateway/pkg/enums"
)

// Redirect targets used when a request is turned away.
const (
	LoginPath = "/login"
	HomePath  = "/"
)

// Decision is the outcome of evaluating an identity against a protected
// area's role requirements.
type Decision int

const (
	// DecisionAllow lets the request through.
	DecisionAllow Decision = iota
	// DecisionRedirectLogin sends an anonymous visitor to the login page.
	DecisionRedirectLogin
	// DecisionRedirectHome sends an authenticated user without the required
	// role back to the storefront home.
	DecisionRedirectHome
)

func (d Decision) String() string {
	switch d {
	case DecisionAllow:
		return "allow"
	case DecisionRedirectLogin:
		return "redirect_login"
	case DecisionRedirectHome:
		return "redirect_home"
	default:
		return "unknown"
	}
}

// RedirectPath returns the target for non-allow decisions, or "" for allow.
func (d Decision) RedirectPath() string {
	switch d {
	case DecisionRedirectLogin:
		return LoginPath
	case DecisionRedirectHome:
		return HomePath
	default:
		return ""
	}
}

// Evaluate applies the two access rules in order: anonymous visitors go to
// login regardless of role requirements; signed-in users lacking one of the
// allowed roles go home. An empty allowed list means any signed-in user.
func Evaluate(identity session.Identity, allowed []enums.Role) Decision {
	if identity.IsZero() {
		return DecisionRedirectLogin
	}
	if len(allowed) == 0 {
		return DecisionAllow
	}
	for _, role := range allowed {
		if role == identity.Role {
			return DecisionAllow
		}
	}
	return DecisionRedirectHome
}
