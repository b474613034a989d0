package controllers

import (
	"context"
	"net/http"

	"github.com/avidalh/electrostore-gateway/api/responses"
	"github.com/avidalh/electrostore-gateway/api/validators"
	"github.com/avidalh/electrostore-gateway/internal/session"
	"github.com/avidalh/electrostore-gateway/internal/users"
	pkgerrors "github.com/avidalh/electrostore-gateway/pkg/errors"
	"github.com/avidalh/electrostore-gateway/pkg/logger"
)

type authService interface {
	Login(ctx context.Context, email, password string) (users.LoginResult, error)
	Logout(ctx context.Context) error
}

type sessionReader interface {
	Current() session.Identity
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type sessionResponse struct {
	User    string `json:"user,omitempty"`
	UserID  string `json:"userId,omitempty"`
	Role    string `json:"role,omitempty"`
	Landing string `json:"landing,omitempty"`
}

// AuthLogin verifies credentials and establishes the gateway session.
func AuthLogin(svc authService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable"))
			return
		}

		var payload loginRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Login(r.Context(), payload.Email, payload.Password)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, sessionResponse{
			User:    result.Identity.UserName,
			UserID:  result.Identity.UserID,
			Role:    string(result.Identity.Role),
			Landing: result.Landing,
		})
	}
}

// AuthLogout clears the session. Repeating it is harmless.
func AuthLogout(svc authService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable"))
			return
		}
		if err := svc.Logout(r.Context()); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "logged_out"})
	}
}

// SessionShow reports the current identity so clients can restore their UI
// state after a reload.
func SessionShow(sessions sessionReader, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity := sessions.Current()
		if identity.IsZero() {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthenticated, "no active session"))
			return
		}
		responses.WriteSuccess(w, sessionResponse{
			User:   identity.UserName,
			UserID: identity.UserID,
			Role:   string(identity.Role),
		})
	}
}
