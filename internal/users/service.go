package users

import (
	"context"
	"fmt"
	"strings"

	"github.com/avidalh/electrostore-gateway/internal/guard"
	"github.com/avidalh/electrostore-gateway/internal/session"
	"github.com/avidalh/electrostore-gateway/pkg/enums"
	pkgerrors "github.com/avidalh/electrostore-gateway/pkg/errors"
	"github.com/avidalh/electrostore-gateway/pkg/logger"
	"github.com/avidalh/electrostore-gateway/pkg/security"
	"github.com/avidalh/electrostore-gateway/pkg/storeapi"
)

// AdminLandingPath is where admins land after signing in.
const AdminLandingPath = "/admin"

type userAPI interface {
	ListUsers(ctx context.Context) ([]storeapi.User, error)
	CreateUser(ctx context.Context, input storeapi.CreateUserInput) (*storeapi.User, error)
	DeleteUser(ctx context.Context, id string) error
}

type sessionManager interface {
	Login(ctx context.Context, userName string, role enums.Role, userID string) error
	Logout(ctx context.Context) error
}

// Service implements the login flow and the admin user directory on top of
// the upstream Usuario resource.
type Service struct {
	api      userAPI
	sessions sessionManager
	logg     *logger.Logger
}

func NewService(api userAPI, sessions sessionManager, logg *logger.Logger) (*Service, error) {
	if api == nil || sessions == nil || logg == nil {
		return nil, fmt.Errorf("users service dependencies are required")
	}
	return &Service{api: api, sessions: sessions, logg: logg}, nil
}

// LoginResult carries the established identity and the path the client
// should land on.
type LoginResult struct {
	Identity session.Identity
	Landing  string
}

// Login verifies the credentials against the upstream user directory and,
// on success, establishes the session. Unknown emails and wrong passwords
// produce the same error so callers cannot probe for accounts.
func (s *Service) Login(ctx context.Context, email, password string) (LoginResult, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return LoginResult{}, pkgerrors.New(pkgerrors.CodeValidation, "email and password are required")
	}

	records, err := s.api.ListUsers(ctx)
	if err != nil {
		return LoginResult{}, pkgerrors.Wrap(pkgerrors.CodeUpstream, err, "load user directory")
	}

	var match *storeapi.User
	for i := range records {
		if strings.EqualFold(strings.TrimSpace(records[i].Email), email) {
			match = &records[i]
			break
		}
	}
	if match == nil || !security.VerifyPassword(password, match.PasswordHash) {
		s.logg.Warn(s.logg.WithField(ctx, "email", email), "login rejected")
		return LoginResult{}, pkgerrors.New(pkgerrors.CodeUnauthenticated, "invalid credentials")
	}

	if err := s.sessions.Login(ctx, match.Name, match.Role, match.ID); err != nil {
		return LoginResult{}, err
	}

	identity := session.Identity{UserName: match.Name, UserID: match.ID, Role: match.Role}
	landing := guard.HomePath
	if match.Role == enums.RoleAdmin {
		landing = AdminLandingPath
	}
	s.logg.Info(s.logg.WithUserID(ctx, match.ID), "login accepted")
	return LoginResult{Identity: identity, Landing: landing}, nil
}

// Logout tears down the session.
func (s *Service) Logout(ctx context.Context) error {
	return s.sessions.Logout(ctx)
}

// List returns the user directory with credentials stripped.
func (s *Service) List(ctx context.Context) ([]storeapi.User, error) {
	records, err := s.api.ListUsers(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeUpstream, err, "load user directory")
	}
	for i := range records {
		records[i].PasswordHash = ""
	}
	return records, nil
}

// CreateInput is a new user registration.
type CreateInput struct {
	Name     string
	Email    string
	Role     enums.Role
	Password string
}

// Create registers a user with the password hashed before it leaves the
// gateway.
func (s *Service) Create(ctx context.Context, input CreateInput) (*storeapi.User, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Email = strings.TrimSpace(input.Email)
	if input.Name == "" || input.Email == "" || input.Password == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name, email and password are required")
	}
	if !input.Role.Valid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown role")
	}

	hash, err := security.HashPassword(input.Password)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	created, err := s.api.CreateUser(ctx, storeapi.CreateUserInput{
		Name:         input.Name,
		Email:        input.Email,
		Role:         input.Role,
		PasswordHash: hash,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeUpstream, err, "create user")
	}
	created.PasswordHash = ""
	return created, nil
}

// Delete removes a user record.
func (s *Service) Delete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	if err := s.api.DeleteUser(ctx, id); err != nil {
		if storeapi.IsNotFound(err) {
			return pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "user not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeUpstream, err, "delete user")
	}
	return nil
}
