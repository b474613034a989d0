package controllers

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avidalh/electrostore-gateway/internal/session"
	"github.com/avidalh/electrostore-gateway/internal/users"
	"github.com/avidalh/electrostore-gateway/pkg/enums"
	pkgerrors "github.com/avidalh/electrostore-gateway/pkg/errors"
	"github.com/avidalh/electrostore-gateway/pkg/logger"
	"github.com/avidalh/electrostore-gateway/pkg/types"
)

type fakeAuthService struct {
	result users.LoginResult
	err    error

	lastEmail    string
	lastPassword string
	logoutCalls  int
}

func (f *fakeAuthService) Login(_ context.Context, email, password string) (users.LoginResult, error) {
	f.lastEmail, f.lastPassword = email, password
	return f.result, f.err
}

func (f *fakeAuthService) Logout(context.Context) error {
	f.logoutCalls++
	return nil
}

type fakeSessionReader struct {
	identity session.Identity
}

func (f fakeSessionReader) Current() session.Identity { return f.identity }

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
}

func TestAuthLoginSuccess(t *testing.T) {
	svc := &fakeAuthService{result: users.LoginResult{
		Identity: session.Identity{UserName: "Ana", UserID: "u-1", Role: enums.RoleCustomer},
		Landing:  "/",
	}}
	handler := AuthLogin(svc, testLogger())

	req := httptest.NewRequest("POST", "/api/v1/auth/login", strings.NewReader(`{"email":"ana@example.com","password":"hunter2"}`))
	rec := httptest.NewRecorder()
	handler(rec, req)

	require.Equal(t, 200, rec.Code)
	assert.Equal(t, "ana@example.com", svc.lastEmail)

	var envelope struct {
		Data sessionResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, "Ana", envelope.Data.User)
	assert.Equal(t, "u-1", envelope.Data.UserID)
	assert.Equal(t, "cliente", envelope.Data.Role)
	assert.Equal(t, "/", envelope.Data.Landing)
}

func TestAuthLoginRejectsBadPayload(t *testing.T) {
	handler := AuthLogin(&fakeAuthService{}, testLogger())

	req := httptest.NewRequest("POST", "/api/v1/auth/login", strings.NewReader(`{"email":"not-an-email"}`))
	rec := httptest.NewRecorder()
	handler(rec, req)

	assert.Equal(t, 400, rec.Code)
}

func TestAuthLoginSurfacesInvalidCredentials(t *testing.T) {
	svc := &fakeAuthService{err: pkgerrors.New(pkgerrors.CodeUnauthenticated, "invalid credentials")}
	handler := AuthLogin(svc, testLogger())

	req := httptest.NewRequest("POST", "/api/v1/auth/login", strings.NewReader(`{"email":"ana@example.com","password":"wrong"}`))
	rec := httptest.NewRecorder()
	handler(rec, req)

	require.Equal(t, 401, rec.Code)
	var envelope types.ErrorEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, "invalid credentials", envelope.Error.Message)
}

func TestAuthLogout(t *testing.T) {
	svc := &fakeAuthService{}
	handler := AuthLogout(svc, testLogger())

	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest("POST", "/api/v1/auth/logout", nil))

	assert.Equal(t, 200, rec.Code)
	assert.Equal(t, 1, svc.logoutCalls)
}

func TestSessionShow(t *testing.T) {
	identity := session.Identity{UserName: "Ana", UserID: "u-1", Role: enums.RoleCustomer}
	handler := SessionShow(fakeSessionReader{identity: identity}, testLogger())

	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest("GET", "/api/v1/auth/session", nil))

	require.Equal(t, 200, rec.Code)
	var envelope struct {
		Data sessionResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, "u-1", envelope.Data.UserID)
}

func TestSessionShowAnonymous(t *testing.T) {
	handler := SessionShow(fakeSessionReader{}, testLogger())

	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest("GET", "/api/v1/auth/session", nil))

	assert.Equal(t, 401, rec.Code)
}
