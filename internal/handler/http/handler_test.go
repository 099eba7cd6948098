// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-account-service/internal/config"
	"github.com/MKhiriev/go-account-service/internal/logger"
	"github.com/MKhiriev/go-account-service/internal/service"
	"github.com/MKhiriev/go-account-service/models"
)

// ─────────────────────────────────────────────
// Mock AuthService
// ─────────────────────────────────────────────

// mockAuthService implements service.AuthService for unit tests.
// Each method field can be overridden per test case.
type mockAuthService struct {
	registerUserFn func(ctx context.Context, req models.RegisterRequest) (models.User, error)
	loginFn        func(ctx context.Context, req models.LoginRequest) (models.User, error)
	createTokenFn  func(ctx context.Context, user models.User) (models.Token, error)
	parseTokenFn   func(ctx context.Context, tokenString string) (models.Token, error)
}

func (m *mockAuthService) RegisterUser(ctx context.Context, req models.RegisterRequest) (models.User, error) {
	return m.registerUserFn(ctx, req)
}

func (m *mockAuthService) Login(ctx context.Context, req models.LoginRequest) (models.User, error) {
	return m.loginFn(ctx, req)
}

func (m *mockAuthService) CreateToken(ctx context.Context, user models.User) (models.Token, error) {
	if m.createTokenFn != nil {
		return m.createTokenFn(ctx, user)
	}
	return models.Token{SignedString: "signed.jwt.token"}, nil
}

func (m *mockAuthService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	if m.parseTokenFn != nil {
		return m.parseTokenFn(ctx, tokenString)
	}
	return models.Token{}, service.ErrTokenIsExpiredOrInvalid
}

// ─────────────────────────────────────────────
// Mock UserService
// ─────────────────────────────────────────────

type mockUserService struct {
	getUserFn    func(ctx context.Context, id int64) (models.User, error)
	listUsersFn  func(ctx context.Context, page, pageSize int) (models.UserListResponse, error)
	updateUserFn func(ctx context.Context, id int64, update models.UserUpdate, allowActiveToggle bool) (models.User, error)
	deleteUserFn func(ctx context.Context, callerID, id int64) error
}

func (m *mockUserService) GetUser(ctx context.Context, id int64) (models.User, error) {
	if m.getUserFn != nil {
		return m.getUserFn(ctx, id)
	}
	return models.User{}, service.ErrUserNotFound
}

func (m *mockUserService) ListUsers(ctx context.Context, page, pageSize int) (models.UserListResponse, error) {
	if m.listUsersFn != nil {
		return m.listUsersFn(ctx, page, pageSize)
	}
	return models.UserListResponse{}, nil
}

func (m *mockUserService) UpdateUser(ctx context.Context, id int64, update models.UserUpdate, allowActiveToggle bool) (models.User, error) {
	if m.updateUserFn != nil {
		return m.updateUserFn(ctx, id, update, allowActiveToggle)
	}
	return models.User{}, nil
}

func (m *mockUserService) DeleteUser(ctx context.Context, callerID, id int64) error {
	if m.deleteUserFn != nil {
		return m.deleteUserFn(ctx, callerID, id)
	}
	return nil
}

// ─────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────

// newTestHandler builds a Handler wired with the given service mocks.
func newTestHandler(t *testing.T, auth *mockAuthService, users *mockUserService) *Handler {
	t.Helper()
	if auth == nil {
		auth = &mockAuthService{}
	}
	if users == nil {
		users = &mockUserService{}
	}
	svcs := &service.Services{
		AuthService: auth,
		UserService: users,
	}
	return NewHandler(svcs, config.Server{AllowedOrigins: []string{"*"}}, logger.Nop())
}

// doRequest sends req through the full router so that all middleware runs.
func doRequest(t *testing.T, h *Handler, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.Init().ServeHTTP(rec, req)
	return rec
}

// jsonBody serialises v to a JSON request body string.
func jsonBody(t *testing.T, v any) string {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return string(b)
}

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

// decodeDetail decodes the uniform {"detail": ...} error body.
func decodeDetail(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var errResp models.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errResp))
	return errResp.Detail
}

// activeAdmin and activeUser are convenience fixtures used across tests.
var (
	activeAdmin = models.User{ID: 1, Email: "admin@example.com", Name: "Admin", IsActive: true, IsAdmin: true}
	activeUser  = models.User{ID: 2, Email: "user@example.com", Name: "User", IsActive: true}
)

// authedServices returns mocks where the bearer token "valid" resolves to the
// given caller.
func authedServices(caller models.User) (*mockAuthService, *mockUserService) {
	auth := &mockAuthService{
		parseTokenFn: func(_ context.Context, tokenString string) (models.Token, error) {
			if tokenString != "valid" {
				return models.Token{}, service.ErrTokenIsExpiredOrInvalid
			}
			return models.Token{UserID: caller.ID}, nil
		},
	}
	users := &mockUserService{
		getUserFn: func(_ context.Context, id int64) (models.User, error) {
			if id == caller.ID {
				return caller, nil
			}
			return models.User{}, service.ErrUserNotFound
		},
	}
	return auth, users
}

func authedRequest(method, target, body string) *http.Request {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	req.Header.Set("Authorization", "Bearer valid")
	return req
}

// ─────────────────────────────────────────────
// Routing basics
// ─────────────────────────────────────────────

func TestRouter_UnknownRouteReturnsJSONDetail(t *testing.T) {
	h := newTestHandler(t, nil, nil)

	rec := doRequest(t, h, httptest.NewRequest(http.MethodGet, "/nope", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Not Found", decodeDetail(t, rec))
}

func TestRouter_MethodNotAllowedReturnsJSONDetail(t *testing.T) {
	h := newTestHandler(t, nil, nil)

	rec := doRequest(t, h, httptest.NewRequest(http.MethodPut, "/auth/register", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, "Method Not Allowed", decodeDetail(t, rec))
}

func TestRouter_TraceIDHeaderIsEchoed(t *testing.T) {
	h := newTestHandler(t, nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/nope", nil)
	req.Header.Set("X-Trace-ID", "trace-123")
	rec := doRequest(t, h, req)

	assert.Equal(t, "trace-123", rec.Header().Get("X-Trace-ID"))
}

func TestRouter_TraceIDIsGeneratedWhenAbsent(t *testing.T) {
	h := newTestHandler(t, nil, nil)

	rec := doRequest(t, h, httptest.NewRequest(http.MethodGet, "/nope", nil))

	assert.NotEmpty(t, rec.Header().Get("X-Trace-ID"))
}
