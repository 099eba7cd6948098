package adapter

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-account-service/internal/config"
	"github.com/MKhiriev/go-account-service/internal/logger"
	"github.com/MKhiriev/go-account-service/models"
)

func newTestAdapter(t *testing.T, handler http.Handler) (ServerAdapter, *httptest.Server) {
	t.Helper()

	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)

	a, err := NewHTTPServerAdapter(config.ClientAdapter{
		HTTPAddress:    ts.URL,
		RequestTimeout: 5 * time.Second,
	}, logger.Nop())
	require.NoError(t, err)

	return a, ts
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	require.NoError(t, json.NewEncoder(w).Encode(v))
}

func TestNewHTTPServerAdapter_AddressNormalization(t *testing.T) {
	tests := []struct {
		name    string
		address string
		wantErr bool
	}{
		{name: "bare host and port", address: "localhost:8080"},
		{name: "full url", address: "http://localhost:8080"},
		{name: "trailing slash", address: "http://localhost:8080/"},
		{name: "empty", address: "", wantErr: true},
		{name: "whitespace", address: "   ", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewHTTPServerAdapter(config.ClientAdapter{HTTPAddress: tt.address, RequestTimeout: time.Second}, logger.Nop())
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestRegister_SendsPayloadAndDecodesUser(t *testing.T) {
	a, _ := newTestAdapter(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/auth/register", r.URL.Path)

		var req models.RegisterRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "alice@example.com", req.Email)

		writeJSON(t, w, http.StatusOK, models.User{ID: 10, Email: req.Email, Name: req.Name, IsActive: true})
	}))

	user, err := a.Register(context.Background(), models.RegisterRequest{
		Email:    "alice@example.com",
		Name:     "Alice",
		Password: "password123",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(10), user.ID)
	assert.Empty(t, a.Token(), "registration must not authenticate")
}

func TestLogin_StoresTokenForSubsequentRequests(t *testing.T) {
	a, _ := newTestAdapter(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/login":
			writeJSON(t, w, http.StatusOK, models.TokenResponse{AccessToken: "signed.jwt", TokenType: "bearer"})
		case "/users/me":
			assert.Equal(t, "Bearer signed.jwt", r.Header.Get("Authorization"))
			writeJSON(t, w, http.StatusOK, models.User{ID: 10, Email: "alice@example.com"})
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))

	tokenResp, err := a.Login(context.Background(), models.LoginRequest{Email: "alice@example.com", Password: "password123"})
	require.NoError(t, err)
	assert.Equal(t, "signed.jwt", tokenResp.AccessToken)
	assert.Equal(t, "signed.jwt", a.Token())

	user, err := a.Me(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(10), user.ID)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	a, _ := newTestAdapter(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusUnauthorized, models.ErrorResponse{Detail: "incorrect email or password"})
	}))

	_, err := a.Login(context.Background(), models.LoginRequest{Email: "ghost@example.com", Password: "whatever1"})
	require.ErrorIs(t, err, ErrUnauthorized)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.Equal(t, "incorrect email or password", apiErr.Detail)
	assert.Empty(t, a.Token(), "a failed login must not store a token")
}

func TestClearToken(t *testing.T) {
	a, _ := newTestAdapter(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusOK, models.TokenResponse{AccessToken: "signed.jwt", TokenType: "bearer"})
	}))

	_, err := a.Login(context.Background(), models.LoginRequest{Email: "a@b.com", Password: "password123"})
	require.NoError(t, err)
	require.NotEmpty(t, a.Token())

	a.ClearToken()
	assert.Empty(t, a.Token())
}

func TestListUsers_QueryParams(t *testing.T) {
	a, _ := newTestAdapter(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users", r.URL.Path)
		assert.Equal(t, "3", r.URL.Query().Get("page"))
		assert.Equal(t, "7", r.URL.Query().Get("pageSize"))

		writeJSON(t, w, http.StatusOK, models.UserListResponse{
			Items:      []models.User{{ID: 1}},
			Total:      15,
			Page:       3,
			PageSize:   7,
			TotalPages: 3,
		})
	}))

	list, err := a.ListUsers(context.Background(), 3, 7)
	require.NoError(t, err)
	assert.Equal(t, int64(15), list.Total)
	assert.Len(t, list.Items, 1)
}

func TestUpdateUser_PatchesByID(t *testing.T) {
	a, _ := newTestAdapter(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPatch, r.Method)
		require.Equal(t, "/users/5", r.URL.Path)

		var update models.UserUpdate
		require.NoError(t, json.NewDecoder(r.Body).Decode(&update))
		require.NotNil(t, update.Name)
		assert.Equal(t, "Renamed", *update.Name)
		assert.Nil(t, update.Email, "absent fields must not be serialised")

		writeJSON(t, w, http.StatusOK, models.User{ID: 5, Name: "Renamed"})
	}))

	name := "Renamed"
	user, err := a.UpdateUser(context.Background(), 5, models.UserUpdate{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", user.Name)
}

func TestDeleteUser_NoContent(t *testing.T) {
	a, _ := newTestAdapter(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		require.Equal(t, "/users/5", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	}))

	assert.NoError(t, a.DeleteUser(context.Background(), 5))
}

func TestMapHTTPError_SentinelsAndDetails(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     any
		sentinel error
		detail   string
	}{
		{name: "conflict with detail", status: http.StatusConflict, body: models.ErrorResponse{Detail: "email already registered"}, sentinel: ErrConflict, detail: "email already registered"},
		{name: "not found", status: http.StatusNotFound, body: models.ErrorResponse{Detail: "user not found"}, sentinel: ErrNotFound, detail: "user not found"},
		{name: "unprocessable", status: http.StatusUnprocessableEntity, body: models.ErrorResponse{Detail: "validation failed"}, sentinel: ErrUnprocessable, detail: "validation failed"},
		{name: "forbidden", status: http.StatusForbidden, body: models.ErrorResponse{Detail: "admin privileges required"}, sentinel: ErrForbidden, detail: "admin privileges required"},
		{name: "plain body falls back to raw text", status: http.StatusBadRequest, body: "boom", sentinel: ErrBadRequest, detail: `"boom"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, _ := newTestAdapter(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				writeJSON(t, w, tt.status, tt.body)
			}))

			_, err := a.GetUser(context.Background(), 1)
			require.ErrorIs(t, err, tt.sentinel)

			var apiErr *APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.status, apiErr.Status)
			assert.Equal(t, tt.detail, apiErr.Detail)
		})
	}
}

func TestMapHTTPError_EmptyBodyUsesStatusText(t *testing.T) {
	a, _ := newTestAdapter(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))

	_, err := a.GetUser(context.Background(), 1)
	require.ErrorIs(t, err, ErrInternalServerError)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusText(http.StatusInternalServerError), apiErr.Detail)
}

func TestMapHTTPError_TransportErrorIsNotAPIError(t *testing.T) {
	a, err := NewHTTPServerAdapter(config.ClientAdapter{
		HTTPAddress:    "http://127.0.0.1:1", // nothing listens here
		RequestTimeout: 200 * time.Millisecond,
	}, logger.Nop())
	require.NoError(t, err)

	_, err = a.Me(context.Background())
	require.Error(t, err)

	var apiErr *APIError
	assert.False(t, errors.As(err, &apiErr), "network failures are not API errors")
}
