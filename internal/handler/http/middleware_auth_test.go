// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-account-service/internal/service"
	"github.com/MKhiriev/go-account-service/models"
)

func TestAuth_MissingHeader(t *testing.T) {
	auth, users := authedServices(activeUser)
	h := newTestHandler(t, auth, users)

	rec := doRequest(t, h, httptest.NewRequest(http.MethodGet, "/users/me", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, ErrEmptyAuthorizationHeader.Error(), decodeDetail(t, rec))
}

func TestAuth_HeaderWithoutToken(t *testing.T) {
	auth, users := authedServices(activeUser)
	h := newTestHandler(t, auth, users)

	req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
	req.Header.Set("Authorization", "Bearer")
	rec := doRequest(t, h, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuth_InvalidToken(t *testing.T) {
	auth, users := authedServices(activeUser)
	h := newTestHandler(t, auth, users)

	req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	rec := doRequest(t, h, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, service.ErrTokenIsExpiredOrInvalid.Error(), decodeDetail(t, rec))
}

func TestAuth_TokenSubjectDeleted(t *testing.T) {
	// Token parses fine, but the account behind it is gone.
	auth := &mockAuthService{
		parseTokenFn: func(_ context.Context, _ string) (models.Token, error) {
			return models.Token{UserID: 99}, nil
		},
	}
	users := &mockUserService{
		getUserFn: func(_ context.Context, _ int64) (models.User, error) {
			return models.User{}, service.ErrUserNotFound
		},
	}
	h := newTestHandler(t, auth, users)

	rec := doRequest(t, h, authedRequest(http.MethodGet, "/users/me", ""))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuth_DeactivatedAccountRejectedImmediately(t *testing.T) {
	// A valid token becomes useless the moment the account is deactivated,
	// without waiting for token expiry.
	deactivated := activeUser
	deactivated.IsActive = false

	auth, users := authedServices(deactivated)
	h := newTestHandler(t, auth, users)

	rec := doRequest(t, h, authedRequest(http.MethodGet, "/users/me", ""))

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, service.ErrInactiveUser.Error(), decodeDetail(t, rec))
}

func TestGetTokenFromAuthHeader(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		want    string
		wantErr error
	}{
		{name: "bearer token", header: "Bearer abc.def.ghi", want: "abc.def.ghi"},
		{name: "scheme only", header: "Bearer", wantErr: ErrInvalidAuthorizationHeader},
		{name: "empty token part", header: "Bearer ", wantErr: ErrEmptyToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := getTokenFromAuthHeader(tt.header)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
