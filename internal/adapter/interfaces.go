// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides transport-layer abstractions for communicating
// with the account server.
//
// The primary abstraction is [ServerAdapter], which decouples the client-side
// service layer from the underlying protocol. The package ships an HTTP/REST
// implementation ([NewHTTPServerAdapter]).
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] for transport-agnostic
// error handling (e.g. [ErrConflict] for 409, [ErrUnauthorized] for 401).
package adapter

import (
	"context"

	"github.com/MKhiriev/go-account-service/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/server_adapter_mock.go -package=mock

// ServerAdapter defines transport-agnostic communication with the account
// server. Implementations are responsible for serialisation, authentication
// header management, and mapping transport-level errors to the sentinel
// values defined in this package.
type ServerAdapter interface {
	// SetToken stores the bearer token that will be attached to all
	// subsequent authenticated requests. It is called automatically after a
	// successful Login.
	SetToken(token string)

	// Token returns the bearer token currently stored in the adapter, or an
	// empty string if no token has been set yet.
	Token() string

	// ClearToken drops the stored bearer token. Subsequent requests are sent
	// unauthenticated until the next Login or SetToken.
	ClearToken()

	// Register creates a new account and returns the server's view of it.
	// Registration does not authenticate: a Login call is still required to
	// obtain a token.
	Register(ctx context.Context, req models.RegisterRequest) (models.User, error)

	// Login exchanges credentials for a bearer token. On success the token
	// is stored via SetToken and the full token response is returned.
	Login(ctx context.Context, req models.LoginRequest) (models.TokenResponse, error)

	// Me returns the profile of the authenticated caller.
	Me(ctx context.Context) (models.User, error)

	// UpdateMe applies a partial update to the caller's own profile and
	// returns the updated view.
	UpdateMe(ctx context.Context, update models.UserUpdate) (models.User, error)

	// ListUsers fetches one page of accounts. Requires an admin token.
	ListUsers(ctx context.Context, page, pageSize int) (models.UserListResponse, error)

	// GetUser fetches an arbitrary account by id. Requires an admin token.
	GetUser(ctx context.Context, id int64) (models.User, error)

	// UpdateUser applies a partial update, including the active flag, to an
	// arbitrary account. Requires an admin token.
	UpdateUser(ctx context.Context, id int64, update models.UserUpdate) (models.User, error)

	// DeleteUser removes an account. Requires an admin token; deleting the
	// token's own account is rejected by the server.
	DeleteUser(ctx context.Context, id int64) error
}
