// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"
	"time"

	"github.com/MKhiriev/go-account-service/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/session_mock.go -package=mock

// Client defines the minimal lifecycle contract for runnable client
// applications.
type Client interface {
	// Run starts the client application and blocks until exit.
	Run() error
}

// Session is an authenticated connection to the account service with an
// in-memory cache of the current user's profile.
//
// The cache holds at most one entry. A cached profile older than the
// configured TTL is considered stale and is re-fetched from the server on
// the next CurrentUser call. All methods are safe for concurrent use.
type Session interface {
	// Login authenticates against the server, stores the issued token in
	// the underlying adapter, and primes the cache with the fresh profile.
	Login(ctx context.Context, req models.LoginRequest) (models.User, error)

	// Logout drops the bearer token and clears the cached profile.
	Logout()

	// CurrentUser returns the cached profile when it is still fresh, and
	// otherwise re-fetches it from the server. Returns
	// [ErrNotAuthenticated] when no login has happened yet.
	CurrentUser(ctx context.Context) (models.User, error)

	// Refresh unconditionally re-fetches the profile from the server and
	// replaces the cached entry.
	Refresh(ctx context.Context) (models.User, error)

	// Invalidate marks the cached profile stale without contacting the
	// server. The next CurrentUser call re-fetches.
	Invalidate()
}

// SessionJob is a background worker that keeps the session cache warm by
// periodically refreshing the current-user profile while logged in.
type SessionJob interface {
	// Start launches the periodic refresh. A previously running job is
	// stopped first. The job exits when ctx is cancelled or Stop is called.
	Start(ctx context.Context, interval time.Duration)

	// Stop cancels the background goroutine and waits for it to exit.
	// Safe to call when the job is not running.
	Stop()
}
