package client

import "errors"

var (
	// ErrNotAuthenticated is returned by session methods that require a
	// prior successful Login.
	ErrNotAuthenticated = errors.New("not authenticated")
)
