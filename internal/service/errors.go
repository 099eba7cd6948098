package service

import "errors"

// Sentinel errors returned by the service layer. Handlers match against them
// with [errors.Is] and translate them to HTTP status codes; nothing below the
// handler layer emits an HTTP-shaped error.
var (
	// ErrInvalidDataProvided is returned when required input is missing or
	// malformed before any store interaction.
	ErrInvalidDataProvided = errors.New("invalid data provided")

	// ErrInvalidCredentials is returned on login failure. The message is
	// deliberately identical for an unknown email and a wrong password so
	// that responses cannot be used to enumerate registered accounts.
	ErrInvalidCredentials = errors.New("incorrect email or password")

	// ErrInactiveUser is returned when a deactivated account attempts to
	// authenticate or presents an otherwise valid token.
	ErrInactiveUser = errors.New("inactive user")

	// ErrUserNotFound is returned when an operation targets a user id that
	// does not exist in the store.
	ErrUserNotFound = errors.New("user not found")

	// ErrSelfDeletion is returned when an admin attempts to delete their
	// own account.
	ErrSelfDeletion = errors.New("cannot delete your own account")

	// ErrTokenCreationFailed is returned when JWT signing fails.
	ErrTokenCreationFailed = errors.New("token creation failed")

	// ErrTokenIsExpiredOrInvalid is the normalised failure for any token
	// validation problem: bad signature, wrong issuer, malformed token, or
	// passive expiry.
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")
)
