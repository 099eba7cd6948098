package models

import "time"

// User represents an account entity used for authentication and authorization.
// It contains identity attributes and credential-related data.
// Sensitive fields must never be exposed outside trusted boundaries.
type User struct {
	// ID is the internal unique identifier of the user.
	// It is immutable once assigned by the persistence layer.
	ID int64 `json:"id"`

	// Email is the unique user identifier used during authentication.
	// It is stored lower-cased; uniqueness is enforced by the database.
	Email string `json:"email"`

	// Name is the display name of the user.
	// It is non-sensitive and may be shown in UI.
	Name string `json:"name"`

	// PasswordHash stores the bcrypt hash of the user's password.
	// This value MUST be a derived value, never plaintext.
	// It is never exposed via JSON and is write-only from the API's
	// perspective.
	PasswordHash string `json:"-"`

	// IsActive marks whether the account may authenticate.
	// Inactive accounts are rejected at login and on every authenticated
	// request.
	IsActive bool `json:"isActive"`

	// IsAdmin grants access to privileged user-management operations.
	IsAdmin bool `json:"isAdmin"`

	// CreatedAt is the timestamp when the user account was created.
	// Used for auditing and lifecycle management.
	CreatedAt time.Time `json:"createdAt"`

	// UpdatedAt is the timestamp of the last profile mutation.
	// The repository advances it on every update.
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}
