package service

import (
	"context"

	"github.com/MKhiriev/go-account-service/models"
)

// AuthService handles user registration, credential verification, and JWT
// token lifecycle.
type AuthService interface {
	// RegisterUser validates the registration input, hashes the password,
	// and persists a new active account.
	RegisterUser(ctx context.Context, req models.RegisterRequest) (models.User, error)

	// Login authenticates an existing user. The failure for an unknown
	// email and for a wrong password is identical (ErrInvalidCredentials).
	Login(ctx context.Context, req models.LoginRequest) (models.User, error)

	CreateToken(ctx context.Context, user models.User) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

// UserService implements profile reads and mutations on top of the user
// repository.
type UserService interface {
	GetUser(ctx context.Context, id int64) (models.User, error)
	ListUsers(ctx context.Context, page, pageSize int) (models.UserListResponse, error)

	// UpdateUser applies a partial update. allowActiveToggle is true only
	// for the privileged update-by-id path; the self-service path may not
	// change the active flag.
	UpdateUser(ctx context.Context, id int64, update models.UserUpdate, allowActiveToggle bool) (models.User, error)

	// DeleteUser removes the account with the given id. callerID is the
	// authenticated admin performing the deletion; deleting one's own
	// account is rejected.
	DeleteUser(ctx context.Context, callerID, id int64) error
}
