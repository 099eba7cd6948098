package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-account-service/internal/logger"
	"github.com/MKhiriev/go-account-service/internal/store"
	"github.com/MKhiriev/go-account-service/internal/utils"
	"github.com/MKhiriev/go-account-service/models"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// userService is the concrete implementation of UserService.
type userService struct {
	userRepository store.UserRepository
	logger         *logger.Logger
}

// NewUserService constructs a UserService on top of the given UserRepository.
func NewUserService(userRepository store.UserRepository, logger *logger.Logger) UserService {
	return &userService{
		userRepository: userRepository,
		logger:         logger,
	}
}

// GetUser returns the user with the given id or ErrUserNotFound.
func (u *userService) GetUser(ctx context.Context, id int64) (models.User, error) {
	log := logger.FromContext(ctx)

	user, err := u.userRepository.GetByID(ctx, id)
	if err != nil {
		log.Err(err).Int64("id", id).Msg("user lookup failed")
		return models.User{}, fmt.Errorf("user lookup failed: %w", err)
	}
	if user == nil {
		return models.User{}, ErrUserNotFound
	}

	return *user, nil
}

// ListUsers returns one page of users ordered by id ascending.
//
// Page numbers start at 1; pageSize is clamped to [1, 100] with a default of
// 20. A page beyond the end of the table yields an empty item list with the
// correct total.
func (u *userService) ListUsers(ctx context.Context, page, pageSize int) (models.UserListResponse, error) {
	log := logger.FromContext(ctx)

	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	offset := uint64(page-1) * uint64(pageSize)
	users, total, err := u.userRepository.List(ctx, offset, uint64(pageSize))
	if err != nil {
		log.Err(err).Int("page", page).Int("page_size", pageSize).Msg("user listing failed")
		return models.UserListResponse{}, fmt.Errorf("user listing failed: %w", err)
	}

	totalPages := (total + int64(pageSize) - 1) / int64(pageSize)

	return models.UserListResponse{
		Items:      users,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}, nil
}

// UpdateUser applies a partial profile update to the user with the given id.
//
// Only supplied fields change. An email change is stored lower-cased and
// re-checked for uniqueness by the store's unique index; a password change is
// re-hashed; the active flag is honoured only when allowActiveToggle is true
// (the privileged update-by-id path).
//
// Returns the updated user or:
//   - A *ValidationError if any supplied field fails validation or the
//     update carries no fields at all.
//   - ErrUserNotFound if no user has the given id.
//   - store.ErrUniqueViolation if the new email is already registered.
func (u *userService) UpdateUser(ctx context.Context, id int64, update models.UserUpdate, allowActiveToggle bool) (models.User, error) {
	log := logger.FromContext(ctx)

	if update.Empty() {
		return models.User{}, &ValidationError{Fields: []string{"no fields to update"}}
	}
	if update.Email != nil {
		normalized := normalizeEmail(*update.Email)
		update.Email = &normalized
	}
	if err := checkStruct(update); err != nil {
		log.Err(err).Int64("id", id).Msg("invalid update data provided")
		return models.User{}, err
	}

	fields := make(map[string]any, 4)
	if update.Email != nil {
		fields["email"] = *update.Email
	}
	if update.Name != nil {
		fields["name"] = *update.Name
	}
	if update.Password != nil {
		passwordHash, err := utils.HashPassword(*update.Password)
		if err != nil {
			log.Err(err).Int64("id", id).Msg("password hashing failed")
			return models.User{}, fmt.Errorf("password hashing failed: %w", err)
		}
		fields["password_hash"] = passwordHash
	}
	if update.IsActive != nil && allowActiveToggle {
		fields["is_active"] = *update.IsActive
	}

	if len(fields) == 0 {
		return models.User{}, &ValidationError{Fields: []string{"no fields to update"}}
	}

	updatedUser, err := u.userRepository.UpdateUser(ctx, id, fields)
	if errors.Is(err, store.ErrNotFound) {
		return models.User{}, ErrUserNotFound
	}
	if err != nil {
		log.Err(err).Int64("id", id).Msg("user update failed")
		return models.User{}, fmt.Errorf("user update failed: %w", err)
	}

	return updatedUser, nil
}

// DeleteUser removes the account with the given id.
//
// Deleting one's own account is rejected with ErrSelfDeletion; a second
// deletion of the same id returns ErrUserNotFound.
func (u *userService) DeleteUser(ctx context.Context, callerID, id int64) error {
	log := logger.FromContext(ctx)

	if callerID == id {
		log.Warn().Int64("id", id).Msg("admin attempted self-deletion")
		return ErrSelfDeletion
	}

	err := u.userRepository.DeleteUser(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return ErrUserNotFound
	}
	if err != nil {
		log.Err(err).Int64("id", id).Msg("user deletion failed")
		return fmt.Errorf("user deletion failed: %w", err)
	}

	return nil
}
