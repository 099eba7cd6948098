package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/MKhiriev/go-account-service/internal/logger"
	"github.com/MKhiriev/go-account-service/internal/utils"
	"github.com/MKhiriev/go-account-service/models"
)

// userMapper maps [models.User] onto the "users" table for the generic
// [Repository].
type userMapper struct{}

func (userMapper) Table() string {
	return models.User{}.TableName()
}

func (userMapper) Columns() []string {
	return []string{"id", "email", "name", "password_hash", "is_active", "is_admin", "created_at", "updated_at"}
}

func (userMapper) Scan(row RowScanner) (models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Email, &u.Name, &u.PasswordHash, &u.IsActive, &u.IsAdmin, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

func (userMapper) InsertValues(u models.User) map[string]any {
	return map[string]any{
		"email":         u.Email,
		"name":          u.Name,
		"password_hash": u.PasswordHash,
		"is_active":     u.IsActive,
		"is_admin":      u.IsAdmin,
	}
}

// userRepository is the PostgreSQL-backed implementation of [UserRepository].
// It composes the generic [Repository] for uniform CRUD and adds the
// identity-specific lookups (by email) and credential verification.
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, request-level tracing of database interactions.
type userRepository struct {
	*Repository[models.User]
	logger *logger.Logger
}

// NewUserRepository constructs a [UserRepository] backed by the provided
// database connection and logger.
//
// A debug-level log message is emitted at construction time to aid
// application startup diagnostics.
func NewUserRepository(db *DB, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating user repository")
	return &userRepository{
		Repository: NewRepository[models.User](db, userMapper{}, logger),
		logger:     logger,
	}
}

// CreateUser persists a new user record and returns the fully populated
// [models.User] with server-assigned fields (ID, CreatedAt, UpdatedAt).
// Delegates to the generic [Repository.Create]; a duplicate email surfaces
// as [ErrUniqueViolation].
func (r *userRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	return r.Create(ctx, user)
}

// GetByEmail retrieves a user record whose email matches the given one,
// case-insensitively.
//
// Absence is a normal result: (nil, nil) when no account uses the email.
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := qb.
		Select(userMapper{}.Columns()...).
		From(userMapper{}.Table()).
		Where(sq.Expr("lower(email) = lower(?)", email)).
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "*userRepository.GetByEmail").Msg("failed to build query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	user, err := userMapper{}.Scan(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		log.Err(err).Str("func", "*userRepository.GetByEmail").Msg("error: scanning error")
		return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return &user, nil
}

// Authenticate looks up the account by email and verifies the submitted
// password against the stored bcrypt hash.
//
// Both an unknown email and a wrong password yield the same (nil, nil)
// result so that the error shape cannot be used to enumerate registered
// emails. When the email is unknown a dummy hash comparison is still
// performed to keep the two paths close in duration.
func (r *userRepository) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	user, err := r.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	if user == nil {
		utils.BurnPasswordCheck(password)
		return nil, nil
	}

	if !utils.VerifyPassword(password, user.PasswordHash) {
		return nil, nil
	}

	return user, nil
}

// UpdateUser applies a partial column->value map to the user with the given
// id. Delegates to the generic [Repository.Update]; an absent id surfaces as
// [ErrNotFound] and an email collision as [ErrUniqueViolation].
func (r *userRepository) UpdateUser(ctx context.Context, id int64, fields map[string]any) (models.User, error) {
	return r.Update(ctx, id, fields)
}

// DeleteUser removes the user row with the given id. Delegates to the
// generic [Repository.Delete].
func (r *userRepository) DeleteUser(ctx context.Context, id int64) error {
	return r.Delete(ctx, id)
}
