package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-account-service/internal/logger"
	"github.com/MKhiriev/go-account-service/internal/store"
	"github.com/MKhiriev/go-account-service/internal/utils"
	"github.com/MKhiriev/go-account-service/models"
)

func newTestUserService(repo store.UserRepository) UserService {
	return NewUserService(repo, logger.Nop())
}

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

// ─────────────────────────────────────────────
// GetUser
// ─────────────────────────────────────────────

func TestGetUser_Found(t *testing.T) {
	stored := models.User{ID: 7, Email: "jane@example.com", Name: "Jane"}
	svc := newTestUserService(&mockUserRepository{
		getByIDFn: func(_ context.Context, id int64) (*models.User, error) {
			assert.Equal(t, int64(7), id)
			return &stored, nil
		},
	})

	got, err := svc.GetUser(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, stored, got)
}

func TestGetUser_Absent(t *testing.T) {
	svc := newTestUserService(&mockUserRepository{})

	_, err := svc.GetUser(context.Background(), 404)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

// ─────────────────────────────────────────────
// ListUsers
// ─────────────────────────────────────────────

func TestListUsers_PagingMath(t *testing.T) {
	tests := []struct {
		name           string
		page, pageSize int
		wantOffset     uint64
		wantLimit      uint64
		total          int64
		wantTotalPages int64
	}{
		{name: "defaults", page: 0, pageSize: 0, wantOffset: 0, wantLimit: 20, total: 45, wantTotalPages: 3},
		{name: "second page", page: 2, pageSize: 10, wantOffset: 10, wantLimit: 10, total: 45, wantTotalPages: 5},
		{name: "page size clamped to max", page: 1, pageSize: 1000, wantOffset: 0, wantLimit: 100, total: 45, wantTotalPages: 1},
		{name: "negative page treated as first", page: -3, pageSize: 10, wantOffset: 0, wantLimit: 10, total: 45, wantTotalPages: 5},
		{name: "exact division", page: 1, pageSize: 15, wantOffset: 0, wantLimit: 15, total: 45, wantTotalPages: 3},
		{name: "empty table", page: 1, pageSize: 20, wantOffset: 0, wantLimit: 20, total: 0, wantTotalPages: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestUserService(&mockUserRepository{
				listFn: func(_ context.Context, offset, limit uint64) ([]models.User, int64, error) {
					assert.Equal(t, tt.wantOffset, offset)
					assert.Equal(t, tt.wantLimit, limit)
					return []models.User{}, tt.total, nil
				},
			})

			got, err := svc.ListUsers(context.Background(), tt.page, tt.pageSize)
			require.NoError(t, err)
			assert.Equal(t, tt.total, got.Total)
			assert.Equal(t, tt.wantTotalPages, got.TotalPages)
			assert.Equal(t, int(tt.wantLimit), got.PageSize)
		})
	}
}

func TestListUsers_RepositoryError(t *testing.T) {
	svc := newTestUserService(&mockUserRepository{
		listFn: func(_ context.Context, _, _ uint64) ([]models.User, int64, error) {
			return nil, 0, errors.New("db down")
		},
	})

	_, err := svc.ListUsers(context.Background(), 1, 20)
	assert.Error(t, err)
}

// ─────────────────────────────────────────────
// UpdateUser
// ─────────────────────────────────────────────

func TestUpdateUser_PartialFields(t *testing.T) {
	svc := newTestUserService(&mockUserRepository{
		updateFn: func(_ context.Context, id int64, fields map[string]any) (models.User, error) {
			assert.Equal(t, int64(3), id)
			assert.Equal(t, map[string]any{"name": "Renamed"}, fields, "untouched fields must not appear in the update")
			return models.User{ID: 3, Name: "Renamed"}, nil
		},
	})

	got, err := svc.UpdateUser(context.Background(), 3, models.UserUpdate{Name: strPtr("Renamed")}, false)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", got.Name)
}

func TestUpdateUser_EmailNormalized(t *testing.T) {
	svc := newTestUserService(&mockUserRepository{
		updateFn: func(_ context.Context, _ int64, fields map[string]any) (models.User, error) {
			assert.Equal(t, "renamed@example.com", fields["email"])
			return models.User{ID: 3, Email: "renamed@example.com"}, nil
		},
	})

	_, err := svc.UpdateUser(context.Background(), 3, models.UserUpdate{Email: strPtr(" Renamed@Example.COM ")}, false)
	require.NoError(t, err)
}

func TestUpdateUser_PasswordRehashed(t *testing.T) {
	svc := newTestUserService(&mockUserRepository{
		updateFn: func(_ context.Context, _ int64, fields map[string]any) (models.User, error) {
			hash, ok := fields["password_hash"].(string)
			require.True(t, ok, "password must be stored under password_hash")
			assert.NotEqual(t, "fresh password", hash)
			assert.True(t, utils.VerifyPassword("fresh password", hash))

			_, clear := fields["password"]
			assert.False(t, clear, "clear password must never reach the store")
			return models.User{ID: 3}, nil
		},
	})

	_, err := svc.UpdateUser(context.Background(), 3, models.UserUpdate{Password: strPtr("fresh password")}, false)
	require.NoError(t, err)
}

func TestUpdateUser_ActiveToggleRequiresPrivilege(t *testing.T) {
	t.Run("self-service path drops the flag", func(t *testing.T) {
		svc := newTestUserService(&mockUserRepository{
			updateFn: func(_ context.Context, _ int64, fields map[string]any) (models.User, error) {
				_, hasActive := fields["is_active"]
				assert.False(t, hasActive)
				return models.User{ID: 3}, nil
			},
		})

		// Name keeps the update non-empty once is_active is dropped.
		_, err := svc.UpdateUser(context.Background(), 3, models.UserUpdate{Name: strPtr("N"), IsActive: boolPtr(false)}, false)
		require.NoError(t, err)
	})

	t.Run("privileged path applies the flag", func(t *testing.T) {
		svc := newTestUserService(&mockUserRepository{
			updateFn: func(_ context.Context, _ int64, fields map[string]any) (models.User, error) {
				assert.Equal(t, false, fields["is_active"])
				return models.User{ID: 3}, nil
			},
		})

		_, err := svc.UpdateUser(context.Background(), 3, models.UserUpdate{IsActive: boolPtr(false)}, true)
		require.NoError(t, err)
	})
}

func TestUpdateUser_EmptyUpdate(t *testing.T) {
	svc := newTestUserService(&mockUserRepository{
		updateFn: func(_ context.Context, _ int64, _ map[string]any) (models.User, error) {
			t.Fatal("store must not be touched for an empty update")
			return models.User{}, nil
		},
	})

	_, err := svc.UpdateUser(context.Background(), 3, models.UserUpdate{}, false)

	var validationErr *ValidationError
	assert.ErrorAs(t, err, &validationErr)
}

func TestUpdateUser_OnlyDroppedFlagIsEmpty(t *testing.T) {
	svc := newTestUserService(&mockUserRepository{
		updateFn: func(_ context.Context, _ int64, _ map[string]any) (models.User, error) {
			t.Fatal("store must not be touched when every field is dropped")
			return models.User{}, nil
		},
	})

	// The self-service path strips is_active, leaving nothing to change.
	_, err := svc.UpdateUser(context.Background(), 3, models.UserUpdate{IsActive: boolPtr(false)}, false)

	var validationErr *ValidationError
	assert.ErrorAs(t, err, &validationErr)
}

func TestUpdateUser_InvalidFields(t *testing.T) {
	svc := newTestUserService(&mockUserRepository{})

	tests := []struct {
		name   string
		update models.UserUpdate
	}{
		{name: "malformed email", update: models.UserUpdate{Email: strPtr("not-an-email")}},
		{name: "short password", update: models.UserUpdate{Password: strPtr("short")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.UpdateUser(context.Background(), 3, tt.update, false)

			var validationErr *ValidationError
			assert.ErrorAs(t, err, &validationErr)
		})
	}
}

func TestUpdateUser_NotFound(t *testing.T) {
	svc := newTestUserService(&mockUserRepository{
		updateFn: func(_ context.Context, _ int64, _ map[string]any) (models.User, error) {
			return models.User{}, store.ErrNotFound
		},
	})

	_, err := svc.UpdateUser(context.Background(), 404, models.UserUpdate{Name: strPtr("Ghost")}, true)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUpdateUser_EmailCollision(t *testing.T) {
	svc := newTestUserService(&mockUserRepository{
		updateFn: func(_ context.Context, _ int64, _ map[string]any) (models.User, error) {
			return models.User{}, store.ErrUniqueViolation
		},
	})

	_, err := svc.UpdateUser(context.Background(), 3, models.UserUpdate{Email: strPtr("taken@example.com")}, true)
	assert.ErrorIs(t, err, store.ErrUniqueViolation)
}

// ─────────────────────────────────────────────
// DeleteUser
// ─────────────────────────────────────────────

func TestDeleteUser_Success(t *testing.T) {
	deleted := false
	svc := newTestUserService(&mockUserRepository{
		deleteFn: func(_ context.Context, id int64) error {
			assert.Equal(t, int64(9), id)
			deleted = true
			return nil
		},
	})

	require.NoError(t, svc.DeleteUser(context.Background(), 1, 9))
	assert.True(t, deleted)
}

func TestDeleteUser_SelfDeletionRejected(t *testing.T) {
	svc := newTestUserService(&mockUserRepository{
		deleteFn: func(_ context.Context, _ int64) error {
			t.Fatal("store must not be touched for self-deletion")
			return nil
		},
	})

	err := svc.DeleteUser(context.Background(), 9, 9)
	assert.ErrorIs(t, err, ErrSelfDeletion)
}

func TestDeleteUser_NotFound(t *testing.T) {
	svc := newTestUserService(&mockUserRepository{
		deleteFn: func(_ context.Context, _ int64) error {
			return store.ErrNotFound
		},
	})

	err := svc.DeleteUser(context.Background(), 1, 404)
	assert.ErrorIs(t, err, ErrUserNotFound)
}
