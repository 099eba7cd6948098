package store

import (
	"context"

	"github.com/MKhiriev/go-account-service/models"
)

// RowScanner abstracts *sql.Row and *sql.Rows for entity mappers.
type RowScanner interface {
	Scan(dest ...any) error
}

// Mapper describes how a single entity type maps onto its database table.
// Implementations are stateless value types; one mapper instance is shared
// by all repository operations for that entity.
type Mapper[E any] interface {
	// Table returns the table name the entity is stored in.
	Table() string

	// Columns returns every persisted column in scan order, "id" first.
	Columns() []string

	// Scan reads one row (in Columns order) into a fresh entity value.
	Scan(row RowScanner) (E, error)

	// InsertValues returns the column->value map for a new row. Server
	// assigned columns (id, created_at, updated_at) are excluded; the
	// database fills them and the INSERT returns them via RETURNING.
	InsertValues(e E) map[string]any
}

// ErrorClassificator decides whether a failed database operation is worth
// retrying. Repository mutations consult it before re-running a failed
// transaction. See [PostgresErrorClassifier].
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}

// UserRepository is the data-access contract for user accounts.
//
// Lookup methods (GetByID, GetByEmail, Authenticate) report absence as a
// (nil, nil) result — absence is not an error. Mutating methods return
// [ErrNotFound] when the target row does not exist and [ErrUniqueViolation]
// when the email uniqueness invariant is broken.
type UserRepository interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)

	// Authenticate looks up the account by email and verifies the password.
	// Both an unknown email and a wrong password yield (nil, nil) so that
	// callers cannot distinguish the two cases.
	Authenticate(ctx context.Context, email, password string) (*models.User, error)

	List(ctx context.Context, offset, limit uint64) ([]models.User, int64, error)
	UpdateUser(ctx context.Context, id int64, fields map[string]any) (models.User, error)
	DeleteUser(ctx context.Context, id int64) error
}
