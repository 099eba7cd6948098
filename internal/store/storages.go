package store

import (
	"context"

	"github.com/MKhiriev/go-account-service/internal/config"
	"github.com/MKhiriev/go-account-service/internal/logger"
	"github.com/MKhiriev/go-account-service/migrations"
)

// Storages aggregates every repository of the server process.
type Storages struct {
	UserRepository UserRepository
}

// NewStorages connects to PostgreSQL, applies pending migrations, and
// constructs all repositories.
func NewStorages(ctx context.Context, cfg config.Storage, log *logger.Logger) (*Storages, error) {
	db, err := NewConnectPostgres(ctx, cfg.DB, log)
	if err != nil {
		return nil, err
	}

	if err = migrations.Migrate(db.DB); err != nil {
		return nil, err
	}

	return &Storages{
		UserRepository: NewUserRepository(db, log),
	}, nil
}
