package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/MKhiriev/go-account-service/internal/logger"
	"github.com/jackc/pgerrcode"
)

// qb is the shared squirrel statement builder configured for PostgreSQL
// ($1-style placeholders).
var qb = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// retryAttempts bounds how many times a transactional operation is executed
// when the driver keeps reporting transient failures (lost connection,
// deadlock, serialization rollback).
const retryAttempts = 3

// Repository is a generic CRUD data-access layer over one entity type E.
// Query construction is delegated to squirrel; row mapping is delegated to
// the entity's [Mapper]. Entity-specific repositories (see userRepository)
// embed it and add their own lookups on top.
//
// Every mutating operation runs inside its own transaction: on any internal
// failure the transaction rolls back entirely, on success it commits exactly
// once. Context cancellation mid-operation aborts the transaction.
type Repository[E any] struct {
	db     *DB
	mapper Mapper[E]
	logger *logger.Logger
}

// NewRepository constructs a [Repository] for the entity described by mapper,
// backed by the provided database connection and logger.
func NewRepository[E any](db *DB, mapper Mapper[E], logger *logger.Logger) *Repository[E] {
	logger.Debug().Str("table", mapper.Table()).Msg("creating repository")
	return &Repository[E]{
		db:     db,
		mapper: mapper,
		logger: logger,
	}
}

// GetByID retrieves a single entity by its identifier.
//
// Absence is not an error: when no row matches, GetByID returns (nil, nil).
// Callers that require presence must check for a nil result themselves.
func (r *Repository[E]) GetByID(ctx context.Context, id int64) (*E, error) {
	log := logger.FromContext(ctx)

	query, args, err := qb.
		Select(r.mapper.Columns()...).
		From(r.mapper.Table()).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "Repository.GetByID").Msg("failed to build query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	entity, err := r.mapper.Scan(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		log.Err(err).Str("func", "Repository.GetByID").Int64("id", id).Msg("error: scanning error")
		return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return &entity, nil
}

// List retrieves a page of entities ordered by id ascending, plus the total
// row count for pagination.
//
// An offset/limit window beyond the end of the table yields an empty slice,
// not an error.
func (r *Repository[E]) List(ctx context.Context, offset, limit uint64) ([]E, int64, error) {
	log := logger.FromContext(ctx)

	query, args, err := qb.
		Select(r.mapper.Columns()...).
		From(r.mapper.Table()).
		OrderBy("id ASC").
		Offset(offset).
		Limit(limit).
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "Repository.List").Msg("failed to build query")
		return nil, 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "Repository.List").Msg("failed to execute query")
		return nil, 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	entities := make([]E, 0, limit)
	for rows.Next() {
		entity, scanErr := r.mapper.Scan(rows)
		if scanErr != nil {
			log.Err(scanErr).Str("func", "Repository.List").Msg("error: scanning error")
			return nil, 0, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		entities = append(entities, entity)
	}
	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).Str("func", "Repository.List").Msg("error occurred during rows iteration")
		return nil, 0, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	total, err := r.count(ctx)
	if err != nil {
		return nil, 0, err
	}

	return entities, total, nil
}

// withRetry runs op, re-running it while the database error classifier deems
// the failure transient, up to [retryAttempts] executions in total. Each op
// invocation owns its whole transaction, so a retried attempt starts clean
// after the previous rollback.
func (r *Repository[E]) withRetry(ctx context.Context, op func() error) error {
	log := logger.FromContext(ctx)

	var err error
	for attempt := 1; ; attempt++ {
		if err = op(); err == nil {
			return nil
		}
		if attempt >= retryAttempts || r.db.errorClassificator.Classify(err) != Retryable {
			return err
		}
		log.Warn().Err(err).Int("attempt", attempt).Msg("transient database failure, retrying")
	}
}

// Create persists a new entity inside a transaction and returns the canonical
// database representation with server-assigned fields (id, timestamps).
// Transient driver failures are retried per the store's error classifier.
//
// Error handling:
//   - PostgreSQL unique_violation (23505) → [ErrUniqueViolation].
//   - Any other driver-level error → wrapped as [ErrExecutingStatement].
func (r *Repository[E]) Create(ctx context.Context, entity E) (E, error) {
	var created E
	err := r.withRetry(ctx, func() error {
		var opErr error
		created, opErr = r.createTx(ctx, entity)
		return opErr
	})
	return created, err
}

func (r *Repository[E]) createTx(ctx context.Context, entity E) (E, error) {
	log := logger.FromContext(ctx)
	var zero E

	query, args, err := qb.
		Insert(r.mapper.Table()).
		SetMap(r.mapper.InsertValues(entity)).
		Suffix("RETURNING " + strings.Join(r.mapper.Columns(), ", ")).
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "Repository.Create").Msg("failed to build query")
		return zero, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "Repository.Create").Msg("failed to begin transaction")
		return zero, fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	created, err := r.mapper.Scan(tx.QueryRowContext(ctx, query, args...))
	if err != nil {
		log.Err(err).Str("func", "Repository.Create").Msg("failed to insert row")

		switch postgresError(err) {
		case pgerrcode.UniqueViolation:
			return zero, ErrUniqueViolation
		default:
			return zero, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
	}

	if commitErr := tx.Commit(); commitErr != nil {
		log.Err(commitErr).Str("func", "Repository.Create").Msg("failed to commit transaction")
		return zero, fmt.Errorf("%w: %w", ErrCommitingTransaction, commitErr)
	}

	return created, nil
}

// Update applies a partial column->value map to the row with the given id
// inside a transaction, advances updated_at, and returns the updated entity.
// Transient driver failures are retried per the store's error classifier.
//
// Error handling:
//   - No row with the given id → [ErrNotFound].
//   - PostgreSQL unique_violation (23505) → [ErrUniqueViolation]
//     (e.g. an email change colliding with an existing account).
func (r *Repository[E]) Update(ctx context.Context, id int64, fields map[string]any) (E, error) {
	var updated E
	err := r.withRetry(ctx, func() error {
		var opErr error
		updated, opErr = r.updateTx(ctx, id, fields)
		return opErr
	})
	return updated, err
}

func (r *Repository[E]) updateTx(ctx context.Context, id int64, fields map[string]any) (E, error) {
	log := logger.FromContext(ctx)
	var zero E

	query, args, err := qb.
		Update(r.mapper.Table()).
		SetMap(fields).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING " + strings.Join(r.mapper.Columns(), ", ")).
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "Repository.Update").Msg("failed to build query")
		return zero, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "Repository.Update").Msg("failed to begin transaction")
		return zero, fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	updated, err := r.mapper.Scan(tx.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return zero, ErrNotFound
	}
	if err != nil {
		log.Err(err).Str("func", "Repository.Update").Int64("id", id).Msg("failed to update row")

		switch postgresError(err) {
		case pgerrcode.UniqueViolation:
			return zero, ErrUniqueViolation
		default:
			return zero, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
	}

	if commitErr := tx.Commit(); commitErr != nil {
		log.Err(commitErr).Str("func", "Repository.Update").Msg("failed to commit transaction")
		return zero, fmt.Errorf("%w: %w", ErrCommitingTransaction, commitErr)
	}

	return updated, nil
}

// Delete removes the row with the given id inside a transaction. Transient
// driver failures are retried per the store's error classifier.
//
// Deletion is terminal: a second Delete of the same id returns [ErrNotFound],
// never a crash.
func (r *Repository[E]) Delete(ctx context.Context, id int64) error {
	return r.withRetry(ctx, func() error {
		return r.deleteTx(ctx, id)
	})
}

func (r *Repository[E]) deleteTx(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx)

	query, args, err := qb.
		Delete(r.mapper.Table()).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "Repository.Delete").Msg("failed to build query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "Repository.Delete").Msg("failed to begin transaction")
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "Repository.Delete").Int64("id", id).Msg("failed to delete row")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrNotFound
	}

	if commitErr := tx.Commit(); commitErr != nil {
		log.Err(commitErr).Str("func", "Repository.Delete").Msg("failed to commit transaction")
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, commitErr)
	}

	return nil
}

func (r *Repository[E]) count(ctx context.Context) (int64, error) {
	log := logger.FromContext(ctx)

	query, args, err := qb.
		Select("count(*)").
		From(r.mapper.Table()).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var total int64
	if err = r.db.QueryRowContext(ctx, query, args...).Scan(&total); err != nil {
		log.Err(err).Str("func", "Repository.count").Msg("failed to count rows")
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return total, nil
}
