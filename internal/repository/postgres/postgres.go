package postgres

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"fashionswap-backend/internal/domain"
	"fashionswap-backend/internal/logger"
	"fashionswap-backend/internal/repository"
)

//go:embed schema.sql
var schema string

// uniqueViolation is the Postgres SQLSTATE for a duplicate key.
const uniqueViolation = "23505"

type Store struct {
	db *sql.DB
	repository.ListingRepository
	repository.RentalRepository
	repository.ProfileRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                db,
		ListingRepository: NewListingRepository(db),
		RentalRepository:  NewRentalRepository(db),
		ProfileRepository: NewProfileRepository(db),
	}
}

// PingContext checks the database connection.
func (s *Store) PingContext(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Migrate creates the tables if they do not exist yet.
func Migrate(ctx context.Context, db *sql.DB) error {
	logger.DatabaseCall("Migrate")
	_, err := db.ExecContext(ctx, schema)
	logger.DatabaseResult("Migrate", err)
	if err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}

// mapError translates driver errors into repository sentinels.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return repository.ErrNotFound
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return fmt.Errorf("%w: %s", repository.ErrConflict, pqErr.Constraint)
	}
	return err
}

// storedStatus folds the derived OVERDUE state back into ACTIVE; overdue is
// never persisted.
func storedStatus(s domain.RentalStatus) domain.RentalStatus {
	if s == domain.RentalStatusOverdue {
		return domain.RentalStatusActive
	}
	return s
}

func pageBounds(page, pageSize int32) (limit, offset int32) {
	if pageSize <= 0 {
		pageSize = 20
	}
	if pageSize > 100 {
		pageSize = 100
	}
	if page < 1 {
		page = 1
	}
	return pageSize, (page - 1) * pageSize
}
