package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"fashionswap-backend/internal/domain"
	"fashionswap-backend/internal/logger"
	"fashionswap-backend/internal/repository"
)

const rentalColumns = `id, item_id, start_date, end_date, daily_price, total_cost, total_paid, deposit_amount, status, renter_address, owner_address, carbon_saved_kg, escrow_tx_hash, created_on, updated_on`

type rentalRepository struct {
	db *sql.DB
}

func NewRentalRepository(db *sql.DB) repository.RentalRepository {
	return &rentalRepository{db: db}
}

func scanRental(row rowScanner, rt *domain.Rental) error {
	return row.Scan(&rt.ID, &rt.ItemID, &rt.StartDate, &rt.EndDate, &rt.DailyPrice, &rt.TotalCost, &rt.TotalPaid,
		&rt.DepositAmount, &rt.Status, &rt.RenterAddress, &rt.OwnerAddress, &rt.CarbonSavedKg, &rt.EscrowTxHash,
		&rt.CreatedOn, &rt.UpdatedOn)
}

func (r *rentalRepository) Create(ctx context.Context, rt *domain.Rental) error {
	now := time.Now().UTC()
	rt.CreatedOn, rt.UpdatedOn = now, now
	query := `INSERT INTO rentals (` + rentalColumns + `)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.db.ExecContext(ctx, query, rt.ID, rt.ItemID, rt.StartDate, rt.EndDate, rt.DailyPrice, rt.TotalCost,
		rt.TotalPaid, rt.DepositAmount, storedStatus(rt.Status), rt.RenterAddress, rt.OwnerAddress, rt.CarbonSavedKg,
		rt.EscrowTxHash, rt.CreatedOn, rt.UpdatedOn)
	return mapError(err)
}

func (r *rentalRepository) GetByID(ctx context.Context, id string) (*domain.Rental, error) {
	rt := &domain.Rental{}
	query := `SELECT ` + rentalColumns + ` FROM rentals WHERE id = $1`
	if err := scanRental(r.db.QueryRowContext(ctx, query, id), rt); err != nil {
		return nil, mapError(err)
	}
	return rt, nil
}

// Update is a compare-and-set on total_paid so a payment computed from a
// stale read can never overwrite a newer one or reopen a completed rental.
func (r *rentalRepository) Update(ctx context.Context, rt *domain.Rental, paidBefore decimal.Decimal) error {
	updatedOn := time.Now().UTC()
	query := `UPDATE rentals SET status = $1, total_paid = $2, updated_on = $3
	          WHERE id = $4 AND status <> 'COMPLETED' AND total_paid = $5`
	logger.DatabaseCall("UpdateRental", "id", rt.ID)
	res, err := r.db.ExecContext(ctx, query, storedStatus(rt.Status), rt.TotalPaid, updatedOn, rt.ID, paidBefore)
	logger.DatabaseResult("UpdateRental", err, "id", rt.ID)
	if err != nil {
		return mapError(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: rental %s was completed or paid since it was read", repository.ErrConflict, rt.ID)
	}
	rt.UpdatedOn = updatedOn
	return nil
}

func (r *rentalRepository) ListByRenter(ctx context.Context, q repository.RentalQuery) ([]domain.Rental, int32, error) {
	return r.listByParty(ctx, "renter_address", q)
}

func (r *rentalRepository) ListByOwner(ctx context.Context, q repository.RentalQuery) ([]domain.Rental, int32, error) {
	return r.listByParty(ctx, "owner_address", q)
}

func (r *rentalRepository) listByParty(ctx context.Context, column string, q repository.RentalQuery) ([]domain.Rental, int32, error) {
	query := `SELECT ` + rentalColumns + ` FROM rentals WHERE ` + column + ` = $1`
	args := []any{q.Address}

	switch q.Status {
	case domain.RentalStatusCompleted:
		query += " AND status = 'COMPLETED'"
	case domain.RentalStatusActive:
		query += " AND status <> 'COMPLETED' AND end_date >= $2"
		args = append(args, q.Now)
	case domain.RentalStatusOverdue:
		query += " AND status <> 'COMPLETED' AND end_date < $2"
		args = append(args, q.Now)
	}

	var count int32
	if err := r.db.QueryRowContext(ctx, "SELECT count(*) FROM ("+query+") AS sub", args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	limit, offset := pageBounds(q.Page, q.PageSize)
	query += fmt.Sprintf(" ORDER BY created_on DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var rentals []domain.Rental
	for rows.Next() {
		var rt domain.Rental
		if err := scanRental(rows, &rt); err != nil {
			return nil, 0, err
		}
		rentals = append(rentals, rt)
	}
	return rentals, count, rows.Err()
}

func (r *rentalRepository) ListOpen(ctx context.Context, afterID string, limit int) ([]domain.Rental, error) {
	query := `SELECT ` + rentalColumns + ` FROM rentals WHERE status <> 'COMPLETED' AND id > $1 ORDER BY id LIMIT $2`
	rows, err := r.db.QueryContext(ctx, query, afterID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rentals []domain.Rental
	for rows.Next() {
		var rt domain.Rental
		if err := scanRental(rows, &rt); err != nil {
			return nil, err
		}
		rentals = append(rentals, rt)
	}
	return rentals, rows.Err()
}
