package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fashionswap-backend/internal/domain"
	"fashionswap-backend/internal/repository"
)

var rentalColumnNames = []string{"id", "item_id", "start_date", "end_date", "daily_price", "total_cost", "total_paid",
	"deposit_amount", "status", "renter_address", "owner_address", "carbon_saved_kg", "escrow_tx_hash", "created_on", "updated_on"}

func newMock(t *testing.T) (*rentalRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return &rentalRepository{db: db}, mock
}

func rentalRow(rows *sqlmock.Rows, id, status string, end time.Time) *sqlmock.Rows {
	return rows.AddRow(id, "item-1", end.AddDate(0, 0, -3), end, "8", "24.024", "0", "12", status,
		"0xrenter", "0xowner", 4.5, "0xtx", end.AddDate(0, 0, -3), end.AddDate(0, 0, -3))
}

func TestRentalRepository_Create(t *testing.T) {
	repo, mock := newMock(t)
	ctx := context.Background()
	start := time.Date(2025, time.May, 1, 0, 0, 0, 0, time.UTC)

	rental := &domain.Rental{
		ID:            "r-1",
		ItemID:        "item-1",
		StartDate:     start,
		EndDate:       start.AddDate(0, 0, 3),
		DailyPrice:    decimal.NewFromInt(8),
		TotalCost:     decimal.RequireFromString("24.024"),
		TotalPaid:     decimal.Zero,
		DepositAmount: decimal.NewFromInt(12),
		Status:        domain.RentalStatusActive,
		RenterAddress: "0xrenter",
		OwnerAddress:  "0xowner",
	}

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec("INSERT INTO rentals").
			WithArgs("r-1", "item-1", rental.StartDate, rental.EndDate, "8", "24.024", "0", "12", "ACTIVE",
				"0xrenter", "0xowner", float64(0), "", sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Create(ctx, rental)
		assert.NoError(t, err)
		assert.False(t, rental.CreatedOn.IsZero())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Duplicate ID", func(t *testing.T) {
		mock.ExpectExec("INSERT INTO rentals").
			WillReturnError(&pq.Error{Code: "23505", Constraint: "rentals_pkey"})

		err := repo.Create(ctx, rental)
		assert.ErrorIs(t, err, repository.ErrConflict)
		assert.Contains(t, err.Error(), "rentals_pkey")
	})
}

func TestRentalRepository_GetByID(t *testing.T) {
	repo, mock := newMock(t)
	ctx := context.Background()
	end := time.Date(2025, time.May, 4, 0, 0, 0, 0, time.UTC)

	t.Run("Success", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM rentals WHERE id = \\$1").
			WithArgs("r-1").
			WillReturnRows(rentalRow(sqlmock.NewRows(rentalColumnNames), "r-1", "ACTIVE", end))

		rt, err := repo.GetByID(ctx, "r-1")
		require.NoError(t, err)
		assert.Equal(t, "r-1", rt.ID)
		assert.Equal(t, domain.RentalStatusActive, rt.Status)
		assert.True(t, decimal.RequireFromString("24.024").Equal(rt.TotalCost))
		assert.Equal(t, end, rt.EndDate)
	})

	t.Run("Not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM rentals WHERE id = \\$1").
			WithArgs("missing").
			WillReturnRows(sqlmock.NewRows(rentalColumnNames))

		_, err := repo.GetByID(ctx, "missing")
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})
}

func TestRentalRepository_Update(t *testing.T) {
	repo, mock := newMock(t)
	ctx := context.Background()
	const update = "UPDATE rentals SET status = \\$1, total_paid = \\$2, updated_on = \\$3\\s+WHERE id = \\$4 AND status <> 'COMPLETED' AND total_paid = \\$5"

	t.Run("Overdue is stored as active", func(t *testing.T) {
		rt := &domain.Rental{ID: "r-1", Status: domain.RentalStatusOverdue, TotalPaid: decimal.NewFromInt(16)}
		mock.ExpectExec(update).
			WithArgs("ACTIVE", "16", sqlmock.AnyArg(), "r-1", "8").
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.Update(ctx, rt, decimal.NewFromInt(8)))
		assert.False(t, rt.UpdatedOn.IsZero())
	})

	t.Run("Stale read is a conflict", func(t *testing.T) {
		// a return completed the rental after the payment run read it
		rt := &domain.Rental{ID: "r-1", Status: domain.RentalStatusActive, TotalPaid: decimal.NewFromInt(16)}
		mock.ExpectExec(update).
			WithArgs("ACTIVE", "16", sqlmock.AnyArg(), "r-1", "8").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Update(ctx, rt, decimal.NewFromInt(8))
		assert.ErrorIs(t, err, repository.ErrConflict)
		assert.True(t, rt.UpdatedOn.IsZero())
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRentalRepository_ListByRenter(t *testing.T) {
	repo, mock := newMock(t)
	ctx := context.Background()
	now := time.Date(2025, time.May, 10, 0, 0, 0, 0, time.UTC)

	t.Run("Overdue filter compares end date with now", func(t *testing.T) {
		mock.ExpectQuery("SELECT count\\(\\*\\) FROM \\(SELECT (.+) FROM rentals WHERE renter_address = \\$1 AND status <> 'COMPLETED' AND end_date < \\$2\\) AS sub").
			WithArgs("0xrenter", now).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
		mock.ExpectQuery("SELECT (.+) FROM rentals WHERE renter_address = \\$1 AND status <> 'COMPLETED' AND end_date < \\$2 ORDER BY created_on DESC LIMIT \\$3 OFFSET \\$4").
			WithArgs("0xrenter", now, int32(10), int32(10)).
			WillReturnRows(rentalRow(sqlmock.NewRows(rentalColumnNames), "r-1", "ACTIVE", now.AddDate(0, 0, -2)))

		rentals, count, err := repo.ListByRenter(ctx, repository.RentalQuery{
			Address: "0xrenter", Status: domain.RentalStatusOverdue, Now: now, Page: 2, PageSize: 10,
		})
		require.NoError(t, err)
		assert.Equal(t, int32(1), count)
		assert.Len(t, rentals, 1)
	})

	t.Run("No filter", func(t *testing.T) {
		mock.ExpectQuery("SELECT count").
			WithArgs("0xrenter").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
		mock.ExpectQuery("FROM rentals WHERE renter_address = \\$1 ORDER BY created_on DESC LIMIT \\$2 OFFSET \\$3").
			WithArgs("0xrenter", int32(20), int32(0)).
			WillReturnRows(sqlmock.NewRows(rentalColumnNames))

		rentals, count, err := repo.ListByRenter(ctx, repository.RentalQuery{Address: "0xrenter", Now: now})
		require.NoError(t, err)
		assert.Zero(t, count)
		assert.Empty(t, rentals)
	})

	t.Run("Count failure", func(t *testing.T) {
		mock.ExpectQuery("SELECT count").WillReturnError(errors.New("connection reset"))

		_, _, err := repo.ListByRenter(ctx, repository.RentalQuery{Address: "0xrenter", Now: now})
		assert.Error(t, err)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRentalRepository_ListOpen(t *testing.T) {
	repo, mock := newMock(t)
	end := time.Date(2025, time.May, 4, 0, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows(rentalColumnNames)
	rentalRow(rows, "a", "ACTIVE", end)
	rentalRow(rows, "b", "ACTIVE", end)
	mock.ExpectQuery("FROM rentals WHERE status <> 'COMPLETED' AND id > \\$1 ORDER BY id LIMIT \\$2").
		WithArgs("", 50).
		WillReturnRows(rows)

	rentals, err := repo.ListOpen(context.Background(), "", 50)
	require.NoError(t, err)
	require.Len(t, rentals, 2)
	assert.Equal(t, "b", rentals[1].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSchema_MoneyColumnsHoldFeePrecision(t *testing.T) {
	// Fees are 0.1% of six-decimal prices, so money needs nine places.
	for _, col := range []string{"daily_price", "weekly_price", "total_cost", "total_paid", "deposit_amount"} {
		assert.Regexp(t, col+`\s+NUMERIC\(24, 9\)`, schema)
	}
	assert.NotContains(t, schema, "NUMERIC(18, 6)")
}
