package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"fashionswap-backend/internal/domain"
	"fashionswap-backend/internal/repository"
)

const listingColumns = `id, name, brand, category, size, daily_price, weekly_price, image_url, carbon_saved_kg, description, condition, owner_address, available, location, created_on`

type listingRepository struct {
	db *sql.DB
}

func NewListingRepository(db *sql.DB) repository.ListingRepository {
	return &listingRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanListing(row rowScanner, l *domain.Listing) error {
	return row.Scan(&l.ID, &l.Name, &l.Brand, &l.Category, &l.Size, &l.DailyPrice, &l.WeeklyPrice, &l.ImageURL,
		&l.CarbonSavedKg, &l.Description, &l.Condition, &l.OwnerAddress, &l.Available, &l.Location, &l.CreatedOn)
}

func (r *listingRepository) Create(ctx context.Context, l *domain.Listing) error {
	query := `INSERT INTO listings (` + listingColumns + `)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.db.ExecContext(ctx, query, l.ID, l.Name, l.Brand, l.Category, l.Size, l.DailyPrice, l.WeeklyPrice,
		l.ImageURL, l.CarbonSavedKg, l.Description, l.Condition, l.OwnerAddress, l.Available, l.Location, l.CreatedOn)
	return mapError(err)
}

func (r *listingRepository) GetByID(ctx context.Context, id string) (*domain.Listing, error) {
	l := &domain.Listing{}
	query := `SELECT ` + listingColumns + ` FROM listings WHERE id = $1`
	if err := scanListing(r.db.QueryRowContext(ctx, query, id), l); err != nil {
		return nil, mapError(err)
	}
	return l, nil
}

func (r *listingRepository) SetAvailable(ctx context.Context, id string, available bool) error {
	res, err := r.db.ExecContext(ctx, `UPDATE listings SET available = $1 WHERE id = $2 AND available <> $1`, available, id)
	if err != nil {
		return mapError(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: listing %s availability is already %t", repository.ErrConflict, id, available)
	}
	return nil
}

func (r *listingRepository) Search(ctx context.Context, f domain.ListingFilter) ([]domain.Listing, int32, error) {
	var (
		where []string
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if q := strings.TrimSpace(f.Query); q != "" {
		p := arg("%" + q + "%")
		where = append(where, fmt.Sprintf("(name ILIKE %s OR brand ILIKE %s OR description ILIKE %s)", p, p, p))
	}
	if f.Category != "" {
		where = append(where, "lower(category) = lower("+arg(f.Category)+")")
	}
	if f.Brand != "" {
		where = append(where, "lower(brand) = lower("+arg(f.Brand)+")")
	}
	if f.Size != "" {
		where = append(where, "lower(size) = lower("+arg(f.Size)+")")
	}
	if f.AvailableOnly {
		where = append(where, "available = TRUE")
	}

	base := `SELECT ` + listingColumns + ` FROM listings`
	if len(where) > 0 {
		base += " WHERE " + strings.Join(where, " AND ")
	}

	var count int32
	if err := r.db.QueryRowContext(ctx, "SELECT count(*) FROM ("+base+") AS sub", args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	limit, offset := pageBounds(f.Page, f.PageSize)
	query := base + fmt.Sprintf(" ORDER BY created_on DESC LIMIT %s OFFSET %s", arg(limit), arg(offset))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var listings []domain.Listing
	for rows.Next() {
		var l domain.Listing
		if err := scanListing(rows, &l); err != nil {
			return nil, 0, err
		}
		listings = append(listings, l)
	}
	return listings, count, rows.Err()
}
