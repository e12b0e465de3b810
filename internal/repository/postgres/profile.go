package postgres

import (
	"context"
	"database/sql"

	"fashionswap-backend/internal/domain"
	"fashionswap-backend/internal/logger"
	"fashionswap-backend/internal/repository"
)

type profileRepository struct {
	db *sql.DB
}

func NewProfileRepository(db *sql.DB) repository.ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) Upsert(ctx context.Context, p *domain.UserProfile) error {
	query := `INSERT INTO profiles (address, name, email, push_token)
	          VALUES ($1, $2, $3, $4)
	          ON CONFLICT (address) DO UPDATE SET name = EXCLUDED.name, email = EXCLUDED.email, push_token = EXCLUDED.push_token
	          RETURNING joined_on, rating, review_count`
	err := r.db.QueryRowContext(ctx, query, p.Address, p.Name, p.Email, p.PushToken).Scan(&p.JoinedOn, &p.Rating, &p.ReviewCount)
	return mapError(err)
}

func (r *profileRepository) GetByAddress(ctx context.Context, address string) (*domain.UserProfile, error) {
	p := &domain.UserProfile{}
	query := `SELECT address, name, email, push_token, joined_on, rating, review_count FROM profiles WHERE address = $1`
	err := r.db.QueryRowContext(ctx, query, address).Scan(&p.Address, &p.Name, &p.Email, &p.PushToken, &p.JoinedOn, &p.Rating, &p.ReviewCount)
	if err != nil {
		return nil, mapError(err)
	}
	return p, nil
}

// GetStats aggregates a user's activity on both sides of the marketplace.
func (r *profileRepository) GetStats(ctx context.Context, address string) (*domain.ProfileStats, error) {
	query := `SELECT
	            (SELECT count(*) FROM rentals WHERE renter_address = $1),
	            (SELECT count(*) FROM listings WHERE owner_address = $1),
	            (SELECT coalesce(sum(carbon_saved_kg), 0) FROM rentals WHERE renter_address = $1),
	            (SELECT coalesce(sum(total_paid), 0) FROM rentals WHERE owner_address = $1),
	            (SELECT coalesce(sum(total_paid), 0) FROM rentals WHERE renter_address = $1)`

	logger.DatabaseCall("GetStats", "address", address)
	s := &domain.ProfileStats{}
	err := r.db.QueryRowContext(ctx, query, address).Scan(&s.TotalRentals, &s.TotalListings, &s.TotalCarbonSaved, &s.TotalEarned, &s.TotalSpent)
	logger.DatabaseResult("GetStats", err, "address", address)
	if err != nil {
		return nil, mapError(err)
	}
	return s, nil
}
