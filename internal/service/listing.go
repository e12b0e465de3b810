package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"fashionswap-backend/internal/domain"
	"fashionswap-backend/internal/logger"
	"fashionswap-backend/internal/repository"
	"fashionswap-backend/internal/security"
	"fashionswap-backend/internal/utils"
)

type listingService struct {
	listingRepo repository.ListingRepository
	clock       Clock
}

func NewListingService(listingRepo repository.ListingRepository, clock Clock) ListingService {
	return &listingService{listingRepo: listingRepo, clock: clock}
}

func (s *listingService) ListItem(ctx context.Context, ownerAddress string, listing *domain.Listing) (*domain.Listing, error) {
	logger.EnterMethod("listingService.ListItem", "owner", ownerAddress)

	listing.Name = strings.TrimSpace(listing.Name)
	if listing.Name == "" {
		err := fmt.Errorf("%w: name is required", utils.ErrInvalidArgument)
		logger.ExitMethodWithError("listingService.ListItem", err)
		return nil, err
	}
	if listing.Condition == "" {
		listing.Condition = domain.ItemConditionGood
	}
	if !listing.Condition.Valid() {
		err := fmt.Errorf("%w: unknown condition %q", utils.ErrInvalidArgument, listing.Condition)
		logger.ExitMethodWithError("listingService.ListItem", err)
		return nil, err
	}
	if listing.CarbonSavedKg < 0 {
		err := fmt.Errorf("%w: carbon saved must not be negative", utils.ErrInvalidArgument)
		logger.ExitMethodWithError("listingService.ListItem", err)
		return nil, err
	}
	if err := utils.ValidateTerms(listing.Terms()); err != nil {
		logger.ExitMethodWithError("listingService.ListItem", err)
		return nil, err
	}

	listing.ID = uuid.NewString()
	listing.OwnerAddress = security.NormalizeAddress(ownerAddress)
	listing.Available = true
	listing.CreatedOn = s.clock.now()

	if err := s.listingRepo.Create(ctx, listing); err != nil {
		logger.ExitMethodWithError("listingService.ListItem", err)
		return nil, err
	}

	logger.Info("Listing created", "listingID", listing.ID, "owner", listing.OwnerAddress)
	logger.ExitMethod("listingService.ListItem", "listingID", listing.ID)
	return listing, nil
}

func (s *listingService) GetListing(ctx context.Context, id string) (*domain.Listing, error) {
	return s.listingRepo.GetByID(ctx, id)
}

func (s *listingService) SearchListings(ctx context.Context, filter domain.ListingFilter) ([]domain.Listing, int32, error) {
	return s.listingRepo.Search(ctx, filter)
}

func (s *listingService) Quote(ctx context.Context, itemID string, days int) (*domain.Listing, domain.RentalQuote, error) {
	listing, err := s.listingRepo.GetByID(ctx, itemID)
	if err != nil {
		return nil, domain.RentalQuote{}, err
	}
	quote, err := utils.ComputeCost(listing.Terms(), days)
	if err != nil {
		return nil, domain.RentalQuote{}, err
	}
	return listing, quote, nil
}
