package grpc

import (
	"context"

	"fashionswap-backend/internal/domain"
	"fashionswap-backend/internal/service"
)

type RentalHandler struct {
	listingSvc service.ListingService
	rentalSvc  service.RentalService
	profileSvc service.ProfileService
}

func NewRentalHandler(listingSvc service.ListingService, rentalSvc service.RentalService, profileSvc service.ProfileService) *RentalHandler {
	return &RentalHandler{listingSvc: listingSvc, rentalSvc: rentalSvc, profileSvc: profileSvc}
}

func (h *RentalHandler) GetQuote(ctx context.Context, req *QuoteRequest) (*QuoteResponse, error) {
	listing, quote, err := h.listingSvc.Quote(ctx, req.ItemID, int(req.Days))
	if err != nil {
		return nil, toStatus(err)
	}
	return &QuoteResponse{ItemID: listing.ID, Quote: quote}, nil
}

func (h *RentalHandler) ListItem(ctx context.Context, req *ListItemRequest) (*ListingResponse, error) {
	owner, err := GetWalletAddressFromContext(ctx)
	if err != nil {
		return nil, err
	}
	listing, err := h.listingSvc.ListItem(ctx, owner, &domain.Listing{
		Name:          req.Name,
		Brand:         req.Brand,
		Category:      req.Category,
		Size:          req.Size,
		DailyPrice:    req.DailyPrice,
		WeeklyPrice:   req.WeeklyPrice,
		ImageURL:      req.ImageURL,
		CarbonSavedKg: req.CarbonSavedKg,
		Description:   req.Description,
		Condition:     req.Condition,
		Location:      req.Location,
	})
	if err != nil {
		return nil, toStatus(err)
	}
	return &ListingResponse{Listing: listing}, nil
}

func (h *RentalHandler) GetListing(ctx context.Context, req *GetListingRequest) (*ListingResponse, error) {
	listing, err := h.listingSvc.GetListing(ctx, req.ID)
	if err != nil {
		return nil, toStatus(err)
	}
	return &ListingResponse{Listing: listing}, nil
}

func (h *RentalHandler) SearchListings(ctx context.Context, req *SearchListingsRequest) (*SearchListingsResponse, error) {
	listings, count, err := h.listingSvc.SearchListings(ctx, domain.ListingFilter{
		Query:         req.Query,
		Category:      req.Category,
		Brand:         req.Brand,
		Size:          req.Size,
		AvailableOnly: req.AvailableOnly,
		Page:          req.Page,
		PageSize:      req.PageSize,
	})
	if err != nil {
		return nil, toStatus(err)
	}
	return &SearchListingsResponse{Listings: listings, TotalCount: count}, nil
}

func (h *RentalHandler) RentItem(ctx context.Context, req *RentItemRequest) (*RentItemResponse, error) {
	renter, err := GetWalletAddressFromContext(ctx)
	if err != nil {
		return nil, err
	}
	rental, quote, err := h.rentalSvc.RentItem(ctx, renter, req.ItemID, req.StartDate, int(req.Days))
	if err != nil {
		return nil, toStatus(err)
	}
	return &RentItemResponse{Rental: rental, Quote: quote}, nil
}

func (h *RentalHandler) GetRental(ctx context.Context, req *GetRentalRequest) (*RentalResponse, error) {
	address, err := GetWalletAddressFromContext(ctx)
	if err != nil {
		return nil, err
	}
	rental, err := h.rentalSvc.GetRental(ctx, address, req.RentalID)
	if err != nil {
		return nil, toStatus(err)
	}
	return &RentalResponse{Rental: rental}, nil
}

func (h *RentalHandler) ListMyRentals(ctx context.Context, req *ListRentalsRequest) (*ListRentalsResponse, error) {
	address, err := GetWalletAddressFromContext(ctx)
	if err != nil {
		return nil, err
	}
	rentals, count, err := h.rentalSvc.ListRentals(ctx, address, req.Status, req.Page, req.PageSize)
	if err != nil {
		return nil, toStatus(err)
	}
	return &ListRentalsResponse{Rentals: rentals, TotalCount: count}, nil
}

func (h *RentalHandler) ListMyLendings(ctx context.Context, req *ListRentalsRequest) (*ListRentalsResponse, error) {
	address, err := GetWalletAddressFromContext(ctx)
	if err != nil {
		return nil, err
	}
	rentals, count, err := h.rentalSvc.ListLendings(ctx, address, req.Status, req.Page, req.PageSize)
	if err != nil {
		return nil, toStatus(err)
	}
	return &ListRentalsResponse{Rentals: rentals, TotalCount: count}, nil
}

func (h *RentalHandler) ReturnItem(ctx context.Context, req *ReturnItemRequest) (*ReturnItemResponse, error) {
	address, err := GetWalletAddressFromContext(ctx)
	if err != nil {
		return nil, err
	}
	rental, refund, err := h.rentalSvc.ReturnItem(ctx, address, req.RentalID)
	if err != nil {
		return nil, toStatus(err)
	}
	return &ReturnItemResponse{Rental: rental, DepositRefund: refund}, nil
}

func (h *RentalHandler) GetProfile(ctx context.Context, _ *GetProfileRequest) (*ProfileResponse, error) {
	address, err := GetWalletAddressFromContext(ctx)
	if err != nil {
		return nil, err
	}
	profile, stats, err := h.profileSvc.GetProfile(ctx, address)
	if err != nil {
		return nil, toStatus(err)
	}
	return &ProfileResponse{Profile: profile, Stats: stats}, nil
}

func (h *RentalHandler) UpdateProfile(ctx context.Context, req *UpdateProfileRequest) (*ProfileResponse, error) {
	address, err := GetWalletAddressFromContext(ctx)
	if err != nil {
		return nil, err
	}
	profile, err := h.profileSvc.UpdateProfile(ctx, &domain.UserProfile{
		Address:   address,
		Name:      req.Name,
		Email:     req.Email,
		PushToken: req.PushToken,
	})
	if err != nil {
		return nil, toStatus(err)
	}
	return &ProfileResponse{Profile: profile}, nil
}
