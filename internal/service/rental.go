package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"fashionswap-backend/internal/domain"
	"fashionswap-backend/internal/logger"
	"fashionswap-backend/internal/repository"
	"fashionswap-backend/internal/security"
	"fashionswap-backend/internal/settlement"
	"fashionswap-backend/internal/utils"
)

type rentalService struct {
	rentalRepo  repository.RentalRepository
	listingRepo repository.ListingRepository
	profileRepo repository.ProfileRepository
	gateway     settlement.Gateway
	emailSvc    EmailService
	clock       Clock
}

func NewRentalService(
	rentalRepo repository.RentalRepository,
	listingRepo repository.ListingRepository,
	profileRepo repository.ProfileRepository,
	gateway settlement.Gateway,
	emailSvc EmailService,
	clock Clock,
) RentalService {
	return &rentalService{
		rentalRepo:  rentalRepo,
		listingRepo: listingRepo,
		profileRepo: profileRepo,
		gateway:     gateway,
		emailSvc:    emailSvc,
		clock:       clock,
	}
}

func (s *rentalService) RentItem(ctx context.Context, renterAddress, itemID, startDate string, days int) (*domain.Rental, domain.RentalQuote, error) {
	const method = "rentalService.RentItem"
	logger.EnterMethod(method, "renter", renterAddress, "itemID", itemID, "startDate", startDate, "days", days)
	fail := func(err error) (*domain.Rental, domain.RentalQuote, error) {
		logger.ExitMethodWithError(method, err, "itemID", itemID)
		return nil, domain.RentalQuote{}, err
	}

	renter := security.NormalizeAddress(renterAddress)
	listing, err := s.listingRepo.GetByID(ctx, itemID)
	if err != nil {
		return fail(err)
	}
	if listing.OwnerAddress == renter {
		return fail(fmt.Errorf("%w: cannot rent your own item", utils.ErrInvalidArgument))
	}
	if !listing.Available {
		return fail(ErrListingUnavailable)
	}

	now := s.clock.now()
	today := now.Truncate(24 * time.Hour)
	start := today
	if startDate != "" {
		if start, err = utils.ParseDate(startDate); err != nil {
			return fail(err)
		}
		if start.Before(today) {
			return fail(fmt.Errorf("%w: start date %s is in the past", utils.ErrInvalidArgument, startDate))
		}
	}

	quote, err := utils.ComputeCost(listing.Terms(), days)
	if err != nil {
		return fail(err)
	}

	// Reserve before touching funds; the conditional update loses cleanly
	// against a concurrent renter.
	if err := s.listingRepo.SetAvailable(ctx, listing.ID, false); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return fail(ErrListingUnavailable)
		}
		return fail(err)
	}

	rental := &domain.Rental{
		ID:            uuid.NewString(),
		ItemID:        listing.ID,
		StartDate:     start,
		EndDate:       start.AddDate(0, 0, days),
		DailyPrice:    listing.DailyPrice,
		TotalCost:     quote.Total,
		TotalPaid:     decimal.Zero,
		DepositAmount: quote.DepositAmount,
		Status:        domain.RentalStatusActive,
		RenterAddress: renter,
		OwnerAddress:  listing.OwnerAddress,
		CarbonSavedKg: listing.CarbonSavedKg,
	}

	receipt, err := s.gateway.LockEscrow(ctx, settlement.EscrowRequest{
		RentalID:      rental.ID,
		RenterAddress: rental.RenterAddress,
		OwnerAddress:  rental.OwnerAddress,
		Amount:        quote.Total,
		Deposit:       quote.DepositAmount,
	})
	if err != nil {
		s.releaseListing(ctx, listing.ID)
		return fail(fmt.Errorf("failed to lock escrow: %w", err))
	}
	rental.EscrowTxHash = receipt.TxHash

	if err := s.rentalRepo.Create(ctx, rental); err != nil {
		logger.Error("Escrow locked but rental was not saved, refunding", "rentalID", rental.ID, "txHash", receipt.TxHash, "error", err)
		if _, rerr := s.gateway.ReleaseDeposit(ctx, settlement.TransferRequest{
			RentalID: rental.ID,
			To:       rental.RenterAddress,
			Amount:   receipt.Amount,
		}); rerr != nil {
			logger.Error("Failed to refund escrow", "rentalID", rental.ID, "amount", receipt.Amount.String(), "error", rerr)
		}
		s.releaseListing(ctx, listing.ID)
		return fail(err)
	}

	// Notify the owner; failures do not undo the rental.
	if owner, err := s.profileRepo.GetByAddress(ctx, listing.OwnerAddress); err == nil && owner.Email != "" {
		if err := s.emailSvc.SendRentalNotification(ctx, owner.Email, owner.Name, listing.Name, quote, rental.StartDate, rental.EndDate); err != nil {
			logger.Warn("Failed to send rental notification", "rentalID", rental.ID, "error", err)
		}
	}

	rental.Status = utils.DeriveStatus(rental, now)
	logger.Info("Rental created", "rentalID", rental.ID, "itemID", listing.ID, "total", quote.Total.String(), "deposit", quote.DepositAmount.String())
	logger.ExitMethod(method, "rentalID", rental.ID)
	return rental, quote, nil
}

func (s *rentalService) releaseListing(ctx context.Context, itemID string) {
	if err := s.listingRepo.SetAvailable(ctx, itemID, true); err != nil && !errors.Is(err, repository.ErrConflict) {
		logger.Error("Failed to release listing", "itemID", itemID, "error", err)
	}
}

func (s *rentalService) GetRental(ctx context.Context, address, rentalID string) (*domain.Rental, error) {
	rt, err := s.rentalRepo.GetByID(ctx, rentalID)
	if err != nil {
		return nil, err
	}
	caller := security.NormalizeAddress(address)
	if caller != rt.RenterAddress && caller != rt.OwnerAddress {
		return nil, ErrUnauthorized
	}
	rt.Status = utils.DeriveStatus(rt, s.clock.now())
	return rt, nil
}

func (s *rentalService) ListRentals(ctx context.Context, address string, status domain.RentalStatus, page, pageSize int32) ([]domain.Rental, int32, error) {
	return s.list(ctx, s.rentalRepo.ListByRenter, address, status, page, pageSize)
}

func (s *rentalService) ListLendings(ctx context.Context, address string, status domain.RentalStatus, page, pageSize int32) ([]domain.Rental, int32, error) {
	return s.list(ctx, s.rentalRepo.ListByOwner, address, status, page, pageSize)
}

func (s *rentalService) list(
	ctx context.Context,
	query func(context.Context, repository.RentalQuery) ([]domain.Rental, int32, error),
	address string, status domain.RentalStatus, page, pageSize int32,
) ([]domain.Rental, int32, error) {
	if status != "" && !status.Valid() {
		return nil, 0, fmt.Errorf("%w: unknown status %q", utils.ErrInvalidArgument, status)
	}
	now := s.clock.now()
	rentals, count, err := query(ctx, repository.RentalQuery{
		Address:  security.NormalizeAddress(address),
		Status:   status,
		Now:      now,
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		return nil, 0, err
	}
	for i := range rentals {
		rentals[i].Status = utils.DeriveStatus(&rentals[i], now)
	}
	return rentals, count, nil
}

func (s *rentalService) ReturnItem(ctx context.Context, address, rentalID string) (*domain.Rental, decimal.Decimal, error) {
	const method = "rentalService.ReturnItem"
	logger.EnterMethod(method, "caller", address, "rentalID", rentalID)
	fail := func(err error) (*domain.Rental, decimal.Decimal, error) {
		logger.ExitMethodWithError(method, err, "rentalID", rentalID)
		return nil, decimal.Zero, err
	}

	rt, err := s.rentalRepo.GetByID(ctx, rentalID)
	if err != nil {
		return fail(err)
	}
	caller := security.NormalizeAddress(address)
	if caller != rt.RenterAddress && caller != rt.OwnerAddress {
		return fail(ErrUnauthorized)
	}
	if _, err := utils.Complete(*rt); err != nil {
		return fail(err)
	}

	// Persist the settled balance before the refund so a retry after any
	// later failure finds nothing left to pay.
	settled, err := s.settle(ctx, *rt)
	if err != nil {
		return fail(err)
	}
	if !settled.TotalPaid.Equal(rt.TotalPaid) {
		if err := s.rentalRepo.Update(ctx, &settled, rt.TotalPaid); err != nil {
			return fail(staleRental(err))
		}
	}

	refund := rt.DepositAmount
	if _, err := s.gateway.ReleaseDeposit(ctx, settlement.TransferRequest{
		RentalID:       rt.ID,
		To:             rt.RenterAddress,
		Amount:         refund,
		IdempotencyKey: settlement.DepositKey(rt.ID),
	}); err != nil {
		return fail(fmt.Errorf("failed to release deposit: %w", err))
	}

	completed, err := utils.Complete(settled)
	if err != nil {
		return fail(err)
	}
	if err := s.rentalRepo.Update(ctx, &completed, settled.TotalPaid); err != nil {
		return fail(staleRental(err))
	}
	s.releaseListing(ctx, rt.ItemID)

	if renter, err := s.profileRepo.GetByAddress(ctx, rt.RenterAddress); err == nil && renter.Email != "" {
		itemName := rt.ItemID
		if listing, err := s.listingRepo.GetByID(ctx, rt.ItemID); err == nil {
			itemName = listing.Name
		}
		if err := s.emailSvc.SendReturnConfirmation(ctx, renter.Email, renter.Name, itemName, refund); err != nil {
			logger.Warn("Failed to send return confirmation", "rentalID", rt.ID, "error", err)
		}
	}

	logger.Info("Rental completed", "rentalID", rt.ID, "paid", completed.TotalPaid.String(), "refund", refund.String())
	logger.ExitMethod(method, "rentalID", rt.ID)
	return &completed, refund, nil
}

func (s *rentalService) ProcessDailyPayment(ctx context.Context, rentalID string) (*domain.Rental, decimal.Decimal, error) {
	rt, err := s.rentalRepo.GetByID(ctx, rentalID)
	if err != nil {
		return nil, decimal.Zero, err
	}
	if rt.Status == domain.RentalStatusCompleted {
		return nil, decimal.Zero, fmt.Errorf("%w: rental %s is already completed", utils.ErrInvalidState, rt.ID)
	}

	now := s.clock.now()
	amount := utils.InstallmentDue(rt, now)
	if amount.IsZero() {
		rt.Status = utils.DeriveStatus(rt, now)
		return rt, decimal.Zero, nil
	}

	receipt, err := s.gateway.Transfer(ctx, settlement.TransferRequest{
		RentalID:       rt.ID,
		From:           rt.RenterAddress,
		To:             rt.OwnerAddress,
		Amount:         amount,
		IdempotencyKey: settlement.PaymentKey(rt.ID, rt.TotalPaid),
	})
	if err != nil {
		return nil, decimal.Zero, fmt.Errorf("failed to transfer installment: %w", err)
	}

	// A replayed receipt reports what the earlier request moved.
	paid, err := utils.RecordPayment(*rt, receipt.Amount)
	if err != nil {
		return nil, decimal.Zero, err
	}
	if err := s.rentalRepo.Update(ctx, &paid, rt.TotalPaid); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			logger.Info("Rental changed during installment", "rentalID", rt.ID, "txHash", receipt.TxHash)
			return nil, decimal.Zero, staleRental(err)
		}
		// The next run replays the same key instead of paying again.
		logger.Error("Installment transferred but not recorded", "rentalID", rt.ID, "txHash", receipt.TxHash, "error", err)
		return nil, decimal.Zero, err
	}

	paid.Status = utils.DeriveStatus(&paid, now)
	logger.Debug("Daily installment paid", "rentalID", rt.ID, "amount", receipt.Amount.String(), "totalPaid", paid.TotalPaid.String(), "replayed", receipt.Replayed)
	return &paid, receipt.Amount, nil
}

// settle pays the owner everything still outstanding. Each transfer is keyed
// by the amount paid before it; a replayed key may cover only part of the
// balance, and the rest goes out under the next key.
func (s *rentalService) settle(ctx context.Context, rt domain.Rental) (domain.Rental, error) {
	for due := utils.Outstanding(&rt); due.IsPositive(); due = utils.Outstanding(&rt) {
		receipt, err := s.gateway.Transfer(ctx, settlement.TransferRequest{
			RentalID:       rt.ID,
			From:           rt.RenterAddress,
			To:             rt.OwnerAddress,
			Amount:         due,
			IdempotencyKey: settlement.PaymentKey(rt.ID, rt.TotalPaid),
		})
		if err != nil {
			return domain.Rental{}, fmt.Errorf("failed to settle balance: %w", err)
		}
		if rt, err = utils.RecordPayment(rt, receipt.Amount); err != nil {
			return domain.Rental{}, err
		}
	}
	return rt, nil
}

func staleRental(err error) error {
	if errors.Is(err, repository.ErrConflict) {
		return fmt.Errorf("%w: %w", ErrConcurrentUpdate, err)
	}
	return err
}
