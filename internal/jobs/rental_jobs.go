package jobs

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fashionswap-backend/internal/domain"
	"fashionswap-backend/internal/logger"
	"fashionswap-backend/internal/repository"
	"fashionswap-backend/internal/service"
	"fashionswap-backend/internal/utils"
)

// SweepOverdueRentals reports rentals whose end date has passed. Overdue is
// derived on read, so nothing is written.
func (jr *JobRunner) SweepOverdueRentals(ctx context.Context) (Result, error) {
	now := jr.now()
	res, err := jr.forEachOpen(ctx, JobSweepOverdueRentals, func(ctx context.Context, rental *domain.Rental) (bool, error) {
		if utils.DeriveStatus(rental, now) != domain.RentalStatusOverdue {
			return false, nil
		}
		logger.Warn("Rental is overdue",
			"rental_id", rental.ID,
			"item_id", rental.ItemID,
			"renter", rental.RenterAddress,
			"end_date", rental.EndDate,
			"days_overdue", daysOverdue(rental, now),
		)
		return true, nil
	})
	logger.Info("Overdue sweep finished", "open", res.Scanned, "overdue", res.Affected)
	return res, err
}

// SendOverdueReminders emails and pushes a reminder to the renter of every
// overdue rental. Renters without a profile are skipped.
func (jr *JobRunner) SendOverdueReminders(ctx context.Context) (Result, error) {
	now := jr.now()
	return jr.forEachOpen(ctx, JobSendOverdueReminders, func(ctx context.Context, rental *domain.Rental) (bool, error) {
		if utils.DeriveStatus(rental, now) != domain.RentalStatusOverdue {
			return false, nil
		}

		profile, err := jr.profiles.GetByAddress(ctx, rental.RenterAddress)
		if errors.Is(err, repository.ErrNotFound) {
			logger.Debug("No profile for overdue renter", "rental_id", rental.ID, "renter", rental.RenterAddress)
			return false, nil
		}
		if err != nil {
			return false, fmt.Errorf("failed to load renter profile: %w", err)
		}
		if profile.Email == "" && profile.PushToken == "" {
			return false, nil
		}

		itemName := rental.ItemID
		if listing, err := jr.listings.GetByID(ctx, rental.ItemID); err == nil {
			itemName = listing.Name
		}

		days := daysOverdue(rental, now)
		var sendErr error
		if profile.Email != "" {
			if err := jr.services.Email.SendOverdueReminder(ctx, profile.Email, profile.Name, itemName, rental.EndDate, days); err != nil {
				sendErr = errors.Join(sendErr, fmt.Errorf("email: %w", err))
			}
		}
		if profile.PushToken != "" {
			if err := jr.services.Push.SendOverdueReminder(ctx, profile.PushToken, itemName, days); err != nil {
				sendErr = errors.Join(sendErr, fmt.Errorf("push: %w", err))
			}
		}
		return sendErr == nil, sendErr
	})
}

// ProcessDailyPayments charges the installment each open rental is behind
// on. Running it twice in a day charges nothing the second time.
func (jr *JobRunner) ProcessDailyPayments(ctx context.Context) (Result, error) {
	res, err := jr.forEachOpen(ctx, JobProcessDailyPayments, func(ctx context.Context, rental *domain.Rental) (bool, error) {
		_, paid, err := jr.services.Rental.ProcessDailyPayment(ctx, rental.ID)
		if errors.Is(err, utils.ErrInvalidState) || errors.Is(err, service.ErrConcurrentUpdate) {
			// returned or paid between listing and charging
			return false, nil
		}
		if err != nil {
			return false, err
		}
		if paid.IsPositive() {
			logger.Debug("Installment charged", "rental_id", rental.ID, "amount", paid.String())
			return true, nil
		}
		return false, nil
	})
	logger.Info("Daily payments finished", "open", res.Scanned, "charged", res.Affected, "failed", res.Failed)
	return res, err
}

// daysOverdue counts whole days past the end date, at least one.
func daysOverdue(rental *domain.Rental, now time.Time) int {
	return max(1, -utils.RemainingDays(rental.EndDate, now))
}
