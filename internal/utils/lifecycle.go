package utils

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"fashionswap-backend/internal/domain"
)

// DeriveStatus reads the lifecycle state of a rental at now.
//
// COMPLETED is terminal. OVERDUE is never taken from storage: a rental that
// is not completed is overdue exactly when now is past its end date.
func DeriveStatus(rental *domain.Rental, now time.Time) domain.RentalStatus {
	if rental.Status == domain.RentalStatusCompleted {
		return domain.RentalStatusCompleted
	}
	if now.After(rental.EndDate) {
		return domain.RentalStatusOverdue
	}
	return domain.RentalStatusActive
}

// Complete marks a returned item. The input is left untouched.
func Complete(rental domain.Rental) (domain.Rental, error) {
	if rental.Status == domain.RentalStatusCompleted {
		return domain.Rental{}, fmt.Errorf("%w: rental %s is already completed", ErrInvalidState, rental.ID)
	}
	rental.Status = domain.RentalStatusCompleted
	return rental, nil
}

// Outstanding is the part of the agreed cost not yet paid to the owner.
func Outstanding(rental *domain.Rental) decimal.Decimal {
	rest := rental.TotalCost.Sub(rental.TotalPaid)
	if rest.IsNegative() {
		return decimal.Zero
	}
	return rest
}

// DailyInstallment is the amount one daily payment run transfers.
func DailyInstallment(rental *domain.Rental) decimal.Decimal {
	return decimal.Min(rental.DailyPrice, Outstanding(rental))
}

// RecordPayment adds a settled payment to TotalPaid.
func RecordPayment(rental domain.Rental, amount decimal.Decimal) (domain.Rental, error) {
	if rental.Status == domain.RentalStatusCompleted {
		return domain.Rental{}, fmt.Errorf("%w: rental %s is already completed", ErrInvalidState, rental.ID)
	}
	if !amount.IsPositive() {
		return domain.Rental{}, fmt.Errorf("%w: payment must be positive", ErrInvalidArgument)
	}
	if amount.GreaterThan(Outstanding(&rental)) {
		return domain.Rental{}, fmt.Errorf("%w: payment %s exceeds outstanding %s", ErrInvalidArgument,
			amount.String(), Outstanding(&rental).String())
	}
	rental.TotalPaid = rental.TotalPaid.Add(amount)
	return rental, nil
}

// InstallmentDue is what a daily payment run transfers at now. The schedule
// owes one day's price for every day begun since the start, never more than
// the total cost; a run pays at most one DailyInstallment towards it, so
// repeating a run within the same day pays nothing extra.
//
// The schedule is front-loaded: it runs at the daily price even when the
// total came from the weekly tier, so a weekly rental is fully paid before
// its end date (a 7-day rental at 8/day and 45/week is paid off on day 6).
func InstallmentDue(rental *domain.Rental, now time.Time) decimal.Decimal {
	if rental.Status == domain.RentalStatusCompleted || !now.After(rental.StartDate) {
		return decimal.Zero
	}
	begun := decimal.NewFromInt(int64(ceilDays(now.Sub(rental.StartDate))))
	scheduled := decimal.Min(rental.DailyPrice.Mul(begun), rental.TotalCost)
	behind := scheduled.Sub(rental.TotalPaid)
	if !behind.IsPositive() {
		return decimal.Zero
	}
	return decimal.Min(behind, DailyInstallment(rental))
}
