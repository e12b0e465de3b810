package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"fashionswap-backend/internal/domain"
)

var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrInvalidState    = errors.New("invalid state")
)

const (
	DaysPerWeek = 7
	DateLayout  = "2006-01-02"
	// PriceDecimals is the finest listing price precision. With the 0.1%
	// fee, totals need PriceDecimals+3 places, which the money columns hold.
	PriceDecimals = 6

	day = 24 * time.Hour
)

var (
	// FeeRate is the settlement fee charged on the subtotal (0.1%).
	FeeRate = decimal.New(1, -3)
	// DepositRate is the refundable share of the subtotal held in escrow.
	DepositRate = decimal.New(5, -1)
)

// ParseDate converts a yyyy-mm-dd string into a UTC midnight timestamp
func ParseDate(dateStr string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, dateStr, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: invalid date %q, expected yyyy-mm-dd", ErrInvalidArgument, dateStr)
	}
	return t, nil
}

// ValidateTerms checks the prices an owner lists an item with. Both prices
// must be strictly positive with at most PriceDecimals decimal places.
func ValidateTerms(terms domain.ListingTerms) error {
	if !terms.DailyPrice.IsPositive() {
		return fmt.Errorf("%w: daily price must be positive", ErrInvalidArgument)
	}
	if !terms.WeeklyPrice.IsPositive() {
		return fmt.Errorf("%w: weekly price must be positive", ErrInvalidArgument)
	}
	for _, p := range []decimal.Decimal{terms.DailyPrice, terms.WeeklyPrice} {
		if !p.Equal(p.Truncate(PriceDecimals)) {
			return fmt.Errorf("%w: price %s has more than %d decimal places", ErrInvalidArgument, p.String(), PriceDecimals)
		}
	}
	return nil
}

// ComputeCost quotes a rental of the given number of days.
//
// Full weeks are charged at the weekly price and the remaining days at the
// daily price. The fee and the deposit are both derived from the subtotal;
// only the fee is part of the total.
func ComputeCost(terms domain.ListingTerms, days int) (domain.RentalQuote, error) {
	if days < 1 {
		return domain.RentalQuote{}, fmt.Errorf("%w: rental must last at least one day, got %d", ErrInvalidArgument, days)
	}
	if terms.DailyPrice.IsNegative() || terms.WeeklyPrice.IsNegative() {
		return domain.RentalQuote{}, fmt.Errorf("%w: prices must not be negative", ErrInvalidArgument)
	}

	var subtotal decimal.Decimal
	if days >= DaysPerWeek {
		weeks := decimal.NewFromInt(int64(days / DaysPerWeek))
		rest := decimal.NewFromInt(int64(days % DaysPerWeek))
		subtotal = terms.WeeklyPrice.Mul(weeks).Add(terms.DailyPrice.Mul(rest))
	} else {
		subtotal = terms.DailyPrice.Mul(decimal.NewFromInt(int64(days)))
	}

	fee := subtotal.Mul(FeeRate)
	return domain.RentalQuote{
		Days:          days,
		Subtotal:      subtotal,
		FeeAmount:     fee,
		DepositAmount: subtotal.Mul(DepositRate),
		Total:         subtotal.Add(fee),
	}, nil
}

// DurationInDays returns the whole-day ceiling of end-start.
func DurationInDays(startDate, endDate time.Time) (int, error) {
	if endDate.Before(startDate) {
		return 0, fmt.Errorf("%w: end date %s is before start date %s", ErrInvalidArgument,
			endDate.Format(DateLayout), startDate.Format(DateLayout))
	}
	return ceilDays(endDate.Sub(startDate)), nil
}

// RemainingDays returns the whole-day ceiling of end-now. A negative result
// means the end date has passed.
func RemainingDays(endDate, now time.Time) int {
	return ceilDays(endDate.Sub(now))
}

// ceilDays rounds d up to whole days. Integer division truncates toward
// zero, which is already the ceiling for negative durations.
func ceilDays(d time.Duration) int {
	n := d / day
	if d%day > 0 {
		n++
	}
	return int(n)
}
