// Package settlement moves funds for rentals. The pricing engine only
// computes amounts; everything that actually transfers value goes through a
// Gateway.
package settlement

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var ErrRejected = errors.New("settlement rejected")

type EscrowRequest struct {
	RentalID      string
	RenterAddress string
	OwnerAddress  string
	// Amount is the rental total; Deposit is held on top of it.
	Amount  decimal.Decimal
	Deposit decimal.Decimal
}

type TransferRequest struct {
	RentalID string
	From     string
	To       string
	Amount   decimal.Decimal
	// IdempotencyKey makes a transfer happen at most once. A second request
	// with the same key moves nothing and gets the first receipt back, even
	// if its amount differs.
	IdempotencyKey string
}

type Receipt struct {
	TxHash    string
	Amount    decimal.Decimal
	SettledAt time.Time
	// Replayed is set when the receipt belongs to an earlier request with
	// the same idempotency key.
	Replayed bool
}

// PaymentKey identifies the payment made to the owner of a rental when
// paidBefore had already been paid. Installments and the final settlement
// share it, so two callers acting on the same read cannot both pay.
func PaymentKey(rentalID string, paidBefore decimal.Decimal) string {
	return rentalID + "/payment/" + paidBefore.String()
}

// DepositKey identifies the deposit refund of a rental.
func DepositKey(rentalID string) string {
	return rentalID + "/deposit"
}

type Gateway interface {
	// LockEscrow takes Amount + Deposit from the renter into escrow.
	LockEscrow(ctx context.Context, req EscrowRequest) (*Receipt, error)
	// Transfer pays the owner out of escrow. The receipt amount is what
	// actually moved, which differs from the request on a replay.
	Transfer(ctx context.Context, req TransferRequest) (*Receipt, error)
	// ReleaseDeposit returns the held deposit to the renter.
	ReleaseDeposit(ctx context.Context, req TransferRequest) (*Receipt, error)
}
