package settlement

import (
	"context"
	"encoding/hex"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/blake2b"

	"fashionswap-backend/internal/logger"
)

// SimulatedGateway stands in for the on-chain rental contract. Every call
// waits a fixed delay, logs, and returns a deterministic-looking tx hash.
// Keyed transfers are remembered for the life of the process.
type SimulatedGateway struct {
	contract string
	delay    time.Duration
	nonce    atomic.Uint64
	now      func() time.Time

	mu   sync.Mutex
	keys map[string]*keyedCall
}

// keyedCall is the first request made with an idempotency key. Later
// requests wait on done and share its outcome.
type keyedCall struct {
	done    chan struct{}
	receipt *Receipt
	err     error
}

func NewSimulatedGateway(contractAddress string, delay time.Duration) *SimulatedGateway {
	return &SimulatedGateway{
		contract: contractAddress,
		delay:    delay,
		now:      time.Now,
		keys:     make(map[string]*keyedCall),
	}
}

func (g *SimulatedGateway) LockEscrow(ctx context.Context, req EscrowRequest) (*Receipt, error) {
	if !req.Amount.IsPositive() || req.Deposit.IsNegative() {
		return nil, fmt.Errorf("%w: escrow amount must be positive", ErrRejected)
	}
	if req.RenterAddress == req.OwnerAddress {
		return nil, fmt.Errorf("%w: renter and owner are the same account", ErrRejected)
	}
	return g.submit(ctx, "LockEscrow", req.RentalID, req.RenterAddress, g.contract, req.Amount.Add(req.Deposit))
}

func (g *SimulatedGateway) Transfer(ctx context.Context, req TransferRequest) (*Receipt, error) {
	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: transfer amount must be positive", ErrRejected)
	}
	return g.once(ctx, req.IdempotencyKey, func() (*Receipt, error) {
		return g.submit(ctx, "Transfer", req.RentalID, g.contract, req.To, req.Amount)
	})
}

func (g *SimulatedGateway) ReleaseDeposit(ctx context.Context, req TransferRequest) (*Receipt, error) {
	if req.Amount.IsNegative() {
		return nil, fmt.Errorf("%w: deposit must not be negative", ErrRejected)
	}
	return g.once(ctx, req.IdempotencyKey, func() (*Receipt, error) {
		return g.submit(ctx, "ReleaseDeposit", req.RentalID, g.contract, req.To, req.Amount)
	})
}

// once runs submit for the first request with key and replays its receipt
// for every later one. A failed request frees the key again.
func (g *SimulatedGateway) once(ctx context.Context, key string, submit func() (*Receipt, error)) (*Receipt, error) {
	if key == "" {
		return submit()
	}

	g.mu.Lock()
	if call, ok := g.keys[key]; ok {
		g.mu.Unlock()
		select {
		case <-call.done:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
		if call.err != nil {
			return nil, call.err
		}
		logger.Info("Settlement request replayed", "key", key, "tx_hash", call.receipt.TxHash)
		replay := *call.receipt
		replay.Replayed = true
		return &replay, nil
	}
	call := &keyedCall{done: make(chan struct{})}
	g.keys[key] = call
	g.mu.Unlock()

	call.receipt, call.err = submit()
	if call.err != nil {
		g.mu.Lock()
		delete(g.keys, key)
		g.mu.Unlock()
	}
	close(call.done)
	return call.receipt, call.err
}

func (g *SimulatedGateway) submit(ctx context.Context, op, rentalID, from, to string, amount decimal.Decimal) (*Receipt, error) {
	logger.ExternalServiceCall("settlement", op, "contract", g.contract, "rental_id", rentalID, "amount", amount.String())

	if g.delay > 0 {
		timer := time.NewTimer(g.delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			logger.ExternalServiceResult("settlement", op, ctx.Err(), "rental_id", rentalID)
			return nil, ctx.Err()
		case <-timer.C:
		}
	} else if err := ctx.Err(); err != nil {
		return nil, err
	}

	hash := g.txHash(op, rentalID, from, to, amount.String())
	logger.ExternalServiceResult("settlement", op, nil, "rental_id", rentalID, "tx_hash", hash)

	return &Receipt{TxHash: hash, Amount: amount, SettledAt: g.now().UTC()}, nil
}

func (g *SimulatedGateway) txHash(parts ...string) string {
	h, _ := blake2b.New256(nil)
	fmt.Fprintf(h, "%s|%d", g.contract, g.nonce.Add(1))
	for _, p := range parts {
		h.Write([]byte{'|'})
		h.Write([]byte(p))
	}
	return "0x" + hex.EncodeToString(h.Sum(nil))
}
