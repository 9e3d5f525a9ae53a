package repository

import (
	"context"

	"skillsprint/internal/domain/aggregate"
)

// PayoutStore is the authoritative mapping from payout ID to current payout
// state. It is a dumb mapping by design: it does not arbitrate between
// conflicting writers, it only guarantees that each call is atomic.
type PayoutStore interface {
	// Create inserts a new payout record; ConflictError if the ID exists.
	Create(ctx context.Context, payout *aggregate.Payout) error

	// Get returns a snapshot of the payout; NotFoundError if unknown.
	Get(ctx context.Context, payoutID string) (aggregate.Payout, error)

	// SetStatus updates the payout's status unconditionally;
	// NotFoundError if the ID is unknown.
	SetStatus(ctx context.Context, payoutID string, status aggregate.PayoutStatus) error
}

// IdempotencyLedger records which settlement events have already been
// applied, keyed per (payoutId, status).
type IdempotencyLedger interface {
	// TryClaim atomically checks membership and inserts if absent.
	// It returns true if this call newly claimed the key (the caller must
	// apply the effect) and false if the key was already claimed (the
	// caller must skip the effect and still acknowledge the sender).
	TryClaim(key string) bool
}
