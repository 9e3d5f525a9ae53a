package memory

import (
	"context"
	"log/slog"
	"sync"

	"skillsprint/internal/domain/aggregate"
	"skillsprint/pkg/errors"
)

// PayoutStore is an in-memory payout store. State lives for the process
// lifetime only; entries are never deleted.
type PayoutStore struct {
	payouts map[string]*aggregate.Payout
	mutex   sync.RWMutex
}

// NewPayoutStore returns a new in-memory payout store
func NewPayoutStore() *PayoutStore {
	return &PayoutStore{
		payouts: make(map[string]*aggregate.Payout),
	}
}

// Create inserts a new payout record
func (s *PayoutStore) Create(ctx context.Context, payout *aggregate.Payout) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if _, exists := s.payouts[payout.ID()]; exists {
		return errors.NewConflictError("payout already exists: " + payout.ID())
	}
	s.payouts[payout.ID()] = payout
	return nil
}

// Get returns a snapshot of the payout with the given ID
func (s *PayoutStore) Get(ctx context.Context, payoutID string) (aggregate.Payout, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	payout, ok := s.payouts[payoutID]
	if !ok {
		return aggregate.Payout{}, errors.NewNotFoundError("Payout")
	}
	return payout.Snapshot(), nil
}

// SetStatus updates the status of an existing payout. The write is
// unconditional: the idempotency ledger dedupes per (payoutId, status), so
// two contradictory terminal events can both land here. The overwrite is
// logged for operator visibility but not rejected.
func (s *PayoutStore) SetStatus(ctx context.Context, payoutID string, status aggregate.PayoutStatus) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	payout, ok := s.payouts[payoutID]
	if !ok {
		return errors.NewNotFoundError("Payout")
	}

	if payout.Status().IsTerminal() {
		slog.Warn("overwriting terminal payout status",
			"payout_id", payoutID,
			"from", payout.Status(),
			"to", status,
		)
	}

	return payout.SetStatus(status)
}

// Len returns the number of payouts recorded
func (s *PayoutStore) Len() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return len(s.payouts)
}
