package aggregate

import (
	"fmt"
	"time"
)

// PayoutStatus represents the status of a payout
type PayoutStatus string

const (
	PayoutStatusInitiated PayoutStatus = "initiated" // Recorded, waiting for settlement
	PayoutStatusSettled   PayoutStatus = "settled"   // Settlement confirmed by the gateway
	PayoutStatusFailed    PayoutStatus = "failed"    // Settlement failed at the gateway
)

// IsValid reports whether the status is one of the known payout states
func (s PayoutStatus) IsValid() bool {
	switch s {
	case PayoutStatusInitiated, PayoutStatusSettled, PayoutStatusFailed:
		return true
	}
	return false
}

// IsTerminal reports whether the status permits no further transition
func (s PayoutStatus) IsTerminal() bool {
	return s == PayoutStatusSettled || s == PayoutStatusFailed
}

// Payout represents a single disbursement tracked from initiation to its
// terminal settlement outcome. The record is deliberately dumb: status
// monotonicity is the webhook handler's responsibility, not the record's.
type Payout struct {
	id        string
	gigID     string
	amountLKR float64
	status    PayoutStatus
	createdAt time.Time
	updatedAt time.Time
}

// NewPayout creates a payout record in the given initial state
func NewPayout(payoutID, gigID string, amountLKR float64, status PayoutStatus) (*Payout, error) {
	if payoutID == "" {
		return nil, fmt.Errorf("payout ID cannot be empty")
	}
	if gigID == "" {
		return nil, fmt.Errorf("gig ID cannot be empty")
	}
	if amountLKR <= 0 {
		return nil, fmt.Errorf("amount must be positive")
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid payout status: %s", status)
	}

	now := time.Now().UTC()
	return &Payout{
		id:        payoutID,
		gigID:     gigID,
		amountLKR: amountLKR,
		status:    status,
		createdAt: now,
		updatedAt: now,
	}, nil
}

func (p *Payout) ID() string           { return p.id }
func (p *Payout) GigID() string        { return p.gigID }
func (p *Payout) AmountLKR() float64   { return p.amountLKR }
func (p *Payout) Status() PayoutStatus { return p.status }
func (p *Payout) CreatedAt() time.Time { return p.createdAt }
func (p *Payout) UpdatedAt() time.Time { return p.updatedAt }

// SetStatus moves the payout to the given status unconditionally. The store
// calls this under its own lock; callers that care about monotonicity must
// check the current status via the idempotency ledger first.
func (p *Payout) SetStatus(status PayoutStatus) error {
	if !status.IsValid() {
		return fmt.Errorf("invalid payout status: %s", status)
	}
	p.status = status
	p.updatedAt = time.Now().UTC()
	return nil
}

// Snapshot returns a copy safe to read outside the store's lock
func (p *Payout) Snapshot() Payout {
	return *p
}
