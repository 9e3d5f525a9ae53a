package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"skillsprint/internal/domain/aggregate"
	"skillsprint/internal/domain/event"
	"skillsprint/internal/domain/repository"
	"skillsprint/internal/infrastructure/paydpi"
	"skillsprint/pkg/errors"
)

// Scheduler schedules simulated settlement deliveries (mock mode)
type Scheduler interface {
	Schedule(evt event.SettlementEvent)
}

// Gateway initiates payouts with the external payment processor (sandbox mode)
type Gateway interface {
	InitiatePayout(ctx context.Context, gigID string, amountLKR float64) (*paydpi.InitiatePayoutResponse, error)
}

// PayoutService owns the payout lifecycle: initiation, settlement
// application and status reads.
type PayoutService struct {
	store     repository.PayoutStore
	ledger    repository.IdempotencyLedger
	useMock   bool
	scheduler Scheduler // mock mode only
	gateway   Gateway   // sandbox mode only
}

// NewPayoutService creates a new payout service. In mock mode settlement is
// simulated through the scheduler; otherwise initiation goes through the
// gateway and settlement arrives on the webhook from outside.
func NewPayoutService(
	store repository.PayoutStore,
	ledger repository.IdempotencyLedger,
	useMock bool,
	scheduler Scheduler,
	gateway Gateway,
) *PayoutService {
	return &PayoutService{
		store:     store,
		ledger:    ledger,
		useMock:   useMock,
		scheduler: scheduler,
		gateway:   gateway,
	}
}

// InitiatePayoutResult is the response to a payout initiation
type InitiatePayoutResult struct {
	PayoutID string                 `json:"payoutId"`
	Status   aggregate.PayoutStatus `json:"status"`
}

// PayoutStatusResult is the response to a payout status query
type PayoutStatusResult struct {
	PayoutID  string                 `json:"payoutId"`
	Status    aggregate.PayoutStatus `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
}

// InitiatePayout records a new payout and arranges its settlement.
// Initiation itself is not idempotent: every call generates a fresh payout
// ID, so a caller retrying after a GatewayError creates a new payout.
func (s *PayoutService) InitiatePayout(ctx context.Context, gigID string, amountLKR float64) (*InitiatePayoutResult, error) {
	if gigID == "" || amountLKR <= 0 {
		return nil, errors.NewValidationError("gigId and amountLKR are required")
	}

	if s.useMock {
		payoutID := newPayoutID()

		payout, err := aggregate.NewPayout(payoutID, gigID, amountLKR, aggregate.PayoutStatusInitiated)
		if err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
		if err := s.store.Create(ctx, payout); err != nil {
			return nil, err
		}

		slog.Info("mock payout initiated", "payout_id", payoutID, "gig_id", gigID)

		s.scheduler.Schedule(event.SettlementEvent{
			PayoutID:  payoutID,
			Status:    aggregate.PayoutStatusSettled,
			AmountLKR: amountLKR,
			GigID:     gigID,
		})

		return &InitiatePayoutResult{PayoutID: payoutID, Status: aggregate.PayoutStatusInitiated}, nil
	}

	resp, err := s.gateway.InitiatePayout(ctx, gigID, amountLKR)
	if err != nil {
		return nil, err
	}

	payout, err := aggregate.NewPayout(resp.PayoutID, gigID, amountLKR, resp.Status)
	if err != nil {
		return nil, errors.NewGatewayError("Gateway returned an invalid payout: " + err.Error())
	}
	if err := s.store.Create(ctx, payout); err != nil {
		return nil, err
	}

	slog.Info("real payout initiated", "payout_id", resp.PayoutID)

	return &InitiatePayoutResult{PayoutID: resp.PayoutID, Status: resp.Status}, nil
}

// GetPayoutStatus returns the current status of a payout
func (s *PayoutService) GetPayoutStatus(ctx context.Context, payoutID string) (*PayoutStatusResult, error) {
	if payoutID == "" {
		return nil, errors.NewValidationError("payoutId is required")
	}

	payout, err := s.store.Get(ctx, payoutID)
	if err != nil {
		return nil, err
	}

	return &PayoutStatusResult{
		PayoutID:  payout.ID(),
		Status:    payout.Status(),
		Timestamp: time.Now().UTC(),
	}, nil
}

// ApplySettlement applies a verified settlement event to the store at most
// once per (payoutId, status). Duplicates and unknown payout IDs are
// swallowed deliberately: the sender must never be told to retry for our
// internal anomalies.
func (s *PayoutService) ApplySettlement(ctx context.Context, evt *event.SettlementEvent) error {
	key := evt.IdempotencyKey()

	if !s.ledger.TryClaim(key) {
		slog.Info("duplicate webhook event ignored", "event_key", key)
		return nil
	}

	if err := s.store.SetStatus(ctx, evt.PayoutID, evt.Status); err != nil {
		slog.Warn("settlement for unknown payout acknowledged",
			"payout_id", evt.PayoutID,
			"status", evt.Status,
			"error", err,
		)
		return nil
	}

	slog.Info("webhook processed", "payout_id", evt.PayoutID, "status", evt.Status)
	return nil
}

// newPayoutID builds a process-unique payout ID: millisecond timestamp plus
// a random suffix so concurrent initiations in the same millisecond differ.
func newPayoutID() string {
	return fmt.Sprintf("pay_%d_%s", time.Now().UnixMilli(), uuid.NewString()[:8])
}
