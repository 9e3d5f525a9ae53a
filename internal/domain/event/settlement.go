package event

import (
	"fmt"

	"skillsprint/internal/domain/aggregate"
)

// SettlementEvent is the asynchronous notification carrying a payout's
// final status. It arrives on the webhook endpoint, either from the real
// gateway or from the simulated settlement scheduler.
type SettlementEvent struct {
	PayoutID  string                 `json:"payoutId"`
	Status    aggregate.PayoutStatus `json:"status"`
	AmountLKR float64                `json:"amountLKR"`
	GigID     string                 `json:"gigId"`
}

// Validate checks that every required field is present and that the status
// is a terminal one. Settlement events never carry "initiated".
func (e *SettlementEvent) Validate() error {
	if e.PayoutID == "" || e.Status == "" || e.AmountLKR == 0 || e.GigID == "" {
		return fmt.Errorf("invalid webhook payload structure")
	}
	if !e.Status.IsTerminal() {
		return fmt.Errorf("invalid settlement status: %s", e.Status)
	}
	return nil
}

// IdempotencyKey derives the deduplication key for this event. Keys are per
// (payoutId, status): a settled and a failed event for the same payout are
// distinct keys by design.
func (e *SettlementEvent) IdempotencyKey() string {
	return IdempotencyKey(e.PayoutID, e.Status)
}

// IdempotencyKey builds the ledger key for a (payoutId, status) pair
func IdempotencyKey(payoutID string, status aggregate.PayoutStatus) string {
	return fmt.Sprintf("%s_%s", payoutID, status)
}
