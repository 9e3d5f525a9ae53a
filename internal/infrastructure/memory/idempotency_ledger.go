package memory

import "sync"

// IdempotencyLedger is an in-memory set of already-applied settlement event
// keys. The single atomic check-and-set in TryClaim is what guarantees
// at-most-once application under concurrent duplicate deliveries; splitting
// the check from the insert would reintroduce the race.
type IdempotencyLedger struct {
	claimed map[string]struct{}
	mutex   sync.Mutex
}

// NewIdempotencyLedger returns a new in-memory ledger
func NewIdempotencyLedger() *IdempotencyLedger {
	return &IdempotencyLedger{
		claimed: make(map[string]struct{}),
	}
}

// TryClaim atomically claims the key if it has not been claimed before
func (l *IdempotencyLedger) TryClaim(key string) bool {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	if _, exists := l.claimed[key]; exists {
		return false
	}
	l.claimed[key] = struct{}{}
	return true
}
