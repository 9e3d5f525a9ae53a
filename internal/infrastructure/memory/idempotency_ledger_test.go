package memory

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLedgerClaimsKeyOnce(t *testing.T) {
	ledger := NewIdempotencyLedger()

	assert.True(t, ledger.TryClaim("pay_1_settled"))
	assert.False(t, ledger.TryClaim("pay_1_settled"))
}

func TestLedgerDistinguishesStatuses(t *testing.T) {
	ledger := NewIdempotencyLedger()

	// settled and failed for the same payout are distinct keys
	assert.True(t, ledger.TryClaim("pay_1_settled"))
	assert.True(t, ledger.TryClaim("pay_1_failed"))
}

func TestLedgerConcurrentClaimsSingleWinner(t *testing.T) {
	ledger := NewIdempotencyLedger()

	var wins int64
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if ledger.TryClaim("pay_1_settled") {
				atomic.AddInt64(&wins, 1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(1), wins)
}
