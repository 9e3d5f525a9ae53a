package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skillsprint/internal/domain/aggregate"
	apperrors "skillsprint/pkg/errors"
)

func newTestPayout(t *testing.T, id string) *aggregate.Payout {
	t.Helper()
	payout, err := aggregate.NewPayout(id, "g1", 3000, aggregate.PayoutStatusInitiated)
	require.NoError(t, err)
	return payout
}

func TestPayoutStoreCreateAndGet(t *testing.T) {
	store := NewPayoutStore()
	ctx := context.Background()

	require.NoError(t, store.Create(ctx, newTestPayout(t, "pay_1")))

	got, err := store.Get(ctx, "pay_1")
	require.NoError(t, err)
	assert.Equal(t, "pay_1", got.ID())
	assert.Equal(t, "g1", got.GigID())
	assert.Equal(t, aggregate.PayoutStatusInitiated, got.Status())
}

func TestPayoutStoreCreateConflict(t *testing.T) {
	store := NewPayoutStore()
	ctx := context.Background()

	require.NoError(t, store.Create(ctx, newTestPayout(t, "pay_1")))

	err := store.Create(ctx, newTestPayout(t, "pay_1"))
	require.Error(t, err)
	appErr, ok := err.(*apperrors.ApplicationError)
	require.True(t, ok)
	assert.Equal(t, "CONFLICT", appErr.Code)
}

func TestPayoutStoreGetUnknown(t *testing.T) {
	store := NewPayoutStore()

	_, err := store.Get(context.Background(), "pay_missing")
	require.Error(t, err)
	appErr, ok := err.(*apperrors.ApplicationError)
	require.True(t, ok)
	assert.Equal(t, "NOT_FOUND", appErr.Code)
}

func TestPayoutStoreSetStatus(t *testing.T) {
	store := NewPayoutStore()
	ctx := context.Background()

	require.NoError(t, store.Create(ctx, newTestPayout(t, "pay_1")))
	require.NoError(t, store.SetStatus(ctx, "pay_1", aggregate.PayoutStatusSettled))

	got, err := store.Get(ctx, "pay_1")
	require.NoError(t, err)
	assert.Equal(t, aggregate.PayoutStatusSettled, got.Status())
}

func TestPayoutStoreSetStatusUnknown(t *testing.T) {
	store := NewPayoutStore()

	err := store.SetStatus(context.Background(), "pay_missing", aggregate.PayoutStatusSettled)
	require.Error(t, err)
	appErr, ok := err.(*apperrors.ApplicationError)
	require.True(t, ok)
	assert.Equal(t, "NOT_FOUND", appErr.Code)
}

func TestPayoutStoreConcurrentWrites(t *testing.T) {
	store := NewPayoutStore()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			id := fmt.Sprintf("pay_%d", n)
			assert.NoError(t, store.Create(ctx, newTestPayout(t, id)))
			assert.NoError(t, store.SetStatus(ctx, id, aggregate.PayoutStatusSettled))
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 50, store.Len())
}
