package qr_test

import (
	"context"
	"encoding/json"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cleanpos/internal/customer/models"
	"cleanpos/internal/customer/qr"
	"cleanpos/internal/customer/store"
	"cleanpos/internal/platform/clock"
	id "cleanpos/pkg/domain"
	dErrors "cleanpos/pkg/domain-errors"
)

// countingAssetStore wraps the in-memory store to count Put calls.
type countingAssetStore struct {
	*qr.InMemoryAssetStore
	puts atomic.Int64
}

func (s *countingAssetStore) Put(ctx context.Context, key, contentType string, data []byte) error {
	s.puts.Add(1)
	return s.InMemoryAssetStore.Put(ctx, key, contentType, data)
}

func newGenerator(t *testing.T) (*qr.Generator, *countingAssetStore, *models.Customer) {
	t.Helper()
	customers := store.NewInMemoryCustomerStore()
	customer := &models.Customer{
		ID:        id.NewCustomerID(),
		Name:      "Dana Flores",
		Phone:     "555-0101",
		CreatedAt: time.Now(),
	}
	require.NoError(t, customers.Create(context.Background(), customer))

	assets := &countingAssetStore{InMemoryAssetStore: qr.NewInMemoryAssetStore()}
	gen, err := qr.New(customers, assets,
		qr.WithClock(clock.NewFixed(time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC))))
	require.NoError(t, err)
	return gen, assets, customer
}

func TestGenerator_EnsureWritesPayloadOnce(t *testing.T) {
	ctx := context.Background()
	gen, assets, customer := newGenerator(t)

	key, err := gen.Ensure(ctx, customer.ID)
	require.NoError(t, err)
	assert.Equal(t, qr.AssetKey(customer.ID), key)
	assert.Equal(t, int64(1), assets.puts.Load())

	data, err := assets.Get(ctx, key)
	require.NoError(t, err)

	var payload qr.Payload
	require.NoError(t, json.Unmarshal(data, &payload))
	assert.Equal(t, customer.ID.String(), payload.ID)
	assert.Equal(t, "Customer", payload.Type)
	assert.Equal(t, "Dana Flores", payload.Name)
	assert.Equal(t, "555-0101", payload.Phone)
	assert.False(t, payload.GeneratedAt.IsZero())

	// A second Ensure finds the asset and does not regenerate.
	key2, err := gen.Ensure(ctx, customer.ID)
	require.NoError(t, err)
	assert.Equal(t, key, key2)
	assert.Equal(t, int64(1), assets.puts.Load())
}

func TestGenerator_ConcurrentEnsureGeneratesOnce(t *testing.T) {
	ctx := context.Background()
	gen, assets, customer := newGenerator(t)

	var wg sync.WaitGroup
	errs := make([]error, 16)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = gen.Ensure(ctx, customer.ID)
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		require.NoError(t, err)
	}
	assert.Equal(t, int64(1), assets.puts.Load())
}

func TestGenerator_UnknownCustomer(t *testing.T) {
	gen, _, _ := newGenerator(t)

	_, err := gen.Ensure(context.Background(), id.NewCustomerID())
	assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
}

func TestGenerator_NilCustomerID(t *testing.T) {
	gen, _, _ := newGenerator(t)

	_, err := gen.Ensure(context.Background(), id.CustomerID{})
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
}
