package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/poyrazK/dnsgate/internal/core/domain"
	"github.com/poyrazK/dnsgate/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) *RecordCache {
	t.Helper()
	mr := miniredis.RunT(t)
	return NewRecordCache(mr.Addr(), "", 0, time.Minute)
}

func TestRecordCacheRoundTrip(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	_, ok := c.Get(ctx)
	assert.False(t, ok, "empty cache must miss")

	records := []domain.RecordState{{Name: "abc.test.com", CreatedAt: time.Now().UTC()}}
	c.Set(ctx, records)

	got, ok := c.Get(ctx)
	require.True(t, ok)
	require.Len(t, got, 1)
	assert.Equal(t, "abc.test.com", got[0].Name)

	require.NoError(t, c.Invalidate(ctx))
	_, ok = c.Get(ctx)
	assert.False(t, ok, "invalidated cache must miss")
}

func TestCachedStoreListRecords(t *testing.T) {
	store := new(testutil.MockStore)
	records := []domain.RecordState{{Name: "abc.test.com"}}
	store.On("ListRecords").Return(records, nil).Once()

	cached := NewCachedStore(store, newTestCache(t))
	ctx := context.Background()

	got, err := cached.ListRecords(ctx)
	require.NoError(t, err)
	assert.Len(t, got, 1)

	// Second listing is served from the cache; the store is not hit again.
	got, err = cached.ListRecords(ctx)
	require.NoError(t, err)
	assert.Len(t, got, 1)
	store.AssertNumberOfCalls(t, "ListRecords", 1)
}

func TestCachedStorePutInvalidates(t *testing.T) {
	store := new(testutil.MockStore)
	store.On("ListRecords").Return([]domain.RecordState{{Name: "abc.test.com"}}, nil).Twice()
	store.On("PutRecord", mock.Anything).Return(nil)

	cached := NewCachedStore(store, newTestCache(t))
	ctx := context.Background()

	_, err := cached.ListRecords(ctx)
	require.NoError(t, err)

	err = cached.PutRecord(ctx, &domain.RecordState{Name: "new.test.com", CreatedAt: time.Now()})
	require.NoError(t, err)

	_, err = cached.ListRecords(ctx)
	require.NoError(t, err)
	store.AssertNumberOfCalls(t, "ListRecords", 2)
}

func TestCachedStoreDelegates(t *testing.T) {
	store := new(testutil.MockStore)
	principal := &domain.Principal{APIKey: "Test123123", Regex: ".*"}
	store.On("GetPrincipal", "Test123123").Return(principal, nil)
	store.On("GetRecord", "abc.test.com").Return((*domain.RecordState)(nil), nil)
	store.On("Ping").Return(nil)

	cached := NewCachedStore(store, newTestCache(t))
	ctx := context.Background()

	got, err := cached.GetPrincipal(ctx, "Test123123")
	require.NoError(t, err)
	assert.Equal(t, principal, got)

	state, err := cached.GetRecord(ctx, "abc.test.com")
	require.NoError(t, err)
	assert.Nil(t, state)

	require.NoError(t, cached.Ping(ctx))
	store.AssertExpectations(t)
}
