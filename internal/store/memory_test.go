package store

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testRecord struct {
	PropertyID string `json:"property_id"`
	Date       string `json:"date"`
}

func TestMemoryStore_SetAndGet(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	written := testRecord{PropertyID: "p1", Date: "2026-07-01"}
	require.NoError(t, s.Set(ctx, "blockedDates/p1_r1_2026-07-01", written))

	var read testRecord
	require.NoError(t, s.Get(ctx, "blockedDates/p1_r1_2026-07-01", &read))
	assert.Equal(t, written, read)
}

func TestMemoryStore_GetMissingLeavesZeroValue(t *testing.T) {
	s := NewMemoryStore()

	var read testRecord
	require.NoError(t, s.Get(context.Background(), "blockedDates/nothing", &read))
	assert.Equal(t, testRecord{}, read)
}

func TestMemoryStore_SetNilDeletes(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "reservations/r1", testRecord{PropertyID: "p1"}))
	require.NoError(t, s.Set(ctx, "reservations/r1", nil))

	var read testRecord
	require.NoError(t, s.Get(ctx, "reservations/r1", &read))
	assert.Equal(t, testRecord{}, read)

	// The emptied parent collection reads back as absent, not as {}.
	var all map[string]testRecord
	require.NoError(t, s.Get(ctx, "reservations", &all))
	assert.Empty(t, all)
}

func TestMemoryStore_MultiUpdate(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "blockedDates/old", testRecord{Date: "2026-06-01"}))
	require.NoError(t, s.MultiUpdate(ctx, map[string]any{
		"blockedDates/a":   testRecord{Date: "2026-07-01"},
		"blockedDates/b":   testRecord{Date: "2026-07-02"},
		"blockedDates/old": nil,
	}))

	var all map[string]testRecord
	require.NoError(t, s.Get(ctx, "blockedDates", &all))
	assert.Len(t, all, 2)
	assert.Equal(t, "2026-07-01", all["a"].Date)
	assert.NotContains(t, all, "old")
}

func TestMemoryStore_Query(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "blockedDates/x", testRecord{PropertyID: "p1", Date: "2026-07-01"}))
	require.NoError(t, s.Set(ctx, "blockedDates/y", testRecord{PropertyID: "p2", Date: "2026-07-01"}))
	require.NoError(t, s.Set(ctx, "blockedDates/z", testRecord{PropertyID: "p1", Date: "2026-07-02"}))

	var matched map[string]testRecord
	require.NoError(t, s.Query(ctx, "blockedDates", "property_id", "p1", &matched))
	assert.Len(t, matched, 2)
	assert.Contains(t, matched, "x")
	assert.Contains(t, matched, "z")

	var none map[string]testRecord
	require.NoError(t, s.Query(ctx, "blockedDates", "property_id", "p9", &none))
	assert.Empty(t, none)
}

func TestMemoryStore_CreateIfAbsent(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, s.CreateIfAbsent(ctx, "blockedDates/p1_r1_2026-07-01", testRecord{PropertyID: "p1"}))

	err := s.CreateIfAbsent(ctx, "blockedDates/p1_r1_2026-07-01", testRecord{PropertyID: "p2"})
	assert.ErrorIs(t, err, ErrAlreadyExists)

	// The original value survives the losing attempt.
	var read testRecord
	require.NoError(t, s.Get(ctx, "blockedDates/p1_r1_2026-07-01", &read))
	assert.Equal(t, "p1", read.PropertyID)
}

func TestMemoryStore_CreateIfAbsentOneWinnerUnderContention(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	const attempts = 32
	var wg sync.WaitGroup
	wins := make(chan int, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			if s.CreateIfAbsent(ctx, "blockedDates/contended", testRecord{Date: "2026-07-01"}) == nil {
				wins <- n
			}
		}(i)
	}
	wg.Wait()
	close(wins)

	count := 0
	for range wins {
		count++
	}
	assert.Equal(t, 1, count)
}

func TestMemoryStore_GetReturnsDetachedCopies(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "reservations/r1", testRecord{PropertyID: "p1"}))

	var first testRecord
	require.NoError(t, s.Get(ctx, "reservations/r1", &first))
	first.PropertyID = "mutated"

	var second testRecord
	require.NoError(t, s.Get(ctx, "reservations/r1", &second))
	assert.Equal(t, "p1", second.PropertyID)
}
