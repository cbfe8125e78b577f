package cache

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func newTestStore(t *testing.T) (*InMemoryIdempotencyStore, *fakeClock) {
	t.Helper()
	clock := &fakeClock{now: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}
	s := NewInMemoryIdempotencyStore(0)
	s.now = clock.Now
	t.Cleanup(func() { _ = s.Close() })
	return s, clock
}

func TestInMemoryIdempotencyStore_MarkProcessed(t *testing.T) {
	ctx := context.Background()
	s, clock := newTestStore(t)

	ok, err := s.MarkProcessed(ctx, "k1", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = s.MarkProcessed(ctx, "k1", time.Minute)
	require.NoError(t, err)
	assert.False(t, ok, "second claim must fail while the first is live")

	clock.Advance(time.Minute)
	ok, err = s.MarkProcessed(ctx, "k1", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok, "expired claims can be taken again")
}

func TestInMemoryIdempotencyStore_IsProcessedAndRelease(t *testing.T) {
	ctx := context.Background()
	s, clock := newTestStore(t)

	processed, err := s.IsProcessed(ctx, "k")
	require.NoError(t, err)
	assert.False(t, processed)

	_, _ = s.MarkProcessed(ctx, "k", time.Hour)
	processed, _ = s.IsProcessed(ctx, "k")
	assert.True(t, processed)

	require.NoError(t, s.Release(ctx, "k"))
	processed, _ = s.IsProcessed(ctx, "k")
	assert.False(t, processed)

	_, _ = s.MarkProcessed(ctx, "short", time.Second)
	clock.Advance(2 * time.Second)
	processed, _ = s.IsProcessed(ctx, "short")
	assert.False(t, processed)
}

func TestInMemoryIdempotencyStore_Sweep(t *testing.T) {
	ctx := context.Background()
	s, clock := newTestStore(t)

	_, _ = s.MarkProcessed(ctx, "a", time.Second)
	_, _ = s.MarkProcessed(ctx, "b", time.Hour)
	clock.Advance(time.Minute)
	s.sweep()

	assert.Equal(t, 1, s.Len())
}

func TestInMemoryIdempotencyStore_ConcurrentClaims(t *testing.T) {
	s := NewInMemoryIdempotencyStore(time.Millisecond)
	defer s.Close()

	var winners atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if ok, _ := s.MarkProcessed(context.Background(), "same", time.Hour); ok {
				winners.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), winners.Load())
	assert.NoError(t, s.Close())
	assert.NoError(t, s.Close())
}
