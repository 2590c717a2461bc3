package storage

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCountCacheExpires(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c := newCountCache(time.Minute)
	c.now = func() time.Time { return now }

	calls := 0
	load := func(context.Context) (int, error) {
		calls++
		return calls, nil
	}

	n, err := c.get(ctx, "k", load)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	n, _ = c.get(ctx, "k", load)
	assert.Equal(t, 1, n)

	now = now.Add(2 * time.Minute)
	n, _ = c.get(ctx, "k", load)
	assert.Equal(t, 2, n)
	assert.Equal(t, 2, calls)
}

func TestCountCacheDoesNotStoreErrors(t *testing.T) {
	ctx := context.Background()
	c := newCountCache(time.Minute)
	boom := errors.New("boom")

	_, err := c.get(ctx, "k", func(context.Context) (int, error) { return 0, boom })
	assert.ErrorIs(t, err, boom)
	assert.Zero(t, c.len())

	n, err := c.get(ctx, "k", func(context.Context) (int, error) { return 3, nil })
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestCountCacheDisabled(t *testing.T) {
	ctx := context.Background()
	c := newCountCache(0)

	for i := 1; i <= 3; i++ {
		n, err := c.get(ctx, "k", func(context.Context) (int, error) { return i, nil })
		require.NoError(t, err)
		assert.Equal(t, i, n)
	}
	assert.Zero(t, c.len())
}

func TestCountCacheSharesConcurrentLoads(t *testing.T) {
	ctx := context.Background()
	c := newCountCache(time.Minute)

	var calls atomic.Int32
	release := make(chan struct{})
	load := func(context.Context) (int, error) {
		calls.Add(1)
		<-release
		return 42, nil
	}

	var wg sync.WaitGroup
	results := make([]int, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = c.get(ctx, "k", load)
		}(i)
	}

	// Give the goroutines time to join the in-flight load.
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
	for _, n := range results {
		assert.Equal(t, 42, n)
	}
}

func TestCountCacheCallerCancellationIsNotShared(t *testing.T) {
	c := newCountCache(time.Minute)

	var calls atomic.Int32
	var once sync.Once
	started := make(chan struct{})
	release := make(chan struct{})
	load := func(ctx context.Context) (int, error) {
		calls.Add(1)
		once.Do(func() { close(started) })
		select {
		case <-release:
			return 42, nil
		case <-ctx.Done():
			return 0, ctx.Err()
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	firstErr := make(chan error, 1)
	go func() {
		_, err := c.get(ctx, "k", load)
		firstErr <- err
	}()
	<-started

	type result struct {
		n   int
		err error
	}
	second := make(chan result, 1)
	go func() {
		n, err := c.get(context.Background(), "k", load)
		second <- result{n, err}
	}()

	// Let the second caller join the in-flight load, then drop the first.
	time.Sleep(50 * time.Millisecond)
	cancel()
	assert.ErrorIs(t, <-firstErr, context.Canceled)

	close(release)
	got := <-second
	require.NoError(t, got.err)
	assert.Equal(t, 42, got.n)
	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, 1, c.len())
}
