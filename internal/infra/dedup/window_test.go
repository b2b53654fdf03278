package dedup

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2024, time.June, 3, 10, 0, 0, 0, time.UTC)

func newTestWindow() *Window {
	return NewWindow(30*time.Second, 5*time.Minute)
}

func TestWindow_SuppressesWithinInterval(t *testing.T) {
	w := newTestWindow()
	w.Record("fp", t0)

	assert.True(t, w.ShouldSuppress("fp", t0))
	assert.True(t, w.ShouldSuppress("fp", t0.Add(29999*time.Millisecond)))
	assert.False(t, w.ShouldSuppress("fp", t0.Add(30*time.Second)))
	assert.False(t, w.ShouldSuppress("other", t0))
}

func TestWindow_TryAcquire(t *testing.T) {
	w := newTestWindow()

	assert.True(t, w.TryAcquire("fp", t0))
	assert.False(t, w.TryAcquire("fp", t0.Add(5*time.Second)))

	// после интервала подавления запись перезаписывается
	assert.True(t, w.TryAcquire("fp", t0.Add(40*time.Second)))
	assert.True(t, w.ShouldSuppress("fp", t0.Add(60*time.Second)))
}

func TestWindow_EvictAllowsImmediateRetry(t *testing.T) {
	w := newTestWindow()
	require.True(t, w.TryAcquire("fp", t0))

	w.Evict("fp")

	assert.False(t, w.ShouldSuppress("fp", t0))
	assert.True(t, w.TryAcquire("fp", t0.Add(time.Second)))
}

func TestWindow_Sweep(t *testing.T) {
	w := newTestWindow()
	w.Record("old", t0)
	w.Record("fresh", t0.Add(4*time.Minute))

	assert.Equal(t, 0, w.Sweep(t0.Add(5*time.Minute)))
	assert.Equal(t, 2, w.Len())

	assert.Equal(t, 1, w.Sweep(t0.Add(5*time.Minute+time.Millisecond)))
	assert.Equal(t, 1, w.Len())
	assert.False(t, w.ShouldSuppress("old", t0))

	assert.Equal(t, 1, w.Sweep(t0.Add(10*time.Minute)))
	assert.Equal(t, 0, w.Len())
}

func TestWindow_SweepKeepsOverwrittenEntry(t *testing.T) {
	w := newTestWindow()
	w.Record("fp", t0)
	w.Record("fp", t0.Add(3*time.Minute))

	// первая запись в очереди устарела, но значение в карте новее
	assert.Equal(t, 0, w.Sweep(t0.Add(6*time.Minute)))
	assert.Equal(t, 1, w.Len())

	assert.Equal(t, 1, w.Sweep(t0.Add(9*time.Minute)))
	assert.Equal(t, 0, w.Len())
}

func TestWindow_SweepSkipsEvicted(t *testing.T) {
	w := newTestWindow()
	w.Record("fp", t0)
	w.Evict("fp")

	assert.Equal(t, 0, w.Sweep(t0.Add(time.Hour)))
	assert.Equal(t, 0, w.Len())
}

func TestWindow_ConcurrentAcquireAdmitsOnce(t *testing.T) {
	w := newTestWindow()

	var admitted int32
	var wg sync.WaitGroup
	for i := 0; i < 64; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if w.TryAcquire("fp", t0) {
				atomic.AddInt32(&admitted, 1)
			}
			w.Sweep(t0)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), admitted)
}

type sizeRecorder struct{ last int }

func (r *sizeRecorder) SetDedupEntries(n int) { r.last = n }

func TestLocalStore(t *testing.T) {
	ctx := context.Background()
	rec := &sizeRecorder{}
	store := NewLocalStore(newTestWindow(), rec)

	ok, err := store.TryAcquire(ctx, "fp", t0)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = store.TryAcquire(ctx, "fp", t0.Add(time.Second))
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Sweep(ctx, t0))
	assert.Equal(t, 1, rec.last)

	require.NoError(t, store.Evict(ctx, "fp"))
	ok, err = store.TryAcquire(ctx, "fp", t0.Add(2*time.Second))
	require.NoError(t, err)
	assert.True(t, ok)
}
