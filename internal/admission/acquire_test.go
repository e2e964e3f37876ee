package admission

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hostd/internal/config"
	"hostd/internal/memory"
	"hostd/internal/process"
	"hostd/internal/resource"
)

func TestFeasibleRejectsMemoryAboveCapacity(t *testing.T) {
	cfg := config.Default()
	pool := resource.NewPool(cfg)
	r := &process.Record{Mbytes: cfg.AvailableMemory - cfg.ReservedMemory + 1}
	assert.False(t, Feasible(cfg, pool, r))
}

func TestFeasibleAcceptsMemoryAtCapacityBoundary(t *testing.T) {
	cfg := config.Default()
	pool := resource.NewPool(cfg)
	r := &process.Record{Mbytes: cfg.AvailableMemory - cfg.ReservedMemory}
	assert.True(t, Feasible(cfg, pool, r))
}

func TestFeasibleRejectsResourceCountAboveTotal(t *testing.T) {
	cfg := config.Default()
	pool := resource.NewPool(cfg)
	r := &process.Record{NumCDs: cfg.AvailableCDs + 1}
	assert.False(t, Feasible(cfg, pool, r))
}

func TestAcquireRealTimeSkipsReservationCheck(t *testing.T) {
	cfg := config.Default()
	arena := memory.NewArena(cfg.AvailableMemory)
	pool := resource.NewPool(cfg)
	a := NewAcquirer(arena, pool)

	rt := &process.Record{ID: 1, Priority: config.RealTimePriority, Mbytes: 1000}
	ok := a.Acquire(rt)

	require.True(t, ok, "real-time acquisition must not be blocked by the reservation guard")
	assert.NotEqual(t, uint(0), rt.MemoryBlockID)
}

func TestAcquireRollsBackMemoryWhenResourceUnavailable(t *testing.T) {
	cfg := config.Default()
	arena := memory.NewArena(cfg.AvailableMemory)
	pool := resource.NewPool(cfg)
	a := NewAcquirer(arena, pool)

	// Exhaust the single scanner first.
	pool.Acquire(config.Scanner, 99)

	r := &process.Record{ID: 1, Priority: 1, Mbytes: 10, NumScanners: 1}
	ok := a.Acquire(r)

	assert.False(t, ok)
	assert.Equal(t, uint(0), r.MemoryBlockID, "memory must be released on resource failure")
	assert.Equal(t, cfg.AvailableMemory, arena.Total())
	assert.Equal(t, uint(1024), arena.LargestFree())
}

func TestAcquireAllOrNothingAcrossResourceKinds(t *testing.T) {
	cfg := config.Default()
	arena := memory.NewArena(cfg.AvailableMemory)
	pool := resource.NewPool(cfg)
	a := NewAcquirer(arena, pool)

	r := &process.Record{ID: 1, Priority: 1, NumPrinters: cfg.AvailablePrinters, NumModems: 1}
	ok := a.Acquire(r)
	require.True(t, ok)

	for _, u := range pool.Units() {
		if u.Kind == config.Printer || u.Kind == config.Modem {
			assert.True(t, u.Held())
		} else {
			assert.False(t, u.Held())
		}
	}
}

func TestReleaseIsIdempotentAndSafeOnEmptyHoldings(t *testing.T) {
	cfg := config.Default()
	arena := memory.NewArena(cfg.AvailableMemory)
	pool := resource.NewPool(cfg)
	a := NewAcquirer(arena, pool)

	r := &process.Record{ID: 1}
	a.Release(r)
	a.Release(r)
	assert.Equal(t, uint(0), r.MemoryBlockID)
}

func TestAcquireDefensivelyReleasesPriorHoldingsFirst(t *testing.T) {
	cfg := config.Default()
	arena := memory.NewArena(cfg.AvailableMemory)
	pool := resource.NewPool(cfg)
	a := NewAcquirer(arena, pool)

	r := &process.Record{ID: 1, Priority: 1, Mbytes: 100}
	require.True(t, a.Acquire(r))
	firstBlock := r.MemoryBlockID

	require.True(t, a.Acquire(r))
	assert.Equal(t, firstBlock, r.MemoryBlockID, "re-acquiring must release the old block first, so first-fit lands on it again")
	assert.Equal(t, cfg.AvailableMemory, arena.Total())
}
