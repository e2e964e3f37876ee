package admission

import (
	"hostd/internal/config"
	"hostd/internal/memory"
	"hostd/internal/process"
	"hostd/internal/resource"
)

// Acquirer binds a process record's declared memory and resource
// demands, atomically and with rollback on partial failure. It is
// shared by the admission pipeline (pre-admitting user jobs) and the
// scheduler (lazy real-time acquisition at first dispatch), and backs
// the termination cascade's release step.
type Acquirer struct {
	arena *memory.Arena
	pool  *resource.Pool
}

// NewAcquirer builds an Acquirer over the given arena and resource pool.
func NewAcquirer(arena *memory.Arena, pool *resource.Pool) *Acquirer {
	return &Acquirer{arena: arena, pool: pool}
}

// Acquire attempts to bind r's declared memory and resource demands,
// all-or-nothing. On success, r.MemoryBlockID is set and the pool holds
// a unit of every declared kind under r.ID. On failure, r holds nothing
// (any partial allocation is rolled back).
func (a *Acquirer) Acquire(r *process.Record) bool {
	a.Release(r)

	if r.Mbytes > 0 {
		block, ok := a.arena.Allocate(r.Mbytes)
		if !ok {
			return false
		}
		r.MemoryBlockID = block.ID

		if !r.IsRealTime() {
			if a.arena.LargestFree() < config.ReservedMemory {
				a.arena.Release(block.ID)
				r.MemoryBlockID = 0
				return false
			}
		}
	}

	kinds := []struct {
		kind  config.ResourceKind
		count uint
	}{
		{config.Printer, r.NumPrinters},
		{config.Scanner, r.NumScanners},
		{config.Modem, r.NumModems},
		{config.CD, r.NumCDs},
	}
	for _, k := range kinds {
		for i := uint(0); i < k.count; i++ {
			if _, ok := a.pool.Acquire(k.kind, r.ID); !ok {
				a.Release(r)
				return false
			}
		}
	}
	return true
}

// Release returns every holding r has (memory block and resource
// units) and clears its bookkeeping. It is safe to call on a record
// that holds nothing.
func (a *Acquirer) Release(r *process.Record) {
	if r.MemoryBlockID != 0 {
		a.arena.Release(r.MemoryBlockID)
		r.MemoryBlockID = 0
	}
	a.pool.ReleaseAll(r.ID)
}

// Feasible reports whether r's declared demands could ever be
// satisfied by the system's total capacity, independent of current
// availability. An infeasible record must never be admitted — it would
// block its queue forever.
func Feasible(cfg config.Config, pool *resource.Pool, r *process.Record) bool {
	if r.Mbytes > cfg.AvailableMemory-cfg.ReservedMemory {
		return false
	}
	checks := []struct {
		kind  config.ResourceKind
		count uint
	}{
		{config.Printer, r.NumPrinters},
		{config.Scanner, r.NumScanners},
		{config.Modem, r.NumModems},
		{config.CD, r.NumCDs},
	}
	for _, c := range checks {
		if c.count > pool.TotalOf(c.kind) {
			return false
		}
	}
	return true
}
