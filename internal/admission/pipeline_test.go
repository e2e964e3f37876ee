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

func newFeedback() []*process.Queue {
	fq := make([]*process.Queue, config.NumFeedbackQueues)
	for i := range fq {
		fq[i] = process.NewQueue()
	}
	return fq
}

func TestAdmitArrivalsSplitsRealTimeAndUserJobs(t *testing.T) {
	input := process.NewQueue()
	realTime := process.NewQueue()
	userJob := process.NewQueue()

	rt := &process.Record{ID: 1, ArrivalTime: 0, Priority: config.RealTimePriority}
	user := &process.Record{ID: 2, ArrivalTime: 0, Priority: 1}
	future := &process.Record{ID: 3, ArrivalTime: 5, Priority: 1}
	input.Enqueue(rt)
	input.Enqueue(user)
	input.Enqueue(future)

	cfg := config.Default()
	p := NewPipeline(cfg, resource.NewPool(cfg), NewAcquirer(memory.NewArena(cfg.AvailableMemory), resource.NewPool(cfg)))
	p.AdmitArrivals(0, input, realTime, userJob)

	assert.Equal(t, 1, realTime.Len())
	assert.Same(t, rt, realTime.Peek())
	assert.Equal(t, 1, userJob.Len())
	assert.Same(t, user, userJob.Peek())
	assert.Equal(t, 1, input.Len())
	assert.Same(t, future, input.Peek())
}

// Scenario B: memory reservation guard. A real-time job already holds
// 64 MB; after the priority-1 job's 960 MB allocation no free memory
// remains, below RESERVED_MEMORY=64, so its acquisition fails and it
// stays on the user-job queue.
func TestAdmitUserJobsMemoryReservationGuard(t *testing.T) {
	cfg := config.Default()
	arena := memory.NewArena(cfg.AvailableMemory)
	pool := resource.NewPool(cfg)
	acquirer := NewAcquirer(arena, pool)
	p := NewPipeline(cfg, pool, acquirer)

	arena.Allocate(64) // held by a real-time job
	big := &process.Record{ID: 1, Priority: 1, Mbytes: 960}
	userJob := process.NewQueue()
	userJob.Enqueue(big)
	feedback := newFeedback()

	destroyed := p.AdmitUserJobs(userJob, feedback)

	assert.Empty(t, destroyed)
	assert.Equal(t, 1, userJob.Len(), "job must stay queued, not feedback-promoted")
	assert.Equal(t, uint(0), big.MemoryBlockID, "failed acquisition must not hold memory")
	assert.Equal(t, uint(1024), arena.Total())
}

func TestAdmitUserJobsSuccessfulAcquisitionPromotesToFeedback(t *testing.T) {
	cfg := config.Default()
	arena := memory.NewArena(cfg.AvailableMemory)
	pool := resource.NewPool(cfg)
	acquirer := NewAcquirer(arena, pool)
	p := NewPipeline(cfg, pool, acquirer)

	job := &process.Record{ID: 1, Priority: 2, Mbytes: 64}
	userJob := process.NewQueue()
	userJob.Enqueue(job)
	feedback := newFeedback()

	destroyed := p.AdmitUserJobs(userJob, feedback)

	assert.Empty(t, destroyed)
	assert.True(t, userJob.Empty())
	require.Equal(t, 1, feedback[1].Len())
	assert.Same(t, job, feedback[1].Peek())
	assert.NotEqual(t, uint(0), job.MemoryBlockID)
}

// Scenario E: unschedulable job. A declared demand that exceeds build
// capacity is destroyed immediately with a diagnostic, regardless of
// current availability.
func TestAdmitUserJobsDestroysInfeasibleJob(t *testing.T) {
	cfg := config.Default()
	arena := memory.NewArena(cfg.AvailableMemory)
	pool := resource.NewPool(cfg)
	acquirer := NewAcquirer(arena, pool)
	p := NewPipeline(cfg, pool, acquirer)

	tooBig := &process.Record{ID: 1, Priority: 1, Mbytes: 2000}
	userJob := process.NewQueue()
	userJob.Enqueue(tooBig)
	feedback := newFeedback()

	destroyed := p.AdmitUserJobs(userJob, feedback)

	require.Len(t, destroyed, 1)
	assert.Same(t, tooBig, destroyed[0].Record)
	assert.Equal(t, "process will not be executed", destroyed[0].Reason)
	assert.True(t, userJob.Empty())
}

func TestAdmitUserJobsDestroysJobExceedingResourceTotals(t *testing.T) {
	cfg := config.Default()
	arena := memory.NewArena(cfg.AvailableMemory)
	pool := resource.NewPool(cfg)
	acquirer := NewAcquirer(arena, pool)
	p := NewPipeline(cfg, pool, acquirer)

	job := &process.Record{ID: 1, Priority: 1, NumPrinters: cfg.AvailablePrinters + 1}
	userJob := process.NewQueue()
	userJob.Enqueue(job)
	feedback := newFeedback()

	destroyed := p.AdmitUserJobs(userJob, feedback)
	require.Len(t, destroyed, 1)
	assert.Same(t, job, destroyed[0].Record)
}

func TestAdmitUserJobsFailedAcquisitionLeavesOthersUnaffected(t *testing.T) {
	cfg := config.Default()
	arena := memory.NewArena(cfg.AvailableMemory)
	pool := resource.NewPool(cfg)
	acquirer := NewAcquirer(arena, pool)
	p := NewPipeline(cfg, pool, acquirer)

	arena.Allocate(64) // held by a real-time job
	blocked := &process.Record{ID: 1, Priority: 1, Mbytes: 960}
	fine := &process.Record{ID: 2, Priority: 2, Mbytes: 10}
	userJob := process.NewQueue()
	userJob.Enqueue(blocked)
	userJob.Enqueue(fine)
	feedback := newFeedback()

	p.AdmitUserJobs(userJob, feedback)

	assert.Equal(t, 1, userJob.Len())
	assert.Same(t, blocked, userJob.Peek())
	assert.Equal(t, 1, feedback[1].Len())
	assert.Same(t, fine, feedback[1].Peek())
}
