// Package admission implements the two-phase queue promotion that runs
// at the start of every scheduler tick: ready input records are moved
// onto the real-time or user-job queue by arrival time, and user jobs
// that can fully acquire their declared memory and resources are moved
// onto their feedback queue.
package admission

import (
	"hostd/internal/config"
	"hostd/internal/process"
	"hostd/internal/resource"
)

// Pipeline owns the acquisition logic and the feasibility policy used
// to promote records between queues.
type Pipeline struct {
	cfg      config.Config
	pool     *resource.Pool
	acquirer *Acquirer
}

// NewPipeline builds a Pipeline over the given configuration, resource
// pool, and acquirer.
func NewPipeline(cfg config.Config, pool *resource.Pool, acquirer *Acquirer) *Pipeline {
	return &Pipeline{cfg: cfg, pool: pool, acquirer: acquirer}
}

// AdmitArrivals is Phase A: every input record whose arrival time has
// been reached by clock is moved onto the real-time queue (priority 0)
// or the user-job queue (priority > 0). Records are collected off the
// input queue before any are enqueued elsewhere, so this never mutates
// a list while a live cursor is walking it.
func (p *Pipeline) AdmitArrivals(clock uint, input, realTime, userJob *process.Queue) {
	for _, r := range input.DrainReadyByArrival(clock) {
		if r.IsRealTime() {
			realTime.Enqueue(r)
		} else {
			userJob.Enqueue(r)
		}
	}
}

// Destroyed describes a user-job record removed from the pipeline
// because it could never be satisfied, for the caller to log.
type Destroyed struct {
	Record *process.Record
	Reason string
}

// AdmitUserJobs is Phase B: walk the user-job queue once, in order.
// Infeasible records are removed and reported via the returned slice.
// Records that fully acquire their demands are moved onto
// feedback[priority-1]. Records that fail acquisition are left in
// place, to be retried on a later tick.
func (p *Pipeline) AdmitUserJobs(userJob *process.Queue, feedback []*process.Queue) []Destroyed {
	var destroyed []Destroyed
	for _, r := range userJob.ToSlice() {
		if !Feasible(p.cfg, p.pool, r) {
			userJob.Remove(r)
			destroyed = append(destroyed, Destroyed{Record: r, Reason: "process will not be executed"})
			continue
		}
		if p.acquirer.Acquire(r) {
			userJob.Remove(r)
			feedback[r.Priority-1].Enqueue(r)
		}
		// Acquisition failed: leave r in place, retried next tick.
	}
	return destroyed
}
