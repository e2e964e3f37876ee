// Package scheduler implements the dispatcher's per-tick state
// machine: admission, time accounting for the active process,
// preemption of a lower-or-equal-priority active job, dispatch of a
// successor, and the termination cascade.
package scheduler

import (
	"context"
	"time"

	"hostd/internal/admission"
	"hostd/internal/childproc"
	"hostd/internal/config"
	"hostd/internal/logging"
	"hostd/internal/process"
)

// Pacer abstracts the one-second visual pacing sleep between ticks so
// tests can run a schedule instantly.
type Pacer interface {
	Pace(ctx context.Context)
}

// RealPacer sleeps for one wall-clock second, per the system's only
// real-time coupling.
type RealPacer struct{}

// Pace blocks for one second or until ctx is done, whichever comes
// first.
func (RealPacer) Pace(ctx context.Context) {
	t := time.NewTimer(time.Second)
	defer t.Stop()
	select {
	case <-t.C:
	case <-ctx.Done():
	}
}

// NoPacer returns immediately; used by tests.
type NoPacer struct{}

// Pace is a no-op.
func (NoPacer) Pace(context.Context) {}

// Scheduler owns the runnable queues, the active process, and the
// clock, and drives them through one tick at a time.
type Scheduler struct {
	log *logging.Logger

	pipeline *admission.Pipeline
	acquirer *admission.Acquirer
	adapter  childproc.Adapter
	pacer    Pacer

	input    *process.Queue
	realTime *process.Queue
	userJob  *process.Queue
	feedback []*process.Queue

	active *process.Record
	clock  uint
}

// New builds a Scheduler. input is the holding queue of not-yet-arrived
// records, typically filled once by the loader before the first tick.
func New(pipeline *admission.Pipeline, acquirer *admission.Acquirer, adapter childproc.Adapter, log *logging.Logger, pacer Pacer, input *process.Queue) *Scheduler {
	feedback := make([]*process.Queue, config.NumFeedbackQueues)
	for i := range feedback {
		feedback[i] = process.NewQueue()
	}
	return &Scheduler{
		log:      log,
		pipeline: pipeline,
		acquirer: acquirer,
		adapter:  adapter,
		pacer:    pacer,
		input:    input,
		realTime: process.NewQueue(),
		userJob:  process.NewQueue(),
		feedback: feedback,
	}
}

// Clock returns the current tick count.
func (s *Scheduler) Clock() uint { return s.clock }

// Active returns the currently running record, or nil.
func (s *Scheduler) Active() *process.Record { return s.active }

// Done reports whether there is nothing left to do: no active process
// and every queue empty.
func (s *Scheduler) Done() bool {
	if s.active != nil {
		return false
	}
	if !s.input.Empty() || !s.realTime.Empty() || !s.userJob.Empty() {
		return false
	}
	for _, q := range s.feedback {
		if !q.Empty() {
			return false
		}
	}
	return true
}

// Snapshot exposes every queue for the display package; it does not
// mutate scheduler state.
type Snapshot struct {
	Clock    uint
	Active   *process.Record
	Input    []*process.Record
	RealTime []*process.Record
	UserJob  []*process.Record
	Feedback [][]*process.Record
}

// Snapshot returns the current state of every queue for status display.
func (s *Scheduler) Snapshot() Snapshot {
	fb := make([][]*process.Record, len(s.feedback))
	for i, q := range s.feedback {
		fb[i] = q.ToSlice()
	}
	return Snapshot{
		Clock:    s.clock,
		Active:   s.active,
		Input:    s.input.ToSlice(),
		RealTime: s.realTime.ToSlice(),
		UserJob:  s.userJob.ToSlice(),
		Feedback: fb,
	}
}

// Tick runs one full iteration of the state machine: admission, time
// accounting, preemption, dispatch, and clock advance with pacing. It
// does not itself loop; callers drive repeated ticks until Done.
func (s *Scheduler) Tick(ctx context.Context) {
	s.admit()
	s.accountActive()
	s.preempt()
	s.dispatch(ctx)
	s.clock++
	s.pacer.Pace(ctx)
}

func (s *Scheduler) admit() {
	s.pipeline.AdmitArrivals(s.clock, s.input, s.realTime, s.userJob)
	destroyed := s.pipeline.AdmitUserJobs(s.userJob, s.feedback)
	for _, d := range destroyed {
		s.log.Warn("process will not be executed", map[string]any{
			"id": d.Record.ID, "reason": d.Reason,
		})
	}
}

func (s *Scheduler) accountActive() {
	if s.active == nil {
		return
	}
	if s.active.DecrementTime() {
		s.terminate(s.active, "time exhausted")
		s.active = nil
	}
}

// preempt suspends the active non-real-time process if a candidate of
// equal or higher priority is runnable.
func (s *Scheduler) preempt() {
	if s.active == nil || s.active.IsRealTime() {
		return
	}
	q := s.nextQueue(s.active.Priority)
	if q == nil {
		return
	}
	victim := s.active
	if err := s.adapter.Suspend(victim.ChildHandle); err != nil {
		s.log.Error("suspend failed", map[string]any{"id": victim.ID, "err": err.Error()})
	}
	victim.LowerPriority()
	s.feedback[victim.Priority-1].Enqueue(victim)
	s.active = nil
}

// dispatch selects and starts or resumes a successor when there is no
// active process.
func (s *Scheduler) dispatch(ctx context.Context) {
	if s.active != nil {
		return
	}
	q := s.nextQueue(config.LowestPriority)
	if q == nil {
		return
	}
	r := q.Dequeue()
	s.active = r

	if r.Started() {
		if err := s.adapter.Resume(r.ChildHandle); err != nil {
			s.log.Error("resume failed", map[string]any{"id": r.ID, "err": err.Error()})
		}
		return
	}

	if r.IsRealTime() {
		if !s.acquirer.Acquire(r) {
			s.log.Warn("real-time acquisition failed, destroying", map[string]any{"id": r.ID})
			s.active = nil
			return
		}
	}

	pid, err := s.adapter.Spawn(ctx, r.Argv)
	if err != nil {
		s.log.Error("spawn failed, destroying", map[string]any{"id": r.ID, "err": err.Error()})
		s.acquirer.Release(r)
		s.active = nil
		return
	}
	r.ChildHandle = pid
}

// terminate runs the termination cascade for r: signal its child to
// exit, release its holdings, and log.
func (s *Scheduler) terminate(r *process.Record, reason string) {
	if r.Started() {
		if err := s.adapter.Terminate(r.ChildHandle); err != nil {
			s.log.Error("terminate failed", map[string]any{"id": r.ID, "err": err.Error()})
		}
	}
	s.acquirer.Release(r)
	s.log.Info("process terminated", map[string]any{"id": r.ID, "reason": reason, "clock": s.clock})
}

// Close runs the termination cascade over anything still active or
// queued. In practice Done() being true means every queue is already
// empty, but this guards against a caller stopping early (or the loop
// being abandoned under a cancelled context): each queue is drained
// against its own head, never a different queue's.
func (s *Scheduler) Close() {
	if s.active != nil {
		s.terminate(s.active, "dispatcher shutdown")
		s.active = nil
	}
	for _, q := range []*process.Queue{s.input, s.userJob, s.realTime} {
		for r := q.Dequeue(); r != nil; r = q.Dequeue() {
			s.terminate(r, "dispatcher shutdown")
		}
	}
	for _, q := range s.feedback {
		for r := q.Dequeue(); r != nil; r = q.Dequeue() {
			s.terminate(r, "dispatcher shutdown")
		}
	}
}

// nextQueue implements the selection rule next_queued(min_priority): it
// returns the queue holding the next candidate, without dequeuing it,
// or nil if nothing qualifies.
func (s *Scheduler) nextQueue(minPriority uint) *process.Queue {
	if head := s.realTime.Peek(); head != nil && head.Ready(s.clock) {
		return s.realTime
	}
	bound := minPriority
	if bound > config.LowestPriority {
		bound = config.LowestPriority
	}
	for i := uint(0); i < bound; i++ {
		q := s.feedback[i]
		if head := q.Peek(); head != nil && head.Ready(s.clock) {
			return q
		}
	}
	return nil
}
