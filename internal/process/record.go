// Package process implements the process control block (PCB) — here
// called Record — and the doubly-linked FIFO queue primitives it moves
// through on its way from input parsing to termination.
package process

import "hostd/internal/config"

// Status is the display-facing lifecycle state of a Record, derived
// from which queue (if any) holds it.
type Status int

const (
	StatusUnloaded Status = iota // on the input queue, not yet arrived
	StatusPending                // on the user-job queue, awaiting memory/resources
	StatusQueuedRT               // on the real-time queue
	StatusQueuedRRQ              // on a feedback queue, never started
	StatusSuspendedRRQ           // on a feedback queue, started and suspended
	StatusActive                 // currently the scheduler's active process
)

// Record is the central entity the dispatcher moves between queues: a
// process descriptor with lifecycle operations attached.
type Record struct {
	ID uint

	ChildHandle int // OS PID of the spawned worker; 0 before first start
	Argv        []string

	ArrivalTime      uint
	RemainingCPUTime uint
	Priority         uint

	Mbytes      uint
	NumPrinters uint
	NumScanners uint
	NumModems   uint
	NumCDs      uint

	MemoryBlockID uint // 0 if no memory block held

	prev, next *Record
}

var nextID uint = 1

// New creates a Record with the given declared attributes. Argv is the
// program path followed by up to config.MaxArgs arguments.
func New(arrivalTime, priority, remainingCPUTime, mbytes, printers, scanners, modems, cds uint, argv []string) *Record {
	r := &Record{
		ID:               nextID,
		Argv:             argv,
		ArrivalTime:      arrivalTime,
		Priority:         priority,
		RemainingCPUTime: remainingCPUTime,
		Mbytes:           mbytes,
		NumPrinters:      printers,
		NumScanners:      scanners,
		NumModems:        modems,
		NumCDs:           cds,
	}
	nextID++
	return r
}

// ResetIDCounterForTest rewinds the package-level ID counter; it exists
// solely so tests can assert on deterministic IDs without depending on
// execution order across the test binary.
func ResetIDCounterForTest(start uint) { nextID = start }

// IsRealTime reports whether this record belongs to the privileged
// real-time priority class.
func (r *Record) IsRealTime() bool { return r.Priority == config.RealTimePriority }

// Started reports whether this record has been dispatched at least once
// (its child handle is set).
func (r *Record) Started() bool { return r.ChildHandle != 0 }

// HasMemory reports whether this record currently holds a memory block.
func (r *Record) HasMemory() bool { return r.MemoryBlockID != 0 }

// Ready reports whether the record's arrival time has been reached by
// the given clock value.
func (r *Record) Ready(clock uint) bool { return r.ArrivalTime <= clock }

// DecrementTime subtracts one from RemainingCPUTime and reports whether
// the record's CPU budget has been exhausted (time reaches zero). It
// does not itself trigger termination; the caller (Scheduler) is
// responsible for the termination cascade.
func (r *Record) DecrementTime() (expired bool) {
	if r.RemainingCPUTime == 0 {
		return true
	}
	r.RemainingCPUTime--
	return r.RemainingCPUTime == 0
}

// LowerPriority clamps priority+1 to config.LowestPriority. It must
// only be called on non-real-time records; callers are responsible for
// that check (a real-time record's priority should never change).
func (r *Record) LowerPriority() {
	if r.Priority < config.LowestPriority {
		r.Priority++
	} else {
		r.Priority = config.LowestPriority
	}
}
