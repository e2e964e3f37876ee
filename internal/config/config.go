// Package config collects the fixed parameters of the host dispatcher.
//
// Every value here is a build-time constant per the system specification:
// there is no flag, environment variable, or file that overrides them at
// runtime. The Config struct exists only so the rest of the program can
// thread one value around instead of referring to package-level constants
// directly, which keeps the door open for a future build that wires in
// per-host tuning without touching call sites.
package config

// ResourceKind identifies one of the four peripheral device types the
// dispatcher can allocate.
type ResourceKind int

const (
	Printer ResourceKind = iota
	Scanner
	Modem
	CD
)

func (k ResourceKind) String() string {
	switch k {
	case Printer:
		return "Printer"
	case Scanner:
		return "Scanner"
	case Modem:
		return "Modem"
	case CD:
		return "CD"
	default:
		return "Unknown"
	}
}

const (
	// AvailableMemory is the total memory (MB) the arena manages.
	AvailableMemory = 1024

	// ReservedMemory is the contiguous free envelope (MB) that must
	// remain findable for future real-time admissions.
	ReservedMemory = 64

	// RealTimeMaxMbytes clamps a real-time record's declared memory at
	// load time.
	RealTimeMaxMbytes = 64

	// AvailablePrinters, AvailableScanners, AvailableModems and
	// AvailableCDs are the fixed per-kind unit counts of the resource
	// pool.
	AvailablePrinters = 2
	AvailableScanners = 1
	AvailableModems   = 1
	AvailableCDs      = 2

	// LowestPriority is the largest (least urgent) priority class a
	// user-job record can be assigned, and the number of feedback
	// queues (feedback_queue[i] holds priority i+1).
	LowestPriority = 3

	// NumFeedbackQueues is LowestPriority by definition.
	NumFeedbackQueues = LowestPriority

	// RealTimePriority is the privileged priority class: real-time
	// records bypass user-job admission and are never preempted.
	RealTimePriority = 0

	// MaxArgs is the number of arguments a spawned child's argv may
	// carry after the program path.
	MaxArgs = 2

	// WorkerBinary is the program exec'd for every process record.
	WorkerBinary = "./sigtrap"
)

// Config bundles the fixed parameters above for components that would
// rather take a value than reach for package constants.
type Config struct {
	AvailableMemory   uint
	ReservedMemory    uint
	AvailablePrinters uint
	AvailableScanners uint
	AvailableModems   uint
	AvailableCDs      uint
	LowestPriority    uint
	WorkerBinary      string
}

// Default returns the fixed configuration described in the system
// specification.
func Default() Config {
	return Config{
		AvailableMemory:   AvailableMemory,
		ReservedMemory:    ReservedMemory,
		AvailablePrinters: AvailablePrinters,
		AvailableScanners: AvailableScanners,
		AvailableModems:   AvailableModems,
		AvailableCDs:      AvailableCDs,
		LowestPriority:    LowestPriority,
		WorkerBinary:      WorkerBinary,
	}
}

// UnitsFor returns the configured unit count for the given resource kind.
func (c Config) UnitsFor(kind ResourceKind) uint {
	switch kind {
	case Printer:
		return c.AvailablePrinters
	case Scanner:
		return c.AvailableScanners
	case Modem:
		return c.AvailableModems
	case CD:
		return c.AvailableCDs
	default:
		return 0
	}
}
