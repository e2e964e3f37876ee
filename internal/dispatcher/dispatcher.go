// Package dispatcher wires together every component of the host
// dispatcher — memory arena, resource pool, admission pipeline,
// scheduler, and child process adapter — into the single explicit
// context object the rest of the system is built around, replacing the
// original program's process-wide C globals.
package dispatcher

import (
	"context"
	"io"
	"os"

	"hostd/internal/admission"
	"hostd/internal/childproc"
	"hostd/internal/config"
	"hostd/internal/display"
	"hostd/internal/loader"
	"hostd/internal/logging"
	"hostd/internal/memory"
	"hostd/internal/process"
	"hostd/internal/resource"
	"hostd/internal/scheduler"
)

// Dispatcher owns every component and drives the run loop. It carries
// no mutex: the tick loop never interleaves, and the only external
// concurrency is the spawned children themselves, which are inert from
// the dispatcher's point of view.
type Dispatcher struct {
	cfg config.Config
	log *logging.Logger

	arena *memory.Arena
	pool  *resource.Pool
	sched *scheduler.Scheduler

	out     io.Writer
	verbose bool
	pacer   scheduler.Pacer
	adapter childproc.Adapter
}

// Option configures a Dispatcher at construction time.
type Option func(*Dispatcher)

// WithOutput overrides where status output is written (default os.Stdout).
func WithOutput(w io.Writer) Option {
	return func(d *Dispatcher) { d.out = w }
}

// WithVerbose enables the memory/resource debug dumps after every tick.
func WithVerbose(verbose bool) Option {
	return func(d *Dispatcher) { d.verbose = verbose }
}

// WithPacer overrides the scheduler's inter-tick pacing (default: one
// real second). Tests pass scheduler.NoPacer{}.
func WithPacer(p scheduler.Pacer) Option {
	return func(d *Dispatcher) { d.pacer = p }
}

// WithAdapter overrides the child process adapter (default: a real
// os/exec-backed OSAdapter). Tests pass a childproc.FakeAdapter.
func WithAdapter(a childproc.Adapter) Option {
	return func(d *Dispatcher) { d.adapter = a }
}

// New builds a Dispatcher from an input record source, ready to Run.
func New(cfg config.Config, log *logging.Logger, records []*process.Record, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		cfg:     cfg,
		log:     log,
		out:     os.Stdout,
		pacer:   scheduler.RealPacer{},
		adapter: childproc.NewOSAdapter(),
	}
	for _, opt := range opts {
		opt(d)
	}

	d.arena = memory.NewArena(cfg.AvailableMemory)
	d.pool = resource.NewPool(cfg)
	acquirer := admission.NewAcquirer(d.arena, d.pool)
	pipeline := admission.NewPipeline(cfg, d.pool, acquirer)

	input := process.NewQueue()
	for _, r := range records {
		input.Enqueue(r)
	}

	d.sched = scheduler.New(pipeline, acquirer, d.adapter, log, d.pacer, input)
	return d
}

// NewFromFile reads and parses the input file at path, then builds a
// Dispatcher over it.
func NewFromFile(cfg config.Config, log *logging.Logger, path string, opts ...Option) (*Dispatcher, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &OpError{Op: "open input file", Code: ErrCodeInputUnreadable, Inner: err}
	}
	defer f.Close()

	records := loader.Load(f, log)
	return New(cfg, log, records, opts...), nil
}

// Run prints the help banner, then drives the scheduler tick by tick
// until it has nothing left to do, printing the status table (and, if
// verbose, the memory/resource dumps) after every tick. It always
// drains any remaining process on exit via Close.
func (d *Dispatcher) Run(ctx context.Context) {
	display.PrintHelp(d.out)
	defer d.Close()

	for !d.sched.Done() {
		select {
		case <-ctx.Done():
			return
		default:
		}
		d.sched.Tick(ctx)
		d.printStatus()
	}
	d.printStatus()
	display.PrintFinished(d.out, d.sched.Clock())
}

func (d *Dispatcher) printStatus() {
	display.PrintStatus(d.out, d.sched.Snapshot())
	if d.verbose {
		display.PrintMemory(d.out, d.arena)
		display.PrintResources(d.out, d.pool)
	}
}

// Close drains and terminates anything left in the scheduler's queues.
// Safe to call more than once.
func (d *Dispatcher) Close() {
	d.sched.Close()
}
