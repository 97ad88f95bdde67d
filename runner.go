package gauge

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/spf13/pflag"
)

// The run loop redoes rejected measurements indefinitely; a warning is
// logged every rejectionWarnInterval consecutive rejections so a
// benchmark that never accepts is at least visible.
const rejectionWarnInterval = 1000

// Runner owns benchmark registration and execution: it resolves the
// command-line filters, fans out configuration sets, drives the per-run
// measurement loop and dispatches result tables to the registered
// sinks. Execution is strictly sequential; one benchmark, one
// configuration, one run at a time.
type Runner struct {
	registry *Registry
	sinks    []Sink
	flags    *pflag.FlagSet
	opts     *Options

	columnNames  []string
	columnValues map[string]string

	// The single currently-executing benchmark slot. Guarded by the
	// single-threaded execution invariant, not by a lock.
	current Benchmark

	out io.Writer
}

func NewRunner() *Runner {
	fs := pflag.NewFlagSet("gauge", pflag.ContinueOnError)
	fs.SortFlags = false
	r := &Runner{
		registry:     NewRegistry(),
		flags:        fs,
		columnValues: make(map[string]string),
		out:          os.Stdout,
	}
	r.opts = newOptions(fs)
	return r
}

var (
	defaultRunner     *Runner
	defaultRunnerOnce sync.Once
)

// Default returns the process-wide runner used by the package-level
// helpers. It is constructed lazily on first use so that registrations
// from init functions across packages and the eventual Run call share
// one context.
func Default() *Runner {
	defaultRunnerOnce.Do(func() {
		defaultRunner = NewRunner()
	})
	return defaultRunner
}

// Register adds a benchmark factory to the default runner.
func Register(factory Factory, testcase, benchmark string) uint32 {
	return Default().Register(factory, testcase, benchmark)
}

// AddSink adds a sink to the default runner.
func AddSink(s Sink) {
	Default().AddSink(s)
}

// AddDefaultSinks registers the console, CSV, JSON and libsql sinks on
// the default runner.
func AddDefaultSinks() {
	r := Default()
	r.AddSink(NewConsoleSink())
	r.AddSink(NewCSVSink())
	r.AddSink(NewJSONSink())
	r.AddSink(NewLibsqlSink())
}

// Flags returns the default runner's flag set, for benchmark authors
// who register their own options during init.
func Flags() *pflag.FlagSet {
	return Default().Flags()
}

// Run executes the default runner with the given arguments.
func Run(args []string) error {
	return Default().Run(args)
}

// Main runs the default runner with the process arguments and exits
// with a failure status on any error.
func Main() {
	if err := Default().Run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Register adds a benchmark factory under the (testcase, benchmark)
// name pair and returns its process-unique id.
func (r *Runner) Register(factory Factory, testcase, benchmark string) uint32 {
	return r.registry.Register(factory, testcase, benchmark)
}

// AddSink appends a sink and lets it register its flags. Sinks must be
// added before Run parses the command line.
func (r *Runner) AddSink(s Sink) {
	s.AddFlags(r.flags)
	r.sinks = append(r.sinks, s)
}

// Flags returns the runner's flag set.
func (r *Runner) Flags() *pflag.FlagSet {
	return r.flags
}

// Registry exposes the runner's benchmark registry.
func (r *Runner) Registry() *Registry {
	return r.registry
}

// SetOutput redirects the listing and usage output, which defaults to
// stdout.
func (r *Runner) SetOutput(w io.Writer) {
	r.out = w
}

// CurrentBenchmark returns the benchmark occupying the execution slot,
// or nil outside a run window.
func (r *Runner) CurrentBenchmark() Benchmark {
	return r.current
}

// Run parses args and executes the selected benchmarks. Any option or
// filter failure is returned before a single benchmark has run.
func (r *Runner) Run(args []string) error {
	if err := r.flags.Parse(args); err != nil {
		return err
	}

	if r.opts.Help {
		fmt.Fprint(r.out, r.flags.FlagUsages())
		return nil
	}
	if r.opts.PrintTests {
		fmt.Fprintln(r.out, strings.Join(r.registry.Testcases(), " "))
		return nil
	}
	if r.opts.PrintBenchmarks {
		for _, name := range r.registry.Benchmarks() {
			fmt.Fprintln(r.out, name)
		}
		return nil
	}

	for _, arg := range r.opts.AddColumns {
		if err := r.addColumn(arg); err != nil {
			return err
		}
	}
	if r.opts.AddSysinfo {
		if err := r.addSysinfoColumns(); err != nil {
			return err
		}
	}

	if !r.opts.DryRun {
		warmup(r.opts.WarmupTime)
	}

	for _, sink := range r.sinks {
		if err := sink.SetOptions(r.opts); err != nil {
			return err
		}
	}
	for _, sink := range r.enabledSinks() {
		sink.Start()
	}

	if len(r.opts.Filters) > 0 {
		if err := r.runFilters(r.opts.Filters); err != nil {
			return err
		}
	} else {
		r.runIDs(r.registry.ids())
	}

	for _, sink := range r.enabledSinks() {
		sink.End()
	}
	return nil
}

func (r *Runner) addColumn(arg string) error {
	name, value, err := parseAddColumn(arg)
	if err != nil {
		return err
	}
	return r.setColumn(name, value)
}

func (r *Runner) setColumn(name, value string) error {
	if _, ok := r.columnValues[name]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateColumn, name)
	}
	r.columnNames = append(r.columnNames, name)
	r.columnValues[name] = value
	return nil
}

// warmup busy-waits until the interval elapses. The loop keeps one CPU
// core at 100% on purpose: sleeping instead would let power management
// hold the clock down for the first measurements.
func warmup(seconds float64) {
	if seconds <= 0 {
		return
	}
	Logger.Infof("warming up CPU for %.1fs", seconds)
	deadline := time.Now().Add(time.Duration(seconds * float64(time.Second)))
	for time.Now().Before(deadline) {
	}
}

// runFilters resolves and runs each filter independently; overlapping
// filters run the same benchmark more than once, and selection order is
// the order the filters were supplied.
func (r *Runner) runFilters(filters []string) error {
	for _, filter := range filters {
		ids, err := r.registry.Resolve(filter)
		if err != nil {
			return err
		}
		r.runIDs(ids)
	}
	return nil
}

func (r *Runner) runIDs(ids []uint32) {
	for _, id := range ids {
		benchmark := r.registry.factory(id)()
		r.runConfigurations(benchmark)
	}
}

// runConfigurations delivers the parsed options to the benchmark so it
// can build its configuration sets, then runs it once per declared
// configuration, or exactly once when it declares none.
func (r *Runner) runConfigurations(b Benchmark) {
	b.SetOptions(r.opts)

	configs := b.Configurations()
	if len(configs) == 0 {
		r.runOne(b, nil)
		return
	}
	for _, cfg := range configs {
		r.runOne(b, cfg)
	}
}

// runOne executes a single (benchmark, configuration) measurement
// window and dispatches its results table.
func (r *Runner) runOne(b Benchmark, cfg *Config) {
	if r.opts.DryRun {
		return
	}

	if r.current != nil {
		panic(fmt.Sprintf("gauge: runner is not reentrant, %v.%v is already executing",
			r.current.TestcaseName(), r.current.BenchmarkName()))
	}
	r.current = b
	// The slot must be released on every exit path, including a panic
	// inside the benchmark body, or no later benchmark could run.
	defer func() { r.current = nil }()

	if b.Skip(cfg) {
		return
	}

	b.Init()

	if b.NeedsWarmupIteration() {
		// One full cycle whose measurement is discarded.
		b.Setup(cfg)
		b.TestBody(cfg)
		b.TearDown(cfg)
	}

	runs := b.Runs()
	if r.opts.RunsSet() {
		runs = r.opts.Runs
	}
	if runs == 0 {
		panic(fmt.Sprintf("gauge: benchmark %v.%v has zero runs",
			b.TestcaseName(), b.BenchmarkName()))
	}

	results := NewTable()
	for _, name := range r.columnNames {
		results.AddConstColumn(name, r.columnValues[name])
	}
	results.AddConstColumn("unit", b.UnitText())
	results.AddConstColumn("benchmark", b.BenchmarkName())
	results.AddConstColumn("testcase", b.TestcaseName())
	results.AddColumn("iterations")
	results.AddColumn("run_number")
	b.PrepareTable(cfg, results)

	for _, sink := range r.enabledSinks() {
		sink.StartBenchmark()
	}

	rejected := 0
	for run := uint32(0); run < runs; {
		b.Setup(cfg)
		b.TestBody(cfg)
		b.TearDown(cfg)

		if !b.AcceptMeasurement() {
			rejected++
			if rejected%rejectionWarnInterval == 0 {
				Logger.Warnf("benchmark %v.%v rejected %v consecutive measurements",
					b.TestcaseName(), b.BenchmarkName(), rejected)
			}
			continue
		}
		rejected = 0

		results.AddRow()
		results.SetValue("iterations", b.IterationCount())
		results.SetValue("run_number", run)
		b.StoreRun(cfg, results)
		run++
	}

	for _, name := range r.opts.ResultFilter {
		results.DropColumn(name)
	}

	for _, sink := range r.enabledSinks() {
		sink.EndBenchmark()
	}
	for _, sink := range r.enabledSinks() {
		sink.BenchmarkResult(b, cfg, results)
	}
}

func (r *Runner) enabledSinks() []Sink {
	enabled := make([]Sink, 0, len(r.sinks))
	for _, sink := range r.sinks {
		if sink.Enabled() {
			enabled = append(enabled, sink)
		}
	}
	return enabled
}
