package gauge

import "time"

// Benchmark is one runnable unit, identified by its test-case and
// benchmark names. The runner constructs a fresh instance through the
// registered Factory every time a filter selects the benchmark, fans
// out over the declared configurations and drives the measurement loop.
//
// The active configuration is threaded explicitly through every call of
// a run window; it is nil when the benchmark declares no
// configurations. Authors usually embed DefaultBenchmark or
// TimeBenchmark and override only what they need.
type Benchmark interface {
	TestcaseName() string
	BenchmarkName() string

	// UnitText names the unit of the benchmark's measurements, e.g.
	// "seconds". It ends up in the "unit" column of every result table.
	UnitText() string

	// SetOptions delivers the parsed command-line options before the
	// configuration fan-out, so the benchmark can build its
	// configuration sets from author-registered flags.
	SetOptions(opts *Options)

	// Configurations returns the declared parameter cross-product. An
	// empty result means "run once, unconfigured".
	Configurations() []*Config

	// Skip reports that this run window should produce no table and no
	// sink notification.
	Skip(cfg *Config) bool

	// Init performs one-time setup, distinct from the per-run Setup.
	Init()

	// NeedsWarmupIteration requests one full setup/body/tear-down cycle
	// whose measurement is discarded before the counted runs start.
	NeedsWarmupIteration() bool

	Setup(cfg *Config)
	TestBody(cfg *Config)
	TearDown(cfg *Config)

	// AcceptMeasurement reports whether the measurement of the last
	// cycle should be stored. Rejected runs are redone until the
	// declared number of accepted runs exists.
	AcceptMeasurement() bool

	// IterationCount is the number of iterations the last TestBody
	// performed; it fills the "iterations" column.
	IterationCount() uint32

	// Runs is the number of accepted runs to collect, unless --runs
	// overrides it.
	Runs() uint32

	// PrepareTable declares any additional per-row columns before the
	// run loop starts.
	PrepareTable(cfg *Config, results *Table)

	// StoreRun writes the benchmark's own values into the most recently
	// appended row.
	StoreRun(cfg *Config, results *Table)
}

// Factory produces a fresh Benchmark instance for every selection.
type Factory func() Benchmark

// DefaultBenchmark provides identity fields and no-op defaults for the
// optional parts of the Benchmark interface. TestBody is left to the
// author.
type DefaultBenchmark struct {
	Testcase string
	Name     string
	Unit     string

	configs []*Config
}

// AddConfiguration appends one configuration set; typically called from
// SetOptions while expanding a parameter cross-product.
func (d *DefaultBenchmark) AddConfiguration(cfg *Config) {
	d.configs = append(d.configs, cfg)
}

func (d *DefaultBenchmark) TestcaseName() string         { return d.Testcase }
func (d *DefaultBenchmark) BenchmarkName() string        { return d.Name }
func (d *DefaultBenchmark) UnitText() string             { return d.Unit }
func (d *DefaultBenchmark) SetOptions(*Options)          {}
func (d *DefaultBenchmark) Configurations() []*Config    { return d.configs }
func (d *DefaultBenchmark) Skip(*Config) bool            { return false }
func (d *DefaultBenchmark) Init()                        {}
func (d *DefaultBenchmark) NeedsWarmupIteration() bool   { return false }
func (d *DefaultBenchmark) Setup(*Config)                {}
func (d *DefaultBenchmark) TearDown(*Config)             {}
func (d *DefaultBenchmark) AcceptMeasurement() bool      { return true }
func (d *DefaultBenchmark) IterationCount() uint32       { return 1 }
func (d *DefaultBenchmark) Runs() uint32                 { return 1 }
func (d *DefaultBenchmark) PrepareTable(*Config, *Table) {}
func (d *DefaultBenchmark) StoreRun(*Config, *Table)     {}

// TimeBenchmark measures the wall-clock time of a block of code and
// stores it in a per-row "time" column, in seconds. The author's
// TestBody calls Measure around the code under test.
type TimeBenchmark struct {
	DefaultBenchmark

	iterations uint32
	elapsed    time.Duration
}

// Measure times fn and records it as iterations iterations of the
// benchmarked operation.
func (t *TimeBenchmark) Measure(iterations uint32, fn func()) {
	start := time.Now()
	fn()
	t.elapsed = time.Since(start)
	t.iterations = iterations
}

// Elapsed returns the duration of the last measured block.
func (t *TimeBenchmark) Elapsed() time.Duration {
	return t.elapsed
}

func (t *TimeBenchmark) IterationCount() uint32 {
	return t.iterations
}

func (t *TimeBenchmark) UnitText() string {
	return "seconds"
}

func (t *TimeBenchmark) PrepareTable(_ *Config, results *Table) {
	results.AddColumn("time")
}

func (t *TimeBenchmark) StoreRun(_ *Config, results *Table) {
	results.SetValue("time", t.elapsed.Seconds())
}
