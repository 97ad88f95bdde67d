package gauge

import "github.com/spf13/pflag"

// Sink receives run lifecycle notifications and dispatched result
// tables.
//
// A sink registers its own flags (typically a use_<name> toggle plus
// output options) in AddFlags before the command line is parsed.
// SetOptions is called on every registered sink after parsing,
// regardless of enablement, so a disabled sink can still observe the
// configuration; the remaining lifecycle methods are called only on
// enabled sinks, in registration order.
type Sink interface {
	AddFlags(fs *pflag.FlagSet)
	SetOptions(opts *Options) error
	Enabled() bool

	// Start is called once before the first benchmark, End once after
	// the last.
	Start()
	End()

	// StartBenchmark and EndBenchmark bracket one measurement window;
	// BenchmarkResult delivers its table together with the
	// configuration that produced it (nil for unconfigured runs).
	StartBenchmark()
	EndBenchmark()
	BenchmarkResult(b Benchmark, cfg *Config, results *Table)
}
