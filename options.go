package gauge

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
)

// Failures detected during option and filter processing. All of them
// surface before any benchmark executes; there is no partial-run
// recovery.
var (
	ErrMalformedFilter    = errors.New("malformed gauge_filter (example MyTest.*)")
	ErrTestcaseNotFound   = errors.New("testcase not found")
	ErrBenchmarkNotFound  = errors.New("benchmark not found")
	ErrMalformedAddColumn = errors.New("malformed add_column (example cpu=i7)")
	ErrDuplicateColumn    = errors.New("duplicate add_column")
)

// Options holds the parsed command-line options of a benchmark run.
// Sinks and benchmark authors reach their own registered flags through
// Flags().
type Options struct {
	Help            bool
	PrintTests      bool
	PrintBenchmarks bool
	DryRun          bool
	AddSysinfo      bool
	Filters         []string
	ResultFilter    []string
	Runs            uint32
	WarmupTime      float64
	AddColumns      []string

	flags *pflag.FlagSet
}

func newOptions(fs *pflag.FlagSet) *Options {
	o := &Options{flags: fs}
	fs.BoolVar(&o.Help, "help", false,
		"Print usage and exit without running")
	fs.BoolVar(&o.PrintTests, "print_tests", false,
		"Print the registered test cases")
	fs.BoolVar(&o.PrintBenchmarks, "print_benchmarks", false,
		"Print the registered testcase.benchmark pairs")
	fs.StringSliceVar(&o.Filters, "gauge_filter", nil,
		"Filter which test cases or benchmarks to run based on their name, "+
			"e.g. --gauge_filter=MyTest.* or --gauge_filter=*.MyBenchmark. "+
			"Multiple filters can be specified")
	fs.StringSliceVar(&o.ResultFilter, "result_filter", nil,
		"Result columns to drop from every table before dispatch, "+
			"e.g. --result_filter=time,throughput")
	fs.Uint32Var(&o.Runs, "runs", 0,
		"Override the number of runs declared by each benchmark, e.g. --runs=50")
	fs.Float64Var(&o.WarmupTime, "warmup_time", 2.0,
		"CPU warm-up time in seconds before the first benchmark, e.g. --warmup_time=5.0")
	fs.StringArrayVar(&o.AddColumns, "add_column", nil,
		"Add a constant column to every result table, e.g. --add_column cpu=i7")
	fs.BoolVar(&o.DryRun, "dry_run", false,
		"Resolve and configure benchmarks without running them")
	fs.BoolVar(&o.AddSysinfo, "add_sysinfo", false,
		"Add host information columns to every result table")
	return o
}

// Flags returns the flag set the options were parsed from, so sinks and
// benchmarks can look up the flags they registered before the parse.
func (o *Options) Flags() *pflag.FlagSet {
	return o.flags
}

// RunsSet reports whether --runs was supplied on the command line. The
// override takes precedence over the run count a benchmark declares.
func (o *Options) RunsSet() bool {
	return o.flags.Changed("runs")
}

// parseAddColumn splits one --add_column argument into its name and
// value parts.
func parseAddColumn(arg string) (string, string, error) {
	name, value, ok := strings.Cut(arg, "=")
	if !ok || name == "" || value == "" {
		return "", "", fmt.Errorf("%w: %q", ErrMalformedAddColumn, arg)
	}
	return name, value, nil
}
