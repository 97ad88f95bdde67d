package gauge

import (
	"io"
	"os"

	"github.com/jedib0t/go-pretty/table"
	"github.com/jedib0t/go-pretty/text"
	"github.com/spf13/pflag"
)

// ConsoleSink renders every dispatched result table to stdout as it
// arrives. Enabled by default; disable with --use_console=false.
type ConsoleSink struct {
	enabled *bool
	out     io.Writer
}

func NewConsoleSink() *ConsoleSink {
	return &ConsoleSink{out: os.Stdout}
}

func (s *ConsoleSink) AddFlags(fs *pflag.FlagSet) {
	s.enabled = fs.Bool("use_console", true, "Use the console sink")
}

func (s *ConsoleSink) SetOptions(*Options) error { return nil }

func (s *ConsoleSink) Enabled() bool {
	return s.enabled != nil && *s.enabled
}

func (s *ConsoleSink) Start()          {}
func (s *ConsoleSink) StartBenchmark() {}
func (s *ConsoleSink) EndBenchmark()   {}
func (s *ConsoleSink) End()            {}

func (s *ConsoleSink) BenchmarkResult(_ Benchmark, cfg *Config, results *Table) {
	w := table.NewWriter()
	w.SetOutputMirror(s.out)
	// Keep the declared column names verbatim instead of uppercasing.
	w.Style().Format.Header = text.FormatDefault

	columns := results.Columns()
	extra := configColumns(cfg, results)

	header := make(table.Row, 0, len(columns)+len(extra))
	for _, name := range columns {
		header = append(header, name)
	}
	for _, name := range extra {
		header = append(header, name)
	}
	w.AppendHeader(header)

	for row := 0; row < results.Rows(); row++ {
		line := make(table.Row, 0, len(columns)+len(extra))
		for _, name := range columns {
			value := results.Value(name, row)
			if value == nil {
				value = ""
			}
			line = append(line, value)
		}
		for _, name := range extra {
			line = append(line, cfg.Get(name))
		}
		w.AppendRow(line)
	}
	w.Render()
}

// configColumns returns the configuration option names that do not
// collide with a column the table already declares.
func configColumns(cfg *Config, results *Table) []string {
	if cfg == nil {
		return nil
	}
	names := make([]string, 0, cfg.Len())
	for _, name := range cfg.Names() {
		if !results.HasColumn(name) {
			names = append(names, name)
		}
	}
	return names
}
