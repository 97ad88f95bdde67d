package gauge

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/pflag"
)

// record is one dispatched result table together with the configuration
// that produced it. File sinks accumulate records during the run and
// flush them when End is called.
type record struct {
	cfg     *Config
	results *Table
}

// value looks a name up in the table first and falls back to the
// configuration, mirroring how configuration entries extend the table
// at the sink boundary.
func (r record) value(name string, row int) any {
	if r.results.HasColumn(name) {
		return r.results.Value(name, row)
	}
	if r.cfg != nil && r.cfg.Has(name) {
		return r.cfg.Get(name)
	}
	return nil
}

// fileSink carries the plumbing shared by the file-based sinks: a
// use_<name> toggle, a <name>_file output path and the accumulated
// records. Disabled by default.
type fileSink struct {
	name            string
	defaultFilename string
	enabled         *bool
	filename        *string
	records         []record
}

func newFileSink(name, defaultFilename string) fileSink {
	return fileSink{name: name, defaultFilename: defaultFilename}
}

func (s *fileSink) AddFlags(fs *pflag.FlagSet) {
	s.enabled = fs.Bool("use_"+s.name, false,
		fmt.Sprintf("Use the %v sink", s.name))
	s.filename = fs.String(s.name+"_file", s.defaultFilename,
		fmt.Sprintf("Set the output filename of the %v sink", s.name))
}

func (s *fileSink) SetOptions(*Options) error { return nil }

func (s *fileSink) Enabled() bool {
	return s.enabled != nil && *s.enabled
}

func (s *fileSink) Start()          {}
func (s *fileSink) StartBenchmark() {}
func (s *fileSink) EndBenchmark()   {}

func (s *fileSink) BenchmarkResult(_ Benchmark, cfg *Config, results *Table) {
	s.records = append(s.records, record{cfg: cfg, results: results.Clone()})
}

// unionColumns merges the columns of all accumulated records, including
// configuration names, in first-seen order.
func (s *fileSink) unionColumns() []string {
	seen := make(map[string]bool)
	union := make([]string, 0)
	add := func(name string) {
		if !seen[name] {
			seen[name] = true
			union = append(union, name)
		}
	}
	for _, rec := range s.records {
		for _, name := range rec.results.Columns() {
			add(name)
		}
		for _, name := range configColumns(rec.cfg, rec.results) {
			add(name)
		}
	}
	return union
}

// CSVSink writes all dispatched result tables into one delimited file
// when the run ends. Tables with differing columns are merged into the
// union of all columns; missing values are left empty.
type CSVSink struct {
	fileSink
}

func NewCSVSink() *CSVSink {
	return &CSVSink{fileSink: newFileSink("csv", "out.csv")}
}

func (s *CSVSink) End() {
	if err := s.write(); err != nil {
		Logger.Errorf("csv sink: %v", err)
	}
}

func (s *CSVSink) write() error {
	file, err := os.Create(*s.filename)
	if err != nil {
		return err
	}
	defer file.Close()

	w := csv.NewWriter(file)
	header := s.unionColumns()
	if err := w.Write(header); err != nil {
		return err
	}
	for _, rec := range s.records {
		for row := 0; row < rec.results.Rows(); row++ {
			line := make([]string, 0, len(header))
			for _, name := range header {
				value := rec.value(name, row)
				if value == nil {
					line = append(line, "")
				} else {
					line = append(line, fmt.Sprintf("%v", value))
				}
			}
			if err := w.Write(line); err != nil {
				return err
			}
		}
	}
	w.Flush()
	return w.Error()
}

// JSONSink writes one JSON array with an object per dispatched table:
// constant columns and configuration entries as scalars, per-row
// columns as arrays in run order.
type JSONSink struct {
	fileSink
}

func NewJSONSink() *JSONSink {
	return &JSONSink{fileSink: newFileSink("json", "out.json")}
}

func (s *JSONSink) End() {
	if err := s.write(); err != nil {
		Logger.Errorf("json sink: %v", err)
	}
}

func (s *JSONSink) write() error {
	out := make([]map[string]any, 0, len(s.records))
	for _, rec := range s.records {
		obj := make(map[string]any)
		for _, name := range rec.results.Columns() {
			if rec.results.IsConst(name) {
				obj[name] = rec.results.Value(name, 0)
				continue
			}
			values := make([]any, rec.results.Rows())
			for row := range values {
				values[row] = rec.results.Value(name, row)
			}
			obj[name] = values
		}
		for _, name := range configColumns(rec.cfg, rec.results) {
			obj[name] = rec.cfg.Get(name)
		}
		out = append(out, obj)
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(*s.filename, data, 0o644)
}
