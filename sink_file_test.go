package gauge

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

type storingStub struct {
	stubBenchmark
	value float64
}

func newStoringStub(testcase, name string, value float64) *storingStub {
	b := &storingStub{value: value}
	b.stubBenchmark = *newStub(testcase, name)
	return b
}

func (b *storingStub) PrepareTable(_ *Config, results *Table) {
	results.AddColumn("time")
}

func (b *storingStub) StoreRun(_ *Config, results *Table) {
	results.SetValue("time", b.value)
}

func TestCSVSinkWritesUnionOfColumns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")

	r := NewRunner()
	r.AddSink(NewCSVSink())

	plain := newStub("Sort", "quick")
	plain.runs = 1
	configured := newStoringStub("Net", "encode", 1.5)
	configured.runs = 2
	cfg := NewConfig()
	cfg.Set("symbols", 16)
	configured.AddConfiguration(cfg)

	r.Register(func() Benchmark { return plain }, "Sort", "quick")
	r.Register(func() Benchmark { return configured }, "Net", "encode")

	require.NoError(t, r.Run(runArgs("--use_csv", "--csv_file="+path)))

	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	reader := csv.NewReader(file)
	lines, err := reader.ReadAll()
	require.NoError(t, err)

	require.Equal(t,
		[]string{"unit", "benchmark", "testcase", "iterations", "run_number", "time", "symbols"},
		lines[0])
	require.Len(t, lines, 4)

	// The unconfigured benchmark leaves the time and symbols cells empty.
	require.Equal(t, []string{"ticks", "quick", "Sort", "10", "0", "", ""}, lines[1])
	// The configured one carries its measurement and configuration.
	require.Equal(t, []string{"ticks", "encode", "Net", "10", "0", "1.5", "16"}, lines[2])
	require.Equal(t, []string{"ticks", "encode", "Net", "10", "1", "1.5", "16"}, lines[3])
}

func TestJSONSinkWritesOneObjectPerTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")

	r := NewRunner()
	r.AddSink(NewJSONSink())

	b := newStoringStub("Net", "encode", 2.5)
	b.runs = 2
	for _, symbols := range []int{16, 32} {
		cfg := NewConfig()
		cfg.Set("symbols", symbols)
		b.AddConfiguration(cfg)
	}
	r.Register(func() Benchmark { return b }, "Net", "encode")

	require.NoError(t, r.Run(runArgs("--use_json", "--json_file="+path)))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var out []map[string]any
	require.NoError(t, json.Unmarshal(data, &out))
	require.Len(t, out, 2)

	first := out[0]
	require.Equal(t, "encode", first["benchmark"])
	require.Equal(t, "Net", first["testcase"])
	require.Equal(t, float64(16), first["symbols"])
	require.Equal(t, []any{float64(2.5), float64(2.5)}, first["time"])
	require.Equal(t, []any{float64(0), float64(1)}, first["run_number"])

	require.Equal(t, float64(32), out[1]["symbols"])
}

func TestFileSinksDisabledByDefault(t *testing.T) {
	csvSink := NewCSVSink()
	jsonSink := NewJSONSink()

	r := NewRunner()
	r.AddSink(csvSink)
	r.AddSink(jsonSink)
	r.Register(func() Benchmark { return newStub("Sort", "quick") }, "Sort", "quick")

	require.NoError(t, r.Run(runArgs()))

	require.False(t, csvSink.Enabled())
	require.False(t, jsonSink.Enabled())
	require.Empty(t, csvSink.records)
	require.Empty(t, jsonSink.records)
}
