package gauge

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestConsoleSinkRendersTable(t *testing.T) {
	var out bytes.Buffer

	sink := NewConsoleSink()
	sink.out = &out

	r := NewRunner()
	r.AddSink(sink)

	b := newStoringStub("Sort", "quick", 0.25)
	cfg := NewConfig()
	cfg.Set("size", 1000)
	b.AddConfiguration(cfg)
	r.Register(func() Benchmark { return b }, "Sort", "quick")

	require.NoError(t, r.Run(runArgs()))

	rendered := out.String()
	require.Contains(t, rendered, "benchmark")
	require.Contains(t, rendered, "run_number")
	require.Contains(t, rendered, "quick")
	require.Contains(t, rendered, "0.25")
	// Configuration entries are appended as extra columns.
	require.Contains(t, rendered, "size")
	require.Contains(t, rendered, "1000")
}

func TestConsoleSinkEnabledByDefault(t *testing.T) {
	sink := NewConsoleSink()
	r := NewRunner()
	r.AddSink(sink)

	require.NoError(t, r.Flags().Parse([]string{}))
	require.True(t, sink.Enabled())

	disabled := NewConsoleSink()
	r2 := NewRunner()
	r2.AddSink(disabled)
	require.NoError(t, r2.Flags().Parse([]string{"--use_console=false"}))
	require.False(t, disabled.Enabled())
}
