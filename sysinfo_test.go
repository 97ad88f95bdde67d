package gauge

import (
	"io"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHostStat(t *testing.T) {
	info := HostStat()
	require.Equal(t, runtime.GOARCH, info.Arch)
	require.GreaterOrEqual(t, info.CPUCount, 0)
	require.GreaterOrEqual(t, info.RAM, 0.0)
}

func TestAddSysinfoColumns(t *testing.T) {
	r, sink := newTestRunner()
	r.Register(func() Benchmark { return newStub("Sort", "quick") }, "Sort", "quick")

	require.NoError(t, r.Run(runArgs("--add_sysinfo")))

	results := sink.tables[0]
	for _, name := range []string{"arch", "hostname", "platform", "cpu_count", "cpu_freq", "ram_gb"} {
		require.True(t, results.HasColumn(name), "column %v", name)
	}
	require.Equal(t, runtime.GOARCH, results.Value("arch", 0))
}

func TestAddSysinfoConflictsWithAddColumn(t *testing.T) {
	r := NewRunner()
	r.SetOutput(io.Discard)
	r.Register(func() Benchmark { return newStub("Sort", "quick") }, "Sort", "quick")

	err := r.Run(runArgs("--add_column", "hostname=ci-box", "--add_sysinfo"))
	require.ErrorIs(t, err, ErrDuplicateColumn)
}
