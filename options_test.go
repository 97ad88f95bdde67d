package gauge

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseAddColumn(t *testing.T) {
	name, value, err := parseAddColumn("cpu=i7")
	require.NoError(t, err)
	require.Equal(t, "cpu", name)
	require.Equal(t, "i7", value)

	name, value, err = parseAddColumn("date=Monday 1st June 2021")
	require.NoError(t, err)
	require.Equal(t, "date", name)
	require.Equal(t, "Monday 1st June 2021", value)

	// Everything after the first separator belongs to the value.
	_, value, err = parseAddColumn("note=a=b")
	require.NoError(t, err)
	require.Equal(t, "a=b", value)
}

func TestParseAddColumnMalformed(t *testing.T) {
	for _, arg := range []string{"cpu", "", "=i7", "cpu=", "="} {
		_, _, err := parseAddColumn(arg)
		require.ErrorIs(t, err, ErrMalformedAddColumn, "argument %q", arg)
	}
}

func TestOptionDefaults(t *testing.T) {
	r := NewRunner()
	require.NoError(t, r.Flags().Parse([]string{}))

	opts := r.opts
	require.Equal(t, 2.0, opts.WarmupTime)
	require.False(t, opts.DryRun)
	require.False(t, opts.RunsSet())
	require.Empty(t, opts.Filters)
	require.Empty(t, opts.ResultFilter)
}

func TestOptionParsing(t *testing.T) {
	r := NewRunner()
	require.NoError(t, r.Flags().Parse([]string{
		"--gauge_filter=Sort.*",
		"--gauge_filter=*.quick",
		"--result_filter=time,throughput",
		"--runs=50",
		"--warmup_time=5.0",
		"--dry_run",
	}))

	opts := r.opts
	require.Equal(t, []string{"Sort.*", "*.quick"}, opts.Filters)
	require.Equal(t, []string{"time", "throughput"}, opts.ResultFilter)
	require.True(t, opts.RunsSet())
	require.Equal(t, uint32(50), opts.Runs)
	require.Equal(t, 5.0, opts.WarmupTime)
	require.True(t, opts.DryRun)
}

func TestUnknownFlagFails(t *testing.T) {
	r := NewRunner()
	require.Error(t, r.Flags().Parse([]string{"--no_such_option"}))
}
