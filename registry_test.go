package gauge

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func stubFactory(testcase, name string) Factory {
	return func() Benchmark { return newStub(testcase, name) }
}

func TestRegisterAllocatesSequentialIDs(t *testing.T) {
	r := NewRegistry()
	first := r.Register(stubFactory("Sort", "quick"), "Sort", "quick")
	second := r.Register(stubFactory("Sort", "merge"), "Sort", "merge")
	third := r.Register(stubFactory("Search", "binary"), "Search", "binary")

	require.Equal(t, uint32(1), first)
	require.Equal(t, uint32(2), second)
	require.Equal(t, uint32(3), third)
}

func TestRegisteredFactoryMatchesNames(t *testing.T) {
	r := NewRegistry()
	id := r.Register(stubFactory("Sort", "quick"), "Sort", "quick")

	b := r.factory(id)()
	require.Equal(t, "Sort", b.TestcaseName())
	require.Equal(t, "quick", b.BenchmarkName())
}

func TestTestcasesAreSorted(t *testing.T) {
	r := NewRegistry()
	r.Register(stubFactory("Zlib", "deflate"), "Zlib", "deflate")
	r.Register(stubFactory("Aes", "encrypt"), "Aes", "encrypt")
	r.Register(stubFactory("Sort", "quick"), "Sort", "quick")

	require.Equal(t, []string{"Aes", "Sort", "Zlib"}, r.Testcases())
}

func TestBenchmarksAreSortedByTestcaseThenName(t *testing.T) {
	r := NewRegistry()
	r.Register(stubFactory("Sort", "quick"), "Sort", "quick")
	r.Register(stubFactory("Sort", "merge"), "Sort", "merge")
	r.Register(stubFactory("Search", "linear"), "Search", "linear")

	require.Equal(t,
		[]string{"Search.linear", "Sort.merge", "Sort.quick"},
		r.Benchmarks())
}

func TestDuplicateRegistrationLastWins(t *testing.T) {
	r := NewRegistry()
	first := r.Register(stubFactory("Sort", "quick"), "Sort", "quick")
	second := r.Register(stubFactory("Sort", "quick"), "Sort", "quick")

	ids, err := r.Resolve("Sort.quick")
	require.NoError(t, err)
	require.Equal(t, []uint32{second}, ids)

	// Both ids stay registered; only the name index moved.
	require.Equal(t, []uint32{first, second}, r.ids())
}
