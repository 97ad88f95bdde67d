// Command gauge-example registers a few sorting benchmarks against the
// default runner. Try:
//
//	gauge-example --print_benchmarks
//	gauge-example --gauge_filter=Sort.* --runs=5
//	gauge-example --gauge_filter=*.std --add_column cpu=i7 --use_csv
package main

import (
	"math/rand"
	"slices"
	"sort"

	"github.com/nestorjhernandezm/gauge"
)

type sortBenchmark struct {
	gauge.TimeBenchmark

	sorter func([]int)
	data   []int
}

func newSortBenchmark(name string, sorter func([]int)) *sortBenchmark {
	b := &sortBenchmark{sorter: sorter}
	b.Testcase = "Sort"
	b.Name = name
	return b
}

func (b *sortBenchmark) SetOptions(opts *gauge.Options) {
	sizes, _ := opts.Flags().GetIntSlice("sort_size")
	for _, size := range sizes {
		cfg := gauge.NewConfig()
		cfg.Set("size", size)
		b.AddConfiguration(cfg)
	}
}

func (b *sortBenchmark) Runs() uint32 { return 5 }

func (b *sortBenchmark) Setup(cfg *gauge.Config) {
	b.data = rand.Perm(cfg.GetInt("size"))
}

func (b *sortBenchmark) TestBody(cfg *gauge.Config) {
	b.Measure(1, func() {
		b.sorter(b.data)
	})
}

func init() {
	gauge.Flags().IntSlice("sort_size", []int{1000, 100000},
		"Input sizes for the Sort benchmarks")

	gauge.Register(func() gauge.Benchmark {
		return newSortBenchmark("std", sort.Ints)
	}, "Sort", "std")
	gauge.Register(func() gauge.Benchmark {
		return newSortBenchmark("slices", func(data []int) { slices.Sort(data) })
	}, "Sort", "slices")
}

func main() {
	gauge.AddDefaultSinks()
	gauge.Main()
}
