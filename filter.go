package gauge

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

// Resolve expands a single "TestCase.Benchmark" filter expression into
// the registry ids it selects. Either side may be the "*" wildcard:
//
//	*.*        every registered benchmark
//	*.name     the benchmark under every test case that has it
//	name.*     every benchmark of one test case
//	tc.bm      exactly one benchmark
//
// A missing separator or an empty part is ErrMalformedFilter; wildcard
// and exact misses are ErrTestcaseNotFound / ErrBenchmarkNotFound.
// Within a wildcard expansion the selection follows the name-sorted
// index order.
func (r *Registry) Resolve(filter string) ([]uint32, error) {
	testcase, benchmark, found := strings.Cut(filter, ".")
	if !found || testcase == "" || benchmark == "" {
		return nil, fmt.Errorf("%w: %q", ErrMalformedFilter, filter)
	}

	switch {
	case testcase == "*" && benchmark == "*":
		return r.ids(), nil

	case testcase == "*":
		// The benchmark runs for every test case it belongs to.
		ids := make([]uint32, 0)
		for _, name := range r.Testcases() {
			if id, ok := r.testcases[name][benchmark]; ok {
				ids = append(ids, id)
			}
		}
		if len(ids) == 0 {
			return nil, fmt.Errorf("%w: %q", ErrBenchmarkNotFound, filter)
		}
		return ids, nil

	case benchmark == "*":
		byName, ok := r.testcases[testcase]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrTestcaseNotFound, filter)
		}
		ids := make([]uint32, 0, len(byName))
		for _, name := range slices.Sorted(maps.Keys(byName)) {
			ids = append(ids, byName[name])
		}
		return ids, nil

	default:
		byName, ok := r.testcases[testcase]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrTestcaseNotFound, filter)
		}
		id, ok := byName[benchmark]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrBenchmarkNotFound, filter)
		}
		return []uint32{id}, nil
	}
}
