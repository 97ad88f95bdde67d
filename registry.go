package gauge

import (
	"maps"
	"math"
	"slices"
	"sync/atomic"
)

// Registry maps process-unique benchmark ids to factories and keeps the
// (testcase -> benchmark -> id) index used for filter resolution and
// listing. Ids are allocated by an atomically-incremented counter
// starting at 1; 0 is reserved as the invalid id.
//
// All registrations happen before the runner executes (typically from
// init functions), so apart from the id counter no registry state needs
// synchronization.
type Registry struct {
	lastID    atomic.Uint32
	factories map[uint32]Factory
	testcases map[string]map[string]uint32
}

func NewRegistry() *Registry {
	return &Registry{
		factories: make(map[uint32]Factory),
		testcases: make(map[string]map[string]uint32),
	}
}

// Register allocates the next id and stores the factory under both the
// id and the (testcase, benchmark) name pair. Registering the same name
// pair twice keeps both ids in the registry but points the name index
// at the newest one.
func (r *Registry) Register(factory Factory, testcase, benchmark string) uint32 {
	id := r.lastID.Add(1)
	if id == math.MaxUint32 {
		panic("gauge: benchmark id space exhausted")
	}
	r.factories[id] = factory
	byName, ok := r.testcases[testcase]
	if !ok {
		byName = make(map[string]uint32)
		r.testcases[testcase] = byName
	}
	if previous, ok := byName[benchmark]; ok {
		Logger.Warnf("benchmark %v.%v registered twice, name now resolves to id %v instead of %v", testcase, benchmark, id, previous)
	}
	byName[benchmark] = id
	return id
}

// Testcases returns the registered test-case names in sorted order.
func (r *Registry) Testcases() []string {
	return slices.Sorted(maps.Keys(r.testcases))
}

// Benchmarks returns "testcase.benchmark" strings ordered first by
// test-case name, then by benchmark name.
func (r *Registry) Benchmarks() []string {
	names := make([]string, 0, len(r.factories))
	for _, testcase := range r.Testcases() {
		for _, benchmark := range slices.Sorted(maps.Keys(r.testcases[testcase])) {
			names = append(names, testcase+"."+benchmark)
		}
	}
	return names
}

// ids returns every registered id in ascending order.
func (r *Registry) ids() []uint32 {
	return slices.Sorted(maps.Keys(r.factories))
}

func (r *Registry) factory(id uint32) Factory {
	return r.factories[id]
}
