package population

import (
	"sync"

	"github.com/eventspike/spikecore/neuron"
)

// parallelDecay dispatches a population's bulk decay across up to workers
// goroutines, splitting the index range into index-partitioned chunks so
// no locking is required between them (spec §5: "Bulk-decay workers read
// and write disjoint ranges of the state arrays"). Below
// 2*neuron.MinParallelChunk() neurons, or with workers<=1, it just calls the
// kernel directly — dispatch overhead would dominate a population that small.
func parallelDecay(m neuron.Model, t float64, state, lastSpike, lastUpdate []float64, workers int) {
	n := len(state)
	if n == 0 {
		return
	}
	if workers <= 1 || n < neuron.MinParallelChunk()*2 {
		m.Decay(t, state, lastSpike, lastUpdate)
		return
	}

	chunk := (n + workers - 1) / workers
	if chunk < neuron.MinParallelChunk() {
		chunk = neuron.MinParallelChunk()
	}

	var wg sync.WaitGroup
	for start := 0; start < n; start += chunk {
		end := start + chunk
		if end > n {
			end = n
		}
		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			m.Decay(t, state[s:e], lastSpike[s:e], lastUpdate[s:e])
		}(start, end)
	}
	wg.Wait()
}
