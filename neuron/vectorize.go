package neuron

import "github.com/klauspost/cpuid/v2"

// hardwareLanes is the number of float64 lanes the detected CPU can pack
// into one vector instruction: 4 for a 256-bit AVX2+FMA3 unit, 1 (scalar)
// otherwise. Detection mirrors qubicDB-qubicdb's pkg/vector/simd package,
// which gates its own cosine/dot-product kernels on a
// cpuid.CPU.Supports check; here both AVX2 and FMA3 are required.
//
// This is informational, not a correctness knob: Go's compiler decides
// whether a given loop actually gets auto-vectorized. What this value
// feeds is population.Population's parallel-decay chunk sizing, so that
// worker goroutines are handed ranges wide enough for the detected lane
// width to pay off rather than ranges so narrow that per-goroutine
// overhead dominates.
var hardwareLanes = detectLanes()

func detectLanes() int {
	if cpuid.CPU.Supports(cpuid.AVX2, cpuid.FMA3) {
		return 4
	}
	return 1
}

// HardwareLanes returns the detected SIMD lane count for float64
// arithmetic on the running CPU.
func HardwareLanes() int {
	return hardwareLanes
}

// minParallelChunkBase is the per-worker chunk floor for a 4-lane vector
// unit; MinParallelChunk scales it to the detected lane width.
const minParallelChunkBase = 256

// MinParallelChunk is the smallest per-worker slice length population.Decay
// will hand to a single goroutine. Below this, the dispatch and
// synchronization overhead of a goroutine outweighs any benefit, vectorized
// or not. It scales the base floor by lanes/4, so wider vector units get
// bigger per-worker ranges (more straight-line work to amortize goroutine
// setup): 256 on a 4-lane AVX2+FMA3 unit, 64 on scalar hardware.
func MinParallelChunk() int {
	return minParallelChunkBase * hardwareLanes / 4
}
