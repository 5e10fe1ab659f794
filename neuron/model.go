package neuron

// Model is the capability set every neuron variant implements: a bulk
// lazy decay, a single-neuron synaptic delivery, and the initial membrane
// value for neurons newly added under this model (spec §4.3).
//
// A model instance belongs to exactly one population in the current
// design, but since a Model holds only read-only parameters after
// construction (no per-neuron state lives on the Model itself — that all
// lives in the population's state slices), sharing one Model across
// multiple populations is also safe.
type Model interface {
	// Decay lazily advances every neuron in state/lastSpike/lastUpdate
	// (three slices of equal length, already sliced to the target
	// population range) to time t, without applying any input.
	Decay(t float64, state, lastSpike, lastUpdate []float64)

	// Receive delivers charge to the single neuron identified by the
	// given pointers. The caller must have already decayed this neuron to
	// t (via Decay with a length-1 slice) before calling Receive. Returns
	// true if this delivery crosses the firing threshold.
	Receive(t, charge float64, state, lastSpike, lastUpdate *float64) bool

	// InitValue is the initial membrane potential assigned to every
	// neuron of this model at population-creation time.
	InitValue() float64
}
