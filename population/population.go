/*
Package population holds the Structure-of-Arrays neuron state (spec §3,
§4.2): membrane potential, last-spike time, and last-update time each live
in their own contiguous slice, with a Population being nothing more than a
(base, length, model) triple into those shared slices.

Storing (base, length) pairs rather than raw sub-slices or pointers means
appending a new population — which may grow the backing arrays and move
them — never invalidates an existing population's view, matching the
design note in spec §9: populations only ever grow at the end, so an
earlier population's base index is stable for the lifetime of the network.
*/
package population

import (
	"math"

	"github.com/eventspike/spikecore/neuron"
)

// Population is an immutable (after creation) index range into a Store's
// shared state arrays, plus the model governing every neuron in that
// range. Models are read-only after construction, so one Model may safely
// be shared by multiple populations even though the common case is one
// population per model.
type Population struct {
	Base  int
	N     int
	Model neuron.Model
}

// Store owns the shared-of-array state for every neuron ever added to a
// network, across all populations, plus the per-neuron model lookup used
// to dispatch single-neuron decay/receive during spike processing.
type Store struct {
	State      []float64
	LastSpike  []float64
	LastUpdate []float64

	Populations []*Population

	modelOf []neuron.Model
}

// NewStore constructs an empty neuron state store.
func NewStore() *Store {
	return &Store{}
}

// Size returns the total number of neurons across all populations.
func (s *Store) Size() int {
	return len(s.State)
}

// Add appends n neurons governed by model as a new population, extending
// the shared arrays. InitValue() is sampled once per neuron (models are
// stateless, so this is just model.InitValue() repeated n times, but
// sampling per-neuron keeps the door open for models whose InitValue has
// per-call variation without changing this call site).
func (s *Store) Add(n int, model neuron.Model) *Population {
	base := len(s.State)
	for i := 0; i < n; i++ {
		s.State = append(s.State, model.InitValue())
		s.LastSpike = append(s.LastSpike, math.Inf(-1))
		s.LastUpdate = append(s.LastUpdate, 0)
		s.modelOf = append(s.modelOf, model)
	}
	p := &Population{Base: base, N: n, Model: model}
	s.Populations = append(s.Populations, p)
	return p
}

// ModelAt returns the model governing the neuron at the given index.
func (s *Store) ModelAt(i int) neuron.Model {
	return s.modelOf[i]
}

// DecayOne advances a single neuron to time t via its own model, with
// n=1 — the same kernel bulk decay uses, called on a length-1 window.
func (s *Store) DecayOne(t float64, i int) {
	s.modelOf[i].Decay(t, s.State[i:i+1], s.LastSpike[i:i+1], s.LastUpdate[i:i+1])
}

// ReceiveOne delivers charge to a single neuron already decayed to t,
// returning true on a threshold crossing.
func (s *Store) ReceiveOne(t, charge float64, i int) bool {
	return s.modelOf[i].Receive(t, charge, &s.State[i], &s.LastSpike[i], &s.LastUpdate[i])
}

// DecayAll lazily advances every population to time t, without applying
// input, optionally parallelizing each population's bulk decay across
// workers goroutines (spec §5).
func (s *Store) DecayAll(t float64, workers int) {
	for _, p := range s.Populations {
		p.Decay(t, s, workers)
	}
}

// Snapshot returns a copy of the full state array, suitable for handing to
// a state-sink monitor without aliasing the store's live slice (spec §6:
// "receives a snapshot (copy, not alias)").
func (s *Store) Snapshot() []float64 {
	out := make([]float64, len(s.State))
	copy(out, s.State)
	return out
}

// Decay advances every neuron in this population to time t, dispatching
// across workers goroutines when the population is large enough to make
// that worthwhile (see population/parallel.go).
func (p *Population) Decay(t float64, s *Store, workers int) {
	state := s.State[p.Base : p.Base+p.N]
	lastSpike := s.LastSpike[p.Base : p.Base+p.N]
	lastUpdate := s.LastUpdate[p.Base : p.Base+p.N]
	parallelDecay(p.Model, t, state, lastSpike, lastUpdate, workers)
}
