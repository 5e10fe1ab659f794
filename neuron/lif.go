package neuron

import "math"

// LIF is the leaky integrate-and-fire neuron model (spec §4.3.1): membrane
// potential decays exponentially toward VRest and is reset to VReset after
// crossing VThresh, with a refractory period during which input is
// dropped and the membrane is clamped at VReset.
type LIF struct {
	TauM       float64 // membrane time constant
	CM         float64 // capacitance, > 0
	VRest      float64
	VReset     float64
	VThresh    float64
	Refractory float64
}

// NewLIF constructs an LIF model from its six biological parameters.
func NewLIF(tauM, cm, vRest, vReset, vThresh, refractory float64) *LIF {
	return &LIF{
		TauM:       tauM,
		CM:         cm,
		VRest:      vRest,
		VReset:     vReset,
		VThresh:    vThresh,
		Refractory: refractory,
	}
}

// Decay advances every neuron in the given slices to time t. The inner
// loop computes a 0/1 refractory mask per neuron and blends the refractory
// clamp against the decayed value with straight-line arithmetic, rather
// than branching per neuron on the refractory check — the only branch is
// the one that produces the mask itself.
func (m *LIF) Decay(t float64, state, lastSpike, lastUpdate []float64) {
	tau := m.TauM
	vRest := m.VRest
	vReset := m.VReset
	refractory := m.Refractory

	for i := range state {
		mask := 0.0
		if t-lastSpike[i] < refractory {
			mask = 1.0
		}
		notMask := 1.0 - mask

		dt := t - lastUpdate[i]
		decayed := vRest + (state[i]-vRest)*math.Exp(-dt/tau)

		state[i] = mask*vReset + notMask*decayed
		lastUpdate[i] = mask*lastUpdate[i] + notMask*t
	}
}

// Receive delivers charge to a single neuron already decayed to t. Input
// arriving during the refractory period is dropped.
func (m *LIF) Receive(t, charge float64, state, lastSpike, lastUpdate *float64) bool {
	if t-*lastSpike < m.Refractory {
		return false
	}

	v := *state + charge/m.CM
	if v >= m.VThresh {
		*state = m.VReset
		*lastSpike = t
		return true
	}
	*state = v
	return false
}

// InitValue returns VReset: new LIF neurons start at rest-equivalent reset
// potential.
func (m *LIF) InitValue() float64 {
	return m.VReset
}
