package neuron

// Input is the passthrough source neuron model (spec §4.3.2): it performs
// no membrane dynamics and every delivery is treated as a spike. Input
// neurons are the stimulation source a network is driven by — a scheduled
// spike at an Input neuron always propagates.
type Input struct{}

// NewInput constructs an Input model. It carries no parameters.
func NewInput() *Input {
	return &Input{}
}

// Decay is a no-op: Input neurons have no membrane state to advance.
func (m *Input) Decay(t float64, state, lastSpike, lastUpdate []float64) {}

// Receive ignores charge and state and always reports a threshold
// crossing.
func (m *Input) Receive(t, charge float64, state, lastSpike, lastUpdate *float64) bool {
	return true
}

// InitValue returns 0: Input neurons carry no meaningful membrane value.
func (m *Input) InitValue() float64 {
	return 0
}
