/*
Package config loads a simulation scenario from a YAML file into a
network.Network, the way qubicdb/pkg/core.Config loads a server's YAML
config on top of built-in defaults: read the file, unmarshal onto a
struct pre-populated with DefaultScenario, then hand the result to
Build.
*/
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/eventspike/spikecore/network"
	"github.com/eventspike/spikecore/neuron"
)

// NeuronModel names which neuron.Model a population's neurons share.
type NeuronModel string

const (
	ModelLIF   NeuronModel = "lif"
	ModelInput NeuronModel = "input"
)

// LIFParams mirrors neuron.LIF's constructor arguments. Fields are only
// consulted when the owning PopulationSpec's Model is ModelLIF.
type LIFParams struct {
	TauM       float64 `yaml:"tauM"`
	CM         float64 `yaml:"cm"`
	VRest      float64 `yaml:"vRest"`
	VReset     float64 `yaml:"vReset"`
	VThresh    float64 `yaml:"vThresh"`
	Refractory float64 `yaml:"refractory"`
}

// PopulationSpec describes one call to network.AddPopulation.
type PopulationSpec struct {
	Name  string      `yaml:"name"`
	Size  int         `yaml:"size"`
	Model NeuronModel `yaml:"model"`
	LIF   LIFParams   `yaml:"lif"`
}

// SynapseSpec describes one call to network.AddSynapse. Src and Dst are
// global neuron indices, in the order populations were declared.
type SynapseSpec struct {
	Src    int     `yaml:"src"`
	Dst    int     `yaml:"dst"`
	Weight float64 `yaml:"weight"`
	Delay  float64 `yaml:"delay"`
}

// SpikeSpec describes one call to network.ScheduleSpike.
type SpikeSpec struct {
	Offset float64 `yaml:"offset"`
	Target int     `yaml:"target"`
	Weight float64 `yaml:"weight"`
}

// Scenario is the top-level YAML document a spikesim run consumes.
type Scenario struct {
	Populations []PopulationSpec `yaml:"populations"`
	Synapses    []SynapseSpec    `yaml:"synapses"`
	Spikes      []SpikeSpec      `yaml:"spikes"`

	// SamplingInterval, if > 0, attaches an IntervalStateMonitor at that
	// interval before the run starts.
	SamplingInterval float64 `yaml:"samplingInterval"`

	// Duration is the simulated time to advance via a single Run call.
	Duration float64 `yaml:"duration"`

	// NumThreads is the decay worker count network.SetNumThreads receives.
	NumThreads int `yaml:"numThreads"`
}

// DefaultScenario returns a Scenario populated with safe defaults; a
// loaded YAML document is merged on top of it, so fields the file omits
// keep these values.
func DefaultScenario() *Scenario {
	return &Scenario{
		Duration:   1.0,
		NumThreads: 1,
	}
}

// Load reads a YAML scenario file and merges it on top of DefaultScenario.
func Load(path string) (*Scenario, error) {
	s := DefaultScenario()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("parsing scenario file %s: %w", path, err)
	}
	return s, nil
}

// Validate checks structural constraints Build cannot recover from on
// its own (out-of-range indices are instead caught by network's own
// IndexOutOfRange errors once Build starts wiring synapses and spikes).
func (s *Scenario) Validate() error {
	if len(s.Populations) == 0 {
		return fmt.Errorf("scenario must declare at least one population")
	}
	for i, p := range s.Populations {
		if p.Size <= 0 {
			return fmt.Errorf("population %d (%s): size must be > 0", i, p.Name)
		}
		switch p.Model {
		case ModelLIF, ModelInput:
		default:
			return fmt.Errorf("population %d (%s): unknown model %q", i, p.Name, p.Model)
		}
	}
	if s.Duration < 0 {
		return fmt.Errorf("duration must be >= 0")
	}
	return nil
}

// Build constructs a network.Network from the scenario, in population
// declaration order, then wires synapses and schedules the initial
// spikes. The caller still attaches monitors before calling Run.
func Build(s *Scenario) (*network.Network, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	net := network.New()
	net.SetNumThreads(s.NumThreads)

	for _, p := range s.Populations {
		net.AddPopulation(p.Size, modelFor(p))
	}
	for _, syn := range s.Synapses {
		if err := net.AddSynapse(syn.Src, syn.Dst, syn.Weight, syn.Delay); err != nil {
			return nil, fmt.Errorf("wiring synapse %+v: %w", syn, err)
		}
	}
	for _, sp := range s.Spikes {
		if err := net.ScheduleSpike(sp.Offset, sp.Target, sp.Weight); err != nil {
			return nil, fmt.Errorf("scheduling spike %+v: %w", sp, err)
		}
	}
	return net, nil
}

func modelFor(p PopulationSpec) neuron.Model {
	if p.Model == ModelInput {
		return neuron.NewInput()
	}
	lp := p.LIF
	return neuron.NewLIF(lp.TauM, lp.CM, lp.VRest, lp.VReset, lp.VThresh, lp.Refractory)
}
