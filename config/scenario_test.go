package config

import (
	"os"
	"path/filepath"
	"testing"
)

const sampleYAML = `
populations:
  - name: input
    size: 1
    model: input
  - name: soma
    size: 1
    model: lif
    lif:
      tauM: 10
      cm: 1
      vRest: 0
      vReset: 0
      vThresh: 1
      refractory: 2
synapses:
  - src: 0
    dst: 1
    weight: 1.5
    delay: 1.0
spikes:
  - offset: 0
    target: 0
    weight: 1.0
duration: 5
numThreads: 2
`

func writeTemp(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("writing temp scenario: %v", err)
	}
	return path
}

func TestLoadAndBuild(t *testing.T) {
	path := writeTemp(t, sampleYAML)

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(s.Populations) != 2 || s.Duration != 5 || s.NumThreads != 2 {
		t.Fatalf("unexpected scenario: %+v", s)
	}

	net, err := Build(s)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if net.Size() != 2 {
		t.Fatalf("expected 2 neurons total, got %d", net.Size())
	}
	if net.NumThreads() != 2 {
		t.Fatalf("expected NumThreads 2, got %d", net.NumThreads())
	}

	if err := net.Run(s.Duration); err != nil {
		t.Fatalf("Run: %v", err)
	}
}

func TestDefaultScenarioAppliesWhenFieldsOmitted(t *testing.T) {
	path := writeTemp(t, `
populations:
  - name: solo
    size: 1
    model: input
`)
	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.Duration != 1.0 {
		t.Fatalf("expected default duration 1.0 to survive merge, got %v", s.Duration)
	}
	if s.NumThreads != 1 {
		t.Fatalf("expected default numThreads 1 to survive merge, got %v", s.NumThreads)
	}
}

func TestValidateRejectsEmptyPopulations(t *testing.T) {
	s := DefaultScenario()
	if err := s.Validate(); err == nil {
		t.Fatalf("expected error for scenario with no populations")
	}
}

func TestValidateRejectsUnknownModel(t *testing.T) {
	s := DefaultScenario()
	s.Populations = []PopulationSpec{{Name: "bad", Size: 1, Model: "quantum"}}
	if err := s.Validate(); err == nil {
		t.Fatalf("expected error for unknown model")
	}
}

func TestBuildReportsOutOfRangeSynapse(t *testing.T) {
	s := DefaultScenario()
	s.Populations = []PopulationSpec{{Name: "solo", Size: 1, Model: "input"}}
	s.Synapses = []SynapseSpec{{Src: 0, Dst: 99, Weight: 1, Delay: 1}}

	if _, err := Build(s); err == nil {
		t.Fatalf("expected Build to surface network's IndexOutOfRange error")
	}
}
