package neuron

import (
	"math"
	"testing"
)

func closeEnough(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol*math.Max(1.0, math.Abs(b))
}

// TestLIFThresholdSpike mirrors scenario S2: a single LIF at rest receiving
// a large enough charge spikes immediately.
func TestLIFThresholdSpike(t *testing.T) {
	m := NewLIF(10, 1, 0, 0, 1, 2)
	v := 0.0
	lastSpike := math.Inf(-1)
	lastUpdate := 0.0

	m.Decay(0, []float64{v}, []float64{lastSpike}, []float64{lastUpdate})
	fired := m.Receive(0, 1.5, &v, &lastSpike, &lastUpdate)

	if !fired {
		t.Fatalf("expected threshold crossing, got none")
	}
	if v != m.VReset {
		t.Fatalf("expected state reset to %v, got %v", m.VReset, v)
	}
	if lastSpike != 0 {
		t.Fatalf("expected lastSpike=0, got %v", lastSpike)
	}
}

// TestLIFRefractorySuppression mirrors scenario S4: a second delivery
// within the refractory window is dropped.
func TestLIFRefractorySuppression(t *testing.T) {
	m := NewLIF(10, 1, 0, 0, 1, 2)
	v := 0.0
	lastSpike := math.Inf(-1)
	lastUpdate := 0.0

	m.Decay(0, []float64{v}, []float64{lastSpike}, []float64{lastUpdate})
	if fired := m.Receive(0, 1.5, &v, &lastSpike, &lastUpdate); !fired {
		t.Fatalf("expected first delivery to spike")
	}

	m.Decay(1, []float64{v}, []float64{lastSpike}, []float64{lastUpdate})
	if fired := m.Receive(1, 1.5, &v, &lastSpike, &lastUpdate); fired {
		t.Fatalf("expected second delivery during refractory to be dropped")
	}
	if v != m.VReset {
		t.Fatalf("expected refractory clamp to VReset, got %v", v)
	}
}

// TestLIFDecayTowardRest checks the closed-form exponential decay equation
// away from threshold and refractory.
func TestLIFDecayTowardRest(t *testing.T) {
	m := NewLIF(10, 1, -65, -70, -50, 2)
	state := []float64{-30}
	lastSpike := []float64{math.Inf(-1)}
	lastUpdate := []float64{0}

	m.Decay(5, state, lastSpike, lastUpdate)

	want := m.VRest + (-30-m.VRest)*math.Exp(-5.0/m.TauM)
	if !closeEnough(state[0], want, 1e-9) {
		t.Fatalf("decay mismatch: got %v want %v", state[0], want)
	}
	if lastUpdate[0] != 5 {
		t.Fatalf("expected lastUpdate advanced to 5, got %v", lastUpdate[0])
	}
}

// TestLIFDecayHoldsDuringRefractory checks that a refractory neuron is
// clamped to VReset and its lastUpdate left untouched.
func TestLIFDecayHoldsDuringRefractory(t *testing.T) {
	m := NewLIF(10, 1, 0, 0, 1, 5)
	state := []float64{0.8}
	lastSpike := []float64{1.0}
	lastUpdate := []float64{1.0}

	m.Decay(3, state, lastSpike, lastUpdate)

	if state[0] != m.VReset {
		t.Fatalf("expected clamp to VReset during refractory, got %v", state[0])
	}
	if lastUpdate[0] != 1.0 {
		t.Fatalf("expected lastUpdate unchanged during refractory, got %v", lastUpdate[0])
	}
}

func TestLIFInitValue(t *testing.T) {
	m := NewLIF(10, 1, -65, -70, -50, 2)
	if m.InitValue() != m.VReset {
		t.Fatalf("expected InitValue == VReset")
	}
}

func TestInputModel(t *testing.T) {
	m := NewInput()
	v, ls, lu := 5.0, 0.0, 0.0
	m.Decay(10, []float64{v}, []float64{ls}, []float64{lu})
	if !m.Receive(10, 0, &v, &ls, &lu) {
		t.Fatalf("expected Input.Receive to always report a spike")
	}
	if m.InitValue() != 0 {
		t.Fatalf("expected Input.InitValue() == 0")
	}
}
