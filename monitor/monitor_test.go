package monitor

import "testing"

func TestBufferedSpikeMonitorOrder(t *testing.T) {
	m := NewBufferedSpikeMonitor()
	m.OnSpike(0, 0)
	m.OnSpike(1.5, 3)
	m.OnSpike(1.5, 4)

	recs := m.Records()
	if len(recs) != 3 {
		t.Fatalf("expected 3 records, got %d", len(recs))
	}
	if recs[0].NeuronID != 0 || recs[1].NeuronID != 3 || recs[2].NeuronID != 4 {
		t.Fatalf("expected insertion order preserved, got %+v", recs)
	}
}

func TestBufferedSpikeMonitorReset(t *testing.T) {
	m := NewBufferedSpikeMonitor()
	m.OnSpike(0, 0)
	m.Reset()
	if len(m.Records()) != 0 {
		t.Fatalf("expected empty log after Reset")
	}
}

func TestIntervalStateMonitorSnapshotIsCopy(t *testing.T) {
	m := NewIntervalStateMonitor(1.0)
	state := []float64{1, 2, 3}
	m.OnRead(0, state)
	state[0] = 999

	readings := m.Readings()
	if readings[0].State[0] == 999 {
		t.Fatalf("expected OnRead to copy state, not alias it")
	}
	if m.ReadingInterval() != 1.0 {
		t.Fatalf("expected ReadingInterval() == 1.0, got %v", m.ReadingInterval())
	}
}

func TestIntervalStateMonitorResetKeepsInterval(t *testing.T) {
	m := NewIntervalStateMonitor(2.5)
	m.OnRead(0, []float64{1})
	m.Reset()
	if len(m.Readings()) != 0 {
		t.Fatalf("expected empty readings after Reset")
	}
	if m.ReadingInterval() != 2.5 {
		t.Fatalf("expected interval unchanged by Reset, got %v", m.ReadingInterval())
	}
}
