package synapse

import "testing"

func TestSynapseValidate(t *testing.T) {
	cases := []struct {
		name    string
		s       Synapse
		size    int
		wantErr bool
	}{
		{"valid", Synapse{Src: 0, Dst: 1, Weight: 1.5, Delay: 1.0}, 2, false},
		{"negative delay", Synapse{Src: 0, Dst: 1, Delay: -1}, 2, true},
		{"src out of range", Synapse{Src: 5, Dst: 1}, 2, true},
		{"dst out of range", Synapse{Src: 0, Dst: 5}, 2, true},
		{"zero delay allowed", Synapse{Src: 0, Dst: 1, Delay: 0}, 2, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := c.s.Validate(c.size)
			if (err != nil) != c.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, c.wantErr)
			}
		})
	}
}

func TestAdjacencyOutgoingOrder(t *testing.T) {
	a := NewAdjacency()
	a.Add(Synapse{Src: 0, Dst: 1, Weight: 1, Delay: 1})
	a.Add(Synapse{Src: 0, Dst: 2, Weight: 2, Delay: 0.5})
	a.Add(Synapse{Src: 1, Dst: 2, Weight: 3, Delay: 2})

	out := a.Outgoing(0)
	if len(out) != 2 {
		t.Fatalf("expected 2 outgoing synapses from 0, got %d", len(out))
	}
	if out[0].Dst != 1 || out[1].Dst != 2 {
		t.Fatalf("expected insertion order preserved, got %+v", out)
	}
	if len(a.Outgoing(2)) != 0 {
		t.Fatalf("expected no outgoing synapses from a pure sink")
	}
}
