/*
Package network wires the calendar queue, the SoA neuron store, and the
synapse adjacency list into the simulation loop spec §4.4 describes:
add_population, add_synapse, schedule_spike, run, reset_monitors,
set_num_threads, and size.

The loop itself is single-threaded and cooperative (spec §5): events are
popped one at a time off the calendar queue and dispatched in order, so
causal ordering is never at risk. The only place work fans out across
goroutines is population.Store.DecayAll's per-population worker dispatch
during a Tick, and that dispatch is itself index-partitioned so it needs no
locking against the loop.
*/
package network

import (
	"fmt"

	"github.com/eventspike/spikecore/calqueue"
	"github.com/eventspike/spikecore/event"
	"github.com/eventspike/spikecore/monitor"
	"github.com/eventspike/spikecore/neuron"
	"github.com/eventspike/spikecore/population"
	"github.com/eventspike/spikecore/simerr"
	"github.com/eventspike/spikecore/synapse"
)

// tickHorizonEpsilon absorbs floating-point drift when comparing a
// candidate Tick time against the run horizon, so that e.g. 3*Δ for Δ=0.1
// (0.30000000000000004) still counts as landing on a horizon of 0.3 rather
// than just past it. Applied both
// when deciding which Ticks this Run call schedules and when deciding
// whether the main loop has reached the horizon yet — the two checks must
// agree, or a Tick computed as just over the horizon (by the same
// rounding error) gets pushed but never popped this call, breaking S6's
// "Tick at horizon is inclusive" contract for non-round intervals.
const tickHorizonEpsilon = 1e-9

// Network owns the event queue, the neuron state store, and the synapse
// adjacency list for one simulation, plus its persistent simulated clock.
type Network struct {
	store *population.Store
	adj   *synapse.Adjacency
	queue *calqueue.Queue

	simTime    float64
	numThreads int

	spikeSink monitor.SpikeSink
	stateSink monitor.StateSink
}

// New constructs an empty network with the calendar queue's reference
// default parameters and a single decay worker.
func New() *Network {
	return &Network{
		store:      population.NewStore(),
		adj:        synapse.NewAdjacency(),
		queue:      calqueue.NewDefault(),
		numThreads: 1,
	}
}

// AddPopulation extends the state arrays by n neurons governed by model,
// initializing v = model.InitValue(), t_last_spike = -Inf, and
// t_last_update = 0 for each (spec §6).
func (n *Network) AddPopulation(size int, model neuron.Model) *population.Population {
	return n.store.Add(size, model)
}

// AddSynapse appends (src, dst, weight, delay) to the outgoing adjacency
// list. Fails with IndexOutOfRange, leaving the network unchanged, if src
// or dst exceeds the current neuron count.
func (n *Network) AddSynapse(src, dst int, weight, delay float64) error {
	s := synapse.Synapse{Src: src, Dst: dst, Weight: weight, Delay: delay}
	if err := s.Validate(n.store.Size()); err != nil {
		return simerr.New(simerr.IndexOutOfRange, "AddSynapse", err.Error())
	}
	n.adj.Add(s)
	return nil
}

// ScheduleSpike injects Spike{sim_time + offset, target, weight}. Fails
// with IndexOutOfRange, leaving the queue unchanged, if target exceeds the
// current neuron count.
func (n *Network) ScheduleSpike(offset float64, target int, weight float64) error {
	if target < 0 || target >= n.store.Size() {
		return simerr.New(simerr.IndexOutOfRange, "ScheduleSpike",
			fmt.Sprintf("target %d out of range [0,%d)", target, n.store.Size()))
	}
	n.queue.Push(event.NewSpike(n.simTime+offset, target, weight))
	return nil
}

// SetSpikeMonitor replaces the attached spike sink. Pass nil to detach.
func (n *Network) SetSpikeMonitor(sink monitor.SpikeSink) {
	n.spikeSink = sink
}

// SetStateMonitor replaces the attached state sink. Pass nil to detach.
func (n *Network) SetStateMonitor(sink monitor.StateSink) {
	n.stateSink = sink
}

// resettable is satisfied by the bundled monitor implementations; a custom
// sink that doesn't implement it simply isn't cleared by ResetMonitors.
type resettable interface {
	Reset()
}

// ResetMonitors clears both attached sinks' buffers (spec §6).
func (n *Network) ResetMonitors() {
	if r, ok := n.spikeSink.(resettable); ok {
		r.Reset()
	}
	if r, ok := n.stateSink.(resettable); ok {
		r.Reset()
	}
}

// SetNumThreads sets the worker count bulk decay may dispatch across.
// Values below 1 are clamped to 1.
func (n *Network) SetNumThreads(k int) {
	if k < 1 {
		k = 1
	}
	n.numThreads = k
}

// NumThreads returns the currently configured decay worker count.
func (n *Network) NumThreads() int {
	return n.numThreads
}

// Size returns the total number of neurons across all populations.
func (n *Network) Size() int {
	return n.store.Size()
}

// SimTime returns the network's persistent simulated clock.
func (n *Network) SimTime() float64 {
	return n.simTime
}

// QueueStats exposes the calendar queue's activity counters, for
// inspecting the "no lost event" invariant (spec §8, property 2) without
// reaching into internals.
func (n *Network) QueueStats() calqueue.Stats {
	return n.queue.StatsSnapshot()
}

// Run advances the persistent simulated clock by T (spec §4.4). It may be
// called repeatedly to continue a simulation; scheduled events whose time
// falls beyond this call's horizon remain queued for a later Run call.
func (n *Network) Run(T float64) error {
	horizon := n.simTime + T

	if n.stateSink != nil {
		if interval := n.stateSink.ReadingInterval(); interval > 0 {
			for k := 0; ; k++ {
				tickTime := n.simTime + float64(k)*interval
				if tickTime > horizon+tickHorizonEpsilon {
					break
				}
				n.queue.Push(event.NewTick(tickTime))
			}
		}
	}

	for {
		if n.queue.Empty() {
			break
		}
		top, err := n.queue.Top()
		if err != nil {
			return err
		}
		if top.Time > horizon+tickHorizonEpsilon {
			break
		}
		e, err := n.queue.Pop()
		if err != nil {
			return err
		}
		if err := n.dispatch(e); err != nil {
			return err
		}
	}

	n.simTime = horizon
	return nil
}

func (n *Network) dispatch(e event.Event) error {
	switch e.Kind {
	case event.Spike:
		n.store.DecayOne(e.Time, e.Target)
		fired := n.store.ReceiveOne(e.Time, e.Weight, e.Target)
		if !fired {
			return nil
		}
		if n.spikeSink != nil {
			n.spikeSink.OnSpike(e.Time, e.Target)
		}
		// Fan-out uses each synapse's own weight, not the triggering
		// event's weight (spec §4.4, "Fan-out weight policy").
		for _, syn := range n.adj.Outgoing(e.Target) {
			n.queue.Push(event.NewSpike(e.Time+syn.Delay, syn.Dst, syn.Weight))
		}
		return nil
	case event.Tick:
		n.store.DecayAll(e.Time, n.numThreads)
		if n.stateSink != nil {
			n.stateSink.OnRead(e.Time, n.store.Snapshot())
		}
		return nil
	default:
		return simerr.New(simerr.InvariantViolation, "Network.dispatch", "unknown event kind")
	}
}
