/*
Package neuron implements the update kernels shared by every neuron in a
population: a branch-free bulk decay operating over whole state slices, a
single-neuron synaptic delivery, and the initial membrane value assigned to
newly created neurons.

# Model variants

Two variants are implemented, matching spec §4.3:

  - LIF: leaky integrate-and-fire, membrane potential decays exponentially
    toward a resting value and resets after crossing threshold.
  - Input: a passthrough source neuron — every delivery is a spike.

Both satisfy the Model interface directly rather than through open-ended
subclassing (spec §9): the variant set is small and closed, so a fixed set
of concrete types implementing one interface is cheaper to reason about
than a growing hierarchy of neuron types.

# Vectorization

Decay is written as a loop over a slice that blends the refractory clamp
and the decayed value through a numeric 0/1 mask instead of branching
between them; the only per-neuron branch is the comparison that sets the
mask. Whether the loop is actually compiled to packed SIMD instructions is
up to the compiler. See vectorize.go
for the hardware capability probe that informs how population.Population
chunks this loop across workers.
*/
package neuron
