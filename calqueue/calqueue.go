/*
Package calqueue implements a calendar queue: a bucket-indexed priority
queue over event.Event for the near-monotonic, densely packed event
streams a spiking network produces. Push is O(1) amortized. Pop also
rescans every queued event to keep the live time span current (see
recomputeSpanLocked), so each Pop costs O(size + bucketCount); it is not
O(1) amortized.

DESIGN:
Events are bucketed by floor(time/width) mod bucketCount. Within a bucket,
ordering is resolved lazily (sorted on demand at extraction time) rather
than maintained on every push — this is the same "pay for it only when
asked" trade the teacher's SignalScheduler (neuron/signal_scheduler.go)
makes by keeping a heap instead of a sorted slice; here the analogous
laziness is per-bucket sorting instead of heap rebalancing.

THREAD SAFETY:
Every exported method takes the internal mutex. The simulation loop itself
is single-threaded (spec §5), so this is defensive rather than load-bearing
for correctness, but it keeps the queue safe to inspect (Size, Stats) from a
second goroutine without racing the loop — the same posture
neuron/signal_scheduler.go takes for its own queue.
*/
package calqueue

import (
	"sort"
	"sync"

	"github.com/eventspike/spikecore/event"
	"github.com/eventspike/spikecore/simerr"
)

// Default construction parameters. Tuning knobs, not correctness knobs
// (spec §4.1).
const (
	DefaultBucketCount = 128
	DefaultWidth       = 1.0
	DefaultWidenFactor = 2.0

	// boundaryEpsilon stabilizes events that land exactly on a stripe
	// boundary so that push and pop agree on which bucket they belong to
	// even in the presence of floating-point rounding in the division.
	boundaryEpsilon = 1e-9
)

// Queue is a bucket-indexed priority queue over event.Event.
type Queue struct {
	mu sync.Mutex

	buckets     [][]event.Event
	bucketCount int
	width       float64
	widenFactor float64
	lastBucket  int
	size        int
	nextSeq     uint64

	// hasMin/minTime/maxTime track the time span of the events currently
	// held (shrunk back by Pop when it removes the current min or max, see
	// recomputeSpanLocked), independent of which buckets they landed in.
	// They exist for two things locate() itself can't do cheaply: keeping
	// lastBucket anchored at the true minimum's bucket, both before the
	// first Pop ever runs and after each Pop, and knowing when the held events'
	// time span has grown too wide for bucketCount*width to resolve
	// without ambiguity (see spreadExceedsCapacityLocked, resizeLocked).
	hasMin  bool
	minTime float64
	maxTime float64

	totalPushed int64
	totalPopped int64
	resizeCount int64
}

// New constructs a calendar queue with the given initial bucket count and
// stripe width. widenFactor controls how much the stripe width grows on
// resize; pass 0 to use DefaultWidenFactor.
func New(bucketCount int, width float64, widenFactor float64) *Queue {
	if bucketCount <= 0 {
		bucketCount = DefaultBucketCount
	}
	if width <= 0 {
		width = DefaultWidth
	}
	if widenFactor <= 0 {
		widenFactor = DefaultWidenFactor
	}
	return &Queue{
		buckets:     make([][]event.Event, bucketCount),
		bucketCount: bucketCount,
		width:       width,
		widenFactor: widenFactor,
	}
}

// NewDefault constructs a calendar queue with the reference default
// parameters (B0=128, w0=1.0).
func NewDefault() *Queue {
	return New(DefaultBucketCount, DefaultWidth, DefaultWidenFactor)
}

// Stats is a snapshot of queue activity counters, mirroring the
// totalScheduled/totalDelivered bookkeeping neuron/signal_scheduler.go
// keeps for its own per-neuron queue.
type Stats struct {
	TotalPushed int64
	TotalPopped int64
	ResizeCount int64
	BucketCount int
	Width       float64
}

func bucketIndex(t, width float64, bucketCount int) int {
	idx := int(floorDiv(t, width))
	idx %= bucketCount
	if idx < 0 {
		idx += bucketCount
	}
	return idx
}

// floorDiv computes floor(t/width), nudging t by a small epsilon first so
// that values landing exactly on a stripe boundary consistently round into
// the same bucket on every call (push and pop alike).
func floorDiv(t, width float64) float64 {
	v := (t + boundaryEpsilon) / width
	f := float64(int64(v))
	if v < f {
		f -= 1
	}
	return f
}

// Push inserts an event, keyed by its Time. A monotonic sequence number is
// assigned for deterministic tie-breaking among equal-Time events (it is
// NOT overwritten if the caller already set one, so callers that need a
// specific tie-break other than push order may pre-assign Sequence, e.g.
// via NextSequence).
func (q *Queue) Push(e event.Event) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.pushLocked(e)
	if q.size > 2*q.bucketCount || q.spreadExceedsCapacityLocked() {
		q.resizeLocked()
	}
}

func (q *Queue) pushLocked(e event.Event) {
	if e.Sequence == 0 {
		q.nextSeq++
		e.Sequence = q.nextSeq
	} else if e.Sequence > q.nextSeq {
		q.nextSeq = e.Sequence
	}
	idx := bucketIndex(e.Time, q.width, q.bucketCount)
	q.buckets[idx] = append(q.buckets[idx], e)
	q.size++
	q.totalPushed++

	// A bucket index alone can't tell apart "the earliest pending event"
	// from "an event bucketCount*width later" — the bucket-cyclic scan in
	// locate() only resolves correctly when lastBucket anchors at the
	// true minimum's bucket. Track that anchor directly here
	// rather than relying on the zero-valued lastBucket happening to be
	// right, which it is not for event sets containing negative or
	// widely spread times pushed before any Pop has run. minTime/maxTime
	// track the span of the currently-queued events only (Pop shrinks
	// them back when it removes the holder of either extreme), not the
	// queue's all-time push history — a live span is what determines
	// whether the current bucketing can still resolve order correctly.
	if !q.hasMin || e.Time < q.minTime {
		q.minTime = e.Time
		q.lastBucket = idx
	}
	if !q.hasMin || e.Time > q.maxTime {
		q.maxTime = e.Time
	}
	q.hasMin = true
}

// spreadExceedsCapacityLocked reports whether the time span between the
// earliest and latest currently-queued event is at least as wide as what
// the current bucketCount*width can resolve without the bucket-index
// wraparound ambiguity described in pushLocked's comment: two events
// exactly bucketCount*width apart land in the same bucket, so the
// boundary itself is already unsafe and must trigger a resize, not only
// spans that exceed it.
func (q *Queue) spreadExceedsCapacityLocked() bool {
	if !q.hasMin {
		return false
	}
	return q.maxTime-q.minTime >= float64(q.bucketCount)*q.width
}

// recomputeSpanLocked rescans every currently-queued event to recompute
// minTime/maxTime from scratch. Called only from Pop, when the just-removed
// event held one of the two extremes; since Pop always removes the earliest
// event (the live minimum), this runs on every Pop that leaves the queue
// non-empty and costs O(size + bucketCount). It keeps the span tracking
// accurate as events drain out of the queue over a long run.
func (q *Queue) recomputeSpanLocked() {
	first := true
	for _, b := range q.buckets {
		for _, e := range b {
			if first {
				q.minTime = e.Time
				q.maxTime = e.Time
				first = false
				continue
			}
			if e.Time < q.minTime {
				q.minTime = e.Time
			}
			if e.Time > q.maxTime {
				q.maxTime = e.Time
			}
		}
	}
}

// NextSequence reserves and returns the next tie-break sequence number,
// for callers that want to pre-assign Sequence before Push (see Push's
// doc comment).
func (q *Queue) NextSequence() uint64 {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.nextSeq++
	return q.nextSeq
}

func (q *Queue) resizeLocked() {
	all := make([]event.Event, 0, q.size)
	for _, b := range q.buckets {
		all = append(all, b...)
	}
	q.bucketCount *= 2
	newWidth := q.width * q.widenFactor
	// A resize triggered purely by occupancy (spec §4.1) only needs the
	// usual widenFactor growth. A resize triggered by the tracked time
	// span outgrowing bucketCount*width (spreadExceedsCapacityLocked)
	// needs width to grow enough to cover that span with room to spare,
	// or the very next push could trigger another resize immediately.
	if q.hasMin {
		spread := q.maxTime - q.minTime
		minRequired := spread / float64(q.bucketCount)
		if newWidth < minRequired {
			newWidth = minRequired * q.widenFactor
		}
	}
	q.width = newWidth
	q.buckets = make([][]event.Event, q.bucketCount)
	q.size = 0
	q.resizeCount++
	for _, e := range all {
		idx := bucketIndex(e.Time, q.width, q.bucketCount)
		q.buckets[idx] = append(q.buckets[idx], e)
		q.size++
	}
	if q.hasMin {
		q.lastBucket = bucketIndex(q.minTime, q.width, q.bucketCount)
	} else {
		q.lastBucket = 0
	}
}

// locate scans cyclically from q.lastBucket for the first non-empty
// bucket, sorts it lazily by (Time, Sequence), and returns its bucket
// index. Returns (-1, false) only when the queue is empty.
func (q *Queue) locate() (int, bool) {
	if q.size == 0 {
		return -1, false
	}
	for i := 0; i < q.bucketCount; i++ {
		idx := (q.lastBucket + i) % q.bucketCount
		if len(q.buckets[idx]) > 0 {
			b := q.buckets[idx]
			sort.Slice(b, func(x, y int) bool { return event.Less(b[x], b[y]) })
			return idx, true
		}
	}
	return -1, false
}

// Top returns the earliest-ordered event without removing it.
func (q *Queue) Top() (event.Event, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	idx, ok := q.locate()
	if !ok {
		return event.Event{}, simerr.New(simerr.EmptyQueue, "Queue.Top", "queue is empty")
	}
	return q.buckets[idx][0], nil
}

// Pop removes and returns the earliest-ordered event.
func (q *Queue) Pop() (event.Event, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	idx, ok := q.locate()
	if !ok {
		if q.size != 0 {
			// Non-empty queue, bounded scan found nothing: the invariant
			// the scheduling algorithm depends on has been violated.
			return event.Event{}, simerr.New(simerr.InvariantViolation, "Queue.Pop", "non-empty queue scan found no event")
		}
		return event.Event{}, simerr.New(simerr.EmptyQueue, "Queue.Pop", "queue is empty")
	}
	b := q.buckets[idx]
	e := b[0]
	q.buckets[idx] = b[1:]
	q.size--
	q.totalPopped++
	q.lastBucket = idx

	if q.size == 0 {
		q.hasMin = false
		q.minTime = 0
		q.maxTime = 0
	} else if e.Time == q.minTime || e.Time == q.maxTime {
		q.recomputeSpanLocked()
		// Re-anchor the scan at the new live minimum's bucket: the bucket
		// just popped may still hold an event one full cycle
		// (bucketCount*width) later than the remaining minimum.
		q.lastBucket = bucketIndex(q.minTime, q.width, q.bucketCount)
	}
	return e, nil
}

// Empty reports whether the queue holds no events.
func (q *Queue) Empty() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.size == 0
}

// Size returns the number of events currently queued.
func (q *Queue) Size() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.size
}

// StatsSnapshot returns a copy of the queue's activity counters.
func (q *Queue) StatsSnapshot() Stats {
	q.mu.Lock()
	defer q.mu.Unlock()
	return Stats{
		TotalPushed: q.totalPushed,
		TotalPopped: q.totalPopped,
		ResizeCount: q.resizeCount,
		BucketCount: q.bucketCount,
		Width:       q.width,
	}
}
