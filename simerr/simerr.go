/*
Package simerr defines the error taxonomy shared by the calendar queue and
the network loop: a small, closed set of pattern-matchable categories rather
than ad-hoc error strings.

Only Kind is meant to be matched on (via errors.Is against the sentinel
values below); Op and Message are for humans.
*/
package simerr

import "fmt"

// Kind categorizes a simulation error into one of the three taxonomy
// buckets the core distinguishes between: a recoverable, user-caused
// mistake (IndexOutOfRange) versus the two internal-invariant categories
// that indicate a bug in the core itself (EmptyQueue, InvariantViolation).
type Kind int

const (
	// IndexOutOfRange is raised synchronously at the API call site when a
	// synapse endpoint or a scheduled-spike target exceeds the current
	// population count. The operation that raised it has no effect.
	IndexOutOfRange Kind = iota

	// EmptyQueue is raised by top/pop on an empty calendar queue. Callers
	// of the public network API should never observe this; run() always
	// checks size() before popping.
	EmptyQueue

	// InvariantViolation covers everything that indicates a bug rather
	// than a caller mistake: a non-empty queue whose bucket scan found no
	// event, a NaN surfacing in a decay kernel, and similar conditions.
	InvariantViolation
)

// String returns the human-readable category name.
func (k Kind) String() string {
	switch k {
	case IndexOutOfRange:
		return "IndexOutOfRange"
	case EmptyQueue:
		return "EmptyQueue"
	case InvariantViolation:
		return "InvariantViolation"
	default:
		return "Unknown"
	}
}

// Error is the concrete error type returned by this module. Op names the
// operation that failed (e.g. "AddSynapse", "Queue.Pop"); Message
// is a short human-readable description.
type Error struct {
	Kind    Kind
	Op      string
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s: %s", e.Op, e.Kind, e.Message)
}

// Is lets callers write errors.Is(err, simerr.ErrIndexOutOfRange) (etc.):
// it matches any *Error of the same Kind, such as the Err* sentinel values
// below.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// New constructs an *Error for the given category.
func New(kind Kind, op, message string) *Error {
	return &Error{Kind: kind, Op: op, Message: message}
}

// sentinels, for errors.Is(err, simerr.ErrIndexOutOfRange) style comparisons
// without needing to construct a throwaway *Error at every call site.
var (
	ErrIndexOutOfRange = &Error{Kind: IndexOutOfRange}
	ErrEmptyQueue      = &Error{Kind: EmptyQueue}
	ErrInvariantBroken = &Error{Kind: InvariantViolation}
)
