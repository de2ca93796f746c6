package shared

import "fmt"

// OpState models the lifecycle of an optimistic operation against the backend.
// Rollback-on-failure is an explicit transition, not an ad hoc boolean flag.
type OpState int

const (
	// OpIdle means no operation is in flight.
	OpIdle OpState = iota
	// OpPending means the local state was applied optimistically and the
	// backend call has not resolved yet.
	OpPending
	// OpSucceeded means the backend confirmed the operation.
	OpSucceeded
	// OpFailed means the backend rejected the operation and the optimistic
	// local change was rolled back.
	OpFailed
)

// String returns the string representation of the operation state.
func (s OpState) String() string {
	switch s {
	case OpIdle:
		return "idle"
	case OpPending:
		return "pending"
	case OpSucceeded:
		return "succeeded"
	case OpFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// CanStart reports whether a new operation may begin from this state.
// Pending operations must resolve before the next one starts.
func (s OpState) CanStart() bool {
	return s != OpPending
}

// Transition validates and applies a state change.
func (s OpState) Transition(to OpState) (OpState, error) {
	switch {
	case s == to:
		return s, nil
	case s == OpPending && (to == OpSucceeded || to == OpFailed):
		return to, nil
	case s != OpPending && to == OpPending:
		return to, nil
	case (s == OpSucceeded || s == OpFailed) && to == OpIdle:
		return to, nil
	default:
		return s, NewDomainError("shared", "Transition", ErrInvalidState,
			fmt.Sprintf("cannot transition from %s to %s", s, to))
	}
}
