// Package workflow holds the status machine shared by the three request
// entities. Each entity declares its own Rules value; services call Apply
// before mutating anything and translate the sentinel errors into their
// feature-specific messages.
package workflow

import "errors"

var (
	ErrInvalidTransition = errors.New("status transition not allowed")
	ErrNoteRequired      = errors.New("a note is required for this status")
)

// State is any string-backed status enum.
type State interface{ ~string }

// Rules is a transition table plus the set of target states that require
// an accompanying note (rejection reason, resolution details).
type Rules[S State] struct {
	Initial      S
	Transitions  map[S][]S
	NoteRequired map[S]bool
}

// Allowed reports whether from -> to appears in the table.
func (r Rules[S]) Allowed(from, to S) bool {
	for _, next := range r.Transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Terminal reports whether a state has no outgoing transitions.
func (r Rules[S]) Terminal(s S) bool {
	return len(r.Transitions[s]) == 0
}

// States returns every state reachable from the table, for validation.
func (r Rules[S]) States() []S {
	seen := map[S]bool{r.Initial: true}
	out := []S{r.Initial}
	for from, targets := range r.Transitions {
		if !seen[from] {
			seen[from] = true
			out = append(out, from)
		}
		for _, to := range targets {
			if !seen[to] {
				seen[to] = true
				out = append(out, to)
			}
		}
	}
	return out
}

// Apply validates a single transition. It never mutates the entity; on
// success the caller stamps status, processor and timestamp together with
// any side effect inside one storage transaction.
func (r Rules[S]) Apply(from, to S, note string) error {
	if !r.Allowed(from, to) {
		return ErrInvalidTransition
	}
	if r.NoteRequired[to] && note == "" {
		return ErrNoteRequired
	}
	return nil
}
