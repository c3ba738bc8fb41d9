// Package dfa implements deterministic finite automata over arbitrary state
// and label types.
//
// Besides plain labeled edges, every state may carry one fallback edge that
// is taken for any label without a plain edge. The fallback is the compact
// form of "any other symbol" and is what wildcard edges of an NFA turn into
// after determinization.
package dfa

import (
	"errors"
	"fmt"
	"iter"
)

var (
	ErrDuplicatedTransition = errors.New("duplicated transition")
	ErrDuplicatedFallback   = errors.New("duplicated fallback transition")
	ErrSealed               = errors.New("dfa: builder already finalized")
	ErrIllegalStep          = errors.New("no transition or fallback for label")
)

// TransitionError reports a second, conflicting destination registered for
// the same state and label (or the same state's fallback).
type TransitionError struct {
	Err      error
	From     any
	Label    any // nil for fallback conflicts
	Existing any
	Conflict any
}

func (e *TransitionError) Error() string {
	if e.Label == nil {
		return fmt.Sprintf("dfa: %v from %v: %v vs %v", e.Err, e.From, e.Existing, e.Conflict)
	}
	return fmt.Sprintf("dfa: %v from %v on %v: %v vs %v", e.Err, e.From, e.Label, e.Existing, e.Conflict)
}

func (e *TransitionError) Unwrap() error {
	return e.Err
}

// Kind identifies the table a Connection belongs to.
type Kind int

const (
	Plain Kind = iota
	Fallback
)

func (k Kind) String() string {
	switch k {
	case Plain:
		return "plain"
	case Fallback:
		return "fallback"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Connection is a single edge of a blueprint. Label is the zero value for
// fallback connections.
type Connection[S comparable, T comparable] struct {
	From  S
	Kind  Kind
	Label T
	To    S
}

type row[S comparable, T comparable] struct {
	plain    map[T]S
	labels   []T
	fallback S
	hasFall  bool
}

type table[S comparable, T comparable] struct {
	rows  map[S]*row[S, T]
	order []S
}

func (t *table[S, T]) row(s S) *row[S, T] {
	r, ok := t.rows[s]
	if !ok {
		r = &row[S, T]{plain: make(map[T]S)}
		t.rows[s] = r
		t.order = append(t.order, s)
	}
	return r
}

// Builder accumulates transitions and accept states. The first conflicting
// registration is kept as the builder's error and every later call becomes
// a no-op; Finalize reports it.
type Builder[S comparable, T comparable] struct {
	t       table[S, T]
	start   S
	accepts map[S]struct{}
	err     error
	sealed  bool
}

// Start returns an empty builder whose start state is start.
func Start[S comparable, T comparable](start S) *Builder[S, T] {
	return &Builder[S, T]{
		t:       table[S, T]{rows: make(map[S]*row[S, T])},
		start:   start,
		accepts: make(map[S]struct{}),
	}
}

func (b *Builder[S, T]) ok() bool {
	if b.sealed {
		if b.err == nil {
			b.err = ErrSealed
		}
		return false
	}
	return b.err == nil
}

// Connect registers from --label--> to. Registering the same edge again is a
// no-op; registering a different destination is a construction error.
func (b *Builder[S, T]) Connect(from S, label T, to S) *Builder[S, T] {
	if !b.ok() {
		return b
	}
	r := b.t.row(from)
	if old, exists := r.plain[label]; exists {
		if old != to {
			b.err = &TransitionError{Err: ErrDuplicatedTransition, From: from, Label: label, Existing: old, Conflict: to}
		}
		return b
	}
	r.plain[label] = to
	r.labels = append(r.labels, label)
	return b
}

// ConnectFallback registers the default destination of from.
func (b *Builder[S, T]) ConnectFallback(from S, to S) *Builder[S, T] {
	if !b.ok() {
		return b
	}
	r := b.t.row(from)
	if r.hasFall {
		if r.fallback != to {
			b.err = &TransitionError{Err: ErrDuplicatedFallback, From: from, Existing: r.fallback, Conflict: to}
		}
		return b
	}
	r.fallback, r.hasFall = to, true
	return b
}

// Accept marks state as accepting.
func (b *Builder[S, T]) Accept(state S) *Builder[S, T] {
	if !b.ok() {
		return b
	}
	b.accepts[state] = struct{}{}
	return b
}

// Err returns the first construction error, if any.
func (b *Builder[S, T]) Err() error {
	return b.err
}

// Finalize seals the builder into a blueprint, or returns the first
// construction error. The builder must not be used afterwards.
func (b *Builder[S, T]) Finalize() (*Blueprint[S, T], error) {
	if !b.ok() {
		return nil, b.err
	}
	b.sealed = true
	bp := &Blueprint[S, T]{t: b.t, start: b.start, accepts: b.accepts}
	b.t = table[S, T]{}
	b.accepts = nil
	return bp, nil
}

// MustFinalize is like Finalize but panics on error.
func (b *Builder[S, T]) MustFinalize() *Blueprint[S, T] {
	bp, err := b.Finalize()
	if err != nil {
		panic(err)
	}
	return bp
}

// Blueprint is an immutable DFA. It is safe for concurrent use by multiple
// walkers.
type Blueprint[S comparable, T comparable] struct {
	t       table[S, T]
	start   S
	accepts map[S]struct{}
}

// StartState returns the start state.
func (bp *Blueprint[S, T]) StartState() S {
	return bp.start
}

// AcceptStates returns a copy of the accept set.
func (bp *Blueprint[S, T]) AcceptStates() map[S]struct{} {
	out := make(map[S]struct{}, len(bp.accepts))
	for s := range bp.accepts {
		out[s] = struct{}{}
	}
	return out
}

// IsAccept reports whether state is an accept state.
func (bp *Blueprint[S, T]) IsAccept(state S) bool {
	_, ok := bp.accepts[state]
	return ok
}

// Transition returns the plain destination of (from, label).
func (bp *Blueprint[S, T]) Transition(from S, label T) (S, bool) {
	if r, ok := bp.t.rows[from]; ok {
		to, ok := r.plain[label]
		return to, ok
	}
	var zero S
	return zero, false
}

// Fallback returns the fallback destination of from.
func (bp *Blueprint[S, T]) Fallback(from S) (S, bool) {
	if r, ok := bp.t.rows[from]; ok && r.hasFall {
		return r.fallback, true
	}
	var zero S
	return zero, false
}

// Labels yields the labels of the plain edges leaving state, in
// registration order.
func (bp *Blueprint[S, T]) Labels(state S) iter.Seq[T] {
	return func(yield func(T) bool) {
		r, ok := bp.t.rows[state]
		if !ok {
			return
		}
		for _, l := range r.labels {
			if !yield(l) {
				return
			}
		}
	}
}

// Connections yields every plain edge followed by every fallback edge,
// grouped by source state in registration order.
func (bp *Blueprint[S, T]) Connections() iter.Seq[Connection[S, T]] {
	return func(yield func(Connection[S, T]) bool) {
		for _, from := range bp.t.order {
			r := bp.t.rows[from]
			for _, l := range r.labels {
				if !yield(Connection[S, T]{From: from, Kind: Plain, Label: l, To: r.plain[l]}) {
					return
				}
			}
		}
		var zero T
		for _, from := range bp.t.order {
			r := bp.t.rows[from]
			if r.hasFall && !yield(Connection[S, T]{From: from, Kind: Fallback, Label: zero, To: r.fallback}) {
				return
			}
		}
	}
}

// NumConnections returns the number of plain and fallback edges.
func (bp *Blueprint[S, T]) NumConnections() int {
	n := 0
	for _, r := range bp.t.rows {
		n += len(r.plain)
		if r.hasFall {
			n++
		}
	}
	return n
}

// States returns the states reachable from the start state in breadth-first
// discovery order, visiting plain edges in registration order before the
// fallback edge of each state.
func (bp *Blueprint[S, T]) States() []S {
	seen := map[S]struct{}{bp.start: {}}
	order := []S{bp.start}
	for i := 0; i < len(order); i++ {
		r, ok := bp.t.rows[order[i]]
		if !ok {
			continue
		}
		visit := func(s S) {
			if _, ok := seen[s]; !ok {
				seen[s] = struct{}{}
				order = append(order, s)
			}
		}
		for _, l := range r.labels {
			visit(r.plain[l])
		}
		if r.hasFall {
			visit(r.fallback)
		}
	}
	return order
}

// NumStates returns the number of states reachable from the start state.
func (bp *Blueprint[S, T]) NumStates() int {
	return len(bp.States())
}
