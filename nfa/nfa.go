// Package nfa implements nondeterministic finite automata over arbitrary
// state and label types.
//
// An automaton is assembled with a Builder, sealed into an immutable
// Blueprint by Finalize, and executed by any number of independent Walkers
// created from the blueprint. Three kinds of edges exist: plain edges that
// consume a specific label, void (epsilon) edges that consume nothing, and
// wildcard edges that consume any single label.
package nfa

import (
	"errors"
	"fmt"
	"iter"
)

// ErrSealed is the panic value used when a finalized builder is mutated.
var ErrSealed = errors.New("nfa: builder already finalized")

// Kind identifies the relation a Connection belongs to.
type Kind int

const (
	Plain Kind = iota
	Void
	Wildcard
)

func (k Kind) String() string {
	switch k {
	case Plain:
		return "plain"
	case Void:
		return "void"
	case Wildcard:
		return "wildcard"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Connection is a single edge of a blueprint. Label is meaningful only for
// Plain connections and holds the zero value otherwise.
type Connection[S comparable, T comparable] struct {
	From  S
	Kind  Kind
	Label T
	To    S
}

// targets is an insertion-ordered set of destination states.
type targets[S comparable] struct {
	index Set[S]
	items []S
}

func (t *targets[S]) add(s S) bool {
	if t.index == nil {
		t.index = make(Set[S])
	}
	if !t.index.Add(s) {
		return false
	}
	t.items = append(t.items, s)
	return true
}

func (t *targets[S]) len() int {
	if t == nil {
		return 0
	}
	return len(t.items)
}

// edges holds every outgoing edge of one state.
type edges[S comparable, T comparable] struct {
	plain    map[T]*targets[S]
	labels   []T
	void     targets[S]
	wildcard targets[S]
}

type graph[S comparable, T comparable] struct {
	out   map[S]*edges[S, T]
	order []S
}

func (g *graph[S, T]) from(s S) *edges[S, T] {
	e, ok := g.out[s]
	if !ok {
		e = &edges[S, T]{plain: make(map[T]*targets[S])}
		g.out[s] = e
		g.order = append(g.order, s)
	}
	return e
}

// Builder accumulates edges and accept states. The zero value is not usable;
// start with Start.
type Builder[S comparable, T comparable] struct {
	g       graph[S, T]
	start   S
	accepts Set[S]
	sealed  bool
}

// Start returns an empty builder whose start state is start.
func Start[S comparable, T comparable](start S) *Builder[S, T] {
	return &Builder[S, T]{
		g:       graph[S, T]{out: make(map[S]*edges[S, T])},
		start:   start,
		accepts: make(Set[S]),
	}
}

func (b *Builder[S, T]) mustOpen() {
	if b.sealed {
		panic(ErrSealed)
	}
}

// Connect adds a plain edge from --label--> to. Repeated edges are ignored.
func (b *Builder[S, T]) Connect(from S, label T, to S) *Builder[S, T] {
	b.mustOpen()
	e := b.g.from(from)
	t, ok := e.plain[label]
	if !ok {
		t = &targets[S]{}
		e.plain[label] = t
		e.labels = append(e.labels, label)
	}
	t.add(to)
	return b
}

// ConnectVoid adds a void edge from -> to, traversed without input.
func (b *Builder[S, T]) ConnectVoid(from S, to S) *Builder[S, T] {
	b.mustOpen()
	b.g.from(from).void.add(to)
	return b
}

// ConnectWildcard adds an edge from -> to that consumes any single label.
func (b *Builder[S, T]) ConnectWildcard(from S, to S) *Builder[S, T] {
	b.mustOpen()
	b.g.from(from).wildcard.add(to)
	return b
}

// Accept marks state as accepting.
func (b *Builder[S, T]) Accept(state S) *Builder[S, T] {
	b.mustOpen()
	b.accepts.Add(state)
	return b
}

// Finalize seals the builder into a blueprint. The builder must not be used
// afterwards.
func (b *Builder[S, T]) Finalize() *Blueprint[S, T] {
	b.mustOpen()
	b.sealed = true
	bp := &Blueprint[S, T]{
		g:       b.g,
		start:   b.start,
		accepts: b.accepts,
	}
	b.g = graph[S, T]{}
	b.accepts = nil
	return bp
}

// Blueprint is an immutable NFA. It is safe for concurrent use by multiple
// walkers.
type Blueprint[S comparable, T comparable] struct {
	g       graph[S, T]
	start   S
	accepts Set[S]
}

// StartState returns the start state.
func (bp *Blueprint[S, T]) StartState() S {
	return bp.start
}

// AcceptStates returns a copy of the accept set.
func (bp *Blueprint[S, T]) AcceptStates() Set[S] {
	return bp.accepts.Clone()
}

// IsAccept reports whether state is an accept state.
func (bp *Blueprint[S, T]) IsAccept(state S) bool {
	return bp.accepts.Has(state)
}

// Connections yields every registered edge exactly once: plain edges first,
// then void, then wildcard, each grouped by source state in registration
// order.
func (bp *Blueprint[S, T]) Connections() iter.Seq[Connection[S, T]] {
	return func(yield func(Connection[S, T]) bool) {
		var zero T
		for _, from := range bp.g.order {
			e := bp.g.out[from]
			for _, label := range e.labels {
				for _, to := range e.plain[label].items {
					if !yield(Connection[S, T]{From: from, Kind: Plain, Label: label, To: to}) {
						return
					}
				}
			}
		}
		for _, from := range bp.g.order {
			for _, to := range bp.g.out[from].void.items {
				if !yield(Connection[S, T]{From: from, Kind: Void, Label: zero, To: to}) {
					return
				}
			}
		}
		for _, from := range bp.g.order {
			for _, to := range bp.g.out[from].wildcard.items {
				if !yield(Connection[S, T]{From: from, Kind: Wildcard, Label: zero, To: to}) {
					return
				}
			}
		}
	}
}

// NumConnections returns the number of distinct edges.
func (bp *Blueprint[S, T]) NumConnections() int {
	n := 0
	for _, e := range bp.g.out {
		for _, t := range e.plain {
			n += t.len()
		}
		n += e.void.len() + e.wildcard.len()
	}
	return n
}

// States returns every state mentioned by the blueprint: the start state,
// accept states and both ends of every edge. Order is unspecified.
func (bp *Blueprint[S, T]) States() Set[S] {
	states := NewSet(bp.start)
	states.Union(bp.accepts)
	for c := range bp.Connections() {
		states.Add(c.From)
		states.Add(c.To)
	}
	return states
}

// PlainFrom yields (label, destination) for every plain edge leaving state.
func (bp *Blueprint[S, T]) PlainFrom(state S) iter.Seq2[T, S] {
	return func(yield func(T, S) bool) {
		e, ok := bp.g.out[state]
		if !ok {
			return
		}
		for _, label := range e.labels {
			for _, to := range e.plain[label].items {
				if !yield(label, to) {
					return
				}
			}
		}
	}
}

// VoidFrom yields the destinations of void edges leaving state.
func (bp *Blueprint[S, T]) VoidFrom(state S) iter.Seq[S] {
	return bp.each(state, func(e *edges[S, T]) []S { return e.void.items })
}

// WildcardFrom yields the destinations of wildcard edges leaving state.
func (bp *Blueprint[S, T]) WildcardFrom(state S) iter.Seq[S] {
	return bp.each(state, func(e *edges[S, T]) []S { return e.wildcard.items })
}

func (bp *Blueprint[S, T]) each(state S, pick func(*edges[S, T]) []S) iter.Seq[S] {
	return func(yield func(S) bool) {
		e, ok := bp.g.out[state]
		if !ok {
			return
		}
		for _, to := range pick(e) {
			if !yield(to) {
				return
			}
		}
	}
}

// Closure returns the epsilon closure of states: every state reachable from
// it through void edges alone, including the states themselves. The input
// set is not modified.
func (bp *Blueprint[S, T]) Closure(states Set[S]) Set[S] {
	closure := states.Clone()
	stack := states.Slice()
	for len(stack) > 0 {
		s := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		e, ok := bp.g.out[s]
		if !ok {
			continue
		}
		for _, to := range e.void.items {
			if closure.Add(to) {
				stack = append(stack, to)
			}
		}
	}
	return closure
}

// step returns the raw (unclosed) set reached from states by consuming label.
// Wildcard edges fire for every label.
func (bp *Blueprint[S, T]) step(states Set[S], label T) Set[S] {
	next := make(Set[S])
	for s := range states {
		e, ok := bp.g.out[s]
		if !ok {
			continue
		}
		if t, ok := e.plain[label]; ok {
			for _, to := range t.items {
				next.Add(to)
			}
		}
		for _, to := range e.wildcard.items {
			next.Add(to)
		}
	}
	return next
}
