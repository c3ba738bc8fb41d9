package re

import "github.com/KromDaniel/fauto/nfa"

const (
	// StartState is the start state of every compiled NFA.
	StartState uint64 = 0
	// AcceptState is the only accept state of every compiled NFA.
	AcceptState uint64 = 1
)

// allocator hands out fresh state ids for one compilation. Ids are never
// reused.
type allocator struct {
	next uint64
}

func (a *allocator) fresh() uint64 {
	id := a.next
	a.next++
	return id
}

type compiler[T comparable] struct {
	b     *nfa.Builder[uint64, T]
	alloc allocator
}

// Compile translates r into an NFA with StartState as start and AcceptState
// as the sole accept state. Each node contributes a constant number of
// states and edges.
func Compile[T comparable](r Re[T]) *nfa.Blueprint[uint64, T] {
	c := &compiler[T]{
		b:     nfa.Start[uint64, T](StartState).Accept(AcceptState),
		alloc: allocator{next: AcceptState + 1},
	}
	r.compile(c, StartState, AcceptState)
	return c.b.Finalize()
}

// StateCount returns the number of states Compile allocates for r,
// including the start and accept states.
func StateCount[T comparable](r Re[T]) uint64 {
	return 2 + r.size()
}

func (r *PlainRe[T]) compile(c *compiler[T], left, right uint64) {
	c.b.Connect(left, r.Label, right)
}

func (r *WildcardRe[T]) compile(c *compiler[T], left, right uint64) {
	c.b.ConnectWildcard(left, right)
}

func (r *ZeroOrMoreRe[T]) compile(c *compiler[T], left, right uint64) {
	innerLeft, innerRight := c.alloc.fresh(), c.alloc.fresh()
	c.b.ConnectVoid(left, innerLeft).
		ConnectVoid(innerRight, right).
		ConnectVoid(innerRight, innerLeft).
		ConnectVoid(left, right)
	r.Inner.compile(c, innerLeft, innerRight)
}

func (r *ConcatRe[T]) compile(c *compiler[T], left, right uint64) {
	middle := c.alloc.fresh()
	r.First.compile(c, left, middle)
	r.Second.compile(c, middle, right)
}

func (r *EitherRe[T]) compile(c *compiler[T], left, right uint64) {
	firstLeft, firstRight := c.alloc.fresh(), c.alloc.fresh()
	secondLeft, secondRight := c.alloc.fresh(), c.alloc.fresh()
	c.b.ConnectVoid(left, firstLeft).
		ConnectVoid(left, secondLeft).
		ConnectVoid(firstRight, right).
		ConnectVoid(secondRight, right)
	r.First.compile(c, firstLeft, firstRight)
	r.Second.compile(c, secondLeft, secondRight)
}

func (r *PlainRe[T]) size() uint64    { return 0 }
func (r *WildcardRe[T]) size() uint64 { return 0 }
func (r *ZeroOrMoreRe[T]) size() uint64 {
	return 2 + r.Inner.size()
}
func (r *ConcatRe[T]) size() uint64 {
	return 1 + r.First.size() + r.Second.size()
}
func (r *EitherRe[T]) size() uint64 {
	return 4 + r.First.size() + r.Second.size()
}
