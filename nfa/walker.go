package nfa

import (
	"iter"

	"github.com/KromDaniel/fauto/auto"
)

// Walker executes a blueprint. It occupies a set of states that is always
// epsilon closed. A walker whose set becomes empty is dead and stays dead.
type Walker[S comparable, T comparable] struct {
	bp      *Blueprint[S, T]
	current Set[S]
}

var _ auto.Walker[rune] = (*Walker[int, rune])(nil)

// Create returns a walker positioned at the closure of the start state.
func (bp *Blueprint[S, T]) Create() *Walker[S, T] {
	return &Walker[S, T]{
		bp:      bp,
		current: bp.Closure(NewSet(bp.start)),
	}
}

// Blueprint returns the blueprint w runs on.
func (w *Walker[S, T]) Blueprint() *Blueprint[S, T] {
	return w.bp
}

// CurrentStateSet returns a copy of the current state set.
func (w *Walker[S, T]) CurrentStateSet() Set[S] {
	return w.current.Clone()
}

// IsDead reports whether the current state set is empty.
func (w *Walker[S, T]) IsDead() bool {
	return len(w.current) == 0
}

// IsAccepted reports whether any current state is an accept state.
func (w *Walker[S, T]) IsAccepted() bool {
	return w.current.Intersects(w.bp.accepts)
}

// Trigger consumes label. Plain edges matching label and all wildcard edges
// fire from every current state, and the result is epsilon closed.
func (w *Walker[S, T]) Trigger(label T) {
	if w.IsDead() {
		return
	}
	next := w.bp.step(w.current, label)
	if len(next) == 0 {
		w.current = next
		return
	}
	w.current = w.bp.Closure(next)
}

// TestTrigger reports whether the walker is still alive. An NFA can always
// attempt a label; it may die as a result.
func (w *Walker[S, T]) TestTrigger(T) bool {
	return !w.IsDead()
}

// Test reports whether seq is accepted as a whole.
func (w *Walker[S, T]) Test(seq iter.Seq[T]) bool {
	return auto.Test[T](w, seq)
}

// Search reports whether an accepting prefix of seq exists.
func (w *Walker[S, T]) Search(seq iter.Seq[T]) bool {
	return auto.Search[T](w, seq)
}
