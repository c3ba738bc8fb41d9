package dfa

import (
	"fmt"
	"iter"

	"github.com/KromDaniel/fauto/auto"
)

// StepError is the panic value of Trigger when the current state has neither
// a plain edge for the label nor a fallback.
type StepError struct {
	State any
	Label any
}

func (e *StepError) Error() string {
	return fmt.Sprintf("dfa: %v: state %v, label %v", ErrIllegalStep, e.State, e.Label)
}

func (e *StepError) Unwrap() error {
	return ErrIllegalStep
}

// Walker executes a blueprint from a single current state.
type Walker[S comparable, T comparable] struct {
	bp      *Blueprint[S, T]
	current S
}

var _ auto.Walker[rune] = (*Walker[int, rune])(nil)

// Create returns a walker positioned at the start state.
func (bp *Blueprint[S, T]) Create() *Walker[S, T] {
	return &Walker[S, T]{bp: bp, current: bp.start}
}

// Blueprint returns the blueprint w runs on.
func (w *Walker[S, T]) Blueprint() *Blueprint[S, T] {
	return w.bp
}

// CurrentState returns the current state.
func (w *Walker[S, T]) CurrentState() S {
	return w.current
}

// IsAccepted reports whether the current state is an accept state.
func (w *Walker[S, T]) IsAccepted() bool {
	return w.bp.IsAccept(w.current)
}

// TestTrigger reports whether label has a plain edge from the current state
// or the current state has a fallback. A state with a fallback accepts every
// label.
func (w *Walker[S, T]) TestTrigger(label T) bool {
	r, ok := w.bp.t.rows[w.current]
	if !ok {
		return false
	}
	if _, ok := r.plain[label]; ok {
		return true
	}
	return r.hasFall
}

// Trigger follows the plain edge for label, or the fallback when there is
// none. It panics with a *StepError if neither exists; check TestTrigger
// first for labels not known to be legal.
func (w *Walker[S, T]) Trigger(label T) {
	r, ok := w.bp.t.rows[w.current]
	if ok {
		if to, ok := r.plain[label]; ok {
			w.current = to
			return
		}
		if r.hasFall {
			w.current = r.fallback
			return
		}
	}
	panic(&StepError{State: w.current, Label: label})
}

// Test reports whether seq is accepted as a whole.
func (w *Walker[S, T]) Test(seq iter.Seq[T]) bool {
	return auto.Test[T](w, seq)
}

// Search reports whether an accepting prefix of seq exists.
func (w *Walker[S, T]) Search(seq iter.Seq[T]) bool {
	return auto.Search[T](w, seq)
}
