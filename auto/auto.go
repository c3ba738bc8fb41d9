// Package auto defines the stepping contract shared by every automaton walker.
//
// A walker consumes one symbol at a time. Callers that cannot guarantee a
// symbol is legal from the current state must consult TestTrigger before
// calling Trigger. Test and Search are the bulk operations built on top of
// the three primitives.
package auto

import (
	"iter"
	"unicode/utf8"
)

// Walker is implemented by NFA and DFA walkers.
type Walker[T comparable] interface {
	// Trigger consumes label and advances the walker.
	Trigger(label T)

	// TestTrigger reports whether Trigger(label) is meaningful from the
	// current state, without performing the transition.
	TestTrigger(label T) bool

	// IsAccepted reports whether the walker currently sits in an accept state.
	IsAccepted() bool
}

// Test consumes seq and reports whether the whole sequence is accepted.
// It stops at the first symbol rejected by TestTrigger and returns false
// without consuming the rest of seq.
func Test[T comparable](w Walker[T], seq iter.Seq[T]) bool {
	for label := range seq {
		if !w.TestTrigger(label) {
			return false
		}
		w.Trigger(label)
	}
	return w.IsAccepted()
}

// Search consumes seq and reports whether acceptance was observed at any
// prefix boundary, including the empty prefix and the full sequence. Unlike
// Test, a blocked symbol ends the scan with whatever was observed so far.
func Search[T comparable](w Walker[T], seq iter.Seq[T]) bool {
	accepted := false
	for label := range seq {
		if w.IsAccepted() {
			accepted = true
		}
		if !w.TestTrigger(label) {
			return accepted
		}
		w.Trigger(label)
	}
	return accepted || w.IsAccepted()
}

// Runes yields the runes of s. Invalid UTF-8 yields utf8.RuneError per byte.
func Runes(s string) iter.Seq[rune] {
	return func(yield func(rune) bool) {
		for i := 0; i < len(s); {
			r, size := utf8.DecodeRuneInString(s[i:])
			if !yield(r) {
				return
			}
			i += size
		}
	}
}

// Bytes yields the bytes of b.
func Bytes(b []byte) iter.Seq[byte] {
	return func(yield func(byte) bool) {
		for _, c := range b {
			if !yield(c) {
				return
			}
		}
	}
}

// Symbols yields its arguments in order.
func Symbols[T any](labels ...T) iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, l := range labels {
			if !yield(l) {
				return
			}
		}
	}
}
