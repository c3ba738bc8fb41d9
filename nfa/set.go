package nfa

import "iter"

// Set is an unordered set of states.
type Set[S comparable] map[S]struct{}

// NewSet returns a set holding states.
func NewSet[S comparable](states ...S) Set[S] {
	s := make(Set[S], len(states))
	for _, st := range states {
		s[st] = struct{}{}
	}
	return s
}

// Add inserts state and reports whether it was not already present.
func (s Set[S]) Add(state S) bool {
	if _, ok := s[state]; ok {
		return false
	}
	s[state] = struct{}{}
	return true
}

// Has reports whether state is in s.
func (s Set[S]) Has(state S) bool {
	_, ok := s[state]
	return ok
}

// Len returns the number of states in s.
func (s Set[S]) Len() int {
	return len(s)
}

// Clone returns a copy of s.
func (s Set[S]) Clone() Set[S] {
	c := make(Set[S], len(s))
	for st := range s {
		c[st] = struct{}{}
	}
	return c
}

// Union adds every state of other to s.
func (s Set[S]) Union(other Set[S]) {
	for st := range other {
		s[st] = struct{}{}
	}
}

// Intersects reports whether s and other share at least one state.
func (s Set[S]) Intersects(other Set[S]) bool {
	small, large := s, other
	if len(small) > len(large) {
		small, large = large, small
	}
	for st := range small {
		if large.Has(st) {
			return true
		}
	}
	return false
}

// Equal reports whether s and other hold the same states.
func (s Set[S]) Equal(other Set[S]) bool {
	if len(s) != len(other) {
		return false
	}
	for st := range s {
		if !other.Has(st) {
			return false
		}
	}
	return true
}

// All yields the states of s in unspecified order.
func (s Set[S]) All() iter.Seq[S] {
	return func(yield func(S) bool) {
		for st := range s {
			if !yield(st) {
				return
			}
		}
	}
}

// Slice returns the states of s in unspecified order.
func (s Set[S]) Slice() []S {
	out := make([]S, 0, len(s))
	for st := range s {
		out = append(out, st)
	}
	return out
}
