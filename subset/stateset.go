package subset

import (
	"fmt"
	"strings"

	"golang.org/x/exp/constraints"
	"golang.org/x/exp/slices"

	"github.com/KromDaniel/fauto/nfa"
)

// StateSet is a DFA state produced by Determinize: a sorted, deduplicated
// set of NFA states. StateSets are interned per determinization, so two
// states of the same DFA are equal sets exactly when they are the same
// pointer.
type StateSet[S constraints.Ordered] struct {
	states []S
	key    string
}

// States returns the member NFA states in ascending order.
func (s *StateSet[S]) States() []S {
	return slices.Clone(s.states)
}

// Len returns the number of member states.
func (s *StateSet[S]) Len() int {
	return len(s.states)
}

// Contains reports whether state is a member.
func (s *StateSet[S]) Contains(state S) bool {
	_, ok := slices.BinarySearch(s.states, state)
	return ok
}

func (s *StateSet[S]) String() string {
	return "{" + s.key + "}"
}

// interner maps canonical keys to the single StateSet holding them.
type interner[S constraints.Ordered] struct {
	sets map[string]*StateSet[S]
}

func newInterner[S constraints.Ordered]() *interner[S] {
	return &interner[S]{sets: make(map[string]*StateSet[S])}
}

// intern returns the canonical StateSet for states and whether it was
// created by this call.
func (in *interner[S]) intern(states nfa.Set[S]) (*StateSet[S], bool) {
	sorted := states.Slice()
	slices.Sort(sorted)
	sorted = slices.Compact(sorted)
	key := canonicalKey(sorted)
	if s, ok := in.sets[key]; ok {
		return s, false
	}
	s := &StateSet[S]{states: sorted, key: key}
	in.sets[key] = s
	return s, true
}

// canonicalKey renders sorted states unambiguously; %#v quotes strings.
func canonicalKey[S constraints.Ordered](sorted []S) string {
	var sb strings.Builder
	for i, s := range sorted {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "%#v", s)
	}
	return sb.String()
}
