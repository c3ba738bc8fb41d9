// Package subset converts NFAs into equivalent DFAs by subset construction.
package subset

import (
	"errors"
	"fmt"

	"golang.org/x/exp/constraints"

	"github.com/KromDaniel/fauto/dfa"
	"github.com/KromDaniel/fauto/nfa"
)

var ErrStateLimitExceeded = errors.New("DFA state limit exceeded during construction")

type options struct {
	maxStates int
}

// Option configures Determinize.
type Option func(*options)

// WithMaxStates aborts determinization once more than n DFA states have been
// discovered. n <= 0 means no limit, which is the default.
func WithMaxStates(n int) Option {
	return func(o *options) {
		o.maxStates = n
	}
}

// Determinize builds a DFA accepting exactly the sequences n accepts. Each
// DFA state is the epsilon-closed set of NFA states the NFA could occupy
// after the same input; it accepts when any member accepts. Wildcard edges
// become fallback edges, and also contribute to every labeled edge leaving
// the same set, since a wildcard matches those labels too.
//
// The number of DFA states may be exponential in the number of NFA states;
// use WithMaxStates to bound it.
func Determinize[S constraints.Ordered, T comparable](n *nfa.Blueprint[S, T], opts ...Option) (*dfa.Blueprint[*StateSet[S], T], error) {
	var cfg options
	for _, opt := range opts {
		opt(&cfg)
	}

	in := newInterner[S]()
	start, _ := in.intern(n.Closure(nfa.NewSet(n.StartState())))
	b := dfa.Start[*StateSet[S], T](start)

	unresolved := []*StateSet[S]{start}
	resolved := make(map[*StateSet[S]]struct{})

	// resolve closes dest, interns it and queues it when unseen.
	resolve := func(dest nfa.Set[S]) (*StateSet[S], error) {
		set, created := in.intern(n.Closure(dest))
		if created {
			if cfg.maxStates > 0 && len(in.sets) > cfg.maxStates {
				return nil, fmt.Errorf("%w: more than %d states", ErrStateLimitExceeded, cfg.maxStates)
			}
		}
		if _, done := resolved[set]; !done {
			unresolved = append(unresolved, set)
		}
		return set, nil
	}

	for len(unresolved) > 0 {
		set := unresolved[len(unresolved)-1]
		unresolved = unresolved[:len(unresolved)-1]
		if _, done := resolved[set]; done {
			continue
		}
		resolved[set] = struct{}{}

		perLabel := make(map[T]nfa.Set[S])
		var labels []T
		wildcard := make(nfa.Set[S])
		for _, s := range set.states {
			if n.IsAccept(s) {
				b.Accept(set)
			}
			for label, to := range n.PlainFrom(s) {
				dest, ok := perLabel[label]
				if !ok {
					dest = make(nfa.Set[S])
					perLabel[label] = dest
					labels = append(labels, label)
				}
				dest.Add(to)
			}
			for to := range n.WildcardFrom(s) {
				wildcard.Add(to)
			}
		}

		for _, label := range labels {
			dest := perLabel[label]
			dest.Union(wildcard)
			to, err := resolve(dest)
			if err != nil {
				return nil, err
			}
			b.Connect(set, label, to)
		}
		if wildcard.Len() > 0 {
			to, err := resolve(wildcard)
			if err != nil {
				return nil, err
			}
			b.ConnectFallback(set, to)
		}
	}

	return b.Finalize()
}
