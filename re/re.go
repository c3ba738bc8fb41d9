// Package re describes regular expressions as an AST over an arbitrary label
// type and compiles them into NFAs by Thompson construction.
//
// There is no textual syntax here; callers build the tree with Plain,
// ZeroOrMore, Concat, Either and Wildcard (or the sugar built on them).
package re

import (
	"fmt"
	"strings"
)

// Re is a regular-expression node. The set of node types is closed.
type Re[T comparable] interface {
	fmt.Stringer
	// compile wires the node between left and right.
	compile(c *compiler[T], left, right uint64)
	// size is the number of fresh states the node allocates.
	size() uint64
}

// PlainRe matches exactly Label.
type PlainRe[T comparable] struct {
	Label T
}

// ZeroOrMoreRe matches zero or more repetitions of Inner.
type ZeroOrMoreRe[T comparable] struct {
	Inner Re[T]
}

// ConcatRe matches First followed by Second.
type ConcatRe[T comparable] struct {
	First, Second Re[T]
}

// EitherRe matches First or Second.
type EitherRe[T comparable] struct {
	First, Second Re[T]
}

// WildcardRe matches any single label.
type WildcardRe[T comparable] struct{}

func Plain[T comparable](label T) Re[T] {
	return &PlainRe[T]{Label: label}
}

func ZeroOrMore[T comparable](inner Re[T]) Re[T] {
	return &ZeroOrMoreRe[T]{Inner: inner}
}

func Concat[T comparable](first, second Re[T]) Re[T] {
	return &ConcatRe[T]{First: first, Second: second}
}

func Either[T comparable](first, second Re[T]) Re[T] {
	return &EitherRe[T]{First: first, Second: second}
}

func Wildcard[T comparable]() Re[T] {
	return &WildcardRe[T]{}
}

// OneOrMore matches one or more repetitions of r, as Concat(r, ZeroOrMore(r)).
func OneOrMore[T comparable](r Re[T]) Re[T] {
	return Concat(r, ZeroOrMore(r))
}

// Sequence matches labels in order. It panics when labels is empty, since
// the AST has no node for the empty string.
func Sequence[T comparable](labels ...T) Re[T] {
	if len(labels) == 0 {
		panic("re: Sequence needs at least one label")
	}
	r := Plain(labels[len(labels)-1])
	for i := len(labels) - 2; i >= 0; i-- {
		r = Concat(Plain(labels[i]), r)
	}
	return r
}

// OneOf matches any one of labels. It panics when labels is empty.
func OneOf[T comparable](labels ...T) Re[T] {
	if len(labels) == 0 {
		panic("re: OneOf needs at least one label")
	}
	r := Plain(labels[len(labels)-1])
	for i := len(labels) - 2; i >= 0; i-- {
		r = Either(Plain(labels[i]), r)
	}
	return r
}

func (r *PlainRe[T]) String() string {
	switch l := any(r.Label).(type) {
	case rune:
		return escape(string(l))
	case byte:
		return escape(string(rune(l)))
	case string:
		return escape(l)
	default:
		return fmt.Sprintf("<%v>", l)
	}
}

func (r *ZeroOrMoreRe[T]) String() string {
	switch r.Inner.(type) {
	case *PlainRe[T], *WildcardRe[T]:
		return r.Inner.String() + "*"
	default:
		return "(" + r.Inner.String() + ")*"
	}
}

func (r *ConcatRe[T]) String() string {
	return group(r.First) + group(r.Second)
}

func (r *EitherRe[T]) String() string {
	return r.First.String() + "|" + r.Second.String()
}

func (r *WildcardRe[T]) String() string {
	return "."
}

// group parenthesizes alternations inside a concatenation.
func group[T comparable](r Re[T]) string {
	if _, ok := r.(*EitherRe[T]); ok {
		return "(" + r.String() + ")"
	}
	return r.String()
}

func escape(s string) string {
	if len(s) == 1 && strings.ContainsAny(s, `\.+*?()|[]{}^$`) {
		return `\` + s
	}
	return s
}
