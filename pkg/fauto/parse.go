package fauto

import (
	"errors"
	"fmt"
	"regexp/syntax"
	"unicode"

	"github.com/KromDaniel/fauto/re"
)

// MaxClassSize is the largest character class Parse expands into
// alternatives. Negated classes and wide ranges exceed it.
const MaxClassSize = 256

// ErrUnsupported is returned by Parse for constructs that have no
// equivalent in the regex AST.
var ErrUnsupported = errors.New("unsupported construct")

// Parse parses a Perl-style pattern into a rune AST. A dot matches any rune,
// including newline. Groups only group; nothing is captured. Constructs
// the AST cannot express (empty matches, ?, anchors, word boundaries, large
// or negated classes) return an error wrapping ErrUnsupported.
func Parse(pattern string) (re.Re[rune], error) {
	ast, err := syntax.Parse(pattern, syntax.Perl|syntax.DotNL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse pattern: %w", err)
	}
	return convert(ast.Simplify())
}

func convert(r *syntax.Regexp) (re.Re[rune], error) {
	switch r.Op {
	case syntax.OpLiteral:
		return literal(r.Rune, r.Flags&syntax.FoldCase != 0)
	case syntax.OpCharClass:
		return charClass(r.Rune)
	case syntax.OpAnyChar:
		return re.Wildcard[rune](), nil
	case syntax.OpCapture:
		return convert(r.Sub[0])
	case syntax.OpStar:
		sub, err := convert(r.Sub[0])
		if err != nil {
			return nil, err
		}
		return re.ZeroOrMore(sub), nil
	case syntax.OpPlus:
		sub, err := convert(r.Sub[0])
		if err != nil {
			return nil, err
		}
		return re.OneOrMore(sub), nil
	case syntax.OpConcat:
		return fold(r.Sub, re.Concat[rune])
	case syntax.OpAlternate:
		return fold(r.Sub, re.Either[rune])
	default:
		return nil, fmt.Errorf("%w: %s in %q", ErrUnsupported, opName(r.Op), r.String())
	}
}

// fold right-nests subs with join.
func fold(subs []*syntax.Regexp, join func(a, b re.Re[rune]) re.Re[rune]) (re.Re[rune], error) {
	if len(subs) == 0 {
		return nil, fmt.Errorf("%w: empty expression", ErrUnsupported)
	}
	out, err := convert(subs[len(subs)-1])
	if err != nil {
		return nil, err
	}
	for i := len(subs) - 2; i >= 0; i-- {
		sub, err := convert(subs[i])
		if err != nil {
			return nil, err
		}
		out = join(sub, out)
	}
	return out, nil
}

func literal(runes []rune, foldCase bool) (re.Re[rune], error) {
	if len(runes) == 0 {
		return nil, fmt.Errorf("%w: empty literal", ErrUnsupported)
	}
	var out re.Re[rune]
	for i := len(runes) - 1; i >= 0; i-- {
		var node re.Re[rune]
		if foldCase {
			node = re.OneOf(caseOrbit(runes[i])...)
		} else {
			node = re.Plain(runes[i])
		}
		if out == nil {
			out = node
		} else {
			out = re.Concat(node, out)
		}
	}
	return out, nil
}

// caseOrbit returns r followed by every rune that folds to it.
func caseOrbit(r rune) []rune {
	orbit := []rune{r}
	for f := unicode.SimpleFold(r); f != r; f = unicode.SimpleFold(f) {
		orbit = append(orbit, f)
	}
	return orbit
}

func charClass(ranges []rune) (re.Re[rune], error) {
	size := 0
	for i := 0; i+1 < len(ranges); i += 2 {
		size += int(ranges[i+1]-ranges[i]) + 1
		if size > MaxClassSize {
			return nil, fmt.Errorf("%w: character class larger than %d runes", ErrUnsupported, MaxClassSize)
		}
	}
	if size == 0 {
		return nil, fmt.Errorf("%w: empty character class", ErrUnsupported)
	}
	members := make([]rune, 0, size)
	for i := 0; i+1 < len(ranges); i += 2 {
		for c := ranges[i]; c <= ranges[i+1]; c++ {
			members = append(members, c)
		}
	}
	return re.OneOf(members...), nil
}

func opName(op syntax.Op) string {
	switch op {
	case syntax.OpNoMatch:
		return "no-match"
	case syntax.OpEmptyMatch:
		return "empty match"
	case syntax.OpAnyCharNotNL:
		return "dot without newline"
	case syntax.OpBeginLine, syntax.OpEndLine, syntax.OpBeginText, syntax.OpEndText:
		return "anchor"
	case syntax.OpWordBoundary, syntax.OpNoWordBoundary:
		return "word boundary"
	case syntax.OpQuest:
		return "optional (?)"
	case syntax.OpRepeat:
		return "counted repetition"
	default:
		return fmt.Sprintf("op %d", int(op))
	}
}
