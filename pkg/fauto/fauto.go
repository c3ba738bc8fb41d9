// Package fauto compiles regular expressions into deterministic automata and
// generates Go matchers from them at build time.
package fauto

import (
	"fmt"

	"github.com/KromDaniel/fauto/dfa"
	"github.com/KromDaniel/fauto/internal/compiler"
	"github.com/KromDaniel/fauto/subset"
)

// DFA is the automaton produced by Build. Its states are sets of NFA states.
type DFA = dfa.Blueprint[*subset.StateSet[uint64], rune]

// Options configures the regex compilation process.
type Options struct {
	// Pattern is the regular expression to compile
	Pattern string

	// Name is the generated matcher type (e.g., "Email" generates type Email and CompiledEmail)
	Name string

	// OutputFile is the path where generated code will be written
	OutputFile string

	// Package is the Go package name for the generated code
	Package string

	// Verbose logs every construction stage to stderr
	Verbose bool

	// MaxStates aborts subset construction past this many DFA states (0 = unlimited)
	MaxStates int
}

// Validate checks if the options are valid.
func (o Options) Validate() error {
	if o.Pattern == "" {
		return fmt.Errorf("pattern cannot be empty")
	}
	if o.Name == "" {
		return fmt.Errorf("name cannot be empty")
	}
	if o.OutputFile == "" {
		return fmt.Errorf("output file cannot be empty")
	}
	if o.Package == "" {
		return fmt.Errorf("package cannot be empty")
	}
	if o.MaxStates < 0 {
		return fmt.Errorf("max states cannot be negative")
	}
	return nil
}

// Compile generates a Go matcher for the given regex pattern.
// It returns an error if the pattern is invalid or code generation fails.
func Compile(opts Options) error {
	if err := opts.Validate(); err != nil {
		return fmt.Errorf("invalid options: %w", err)
	}

	regex, err := Parse(opts.Pattern)
	if err != nil {
		return err
	}

	c := compiler.New(compiler.Config{
		Pattern:   opts.Pattern,
		Regex:     regex,
		Name:      opts.Name,
		Package:   opts.Package,
		MaxStates: opts.MaxStates,
		Verbose:   opts.Verbose,
	})
	c.SetOutputFile(opts.OutputFile)

	if err := c.Generate(); err != nil {
		return fmt.Errorf("failed to generate code: %w", err)
	}
	return nil
}

// Build parses pattern and returns its DFA without generating code.
// maxStates bounds the DFA size; 0 means unlimited.
func Build(pattern string, maxStates int) (*DFA, error) {
	regex, err := Parse(pattern)
	if err != nil {
		return nil, err
	}
	d, err := compiler.New(compiler.Config{
		Pattern:   pattern,
		Regex:     regex,
		MaxStates: maxStates,
	}).Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build %q: %w", pattern, err)
	}
	return d, nil
}

// MustBuild is like Build but panics on error.
func MustBuild(pattern string) *DFA {
	d, err := Build(pattern, 0)
	if err != nil {
		panic(err)
	}
	return d
}
