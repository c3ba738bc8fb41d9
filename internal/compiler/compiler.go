// Package compiler drives the full pipeline from a regex AST to generated Go
// source: Thompson construction, subset construction, and code emission.
package compiler

import (
	"errors"
	"fmt"
	"io"

	"github.com/dave/jennifer/jen"

	"github.com/KromDaniel/fauto/dfa"
	"github.com/KromDaniel/fauto/internal/codegen"
	"github.com/KromDaniel/fauto/nfa"
	"github.com/KromDaniel/fauto/re"
	"github.com/KromDaniel/fauto/subset"
)

// DFA is the automaton type the pipeline produces.
type DFA = dfa.Blueprint[*subset.StateSet[uint64], rune]

// Config holds the configuration for code generation.
type Config struct {
	Pattern    string      // Textual form of Regex, used in comments
	Regex      re.Re[rune] // AST to compile
	Name       string      // Name of the generated matcher type
	OutputFile string
	Package    string
	MaxStates  int  // DFA state limit, 0 = unlimited
	Verbose    bool // Enable verbose logging of each stage
}

// Compiler turns a regex AST into an NFA, a DFA and finally Go code.
type Compiler struct {
	config Config
	file   *jen.File
	logger *Logger
	nfa    *nfa.Blueprint[uint64, rune]
	dfa    *DFA
	ids    map[*subset.StateSet[uint64]]int // DFA state -> id in generated code
	order  []*subset.StateSet[uint64]       // DFA states by id
}

// New creates a new compiler instance.
func New(config Config) *Compiler {
	return &Compiler{
		config: config,
		file:   jen.NewFile(config.Package),
		logger: NewLogger(config.Verbose),
	}
}

// SetOutputFile sets the output file path.
func (c *Compiler) SetOutputFile(path string) {
	c.config.OutputFile = path
}

// Logger returns the compiler's logger.
func (c *Compiler) Logger() *Logger {
	return c.logger
}

// Build runs Thompson and subset construction. It is idempotent and is
// called by Generate and Render when needed.
func (c *Compiler) Build() (*DFA, error) {
	if c.dfa != nil {
		return c.dfa, nil
	}
	if c.config.Regex == nil {
		return nil, errors.New("no regex to compile")
	}

	c.logger.Section("Thompson Construction")
	c.logger.Log("Pattern: %s", c.config.Pattern)
	c.logger.Log("AST: %s", c.config.Regex)
	c.nfa = re.Compile(c.config.Regex)
	c.logger.Log("NFA states: %d", re.StateCount(c.config.Regex))
	c.logger.Log("NFA connections: %d", c.nfa.NumConnections())

	c.logger.Section("Subset Construction")
	var opts []subset.Option
	if c.config.MaxStates > 0 {
		c.logger.Log("DFA state limit: %d", c.config.MaxStates)
		opts = append(opts, subset.WithMaxStates(c.config.MaxStates))
	}
	d, err := subset.Determinize(c.nfa, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to determinize: %w", err)
	}
	c.dfa = d

	c.order = d.States()
	c.ids = make(map[*subset.StateSet[uint64]]int, len(c.order))
	fallbacks := 0
	for i, s := range c.order {
		c.ids[s] = i
		if _, ok := d.Fallback(s); ok {
			fallbacks++
		}
	}
	c.logger.Log("DFA states: %d", len(c.order))
	c.logger.Log("DFA accept states: %d", len(d.AcceptStates()))
	c.logger.Log("DFA connections: %d (fallback: %d)", d.NumConnections(), fallbacks)
	return d, nil
}

// NFA returns the NFA built by Build, or nil before Build.
func (c *Compiler) NFA() *nfa.Blueprint[uint64, rune] {
	return c.nfa
}

// Generate generates the Go code and writes it to the output file.
func (c *Compiler) Generate() error {
	if c.config.OutputFile == "" {
		return errors.New("output file cannot be empty")
	}
	if err := c.emit(); err != nil {
		return err
	}
	if err := c.file.Save(c.config.OutputFile); err != nil {
		return fmt.Errorf("failed to save file: %w", err)
	}
	c.logger.Log("Wrote %s", c.config.OutputFile)
	return nil
}

// Render generates the Go code and writes it to w.
func (c *Compiler) Render(w io.Writer) error {
	if err := c.emit(); err != nil {
		return err
	}
	if err := c.file.Render(w); err != nil {
		return fmt.Errorf("failed to render file: %w", err)
	}
	return nil
}

func (c *Compiler) emit() error {
	if !codegen.IsIdentifier(c.config.Name) {
		return fmt.Errorf("invalid matcher name %q", c.config.Name)
	}
	if _, err := c.Build(); err != nil {
		return err
	}
	c.file = jen.NewFile(c.config.Package)
	c.logger.Section("Code Generation")
	c.generateFile()
	return nil
}
