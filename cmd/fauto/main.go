// Command fauto compiles a regular expression into a DFA, generates a Go
// matcher for it, and checks inputs against it.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/KromDaniel/fauto/auto"
	"github.com/KromDaniel/fauto/pkg/fauto"
	"github.com/KromDaniel/fauto/stream"
)

const appName = "fauto"

// arrayFlags collects a repeatable string flag.
type arrayFlags []string

func (a arrayFlags) String() string {
	return strings.Join(a, ", ")
}

func (a *arrayFlags) Set(value string) error {
	*a = append(*a, value)
	return nil
}

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet(appName, flag.ContinueOnError)
	fs.SetOutput(stderr)

	var (
		pattern   = fs.String("pattern", "", "Regular expression to compile (required)")
		name      = fs.String("name", "Matcher", "Name of the generated matcher type")
		output    = fs.String("output", "", "Write the generated Go file to this path")
		pkg       = fs.String("pkg", "main", "Package name for the generated file")
		verbose   = fs.Bool("verbose", false, "Log every construction stage")
		maxStates = fs.Int("max-states", 0, "Abort when the DFA grows past this many states (0 = unlimited)")
		useStdin  = fs.Bool("stdin", false, "Check standard input as one more input")
		inputs    arrayFlags
	)
	fs.Var(&inputs, "input", "Input to check against the pattern (repeatable)")
	fs.Usage = func() { printHelp(fs) }

	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}

	if *pattern == "" {
		fmt.Fprintf(stderr, "Error: -pattern flag is required\n\n")
		printHelp(fs)
		return 2
	}
	if *output == "" && len(inputs) == 0 && !*useStdin {
		fmt.Fprintf(stderr, "Error: nothing to do, pass -output, -input or -stdin\n\n")
		printHelp(fs)
		return 2
	}

	if *output != "" {
		err := fauto.Compile(fauto.Options{
			Pattern:    *pattern,
			Name:       *name,
			OutputFile: *output,
			Package:    *pkg,
			Verbose:    *verbose,
			MaxStates:  *maxStates,
		})
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
		fmt.Fprintf(stdout, "Generated %s\n", *output)
	}

	if len(inputs) == 0 && !*useStdin {
		return 0
	}

	d, err := fauto.Build(*pattern, *maxStates)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	for _, input := range inputs {
		match := d.Create().Test(auto.Runes(input))
		search := d.Create().Search(auto.Runes(input))
		fmt.Fprintf(stdout, "%q: match=%t search=%t\n", input, match, search)
	}

	if *useStdin {
		match, err := stream.TestReader(ctx, stdin, d.Create(), stream.DefaultConfig())
		if err != nil {
			fmt.Fprintf(stderr, "Error: reading stdin: %v\n", err)
			return 1
		}
		fmt.Fprintf(stdout, "<stdin>: match=%t\n", match)
	}
	return 0
}

func printHelp(fs *flag.FlagSet) {
	out := fs.Output()
	fmt.Fprintf(out, "Usage: %s -pattern PATTERN [OPTIONS]\n\n", appName)
	fmt.Fprintln(out, "Compile a regular expression into a deterministic automaton")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Options:")
	fs.PrintDefaults()
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Examples:")
	fmt.Fprintf(out, "  %s -pattern='(a|b)*c' -input=abc -input=abd\n", appName)
	fmt.Fprintf(out, "  %s -pattern='[a-z]+@[a-z]+' -name=Email -pkg=email -output=email_gen.go\n", appName)
	fmt.Fprintf(out, "  cat file.txt | %s -pattern='.*ERROR.*' -stdin\n", appName)
}
