/*
File    : treewalk/cmd/lox/main.go
Author  : amaji
*/

// Command lox is the Lox front end: a REPL when run with no
// arguments, or a script runner when given exactly one file, per
// spec.md §6's external-interface contract. Argument parsing follows
// the cobra rootCmd/RunE shape aledsdavies-opal's cmd/devcmd/main.go
// uses, in place of the teacher's raw os.Args switch
// (go-mix/main/main.go) — chosen to diversify the dependency surface
// the way SPEC_FULL.md's domain-stack section calls for.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/amaji/treewalk/internal/diag"
	"github.com/amaji/treewalk/internal/replkit"
	"github.com/amaji/treewalk/lox/interp"
	"github.com/amaji/treewalk/lox/lexer"
	"github.com/amaji/treewalk/lox/parser"
	"github.com/amaji/treewalk/lox/resolve"
)

const version = "0.1.0"

const banner = `
 _
| |    _____  __
| |   / _ \ \/ /
| |__| (_) >  <
|_____\___/_/\_\
`

// run executes a full Lox source text against a fresh Interpreter and
// fresh resolver state and returns its diagnostics; it is used for
// one-shot file execution.
func run(out io.Writer, source string) []diag.Diagnostic {
	toks, lexDiags := lexer.New(source).ScanTokens()
	if len(lexDiags) > 0 {
		return lexDiags
	}
	stmts, parseDiags := parser.New(toks).Parse()
	if len(parseDiags) > 0 {
		return parseDiags
	}
	locals, resolveDiags := resolve.Resolve(stmts)
	if len(resolveDiags) > 0 {
		return resolveDiags
	}
	return interp.New(out).Interpret(stmts, locals)
}

// replEngine adapts a single long-lived Interpreter to replkit.Engine,
// so variable/function/class declarations persist across REPL lines
// the way they would in a file. Printed output goes to the
// Interpreter's own writer (os.Stdout, set in runREPL); Eval does not
// write to w.
type replEngine struct {
	in *interp.Interpreter
}

func (e *replEngine) Eval(w io.Writer, line string) []diag.Diagnostic {
	toks, lexDiags := lexer.New(line).ScanTokens()
	if len(lexDiags) > 0 {
		return lexDiags
	}
	stmts, parseDiags := parser.New(toks).Parse()
	if len(parseDiags) > 0 {
		return parseDiags
	}
	locals, resolveDiags := resolve.Resolve(stmts)
	if len(resolveDiags) > 0 {
		return resolveDiags
	}
	return e.in.Interpret(stmts, locals)
}

func runFile(path string) int {
	source, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	diags := run(os.Stdout, string(source))
	for _, d := range diags {
		fmt.Fprintln(os.Stderr, d.String())
	}
	switch diag.Classify(diags) {
	case diag.ExitRuntimeError:
		return 2
	case diag.ExitStaticError:
		return 1
	default:
		return 0
	}
}

func runREPL() {
	engine := &replEngine{in: interp.New(os.Stdout)}
	cfg, _ := replkit.LoadConfig(replkit.DefaultConfigPath())
	r := replkit.New(banner, version, "amaji", "------------------------------", "lox> ", engine)
	if err := r.Start(os.Stdout, cfg); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func main() {
	root := &cobra.Command{
		Use:     "lox [script]",
		Short:   "Lox tree-walking interpreter",
		Version: version,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				runREPL()
				return nil
			}
			os.Exit(runFile(args[0]))
			return nil
		},
	}
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(64)
	}
}
