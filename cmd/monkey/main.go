/*
File    : treewalk/cmd/monkey/main.go
Author  : amaji
*/

// Command monkey is the Monkey front end. It mirrors cmd/lox's shape
// (cobra root command, replkit-driven REPL, file runner) but collapses
// the exit-code space to 0/1 since Monkey has no resolver and
// therefore no separate static-error class to report (spec.md §6).
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/amaji/treewalk/internal/diag"
	"github.com/amaji/treewalk/internal/replkit"
	"github.com/amaji/treewalk/monkey/eval"
	"github.com/amaji/treewalk/monkey/object"
	"github.com/amaji/treewalk/monkey/parser"
)

const version = "0.1.0"

const banner = `
  __  __             _
 |  \/  | ___  _ __ | | _____ _   _
 | |\/| |/ _ \| '_ \| |/ / _ \ | | |
 | |  | | (_) | | | |   <  __/ |_| |
 |_|  |_|\___/|_| |_|_|\_\___|\__, |
                               |___/
`

func run(out io.Writer, source string, env *object.Environment, ev *eval.Evaluator) []diag.Diagnostic {
	prog, parseDiags := parser.New(source).ParseProgram()
	if len(parseDiags) > 0 {
		return parseDiags
	}
	return ev.Run(out, prog, env)
}

type replEngine struct {
	env *object.Environment
	ev  *eval.Evaluator
}

func (e *replEngine) Eval(w io.Writer, line string) []diag.Diagnostic {
	return run(w, line, e.env, e.ev)
}

func runFile(path string) int {
	source, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	env := object.NewEnvironment()
	diags := run(os.Stdout, string(source), env, eval.New())
	for _, d := range diags {
		fmt.Fprintln(os.Stderr, d.String())
	}
	if len(diags) > 0 {
		return 1
	}
	return 0
}

func runREPL() {
	engine := &replEngine{env: object.NewEnvironment(), ev: eval.New()}
	cfg, _ := replkit.LoadConfig(replkit.DefaultConfigPath())
	r := replkit.New(banner, version, "amaji", "------------------------------", "monkey> ", engine)
	if err := r.Start(os.Stdout, cfg); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func main() {
	root := &cobra.Command{
		Use:     "monkey [script]",
		Short:   "Monkey tree-walking interpreter",
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
		os.Exit(1)
	}
}
