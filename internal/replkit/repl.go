/*
File    : treewalk/internal/replkit/repl.go
Author  : amaji
*/

// Package replkit is the interactive shell shared by cmd/lox and
// cmd/monkey, generalized from the teacher's repl.Repl
// (go-mix/repl/repl.go) to drive either language through a small
// Engine interface instead of being wired directly to one evaluator.
// The banner/color/readline/history shape is kept as-is; what changes
// per language is only what Engine.Eval does with a line of input.
package replkit

import (
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/fatih/color"

	"github.com/amaji/treewalk/internal/diag"
)

var (
	blueColor   = color.New(color.FgBlue)
	yellowColor = color.New(color.FgYellow)
	redColor    = color.New(color.FgRed)
	greenColor  = color.New(color.FgGreen)
	cyanColor   = color.New(color.FgCyan)
)

// Engine is whatever a REPL line gets handed to: lox and monkey each
// implement it over their own parser/resolver/evaluator pipeline (see
// cmd/lox and cmd/monkey). Eval should preserve state across calls
// (globals, function/class declarations) the way a real REPL session
// must.
type Engine interface {
	// Eval runs one line of source and writes any produced output to
	// w. It returns the diagnostics produced,
	// if any; an empty slice means the line ran cleanly.
	Eval(w io.Writer, line string) []diag.Diagnostic
}

// Repl is a readline-backed interactive session over an Engine.
type Repl struct {
	Banner  string
	Version string
	Author  string
	Line    string
	Prompt  string
	Engine  Engine
}

// New creates a Repl with the given display strings and Engine.
func New(banner, version, author, line, prompt string, engine Engine) *Repl {
	return &Repl{Banner: banner, Version: version, Author: author, Line: line, Prompt: prompt, Engine: engine}
}

// PrintBanner writes the startup banner to w.
func (r *Repl) PrintBanner(w io.Writer) {
	blueColor.Fprintf(w, "%s\n", r.Line)
	greenColor.Fprintf(w, "%s\n", r.Banner)
	blueColor.Fprintf(w, "%s\n", r.Line)
	yellowColor.Fprintln(w, "Version: "+r.Version+" | Author: "+r.Author)
	blueColor.Fprintf(w, "%s\n", r.Line)
	cyanColor.Fprintf(w, "%s\n", "Type your code and press enter")
	cyanColor.Fprintf(w, "%s\n", "Type '.exit' to quit")
	cyanColor.Fprintf(w, "%s\n", "Use up/down arrows to navigate command history")
	blueColor.Fprintf(w, "%s\n", r.Line)
}

// Start runs the read-eval-print loop against w until the user exits
// (`.exit`, Ctrl+D, or a readline error), applying cfg's overrides
// (custom prompt, disabled color, alternate history file) on top of
// the Repl's own defaults.
func (r *Repl) Start(w io.Writer, cfg Config) error {
	if cfg.DisableColor {
		color.NoColor = true
	}
	prompt := r.Prompt
	if cfg.Prompt != "" {
		prompt = cfg.Prompt
	}

	r.PrintBanner(w)

	rlConfig := &readline.Config{Prompt: prompt}
	if cfg.HistoryFile != "" {
		rlConfig.HistoryFile = cfg.HistoryFile
	}
	rl, err := readline.NewEx(rlConfig)
	if err != nil {
		return fmt.Errorf("replkit: starting readline: %w", err)
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		if err != nil {
			fmt.Fprintln(w, "Good Bye!")
			return nil
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if line == ".exit" {
			fmt.Fprintln(w, "Good Bye!")
			return nil
		}

		rl.SaveHistory(line)
		r.evalLine(w, line)
	}
}

func (r *Repl) evalLine(w io.Writer, line string) {
	defer func() {
		if rec := recover(); rec != nil {
			redColor.Fprintf(w, "[internal error] %v\n", rec)
		}
	}()

	diags := r.Engine.Eval(w, line)
	for _, d := range diags {
		redColor.Fprintln(w, d.String())
	}
}
