// Package repl implements the interactive line-editing front end: a
// readline-backed loop that parses each accepted line and echoes its
// canonical form, without executing anything.
package repl

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"

	"github.com/mako10k/shparse/internal/diagnostics"
	"github.com/mako10k/shparse/internal/shellsyntax"
)

// Options configures a REPL session.
type Options struct {
	HistoryFile string
	NoColor     bool
	EchoAST     bool
	Logger      diagnostics.Logger // nil disables audit logging
	Prompt      string
}

// REPL is a stateless-between-lines parse-and-echo session.
type REPL struct {
	opts Options
}

// New builds a REPL from opts, filling in a default prompt if empty.
func New(opts Options) *REPL {
	if opts.Prompt == "" {
		opts.Prompt = "shparse> "
	}
	return &REPL{opts: opts}
}

// Run drives the session against stdin/stdout until the user types
// "exit"/"quit" or sends EOF. It returns nil on a clean exit.
func (r *REPL) Run() error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:            r.opts.Prompt,
		HistoryFile:       r.opts.HistoryFile,
		HistoryLimit:      1000,
		HistorySearchFold: true,
		AutoComplete:      r.createCompleter(),
		InterruptPrompt:   "^C",
		EOFPrompt:         "exit",
	})
	if err != nil {
		return fmt.Errorf("failed to start readline: %w", err)
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt {
				continue
			}
			if err == io.EOF {
				return nil
			}
			return err
		}

		input := strings.TrimSpace(line)
		switch input {
		case "":
			continue
		case "exit", "quit":
			return nil
		}

		r.evalLine(input)
	}
}

func (r *REPL) evalLine(input string) {
	cmd, err := shellsyntax.Parse(input)
	event := diagnostics.ParseEvent{Input: input}

	if err != nil {
		event.Success = false
		if failure, ok := err.(shellsyntax.ParseFailure); ok {
			event.ErrorKind = fmt.Sprintf("%T", failure)
			event.Position = failure.Pos()
			fmt.Printf("parse error: %T at position %d: %v\n", failure, failure.Pos(), failure)
		} else {
			event.ErrorKind = fmt.Sprintf("%T", err)
			fmt.Printf("parse error: %v\n", err)
		}
		r.logEvent(event)
		return
	}

	canonical := shellsyntax.FormatStatements(cmd)
	joined := strings.Join(canonical, "; ")
	event.Success = true
	event.Canonical = joined
	r.logEvent(event)

	if r.opts.EchoAST {
		fmt.Printf("%#v\n", cmd)
	}
	fmt.Println(joined)
}

func (r *REPL) logEvent(event diagnostics.ParseEvent) {
	if r.opts.Logger == nil {
		return
	}
	if err := r.opts.Logger.LogEvent(event); err != nil {
		fmt.Fprintf(os.Stderr, "audit log write failed: %v\n", err)
	}
}

// createCompleter offers the REPL's own pseudo-commands; shparse does
// not execute anything, so there is no external command table to draw
// completions from.
func (r *REPL) createCompleter() readline.AutoCompleter {
	items := []readline.PrefixCompleterInterface{
		readline.PcItem("exit"),
		readline.PcItem("quit"),
	}
	return readline.NewPrefixCompleter(items...)
}
