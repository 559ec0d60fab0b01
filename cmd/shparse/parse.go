package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mako10k/shparse/internal/diagnostics"
	"github.com/mako10k/shparse/internal/shellsyntax"
)

func newParseCmd() *cobra.Command {
	var script string
	cmd := &cobra.Command{
		Use:   "parse [file]",
		Short: "Parse input and print its canonical form plus diagnostics",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(script, args, false)
		},
	}
	cmd.Flags().StringVarP(&script, "command", "c", "", "parse SCRIPT instead of a file or stdin")
	return cmd
}

func newFmtCmd() *cobra.Command {
	var script string
	cmd := &cobra.Command{
		Use:   "fmt [file]",
		Short: "Parse input and print only its canonical form",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(script, args, true)
		},
	}
	cmd.Flags().StringVarP(&script, "command", "c", "", "parse SCRIPT instead of a file or stdin")
	return cmd
}

// runParse implements both `parse` and `fmt`; quiet suppresses the
// extra diagnostics line that `parse` prints on success.
func runParse(script string, args []string, quiet bool) error {
	input, err := readInput(script, args)
	if err != nil {
		return err
	}

	root, err := shellsyntax.Parse(input)
	logParseAttempt(input, root, err)
	if err != nil {
		if failure, ok := err.(shellsyntax.ParseFailure); ok {
			fmt.Fprintf(os.Stderr, "%T at position %d: %v\n", failure, failure.Pos(), failure)
		} else {
			fmt.Fprintf(os.Stderr, "%v\n", err)
		}
		return fmt.Errorf("parse failed")
	}

	canonical := shellsyntax.FormatStatements(root)
	joined := strings.Join(canonical, "; ")
	if !quiet {
		fmt.Printf("ok, %d statement(s):\n", len(canonical))
	}
	fmt.Println(joined)
	return nil
}

func logParseAttempt(input string, root *shellsyntax.Command, err error) {
	if logger == nil {
		return
	}
	event := diagnostics.ParseEvent{Input: input, Success: err == nil}
	if err != nil {
		if failure, ok := err.(shellsyntax.ParseFailure); ok {
			event.ErrorKind = fmt.Sprintf("%T", failure)
			event.Position = failure.Pos()
		} else {
			event.ErrorKind = fmt.Sprintf("%T", err)
		}
	} else {
		event.Canonical = strings.Join(shellsyntax.FormatStatements(root), "; ")
	}
	if logErr := logger.LogEvent(event); logErr != nil {
		fmt.Fprintf(os.Stderr, "audit log write failed: %v\n", logErr)
	}
}
