package main

import (
	"github.com/spf13/cobra"

	"github.com/mako10k/shparse/internal/repl"
)

func newReplCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Start the interactive line-editing front end",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			session := repl.New(repl.Options{
				HistoryFile: cfg.HistoryFile,
				NoColor:     noColor || cfg.NoColor,
				EchoAST:     cfg.EchoAST,
				Logger:      logger,
			})
			return session.Run()
		},
	}
}
