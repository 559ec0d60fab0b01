// Command shparse parses POSIX-ish shell statements and prints their
// canonical form. It never executes anything it parses.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mako10k/shparse/internal/config"
	"github.com/mako10k/shparse/internal/diagnostics"
)

var (
	configPath string
	auditLog   string
	noColor    bool

	cfg    *config.File
	logger diagnostics.Logger
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "shparse",
		Short:         "Parse and canonicalize POSIX-ish shell statements",
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return loadShared()
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return closeShared()
		},
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "YAML config file path")
	rootCmd.PersistentFlags().StringVar(&auditLog, "audit-log", "", "JSON-lines parse-event audit log path")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")

	rootCmd.AddCommand(newParseCmd(), newFmtCmd(), newReplCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadShared resolves the config file and opens the audit logger, both
// shared across the parse/fmt/repl subcommands.
func loadShared() error {
	loaded, err := config.Load(configPath, configPath != "")
	if err != nil {
		return err
	}
	cfg = loaded

	path := auditLog
	if path == "" {
		path = cfg.AuditLogPath
	}
	if path != "" {
		l, err := diagnostics.NewFileLogger(path)
		if err != nil {
			return fmt.Errorf("failed to open audit log: %w", err)
		}
		logger = l
	}
	return nil
}

func closeShared() error {
	if logger != nil {
		return logger.Close()
	}
	return nil
}
