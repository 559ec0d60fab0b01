package main

import (
	"fmt"
	"io"
	"os"
)

// readInput resolves the -c SCRIPT / file-argument / stdin precedence
// shared by the parse and fmt subcommands.
func readInput(script string, args []string) (string, error) {
	if script != "" {
		if len(args) > 0 {
			return "", fmt.Errorf("cannot specify both -c and a file argument")
		}
		return script, nil
	}
	if len(args) > 0 {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", fmt.Errorf("failed to read %s: %w", args[0], err)
		}
		return string(data), nil
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	return string(data), nil
}
