// Package config loads the shparse CLI's persistent defaults from a
// human-edited YAML file, in the same load-defaults-then-overlay-file
// shape the rest of this corpus uses for its own config files.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// File is the on-disk shape of a shparse config file.
type File struct {
	HistoryFile  string `yaml:"history_file"`
	AuditLogPath string `yaml:"audit_log_path"`
	NoColor      bool   `yaml:"no_color"`
	EchoAST      bool   `yaml:"echo_ast"`
}

// Default returns the built-in defaults used when no config file is
// present.
func Default() *File {
	return &File{
		HistoryFile:  defaultHistoryPath(),
		AuditLogPath: "",
		NoColor:      false,
		EchoAST:      false,
	}
}

func defaultHistoryPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".shparse_history"
	}
	return filepath.Join(homeDir, ".shparse_history")
}

// Load reads a YAML config file at path, overlaying it onto Default().
// If path does not exist and explicit is false (the caller didn't ask
// for this exact path), the defaults are returned unchanged. If
// explicit is true, a missing file is an error.
func Load(path string, explicit bool) (*File, error) {
	cfg := Default()

	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return cfg, nil
		}
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("explicitly specified config file does not exist: %s", path)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config file %s is not valid YAML: %w", path, err)
	}
	return cfg, nil
}
