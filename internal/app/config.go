package app

import (
	"errors"
	"fmt"
)

// Command selects which of rester's tools a Config drives.
type Command string

// The available commands.
const (
	CommandScan    Command = "scan"
	CommandRun     Command = "run"
	CommandResolve Command = "resolve"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	Command Command

	// scan
	ScanRoot string
	Prefix   string
	Exclude  []string

	// run
	ScriptPath string
	Target     string

	// resolve
	Key string

	LogFormat string
	LogLevel  string
}

// NewConfig validates a Config and fills in per-command defaults.
func NewConfig(cfg Config) (*Config, error) {
	switch cfg.Command {
	case CommandScan:
		if cfg.ScanRoot == "" {
			return nil, errors.New("scan requires a root directory")
		}
		if cfg.Prefix == "" {
			return nil, errors.New("scan requires a non-empty name prefix")
		}
	case CommandRun:
		if cfg.ScriptPath == "" {
			return nil, errors.New("run requires a script path")
		}
		if cfg.Target == "" {
			cfg.Target = "main"
		}
	case CommandResolve:
		if cfg.Key == "" {
			return nil, errors.New("resolve requires a configuration key")
		}
	default:
		return nil, fmt.Errorf("unknown command %q", cfg.Command)
	}

	return &cfg, nil
}
