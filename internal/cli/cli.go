package cli

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/vk/rester/internal/app"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

const usageText = `
rester - a REST scripting tool with layered configuration.

Usage:
  rester [options] <command> [arguments]

Commands:
  scan <root-dir> <prefix> [--exclude <name>]...
      Find every call expression under root-dir whose callee name starts
      with prefix. Prints "path:line: name" per match.

  run <script.hcl> [target]
      Evaluate a rester script and perform the definition named target
      (default "main").

  resolve <key>
      Print the configured value for key, environment over file.

Options:
`

// stringList collects the values of a repeatable flag.
type stringList []string

func (s *stringList) String() string {
	return strings.Join(*s, ",")
}

func (s *stringList) Set(v string) error {
	*s = append(*s, v)
	return nil
}

// Parse processes command-line arguments. It returns a populated app.Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	flagSet := flag.NewFlagSet("rester", flag.ContinueOnError)
	flagSet.SetOutput(output)
	flagSet.Usage = func() {
		fmt.Fprint(output, usageText)
		flagSet.PrintDefaults()
	}

	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}

	rest := flagSet.Args()
	if len(rest) == 0 {
		flagSet.Usage()
		return nil, true, nil
	}

	cfg := app.Config{
		LogFormat: logFormat,
		LogLevel:  logLevel,
	}

	command, rest := rest[0], rest[1:]
	switch app.Command(command) {
	case app.CommandScan:
		if err := parseScan(&cfg, rest, output); err != nil {
			return nil, false, err
		}
	case app.CommandRun:
		if err := parseRun(&cfg, rest); err != nil {
			return nil, false, err
		}
	case app.CommandResolve:
		if err := parseResolve(&cfg, rest); err != nil {
			return nil, false, err
		}
	default:
		return nil, false, &ExitError{Code: 2, Message: fmt.Sprintf("unknown command %q (expected scan, run or resolve)", command)}
	}

	config, err := app.NewConfig(cfg)
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	return config, false, nil
}

// parseScan handles `scan <root> <prefix> [--exclude name]...`. The flag
// package stops at the first positional argument, so positionals are peeled
// off one at a time and parsing resumes; --exclude is accepted on either
// side of them.
func parseScan(cfg *app.Config, args []string, output io.Writer) error {
	flagSet := flag.NewFlagSet("rester scan", flag.ContinueOnError)
	flagSet.SetOutput(output)

	var exclude stringList
	flagSet.Var(&exclude, "exclude", "Exact call name to leave out of the report. Repeatable.")

	var positionals []string
	for {
		if err := flagSet.Parse(args); err != nil {
			if err == flag.ErrHelp {
				return &ExitError{Code: 2, Message: "see 'rester -h' for usage"}
			}
			return &ExitError{Code: 2, Message: err.Error()}
		}
		remaining := flagSet.Args()
		if len(remaining) == 0 {
			break
		}
		positionals = append(positionals, remaining[0])
		args = remaining[1:]
	}

	if len(positionals) != 2 {
		return &ExitError{Code: 2, Message: "usage: rester scan <root-dir> <prefix> [--exclude <name>]..."}
	}

	cfg.Command = app.CommandScan
	cfg.ScanRoot = positionals[0]
	cfg.Prefix = positionals[1]
	cfg.Exclude = exclude
	return nil
}

// parseRun handles `run <script> [target]`.
func parseRun(cfg *app.Config, args []string) error {
	if len(args) < 1 || len(args) > 2 {
		return &ExitError{Code: 2, Message: "usage: rester run <script.hcl> [target]"}
	}

	cfg.Command = app.CommandRun
	cfg.ScriptPath = args[0]
	if len(args) == 2 {
		cfg.Target = args[1]
	}
	return nil
}

// parseResolve handles `resolve <key>`.
func parseResolve(cfg *app.Config, args []string) error {
	if len(args) != 1 {
		return &ExitError{Code: 2, Message: "usage: rester resolve <key>"}
	}

	cfg.Command = app.CommandResolve
	cfg.Key = args[0]
	return nil
}
