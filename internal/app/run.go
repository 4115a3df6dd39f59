package app

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/vk/rester/internal/ctxlog"
	"github.com/vk/rester/internal/httpclient"
	"github.com/vk/rester/internal/scan"
	"github.com/vk/rester/internal/script"
)

// Run executes the configured command.
func (a *App) Run(ctx context.Context, appConfig *Config) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.", "command", string(appConfig.Command))

	switch appConfig.Command {
	case CommandScan:
		return a.runScan(ctx, appConfig)
	case CommandRun:
		return a.runScript(ctx, appConfig)
	case CommandResolve:
		return a.runResolve(ctx, appConfig)
	default:
		return fmt.Errorf("unknown command %q", appConfig.Command)
	}
}

// runScan prints one line per matching call site. Zero matches is a normal,
// successful outcome.
func (a *App) runScan(ctx context.Context, appConfig *Config) error {
	sites, err := scan.New().Scan(ctx, appConfig.ScanRoot, appConfig.Prefix, appConfig.Exclude)
	if err != nil {
		return err
	}

	for _, site := range sites {
		fmt.Fprintln(a.outW, site.String())
	}

	a.logger.Debug("Scan finished.", "matches", len(sites))
	return nil
}

// runScript evaluates the script, performs the target operation and prints
// its result as JSON.
func (a *App) runScript(ctx context.Context, appConfig *Config) error {
	s, err := script.Load(appConfig.ScriptPath)
	if err != nil {
		return err
	}

	values, err := script.Evaluate(s, a.resolver)
	if err != nil {
		return err
	}
	a.logger.Debug("Script evaluated.", "definitions", len(values))

	target, ok := values[appConfig.Target]
	if !ok {
		return fmt.Errorf("script %s defines no %q (defined: %s)",
			appConfig.ScriptPath, appConfig.Target, strings.Join(s.Names(), ", "))
	}

	operation, err := script.AsOperation(target)
	if err != nil {
		return err
	}

	client := httpclient.New()
	defer client.Close()

	if err := operation.Perform(ctx, client); err != nil {
		return fmt.Errorf("performing %q: %w", appConfig.Target, err)
	}

	encoder := json.NewEncoder(a.outW)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(operation.Result()); err != nil {
		return fmt.Errorf("encoding result of %q: %w", appConfig.Target, err)
	}
	return nil
}

// runResolve prints the layered-resolved value of a single key.
func (a *App) runResolve(ctx context.Context, appConfig *Config) error {
	value, err := a.resolver.Resolve(appConfig.Key)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.outW, value)
	return nil
}
