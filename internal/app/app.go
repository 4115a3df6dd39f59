package app

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/vk/rester/internal/conf"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	resolver *conf.Resolver
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance with its own isolated logger. For commands that
// resolve configuration, the config file is loaded here, once; a failure to
// load it is a fatal startup error and panics (recovered at the entrypoint).
func NewApp(outW, logW io.Writer, appConfig *Config) *App {
	logger := newLogger(appConfig.LogLevel, appConfig.LogFormat, logW)
	logger.Debug("Logger configured successfully.")

	a := &App{outW: outW, logger: logger}

	// The scanner has no use for rester's runtime configuration, so the
	// config file is only consulted for run and resolve.
	if appConfig.Command == CommandRun || appConfig.Command == CommandResolve {
		a.resolver = conf.NewResolver(loadStore(logger))
		logger.Debug("Configuration store loaded.")
	}

	return a
}

// loadStore locates and loads the configuration file. A file that is simply
// absent at the default location yields an empty store, since every key can
// still be supplied through the environment. An absent file at an explicitly
// overridden path, or any unreadable or malformed file, is fatal.
func loadStore(logger *slog.Logger) *conf.Store {
	path, explicit, err := conf.Locate()
	if err != nil {
		panic(fmt.Errorf("failed to locate configuration: %w", err))
	}

	store, err := conf.Load(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			logger.Debug("No config file at default path, using environment only.", "path", path)
			return conf.Empty()
		}
		panic(fmt.Errorf("failed to load configuration: %w", err))
	}

	logger.Debug("Config file loaded.", "path", path, "keys", len(store.Keys()))
	return store
}
