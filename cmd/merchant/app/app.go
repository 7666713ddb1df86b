// Package app holds the CLI application context: configuration loaded from
// flags, environment, and .env files, and the logger built from it.
package app

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/treeforge/merchant/pkg/logging"
)

// App is the shared state behind every command invocation.
type App struct {
	Config *Config
	Logger zerolog.Logger

	version string
	commit  string
}

// New creates the application context with configuration loaded from the
// environment. Flag values are bound in later by cobra, before
// SetupLogger runs.
func New(version, commit string) (*App, error) {
	config, err := LoadConfig()
	if err != nil {
		return nil, err
	}
	return &App{
		Config:  config,
		Logger:  *logging.Default(),
		version: version,
		commit:  commit,
	}, nil
}

// Version returns the version string for cobra.
func (a *App) Version() string {
	return fmt.Sprintf("%s (%s)", a.version, a.commit)
}

// SetupLogger finalizes the logger once flags have been parsed.
func (a *App) SetupLogger() {
	a.Logger = NewLogger(a.Config)
	logging.SetDefault(a.Logger)
}

// ExitOnError reports a fatal error and exits non-zero.
func ExitOnError(err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "merchant: %v\n", err)
	os.Exit(1)
}
