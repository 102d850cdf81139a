// Package app provides the application context and dependency management
// for the kappaml CLI. It centralizes configuration, logging and the
// lifecycle of the API client.
package app

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	kappaml "github.com/kappaml/kappaml-go"
	"github.com/kappaml/kappaml-go/internal/appcontext"
	"github.com/kappaml/kappaml-go/pkg/errors"
)

// Ensure App implements appcontext.Interface at compile time.
var _ appcontext.Interface = (*App)(nil)

// App represents the kappaml application with all its dependencies.
type App struct {
	// Version information
	version string
	commit  string
	date    string
	builtBy string

	config *Config
	logger *zerolog.Logger

	// Client instance (lazy-initialized, singleton)
	mu     sync.RWMutex
	client kappaml.Client
}

// New creates a new App instance with the given version information.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
	}

	config, err := LoadConfig()
	if err != nil {
		return nil, errors.NewConfigError("app", "failed to load config", err)
	}
	app.config = config

	logger := NewLogger(config)
	app.logger = &logger

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	return app, nil
}

// Version returns the version information.
func (a *App) Version() string {
	return a.version
}

// Commit returns the git commit hash.
func (a *App) Commit() string {
	return a.commit
}

// Date returns the build date.
func (a *App) Date() string {
	return a.date
}

// BuiltBy returns the build system identifier.
func (a *App) BuiltBy() string {
	return a.builtBy
}

// Config returns the application configuration.
func (a *App) Config() *Config {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// OutputFormat returns the configured output format.
func (a *App) OutputFormat() string {
	return a.config.Format
}

// Client returns the API client, creating it on first use.
// This is thread-safe and ensures only one instance is created.
func (a *App) Client() (kappaml.Client, error) {
	a.mu.RLock()
	if a.client != nil {
		c := a.client
		a.mu.RUnlock()
		return c, nil
	}
	a.mu.RUnlock()

	a.mu.Lock()
	defer a.mu.Unlock()

	if a.client != nil {
		return a.client, nil
	}

	c, err := kappaml.New(a.clientOptions()...)
	if err != nil {
		return nil, err
	}

	a.client = c
	return c, nil
}

// Shutdown releases the API client if one was created.
func (a *App) Shutdown(_ context.Context) error {
	a.mu.Lock()
	c := a.client
	a.mu.Unlock()

	if c == nil {
		return nil
	}
	if err := c.Close(); err != nil {
		a.logger.Error().Err(err).Msg("Failed to close client during shutdown")
		return err
	}
	return nil
}

// clientOptions constructs client options from the app configuration.
func (a *App) clientOptions() []kappaml.Option {
	opts := []kappaml.Option{kappaml.WithLogger(a.logger)}

	if a.config.APIKey != "" {
		opts = append(opts, kappaml.WithAPIKey(a.config.APIKey))
	}
	if a.config.BaseURL != "" {
		opts = append(opts, kappaml.WithBaseURL(a.config.BaseURL))
	}
	if a.config.HTTPTimeout > 0 {
		opts = append(opts, kappaml.WithHTTPTimeout(a.config.HTTPTimeout))
	}
	if a.config.PollInterval > 0 {
		opts = append(opts, kappaml.WithPollInterval(a.config.PollInterval))
	}

	return opts
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithConfig sets a custom configuration.
func WithConfig(config *Config) Option {
	return func(a *App) error {
		a.config = config
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		a.logger = logger
		return nil
	}
}

// WithClient sets a custom client instance (useful for testing).
func WithClient(c kappaml.Client) Option {
	return func(a *App) error {
		a.client = c
		return nil
	}
}
