// Package appcontext provides the shared application context interface
// used by all commands. Commands depend on this interface rather than the
// concrete App so they can be tested against a mock.
package appcontext

import (
	"github.com/rs/zerolog"

	kappaml "github.com/kappaml/kappaml-go"
)

// Interface defines the application context interface that commands need.
// The App struct from cmd/kappaml/app implements it.
type Interface interface {
	// Client returns the KappaML client, creating it lazily on first use.
	// It fails with a configuration error when no API key is available.
	Client() (kappaml.Client, error)

	// Logger returns the configured logger instance.
	Logger() *zerolog.Logger

	// OutputFormat returns the configured output format (table, json, yaml).
	OutputFormat() string

	// Version returns the application version string.
	Version() string

	// Commit returns the git commit hash.
	Commit() string

	// Date returns the build date.
	Date() string

	// BuiltBy returns the build system identifier.
	BuiltBy() string
}
