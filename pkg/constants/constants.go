// Package constants provides shared constants used throughout the kappaml SDK.
// This includes the API endpoint, authentication names, timeouts, polling
// cadence and log rotation limits that should be consistent across the module.
package constants

import "time"

// API constants describe the remote KappaML service.
const (
	// DefaultBaseURL is the base endpoint of the hosted KappaML API
	DefaultBaseURL = "https://api.kappaml.com/v1"

	// APIKeyEnvVar is the environment variable read when no API key is supplied
	APIKeyEnvVar = "KAPPAML_API_KEY"

	// APIKeyHeader is the request header carrying the API key
	APIKeyHeader = "X-API-Key"

	// APIKeyConfigKey is the viper key holding the API key in config files
	APIKeyConfigKey = "kappaml_api_key"

	// BaseURLConfigKey is the viper key overriding the API base URL
	BaseURLConfigKey = "kappaml_base_url"
)

// Timeout constants define various timeout durations used in the SDK
const (
	// DefaultHTTPTimeout is the per-request timeout for calls to the KappaML API
	DefaultHTTPTimeout = 30 * time.Second

	// DefaultDeploymentTimeout is how long CreateModel waits for a deployment
	DefaultDeploymentTimeout = 60 * time.Second

	// DeploymentPollInterval is the fixed delay between deployment status checks
	DeploymentPollInterval = 5 * time.Second

	// CommandTimeout is the default timeout for CLI commands
	CommandTimeout = 10 * time.Minute

	// ShutdownTimeout bounds graceful shutdown of the CLI
	ShutdownTimeout = 5 * time.Second
)

// Deployment status values reported by the service.
const (
	// StatusDeployed marks a model ready to serve learn and predict requests
	StatusDeployed = "Deployed"

	// StatusFailed marks a model whose deployment failed server-side
	StatusFailed = "Failed"

	// StatusPending marks a model still being provisioned
	StatusPending = "Pending"
)

// Logging constants
const (
	// LogRotationSizeMB is the maximum size in megabytes of a log file before rotation
	LogRotationSizeMB = 10

	// LogRotationAgeDays is the maximum age in days of rotated log files
	LogRotationAgeDays = 7

	// LogRotationBackups is the maximum number of old log files to retain
	LogRotationBackups = 5
)
