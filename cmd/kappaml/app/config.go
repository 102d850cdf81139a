package app

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/kappaml/kappaml-go/pkg/constants"
)

// Config holds the application configuration loaded from config files,
// environment variables and .env files.
type Config struct {
	// Global flags
	Verbose bool
	Quiet   bool
	NoColor bool
	Format  string

	// Config file
	ConfigFile string

	// Client configuration
	APIKey       string
	BaseURL      string
	HTTPTimeout  time.Duration
	PollInterval time.Duration

	// Logging configuration
	LogLevel  string
	LogFormat string
	LogOutput string
}

// LoadConfig loads configuration from all sources in order of precedence:
// 1. Command-line flags (applied later by UpdateFromFlags)
// 2. Environment variables
// 3. .env files
// 4. Config file (~/.kappaml.yaml)
// 5. Defaults
func LoadConfig() (*Config, error) {
	loadEnvFiles()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))

	if err := bindEnv(); err != nil {
		return nil, err
	}

	if home, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".kappaml")
	}

	// Read config file (ignore error if not found)
	_ = viper.ReadInConfig()

	return fromViper(), nil
}

// ReadConfigFile merges an explicit config file over the loaded values.
func (c *Config) ReadConfigFile(path string) error {
	viper.SetConfigFile(filepath.Clean(path))
	if err := viper.ReadInConfig(); err != nil {
		return fmt.Errorf("reading config file %s: %w", path, err)
	}

	loaded := fromViper()
	c.ConfigFile = loaded.ConfigFile
	if c.APIKey == "" {
		c.APIKey = loaded.APIKey
	}
	if c.BaseURL == "" {
		c.BaseURL = loaded.BaseURL
	}
	if c.HTTPTimeout == 0 {
		c.HTTPTimeout = loaded.HTTPTimeout
	}
	if c.PollInterval == 0 {
		c.PollInterval = loaded.PollInterval
	}
	if c.Format == "" {
		c.Format = loaded.Format
	}
	return nil
}

// UpdateFromFlags updates config values from parsed command flags.
// Flag values take precedence over config file and env vars.
func (c *Config) UpdateFromFlags(verbose, quiet, noColor bool, format, logLevel string) {
	c.Verbose = verbose
	c.Quiet = quiet
	c.NoColor = noColor
	if format != "" {
		c.Format = format
	}
	if logLevel != "" {
		c.LogLevel = logLevel
	}
}

func fromViper() *Config {
	return &Config{
		Verbose: viper.GetBool("verbose"),
		Quiet:   viper.GetBool("quiet"),
		NoColor: viper.GetBool("no-color"),
		Format:  viper.GetString("format"),

		ConfigFile: viper.ConfigFileUsed(),

		APIKey:       viper.GetString(constants.APIKeyConfigKey),
		BaseURL:      viper.GetString(constants.BaseURLConfigKey),
		HTTPTimeout:  viper.GetDuration("http_timeout"),
		PollInterval: viper.GetDuration("poll_interval"),

		LogLevel:  os.Getenv("LOG_LEVEL"),
		LogFormat: getEnvOrDefault("LOG_FORMAT", "auto"),
		LogOutput: getEnvOrDefault("LOG_OUTPUT", "stderr"),
	}
}

// loadEnvFiles loads environment variables from .env files.
// Variables already set in the environment are not overridden.
func loadEnvFiles() {
	for _, envFile := range []string{".env.local", ".env"} {
		_ = godotenv.Load(envFile)
	}
}

// bindEnv maps the config keys to their environment variables.
func bindEnv() error {
	bindings := map[string]string{
		constants.APIKeyConfigKey:  constants.APIKeyEnvVar,
		constants.BaseURLConfigKey: "KAPPAML_BASE_URL",
		"http_timeout":             "KAPPAML_HTTP_TIMEOUT",
		"poll_interval":            "KAPPAML_POLL_INTERVAL",
	}
	for key, env := range bindings {
		if err := viper.BindEnv(key, env); err != nil {
			return fmt.Errorf("binding %s to %s: %w", key, env, err)
		}
	}
	return nil
}

// getEnvOrDefault returns the environment variable value or the default if not set.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
