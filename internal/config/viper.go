// Package config resolves client settings from explicit values, the process
// environment and Viper-managed configuration.
package config

import (
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/kappaml/kappaml-go/pkg/constants"
	"github.com/kappaml/kappaml-go/pkg/errors"
)

// GetString is a helper to get string values from Viper.
// It checks both OS environment variables and Viper configuration.
func GetString(key string) string {
	osValue := os.Getenv(key)
	viperValue := viper.GetString(key)

	if viperValue == "" && osValue != "" {
		return osValue
	}
	return viperValue
}

// ResolveAPIKey returns the explicit key when set, otherwise the value of
// KAPPAML_API_KEY from the environment, otherwise the kappaml_api_key config
// entry. It fails with a ConfigError when none of them yields a key.
func ResolveAPIKey(explicit string) (string, error) {
	if key := strings.TrimSpace(explicit); key != "" {
		return key, nil
	}
	if key := strings.TrimSpace(GetString(constants.APIKeyEnvVar)); key != "" {
		return key, nil
	}
	if key := strings.TrimSpace(viper.GetString(constants.APIKeyConfigKey)); key != "" {
		return key, nil
	}
	return "", errors.NewConfigError(
		"client",
		"API key must be provided or set as "+constants.APIKeyEnvVar+" env var",
		errors.ErrAPIKeyRequired,
	)
}

// ResolveBaseURL returns the explicit URL when set, otherwise a configured
// override, otherwise the hosted API endpoint. Trailing slashes are trimmed.
func ResolveBaseURL(explicit string) string {
	url := explicit
	if url == "" {
		url = viper.GetString(constants.BaseURLConfigKey)
	}
	if url == "" {
		url = constants.DefaultBaseURL
	}
	return strings.TrimRight(url, "/")
}
