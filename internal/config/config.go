// Package config defines the global configuration structure for the fieldwatch
// service. Configuration is loaded once at process initialization and is
// immutable thereafter. It follows 12-Factor App principles by strictly
// separating code from configuration.
//
// Values are resolved via a priority chain:
//
//	OS Environment (Highest) -> Dotenv File (Lowest)
//
// Any missing required value or invalid format fails startup immediately.
package config

import (
	"time"

	"fieldwatch/internal/types"
)

// SecretString is an alias for types.SecretString, the redacted secret type
// used throughout configuration to prevent accidental logging of sensitive
// values.
type SecretString = types.SecretString

// Config is the top-level configuration struct for the fieldwatch service.
// It is populated once during process initialization and never modified.
// Sub-components receive only the specific config subsets they require.
type Config struct {
	// System Metadata
	Environment string `envconfig:"APP_ENV" validate:"required,oneof=local dev staging prod"`
	Service     string `envconfig:"SERVICE_NAME" default:"fieldwatch"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`

	// Timezone is the IANA zone the practice schedule and monitoring window
	// are interpreted in.
	Timezone string `envconfig:"TIMEZONE" default:"America/New_York"`

	// Domain Configurations
	Server   ServerConfig
	Location LocationConfig
	Policy   PolicyConfig
	NWS      NWSConfig
	Slack    SlackConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port            string        `envconfig:"PORT" default:"8080"`
	ReadTimeout     time.Duration `envconfig:"SERVER_READ_TIMEOUT" default:"10s"`
	WriteTimeout    time.Duration `envconfig:"SERVER_WRITE_TIMEOUT" default:"30s"`
	ShutdownTimeout time.Duration `envconfig:"SERVER_SHUTDOWN_TIMEOUT" default:"15s"`
}

// LocationConfig identifies the monitored point and its observation station.
// The defaults are the venue this service was built for.
type LocationConfig struct {
	Latitude  float64 `envconfig:"LATITUDE" default:"39.4143"`
	Longitude float64 `envconfig:"LONGITUDE" default:"-77.4105"`
	StationID string  `envconfig:"STATION_ID" default:"KFDK" validate:"required"`
}

// PolicyConfig holds the rule policy source and evaluation tuning.
type PolicyConfig struct {
	Path          string `envconfig:"POLICY_PATH" default:"policy.json" validate:"required"`
	FuturePeriods int    `envconfig:"FUTURE_PERIODS" default:"4" validate:"min=1,max=10"`
}

// NWSConfig holds the weather API endpoint and the identifying User-Agent
// api.weather.gov requires.
type NWSConfig struct {
	BaseURL   string        `envconfig:"NWS_BASE_URL" default:"https://api.weather.gov" validate:"required,url"`
	UserAgent string        `envconfig:"NWS_USER_AGENT" default:"fieldwatch/1.0 (ops@fieldwatch.io)"`
	Timeout   time.Duration `envconfig:"NWS_TIMEOUT" default:"15s"`
}

// SlackConfig holds the notification sink credentials. Both values are
// required for delivery; the notifier rejects construction without them, but
// the read-only API surface runs fine with neither set.
type SlackConfig struct {
	BotToken SecretString `envconfig:"SLACK_BOT_TOKEN"`
	Channel  string       `envconfig:"USER_SLACK_ID"`
	BaseURL  string       `envconfig:"SLACK_BASE_URL" default:"https://slack.com"`
}

// ConfigErrorType categorizes configuration loading failures to aid debugging.
type ConfigErrorType string

const (
	// ErrValidation indicates the configuration failed struct validation rules.
	ErrValidation ConfigErrorType = "VALIDATION_FAILED"
	// ErrParsing indicates a failure when parsing environment variable values
	// into their target types.
	ErrParsing ConfigErrorType = "PARSING_FAILED"
	// ErrTimezone indicates the configured timezone could not be loaded.
	ErrTimezone ConfigErrorType = "TIMEZONE_FAILED"
)
