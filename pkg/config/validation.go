package config

import (
	"fmt"
	"strconv"
	"strings"

	errs "artwork-dedup/pkg/errors"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Value   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("config validation error for field '%s' with value '%s': %s", e.Field, e.Value, e.Message)
}

// ConfigValidator accumulates validation errors so startup can report them all
// at once instead of failing one field at a time.
type ConfigValidator struct {
	errors []ValidationError
}

func NewConfigValidator() *ConfigValidator {
	return &ConfigValidator{errors: make([]ValidationError, 0)}
}

func (cv *ConfigValidator) AddError(field, value, message string) {
	cv.errors = append(cv.errors, ValidationError{Field: field, Value: value, Message: message})
}

func (cv *ConfigValidator) HasErrors() bool { return len(cv.errors) > 0 }

func (cv *ConfigValidator) GetErrorsAsString() string {
	var errorStrings []string
	for _, err := range cv.errors {
		errorStrings = append(errorStrings, err.Error())
	}
	return strings.Join(errorStrings, "\n")
}

// Validate validates the entire configuration. Similarity weight/threshold
// invariants are validated separately by similarity.Config.Validate once the
// engine config is resolved.
func (c *Config) Validate() error {
	validator := NewConfigValidator()

	if c.DatabaseURL == "" {
		validator.AddError("DATABASE_URL", c.DatabaseURL, "database URL is required")
	} else if !strings.Contains(c.DatabaseURL, "@") || !strings.Contains(c.DatabaseURL, "/") {
		validator.AddError("DATABASE_URL", c.DatabaseURL, "invalid database URL format")
	}

	if c.Port == "" {
		validator.AddError("PORT", c.Port, "port is required")
	} else if port, err := strconv.Atoi(c.Port); err != nil || port < 1 || port > 65535 {
		validator.AddError("PORT", c.Port, "invalid port number (must be 1-65535)")
	}

	if c.CandidateRadiusMeters <= 0 {
		validator.AddError("CANDIDATE_RADIUS_METERS", fmt.Sprintf("%v", c.CandidateRadiusMeters), "radius must be positive")
	}
	if c.CandidateLimit <= 0 {
		validator.AddError("CANDIDATE_LIMIT", strconv.Itoa(c.CandidateLimit), "candidate limit must be positive")
	}
	if c.WorkerCount < 0 {
		validator.AddError("WORKER_COUNT", strconv.Itoa(c.WorkerCount), "worker count cannot be negative")
	}

	if c.LogFormat != "json" && c.LogFormat != "text" {
		validator.AddError("LOG_FORMAT", c.LogFormat, "log format must be 'json' or 'text'")
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		validator.AddError("LOG_LEVEL", c.LogLevel, "log level must be one of debug, info, warn, error")
	}

	switch c.Env {
	case "development", "staging", "production":
	default:
		validator.AddError("ENV", c.Env, "environment must be one of development, staging, production")
	}

	if validator.HasErrors() {
		return errs.NewValidation("config.Validate", fmt.Sprintf("configuration validation failed:\n%s", validator.GetErrorsAsString()), nil)
	}
	return nil
}
