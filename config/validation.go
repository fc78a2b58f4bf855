package config

import (
	"fmt"
	"strings"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// requiresUpstreamCredentials lists the environments that refuse to start
// without Edamam credentials. Development and test run against stubs.
var requiresUpstreamCredentials = map[Environment]bool{
	CI:         true,
	Production: true,
}

// ValidateConfig checks if the configuration meets the requirements for the current environment
func ValidateConfig(cfg *Config) error {
	env := GetEnvironment()

	var errs []ValidationError

	if cfg.ServerPort == "" {
		errs = append(errs, ValidationError{"SERVER_PORT", "must be set"})
	}

	switch cfg.DBDriver {
	case "sqlite":
		if cfg.DBPath == "" {
			errs = append(errs, ValidationError{"DB_PATH", "must be set when DB_DRIVER=sqlite"})
		}
	case "postgres":
		if cfg.DBHost == "" || cfg.DBName == "" {
			errs = append(errs, ValidationError{"DB_HOST/DB_NAME", "must be set when DB_DRIVER=postgres"})
		}
	default:
		errs = append(errs, ValidationError{"DB_DRIVER", fmt.Sprintf("unsupported driver %q", cfg.DBDriver)})
	}

	switch cfg.PlanPolicy {
	case "top_n", "random":
	default:
		errs = append(errs, ValidationError{"PLAN_POLICY", fmt.Sprintf("unknown policy %q", cfg.PlanPolicy)})
	}
	if cfg.PlanMaxPerCategory < 1 {
		errs = append(errs, ValidationError{"PLAN_MAX_PER_CATEGORY", "must be at least 1"})
	}
	if cfg.PlanConcurrency < 1 {
		errs = append(errs, ValidationError{"PLAN_CONCURRENCY", "must be at least 1"})
	}
	if cfg.EdamamRequestsPerMinute < 1 {
		errs = append(errs, ValidationError{"EDAMAM_REQUESTS_PER_MINUTE", "must be at least 1"})
	}
	if cfg.UpstreamTimeout <= 0 {
		errs = append(errs, ValidationError{"UPSTREAM_TIMEOUT", "must be positive"})
	}
	if cfg.UpstreamMaxRetries < 0 {
		errs = append(errs, ValidationError{"UPSTREAM_MAX_RETRIES", "must not be negative"})
	}

	if requiresUpstreamCredentials[env] {
		if cfg.EdamamAppID == "" {
			errs = append(errs, ValidationError{"EDAMAM_APP_ID", "is required in " + string(env)})
		}
		if cfg.EdamamAppKey == "" {
			errs = append(errs, ValidationError{"EDAMAM_APP_KEY", "is required in " + string(env)})
		}
	}

	if len(errs) == 0 {
		return nil
	}

	msgs := make([]string, len(errs))
	for i, e := range errs {
		msgs[i] = e.Error()
	}
	return fmt.Errorf("configuration validation failed:\n%s", strings.Join(msgs, "\n"))
}
