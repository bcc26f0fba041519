package app

import "errors"

// Config holds all the process-level configuration for an App instance.
// Fields with env tags can be overridden by environment variables before
// flags apply.
type Config struct {
	// ManifestPath points at an HCL runtime manifest. Empty runs the
	// built-in defaults.
	ManifestPath string

	// Features overrides the manifest's feature list when non-empty.
	Features []string

	// TickLimit bounds the run; nil defers to the manifest, and a manifest
	// without a limit runs until cancellation.
	TickLimit *uint64

	// FailurePolicy overrides the manifest's policy when non-empty.
	FailurePolicy string

	// Parallel forces wave-concurrent execution on.
	Parallel bool

	LogFormat       string `env:"TICKCORE_LOG_FORMAT"`
	LogLevel        string `env:"TICKCORE_LOG_LEVEL"`
	HealthcheckPort int    `env:"TICKCORE_HEALTHCHECK_PORT"`
}

// NewConfig validates a Config.
func NewConfig(cfg Config) (*Config, error) {
	switch cfg.FailurePolicy {
	case "", "abort", "continue":
	default:
		return nil, errors.New("invalid failure-policy: must be 'abort' or 'continue'")
	}
	return &cfg, nil
}
