package cli

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/caarlos0/env/v11"

	"github.com/vk/tickcore/internal/app"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments on top of environment overrides. It
// returns a populated Config, a boolean indicating if the program should exit
// cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	flagSet := flag.NewFlagSet("tickcore", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
tickcore - a modular, feature-gated runtime core.

Usage:
  tickcore [options] [MANIFEST_PATH]

Arguments:
  MANIFEST_PATH
    Path to an .hcl runtime manifest. Omit it to run the built-in defaults.

Options:
`)
		flagSet.PrintDefaults()
	}

	// Environment variables seed the defaults; flags win over both.
	defaults := app.Config{
		LogFormat: "text",
		LogLevel:  "info",
	}
	if err := env.Parse(&defaults); err != nil {
		return nil, false, &ExitError{Code: ExitUsage, Message: err.Error()}
	}

	manifestFlag := flagSet.String("manifest", "", "Path to the runtime manifest file.")
	mFlag := flagSet.String("m", "", "Path to the runtime manifest file (shorthand).")
	featuresFlag := flagSet.String("features", "", "Comma-separated feature set override, e.g. 'core,counter'.")
	ticksFlag := flagSet.Int64("ticks", -1, "Number of ticks to run. Negative runs until cancelled.")
	policyFlag := flagSet.String("failure-policy", "", "Per-tick failure policy. Options: 'abort' or 'continue'.")
	parallelFlag := flagSet.Bool("parallel", false, "Run independent subsystems concurrently within a tick.")
	healthPortFlag := flagSet.Int("healthcheck-port", defaults.HealthcheckPort, "Port for the HTTP health check server. 0 is disabled.")
	logFormatFlag := flagSet.String("log-format", defaults.LogFormat, "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", defaults.LogLevel, "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: ExitUsage, Message: err.Error()}
	}

	path := ""
	if *manifestFlag != "" {
		path = *manifestFlag
	} else if *mFlag != "" {
		path = *mFlag
	} else if flagSet.NArg() > 0 {
		path = flagSet.Arg(0)
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: ExitUsage, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: ExitUsage, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}

	var features []string
	if *featuresFlag != "" {
		for _, f := range strings.Split(*featuresFlag, ",") {
			if f = strings.TrimSpace(f); f != "" {
				features = append(features, f)
			}
		}
	}

	var tickLimit *uint64
	if *ticksFlag >= 0 {
		n := uint64(*ticksFlag)
		tickLimit = &n
	}

	config, err := app.NewConfig(app.Config{
		ManifestPath:    path,
		Features:        features,
		TickLimit:       tickLimit,
		FailurePolicy:   strings.ToLower(*policyFlag),
		Parallel:        *parallelFlag,
		HealthcheckPort: *healthPortFlag,
		LogFormat:       logFormat,
		LogLevel:        logLevel,
	})
	if err != nil {
		return nil, false, &ExitError{Code: ExitUsage, Message: err.Error()}
	}

	return config, false, nil
}
