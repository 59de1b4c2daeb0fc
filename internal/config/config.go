// Package config parses command-line flags and environment overrides into
// the application configuration.
package config

import (
	"flag"
	"fmt"
	"io"

	apperrors "github.com/agbru/breakfast/internal/errors"
)

// EnvPrefix is prepended to every environment variable read by this package.
const EnvPrefix = "BREAKFAST_"

// AppConfig aggregates the application's configuration.
// Task delay ranges and failure probabilities are not part of it: they are
// compiled into the kitchen menu.
type AppConfig struct {
	// Seed initializes the random source. Zero selects a time-based seed.
	Seed uint64
	// Quiet suppresses the spinner and the per-task messages; only the
	// summary is printed.
	Quiet bool
	// Verbose enables debug logging on stderr.
	Verbose bool
	// NoColor disables ANSI colors.
	NoColor bool
	// Metrics prints the Prometheus text exposition of the run to stderr.
	Metrics bool
	// Completion, when set, prints a shell completion script and exits.
	Completion string
	// ShowVersion prints version information and exits.
	ShowVersion bool
}

// Validate checks the semantic consistency of the configuration.
func (c AppConfig) Validate() error {
	switch c.Completion {
	case "", "bash", "zsh", "fish", "powershell", "ps":
	default:
		return apperrors.NewConfigError("unsupported shell %q for --completion (accepted values: bash, zsh, fish, powershell)", c.Completion)
	}
	return nil
}

// ParseConfig parses args (without the program name) into an AppConfig.
// Priority is: CLI flags > environment variables > defaults.
//
// Parameters:
//   - programName: The name shown in usage output.
//   - args: The command-line arguments to parse.
//   - errorWriter: Destination for usage and parse errors.
//
// Returns:
//   - AppConfig: The parsed configuration.
//   - error: flag.ErrHelp when help was requested, or a ConfigError.
func ParseConfig(programName string, args []string, errorWriter io.Writer) (AppConfig, error) {
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errorWriter)
	fs.Usage = func() {
		fmt.Fprintf(errorWriter, "Usage: %s [options]\n\n", programName)
		fmt.Fprintf(errorWriter, "Prepares one breakfast order (coffee, toast, juice) in parallel and prints a summary.\n\n")
		fmt.Fprintf(errorWriter, "Options:\n")
		fs.PrintDefaults()
	}

	var config AppConfig
	fs.Uint64Var(&config.Seed, "seed", 0, "Seed for the random source (0 = time based).")
	fs.BoolVar(&config.Quiet, "quiet", false, "Print only the order summary.")
	fs.BoolVar(&config.Quiet, "q", false, "Shorthand for --quiet.")
	fs.BoolVar(&config.Verbose, "verbose", false, "Enable debug logging on stderr.")
	fs.BoolVar(&config.Verbose, "v", false, "Shorthand for --verbose.")
	fs.BoolVar(&config.NoColor, "no-color", false, "Disable colored output.")
	fs.BoolVar(&config.Metrics, "metrics", false, "Print run metrics in Prometheus text format to stderr.")
	fs.StringVar(&config.Completion, "completion", "", "Print a completion script for the given shell (bash, zsh, fish, powershell).")
	fs.BoolVar(&config.ShowVersion, "version", false, "Show version information.")
	fs.BoolVar(&config.ShowVersion, "V", false, "Shorthand for --version.")

	if err := fs.Parse(args); err != nil {
		return AppConfig{}, err
	}
	if fs.NArg() > 0 {
		err := apperrors.NewConfigError("unexpected arguments: %v", fs.Args())
		fmt.Fprintln(errorWriter, err)
		return AppConfig{}, err
	}

	if err := applyEnvOverrides(&config, fs); err != nil {
		fmt.Fprintln(errorWriter, err)
		return AppConfig{}, err
	}

	if err := config.Validate(); err != nil {
		fmt.Fprintln(errorWriter, err)
		return AppConfig{}, err
	}
	return config, nil
}
