package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"

	"github.com/agbru/breakfast/internal/cli"
	"github.com/agbru/breakfast/internal/config"
	apperrors "github.com/agbru/breakfast/internal/errors"
	"github.com/agbru/breakfast/internal/kitchen"
	"github.com/agbru/breakfast/internal/logging"
	"github.com/agbru/breakfast/internal/metrics"
	"github.com/agbru/breakfast/internal/orchestration"
	"github.com/agbru/breakfast/internal/sysmon"
	"github.com/agbru/breakfast/internal/ui"
)

const programName = "breakfast"

// Application represents the breakfast application instance.
type Application struct {
	Config    config.AppConfig
	Tasks     []*kitchen.Task
	Rand      kitchen.Rand
	Sleeper   kitchen.Sleeper
	Sampler   sysmon.Sampler
	ErrWriter io.Writer
}

// AppOption configures an Application during construction.
type AppOption func(*Application)

// WithTasks replaces the default menu.
func WithTasks(tasks ...*kitchen.Task) AppOption {
	return func(a *Application) { a.Tasks = tasks }
}

// WithRand sets the random source, overriding --seed.
func WithRand(r kitchen.Rand) AppOption {
	return func(a *Application) { a.Rand = r }
}

// WithSleeper sets how tasks wait for their delay.
func WithSleeper(s kitchen.Sleeper) AppOption {
	return func(a *Application) { a.Sleeper = s }
}

// WithSampler sets the host sampler used for --metrics.
func WithSampler(s sysmon.Sampler) AppOption {
	return func(a *Application) { a.Sampler = s }
}

// New creates a new Application instance by parsing command-line arguments.
// args[0] is the program name.
func New(args []string, errWriter io.Writer, opts ...AppOption) (*Application, error) {
	app := &Application{ErrWriter: errWriter}
	for _, opt := range opts {
		opt(app)
	}
	if app.Tasks == nil {
		app.Tasks = kitchen.DefaultTasks()
	}
	if app.Sampler == nil {
		app.Sampler = sysmon.HostSampler{}
	}

	name := programName
	var cmdArgs []string
	if len(args) > 0 {
		name = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(name, cmdArgs, errWriter)
	if err != nil {
		return nil, err
	}
	app.Config = cfg
	return app, nil
}

// Run executes the application based on the configured mode.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	if a.Config.Completion != "" {
		return a.runCompletion(out)
	}
	if a.Config.ShowVersion {
		PrintVersion(out)
		return apperrors.ExitSuccess
	}

	if a.Config.Verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
	ui.InitTheme(a.Config.NoColor)

	return a.runOrder(ctx, out)
}

// runCompletion generates shell completion scripts.
func (a *Application) runCompletion(out io.Writer) int {
	if err := cli.GenerateCompletion(out, a.Config.Completion, programName); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error generating completion: %v\n", err)
		return apperrors.ExitErrorConfig
	}
	return apperrors.ExitSuccess
}

// runOrder prepares one order and prints its summary.
func (a *Application) runOrder(ctx context.Context, out io.Writer) int {
	logger := logging.NewConsoleLogger(a.ErrWriter, programName, a.Config.Verbose, a.Config.NoColor)
	collector := metrics.NewCollector()

	rng := a.Rand
	if rng == nil {
		rng = kitchen.NewRand(a.Config.Seed)
	}

	opts := orchestration.ExecutionOptions{
		Rand:     rng,
		Sleeper:  a.Sleeper,
		Recorder: collector,
		Logger:   logger,
	}
	// Quiet mode keeps only the summary.
	if a.Config.Quiet {
		opts.SettleReporter = orchestration.NullSettleReporter{}
		opts.OutcomePresenter = orchestration.NullOutcomePresenter{}
	} else {
		opts.SettleReporter = cli.CLISettleReporter{}
		opts.OutcomePresenter = cli.CLIOutcomePresenter{}
		cli.DisplayOrderStart(taskNames(a.Tasks), a.Config.Seed, out)
	}

	logger.Debug("order started",
		logging.Int("tasks", len(a.Tasks)),
		logging.Uint64("seed", a.Config.Seed))

	start := time.Now()
	state := orchestration.ExecuteOrder(ctx, a.Tasks, opts, out)
	elapsed := time.Since(start)

	if !a.Config.Quiet {
		cli.DisplayOrderStats(state, elapsed, out)
	}
	exitCode := orchestration.SummarizeOrder(state, cli.CLISummaryPresenter{}, out)

	if a.Config.Metrics {
		snap, err := a.Sampler.Sample(ctx)
		if err != nil {
			logger.Debug("host sampling failed", logging.Err(err))
		} else {
			collector.RecordHost(snap)
		}
		if err := collector.WriteText(a.ErrWriter); err != nil {
			logger.Error("writing metrics failed", err)
			return apperrors.ExitErrorGeneric
		}
	}
	return exitCode
}

func taskNames(tasks []*kitchen.Task) []string {
	names := make([]string, len(tasks))
	for i, t := range tasks {
		names[i] = t.Name()
	}
	return names
}

// IsHelpError checks if the error is a help flag error (--help was used).
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}
