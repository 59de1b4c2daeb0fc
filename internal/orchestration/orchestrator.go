package orchestration

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	apperrors "github.com/agbru/breakfast/internal/errors"
	"github.com/agbru/breakfast/internal/kitchen"
	"github.com/agbru/breakfast/internal/logging"
)

const tracerName = "github.com/agbru/breakfast/internal/orchestration"

// ExecutionOptions carries the collaborators of ExecuteOrder. Zero fields are
// replaced with defaults: a time-seeded random source, real timers, and no-op
// reporting.
type ExecutionOptions struct {
	Rand             kitchen.Rand
	Sleeper          kitchen.Sleeper
	SettleReporter   SettleReporter
	OutcomePresenter OutcomePresenter
	Recorder         Recorder
	Logger           logging.Logger
}

func (o ExecutionOptions) withDefaults() ExecutionOptions {
	if o.Rand == nil {
		o.Rand = kitchen.NewRand(0)
	}
	if o.Sleeper == nil {
		o.Sleeper = kitchen.TimerSleeper{}
	}
	if o.SettleReporter == nil {
		o.SettleReporter = NullSettleReporter{}
	}
	if o.OutcomePresenter == nil {
		o.OutcomePresenter = NullOutcomePresenter{}
	}
	if o.Recorder == nil {
		o.Recorder = NopRecorder{}
	}
	if o.Logger == nil {
		o.Logger = logging.NopLogger{}
	}
	return o
}

// settled is what a task goroutine leaves behind for the join.
type settled struct {
	value   string
	err     error
	elapsed time.Duration
}

// ExecuteOrder runs every task of an order concurrently and waits until all of
// them have settled.
//
// All attempts are drawn first, in task order, then launched together. The
// join does not short-circuit: a failing task never cancels the others, and
// each task runs exactly once. After the join the outcomes are recorded and
// handed to the OutcomePresenter in task order, whatever the completion order
// was. ExecuteOrder itself never fails.
//
// Parameters:
//   - ctx: Carries tracing; in-flight tasks are not cancelled through it.
//   - tasks: The tasks of the order, in presentation order. Names must be distinct.
//   - opts: Randomness, timing and reporting collaborators.
//   - out: The writer for progress and per-task messages.
//
// Returns:
//   - *OrderState: One outcome per task.
func ExecuteOrder(ctx context.Context, tasks []*kitchen.Task, opts ExecutionOptions, out io.Writer) *OrderState {
	opts = opts.withDefaults()
	tracer := otel.Tracer(tracerName)
	ctx, orderSpan := tracer.Start(ctx, "order", trace.WithAttributes(attribute.Int("order.tasks", len(tasks))))
	defer orderSpan.End()

	names := make([]string, len(tasks))
	attempts := make([]kitchen.Attempt, len(tasks))
	for i, t := range tasks {
		names[i] = t.Name()
		attempts[i] = t.Prepare(opts.Rand)
	}

	results := make([]settled, len(tasks))
	settleChan := make(chan SettleUpdate, len(tasks))

	var displayWg sync.WaitGroup
	displayWg.Add(1)
	go opts.SettleReporter.DisplaySettles(&displayWg, settleChan, len(tasks), out)

	orderStart := time.Now()
	var g errgroup.Group
	for i, attempt := range attempts {
		idx := i
		g.Go(func() error {
			res := awaitAttempt(ctx, tracer, attempt, opts.Sleeper)
			results[idx] = res
			opts.Logger.Debug("task settled",
				logging.String("task", attempt.Task()),
				logging.Bool("ok", res.err == nil),
				logging.Duration("delay", attempt.Delay()),
				logging.Duration("elapsed", res.elapsed))
			settleChan <- SettleUpdate{Index: idx, Task: attempt.Task(), OK: res.err == nil, Elapsed: res.elapsed}
			// Always nil: a failed task must not cancel its siblings.
			return nil
		})
	}
	_ = g.Wait()
	close(settleChan)
	displayWg.Wait()

	state := NewOrderState(names...)
	for i, res := range results {
		outcome := Outcome{Task: names[i], OK: res.err == nil, Message: res.value, Elapsed: res.elapsed}
		if res.err != nil {
			outcome.Message = res.err.Error()
		}
		if err := state.Record(outcome); err != nil {
			opts.Logger.Error("outcome not recorded", err, logging.String("task", names[i]))
			continue
		}
		opts.Recorder.RecordSettle(outcome.Task, outcome.OK, attempts[i].Delay())
		opts.OutcomePresenter.PresentOutcome(outcome, out)
	}

	elapsed := time.Since(orderStart)
	opts.Recorder.RecordOrder(elapsed)
	ready, failed := state.Counts()
	orderSpan.SetAttributes(attribute.Int("order.ready", ready), attribute.Int("order.failed", failed))
	opts.Logger.Debug("order settled",
		logging.Int("ready", ready),
		logging.Int("failed", failed),
		logging.Duration("elapsed", elapsed))
	return state
}

// awaitAttempt runs one attempt under its own span. A panic inside the task is
// converted into a TaskFailure so it cannot escape the join.
func awaitAttempt(ctx context.Context, tracer trace.Tracer, attempt kitchen.Attempt, sleeper kitchen.Sleeper) (res settled) {
	ctx, span := tracer.Start(ctx, "task "+attempt.Task(), trace.WithAttributes(
		attribute.String("task.name", attempt.Task()),
		attribute.Float64("task.delay_seconds", attempt.Delay().Seconds()),
	))
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			res.value = ""
			res.err = apperrors.TaskFailure{Task: attempt.Task(), Reason: fmt.Sprintf("panic: %v", r)}
		}
		res.elapsed = time.Since(start)
		if res.err != nil {
			span.RecordError(res.err)
			span.SetStatus(codes.Error, res.err.Error())
		}
		span.End()
	}()

	res.value, res.err = attempt.Await(ctx, sleeper)
	return res
}

// SummarizeOrder presents the summary of a completed order and returns the
// process exit code. Task failures are expected outcomes, so the code is
// always ExitSuccess.
func SummarizeOrder(state *OrderState, presenter SummaryPresenter, out io.Writer) int {
	presenter.PresentSummary(state, out)
	return apperrors.ExitSuccess
}
