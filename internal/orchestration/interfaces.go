package orchestration

import (
	"io"
	"sync"
	"time"
)

// SettleUpdate is sent once per task, in completion order, when the task
// settles.
type SettleUpdate struct {
	// Index is the task's position in the order.
	Index int
	// Task is the task name.
	Task string
	// OK is true if the task succeeded.
	OK bool
	// Elapsed is the time from launch to settle.
	Elapsed time.Duration
}

// SettleReporter displays live progress while the tasks of an order run.
// This decouples the orchestration from spinners and other terminal concerns.
type SettleReporter interface {
	// DisplaySettles consumes updates until settleChan is closed and then
	// calls wg.Done.
	//
	// Parameters:
	//   - wg: A WaitGroup to signal when display is complete.
	//   - settleChan: Channel receiving one update per settled task.
	//   - numTasks: The number of tasks in the order.
	//   - out: The writer for progress output.
	DisplaySettles(wg *sync.WaitGroup, settleChan <-chan SettleUpdate, numTasks int, out io.Writer)
}

// SettleReporterFunc is a function adapter that implements SettleReporter.
type SettleReporterFunc func(wg *sync.WaitGroup, settleChan <-chan SettleUpdate, numTasks int, out io.Writer)

// DisplaySettles calls the underlying function.
func (f SettleReporterFunc) DisplaySettles(wg *sync.WaitGroup, settleChan <-chan SettleUpdate, numTasks int, out io.Writer) {
	f(wg, settleChan, numTasks, out)
}

// NullSettleReporter drains the channel without displaying anything.
// Useful for quiet mode or testing.
type NullSettleReporter struct{}

// DisplaySettles drains the channel without output.
func (NullSettleReporter) DisplaySettles(wg *sync.WaitGroup, settleChan <-chan SettleUpdate, _ int, _ io.Writer) {
	defer wg.Done()
	DrainChannel(settleChan)
}

// OutcomePresenter emits each outcome as the orchestrator records it.
type OutcomePresenter interface {
	PresentOutcome(outcome Outcome, out io.Writer)
}

// NullOutcomePresenter ignores outcomes.
type NullOutcomePresenter struct{}

// PresentOutcome does nothing.
func (NullOutcomePresenter) PresentOutcome(Outcome, io.Writer) {}

// SummaryPresenter renders a complete order. Implementations must not fail
// and must produce identical output for identical states.
type SummaryPresenter interface {
	PresentSummary(state *OrderState, out io.Writer)
}

// Recorder receives per-order measurements (e.g., Prometheus metrics).
type Recorder interface {
	// RecordSettle is called once per recorded outcome with the drawn delay.
	RecordSettle(task string, ok bool, delay time.Duration)
	// RecordOrder is called once the whole order has settled.
	RecordOrder(elapsed time.Duration)
}

// NopRecorder discards measurements.
type NopRecorder struct{}

// RecordSettle does nothing.
func (NopRecorder) RecordSettle(string, bool, time.Duration) {}

// RecordOrder does nothing.
func (NopRecorder) RecordOrder(time.Duration) {}
