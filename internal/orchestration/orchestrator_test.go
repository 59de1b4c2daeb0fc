package orchestration

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	apperrors "github.com/agbru/breakfast/internal/errors"
	"github.com/agbru/breakfast/internal/kitchen"
)

// scriptedRand replays a fixed sequence of draws.
type scriptedRand struct {
	values []float64
	next   int
}

func (s *scriptedRand) Float64() float64 {
	v := s.values[s.next%len(s.values)]
	s.next++
	return v
}

// countingSleeper counts Sleep calls without sleeping.
type countingSleeper struct {
	calls atomic.Int32
}

func (c *countingSleeper) Sleep(time.Duration) { c.calls.Add(1) }

// recordingPresenter keeps outcomes in the order they were presented.
type recordingPresenter struct {
	mu       sync.Mutex
	outcomes []Outcome
}

func (r *recordingPresenter) PresentOutcome(o Outcome, _ io.Writer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.outcomes = append(r.outcomes, o)
}

// recordingReporter keeps settle updates in completion order.
type recordingReporter struct {
	updates []SettleUpdate
}

func (r *recordingReporter) DisplaySettles(wg *sync.WaitGroup, ch <-chan SettleUpdate, _ int, _ io.Writer) {
	defer wg.Done()
	for u := range ch {
		r.updates = append(r.updates, u)
	}
}

// fakeRecorder collects metric calls.
type fakeRecorder struct {
	mu      sync.Mutex
	settles map[string]bool
	delays  map[string]time.Duration
	orders  int
}

func newFakeRecorder() *fakeRecorder {
	return &fakeRecorder{settles: map[string]bool{}, delays: map[string]time.Duration{}}
}

func (f *fakeRecorder) RecordSettle(task string, ok bool, delay time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.settles[task] = ok
	f.delays[task] = delay
}

func (f *fakeRecorder) RecordOrder(time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.orders++
}

// panicSleeper panics for one delay value.
type panicSleeper struct{ on time.Duration }

func (p panicSleeper) Sleep(d time.Duration) {
	if d == p.on {
		panic("oven on fire")
	}
}

func menuTasks(t *testing.T, failureProbability float64) []*kitchen.Task {
	t.Helper()
	specs := kitchen.DefaultMenu()
	for i := range specs {
		specs[i].FailureProbability = failureProbability
	}
	tasks, err := kitchen.NewTasks(specs)
	if err != nil {
		t.Fatalf("NewTasks: %v", err)
	}
	return tasks
}

// TestExecuteOrder_ScriptedRandomness drives the default menu with fixed draws:
// coffee 1.50s ok, toast 3.00s ok, juice 1.00s failed.
func TestExecuteOrder_ScriptedRandomness(t *testing.T) {
	t.Parallel()
	rng := &scriptedRand{values: []float64{
		0.25, 0.9, // cafe: 1s + 0.25*2s, succeeds
		0.5, 0.9, // pan: 2s + 0.5*2s, succeeds
		0.0, 0.1, // jugo: 1s, fails
	}}
	presenter := &recordingPresenter{}
	recorder := newFakeRecorder()

	state := ExecuteOrder(context.Background(), kitchen.DefaultTasks(), ExecutionOptions{
		Rand:             rng,
		Sleeper:          &countingSleeper{},
		OutcomePresenter: presenter,
		Recorder:         recorder,
	}, io.Discard)

	if state.Len() != 3 || !state.Complete() {
		t.Fatalf("expected 3 outcomes, got %d", state.Len())
	}

	tests := []struct {
		task     string
		ok       bool
		contains string
	}{
		{kitchen.Coffee, true, "1.50"},
		{kitchen.Toast, true, "3.00"},
		{kitchen.Juice, false, "fruta"},
	}
	for _, tt := range tests {
		o, found := state.Lookup(tt.task)
		if !found {
			t.Fatalf("%s: no outcome", tt.task)
		}
		if o.OK != tt.ok {
			t.Errorf("%s: OK = %v, want %v", tt.task, o.OK, tt.ok)
		}
		if !strings.Contains(o.Message, tt.contains) {
			t.Errorf("%s: message %q should contain %q", tt.task, o.Message, tt.contains)
		}
	}

	if len(presenter.outcomes) != 3 {
		t.Fatalf("presented %d outcomes, want 3", len(presenter.outcomes))
	}
	for i, want := range []string{kitchen.Coffee, kitchen.Toast, kitchen.Juice} {
		if presenter.outcomes[i].Task != want {
			t.Errorf("presented[%d] = %s, want %s", i, presenter.outcomes[i].Task, want)
		}
	}

	if recorder.orders != 1 {
		t.Errorf("RecordOrder called %d times, want 1", recorder.orders)
	}
	if recorder.delays[kitchen.Coffee] != 1500*time.Millisecond {
		t.Errorf("recorded coffee delay = %v, want 1.5s", recorder.delays[kitchen.Coffee])
	}
	if recorder.settles[kitchen.Juice] {
		t.Error("juice should be recorded as failed")
	}
}

// TestExecuteOrder_FlagMatchesTemplate checks that OK is true iff the message is
// the success rendering, across many seeded runs.
func TestExecuteOrder_FlagMatchesTemplate(t *testing.T) {
	t.Parallel()
	specs := kitchen.DefaultMenu()
	bySpec := map[string]kitchen.TaskSpec{}
	for _, s := range specs {
		bySpec[s.Name] = s
	}

	for seed := uint64(1); seed <= 50; seed++ {
		state := ExecuteOrder(context.Background(), kitchen.DefaultTasks(), ExecutionOptions{
			Rand:    kitchen.NewRand(seed),
			Sleeper: &countingSleeper{},
		}, io.Discard)

		if state.Len() != 3 {
			t.Fatalf("seed %d: %d outcomes, want 3", seed, state.Len())
		}
		for _, o := range state.Outcomes() {
			spec := bySpec[o.Task]
			isFailureText := o.Message == spec.FailureReason
			if o.OK == isFailureText {
				t.Errorf("seed %d: %s OK=%v with message %q", seed, o.Task, o.OK, o.Message)
			}
		}
	}
}

func TestExecuteOrder_AllFail(t *testing.T) {
	t.Parallel()
	sleeper := &countingSleeper{}
	state := ExecuteOrder(context.Background(), menuTasks(t, 1.0), ExecutionOptions{
		Rand:    kitchen.NewRand(7),
		Sleeper: sleeper,
	}, io.Discard)

	if state.Len() != 3 {
		t.Fatalf("expected 3 outcomes, got %d", state.Len())
	}
	ready, failed := state.Counts()
	if ready != 0 || failed != 3 {
		t.Errorf("Counts() = %d ready, %d failed; want 0, 3", ready, failed)
	}
	if got := sleeper.calls.Load(); got != 3 {
		t.Errorf("tasks ran %d times, want exactly 3", got)
	}
}

func TestExecuteOrder_NeverFails(t *testing.T) {
	t.Parallel()
	sleeper := &countingSleeper{}
	state := ExecuteOrder(context.Background(), menuTasks(t, 0), ExecutionOptions{
		Rand:    kitchen.NewRand(7),
		Sleeper: sleeper,
	}, io.Discard)

	ready, failed := state.Counts()
	if ready != 3 || failed != 0 {
		t.Errorf("Counts() = %d ready, %d failed; want 3, 0", ready, failed)
	}
}

// TestExecuteOrder_RunsConcurrently verifies the order takes about the longest
// delay, not the sum of delays.
func TestExecuteOrder_RunsConcurrently(t *testing.T) {
	t.Parallel()
	specs := []kitchen.TaskSpec{
		{Name: "a", MinDelay: 100 * time.Millisecond, MaxDelay: 100 * time.Millisecond, SuccessFormat: "a %s", FailureReason: "no a"},
		{Name: "b", MinDelay: 200 * time.Millisecond, MaxDelay: 200 * time.Millisecond, SuccessFormat: "b %s", FailureReason: "no b"},
		{Name: "c", MinDelay: 150 * time.Millisecond, MaxDelay: 150 * time.Millisecond, SuccessFormat: "c %s", FailureReason: "no c"},
	}
	tasks, err := kitchen.NewTasks(specs)
	if err != nil {
		t.Fatal(err)
	}

	reporter := &recordingReporter{}
	start := time.Now()
	state := ExecuteOrder(context.Background(), tasks, ExecutionOptions{
		Rand:           kitchen.NewRand(3),
		SettleReporter: reporter,
	}, io.Discard)
	elapsed := time.Since(start)

	if elapsed < 200*time.Millisecond {
		t.Errorf("order finished in %v, before its longest task", elapsed)
	}
	if elapsed >= 400*time.Millisecond {
		t.Errorf("order took %v; tasks look sequential (sum is 450ms)", elapsed)
	}
	if state.Len() != 3 {
		t.Fatalf("expected 3 outcomes, got %d", state.Len())
	}

	// Completion order follows the delays; recording order follows the tasks.
	if len(reporter.updates) != 3 {
		t.Fatalf("got %d settle updates, want 3", len(reporter.updates))
	}
	if reporter.updates[0].Task != "a" || reporter.updates[2].Task != "b" {
		t.Errorf("unexpected completion order: %+v", reporter.updates)
	}
	outcomes := state.Outcomes()
	for i, want := range []string{"a", "b", "c"} {
		if outcomes[i].Task != want {
			t.Errorf("outcome[%d] = %s, want %s", i, outcomes[i].Task, want)
		}
	}
}

func TestExecuteOrder_PanicBecomesFailure(t *testing.T) {
	t.Parallel()
	rng := &scriptedRand{values: []float64{0.25, 0.9, 0.5, 0.9, 0.0, 0.9}}
	state := ExecuteOrder(context.Background(), kitchen.DefaultTasks(), ExecutionOptions{
		Rand:    rng,
		Sleeper: panicSleeper{on: 3 * time.Second},
	}, io.Discard)

	if state.Len() != 3 {
		t.Fatalf("expected 3 outcomes, got %d", state.Len())
	}
	toast, _ := state.Lookup(kitchen.Toast)
	if toast.OK || !strings.Contains(toast.Message, "oven on fire") {
		t.Errorf("toast outcome = %+v, want a failure mentioning the panic", toast)
	}
	coffee, _ := state.Lookup(kitchen.Coffee)
	if !coffee.OK {
		t.Errorf("a panic in one task must not affect others, coffee = %+v", coffee)
	}
}

func TestExecuteOrder_EmptyOrder(t *testing.T) {
	t.Parallel()
	state := ExecuteOrder(context.Background(), nil, ExecutionOptions{}, io.Discard)
	if state.Len() != 0 || !state.Complete() {
		t.Errorf("empty order should be complete with no outcomes, got %d", state.Len())
	}
}

// TestExecuteOrder_NoDeadlock runs many tasks against a slow reporter and
// fails if the join never returns.
func TestExecuteOrder_NoDeadlock(t *testing.T) {
	t.Parallel()
	specs := make([]kitchen.TaskSpec, 50)
	for i := range specs {
		specs[i] = kitchen.TaskSpec{
			Name:               fmt.Sprintf("task-%02d", i),
			MinDelay:           time.Millisecond,
			MaxDelay:           5 * time.Millisecond,
			FailureProbability: 0.5,
			SuccessFormat:      "ok %s",
			FailureReason:      "ko",
		}
	}
	tasks, err := kitchen.NewTasks(specs)
	if err != nil {
		t.Fatal(err)
	}

	slow := SettleReporterFunc(func(wg *sync.WaitGroup, ch <-chan SettleUpdate, _ int, _ io.Writer) {
		defer wg.Done()
		for range ch {
			time.Sleep(time.Millisecond)
		}
	})

	done := make(chan *OrderState)
	go func() {
		done <- ExecuteOrder(context.Background(), tasks, ExecutionOptions{
			Rand:           kitchen.NewRand(11),
			SettleReporter: slow,
		}, io.Discard)
	}()

	select {
	case state := <-done:
		if state.Len() != len(specs) {
			t.Errorf("expected %d outcomes, got %d", len(specs), state.Len())
		}
	case <-time.After(10 * time.Second):
		t.Fatal("DEADLOCK: ExecuteOrder did not complete within timeout")
	}
}

// summaryStub writes a fixed marker.
type summaryStub struct{}

func (summaryStub) PresentSummary(state *OrderState, out io.Writer) {
	fmt.Fprintf(out, "summary of %d\n", state.Len())
}

func TestSummarizeOrder(t *testing.T) {
	t.Parallel()
	state := NewOrderState("cafe", "pan", "jugo")
	for _, name := range state.Names() {
		_ = state.Record(Outcome{Task: name, OK: false, Message: "ko"})
	}

	var buf bytes.Buffer
	if code := SummarizeOrder(state, summaryStub{}, &buf); code != apperrors.ExitSuccess {
		t.Errorf("exit code = %d, want %d even when every task failed", code, apperrors.ExitSuccess)
	}
	if buf.String() != "summary of 3\n" {
		t.Errorf("unexpected summary output %q", buf.String())
	}
}
