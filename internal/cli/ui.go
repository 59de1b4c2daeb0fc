//go:generate mockgen -source=ui.go -destination=mocks/mock_ui.go -package=mocks

package cli

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/briandowns/spinner"

	"github.com/agbru/breakfast/internal/orchestration"
	"github.com/agbru/breakfast/internal/ui"
)

// ProgressRefreshRate defines the refresh frequency of the spinner.
const ProgressRefreshRate = 200 * time.Millisecond

// Spinner is an interface that abstracts the behavior of a terminal spinner.
// This decouples DisplaySettles from a specific spinner implementation.
// It defines the essential controls for a spinner: starting, stopping, and
// updating its status message.
type Spinner interface {
	// Start begins the spinner animation.
	Start()
	// Stop halts the spinner animation.
	Stop()
	// UpdateSuffix sets the text that is displayed after the spinner.
	//
	// Parameters:
	//   - suffix: The text string to display.
	UpdateSuffix(suffix string)
}

// realSpinner is a wrapper for the `spinner.Spinner` that implements the
// `Spinner` interface.
type realSpinner struct {
	s *spinner.Spinner
}

// Start begins the spinner animation.
func (rs *realSpinner) Start() {
	rs.s.Start()
}

// Stop halts the spinner animation.
func (rs *realSpinner) Stop() {
	rs.s.Stop()
}

// UpdateSuffix sets the text that is displayed after the spinner.
// The spinner goroutine reads Suffix concurrently, hence the lock.
func (rs *realSpinner) UpdateSuffix(suffix string) {
	rs.s.Lock()
	rs.s.Suffix = suffix
	rs.s.Unlock()
}

var newSpinner = func(options ...spinner.Option) Spinner {
	s := spinner.New(spinner.CharSets[11], ProgressRefreshRate, options...)
	return &realSpinner{s}
}

// settleSuffix renders the spinner text for the current progress.
func settleSuffix(p orchestration.SettleProgress) string {
	suffix := fmt.Sprintf(" Preparando pedido... %d/%d", p.Settled, p.Total)
	if p.Last.Task != "" {
		suffix += fmt.Sprintf(" %s(%s)%s", ui.ColorSecondary(), p.Last.Task, ui.ColorReset())
	}
	return suffix
}

// DisplaySettles shows a spinner while the tasks of an order settle. It
// consumes settleChan until it is closed and calls wg.Done on return.
//
// Parameters:
//   - wg: The WaitGroup to signal when the display loop exits.
//   - settleChan: The channel of settle notifications.
//   - numTasks: The number of tasks in the order.
//   - out: The writer the spinner renders to.
func DisplaySettles(wg *sync.WaitGroup, settleChan <-chan orchestration.SettleUpdate, numTasks int, out io.Writer) {
	defer wg.Done()
	agg := orchestration.NewSettleAggregator(numTasks)
	if agg == nil {
		orchestration.DrainChannel(settleChan)
		return
	}

	s := newSpinner(spinner.WithWriter(out))
	s.UpdateSuffix(settleSuffix(agg.Progress()))
	s.Start()
	defer s.Stop()

	for update := range settleChan {
		s.UpdateSuffix(settleSuffix(agg.Update(update)))
	}
}
