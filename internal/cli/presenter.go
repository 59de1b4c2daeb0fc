package cli

import (
	"io"
	"sync"

	"github.com/agbru/breakfast/internal/orchestration"
)

// CLISettleReporter implements orchestration.SettleReporter for CLI output.
// It wraps the DisplaySettles function to provide a spinner while the order
// is being prepared.
type CLISettleReporter struct{}

// Verify that CLISettleReporter implements orchestration.SettleReporter.
var _ orchestration.SettleReporter = CLISettleReporter{}

// DisplaySettles displays a spinner until every task has settled.
func (CLISettleReporter) DisplaySettles(wg *sync.WaitGroup, settleChan <-chan orchestration.SettleUpdate, numTasks int, out io.Writer) {
	DisplaySettles(wg, settleChan, numTasks, out)
}

// CLIOutcomePresenter prints each outcome message as it is recorded.
type CLIOutcomePresenter struct{}

// CLISummaryPresenter prints the order summary block.
type CLISummaryPresenter struct{}

// Verify interface compliance.
var (
	_ orchestration.OutcomePresenter = CLIOutcomePresenter{}
	_ orchestration.SummaryPresenter = CLISummaryPresenter{}
)

// PresentOutcome prints the outcome message, colored by status.
func (CLIOutcomePresenter) PresentOutcome(o orchestration.Outcome, out io.Writer) {
	DisplayOutcome(o, out)
}

// PresentSummary prints the summary of the order. It reads the state only,
// so repeated calls produce identical output.
func (CLISummaryPresenter) PresentSummary(state *orchestration.OrderState, out io.Writer) {
	DisplaySummary(state, out)
}
