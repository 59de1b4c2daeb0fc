package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/agbru/breakfast/internal/format"
	"github.com/agbru/breakfast/internal/orchestration"
	"github.com/agbru/breakfast/internal/ui"
)

const (
	// SummaryHeader opens the summary block.
	SummaryHeader = "--- Resumen del pedido ---"
	// SummaryFooter closes the summary block.
	SummaryFooter = "--------------------------"

	// summarySeparator sits between a status and its message.
	summarySeparator = " — "

	statusReady      = "Listo"
	statusFailed     = "Falló"
	statusNotStarted = "No se intentó"
)

// FormatSummaryLine renders the summary line of one task. A task with no
// recorded outcome is reported as not attempted.
func FormatSummaryLine(state *orchestration.OrderState, name string) string {
	o, ok := state.Lookup(name)
	switch {
	case !ok:
		return fmt.Sprintf("%s: %s%s%s", name, ui.ColorYellow(), statusNotStarted, ui.ColorReset())
	case o.OK:
		return fmt.Sprintf("%s: %s%s%s%s%s", name, ui.ColorGreen(), statusReady, ui.ColorReset(), summarySeparator, o.Message)
	default:
		return fmt.Sprintf("%s: %s%s%s%s%s", name, ui.ColorRed(), statusFailed, ui.ColorReset(), summarySeparator, o.Message)
	}
}

// FormatSummary renders the full summary block, lines terminated by "\n".
//
// Parameters:
//   - state: The order state to summarize.
//
// Returns:
//   - string: The header, one line per task in order, and the footer.
func FormatSummary(state *orchestration.OrderState) string {
	var sb strings.Builder
	sb.WriteString(SummaryHeader)
	sb.WriteByte('\n')
	for _, name := range state.Names() {
		sb.WriteString(FormatSummaryLine(state, name))
		sb.WriteByte('\n')
	}
	sb.WriteString(SummaryFooter)
	sb.WriteByte('\n')
	return sb.String()
}

// DisplaySummary writes the summary block to out, preceded by a blank line.
func DisplaySummary(state *orchestration.OrderState, out io.Writer) {
	fmt.Fprintf(out, "\n%s", FormatSummary(state))
}

// FormatOutcomeLine renders the message of a single outcome.
func FormatOutcomeLine(o orchestration.Outcome) string {
	if o.OK {
		return fmt.Sprintf("%s%s%s", ui.ColorGreen(), o.Message, ui.ColorReset())
	}
	return fmt.Sprintf("%s%s%s", ui.ColorRed(), o.Message, ui.ColorReset())
}

// DisplayOutcome writes the message of a single outcome to out.
func DisplayOutcome(o orchestration.Outcome, out io.Writer) {
	fmt.Fprintln(out, FormatOutcomeLine(o))
}

// DisplayOrderStart prints the banner shown before an order is launched.
func DisplayOrderStart(names []string, seed uint64, out io.Writer) {
	fmt.Fprintf(out, "%sPedido:%s %s", ui.ColorBold(), ui.ColorReset(), strings.Join(names, ", "))
	if seed != 0 {
		fmt.Fprintf(out, " %s(seed %d)%s", ui.ColorSecondary(), seed, ui.ColorReset())
	}
	fmt.Fprintln(out)
}

// DisplayOrderStats prints the wall time, in seconds like the task messages,
// and the outcome counts of an order.
func DisplayOrderStats(state *orchestration.OrderState, elapsed time.Duration, out io.Writer) {
	ready, failed := state.Counts()
	fmt.Fprintf(out, "Pedido completado en %s%s segundos%s: %s, %s\n",
		ui.ColorPrimary(), format.FormatSeconds(elapsed), ui.ColorReset(),
		countLabel(ready, "listo", "listos"), countLabel(failed, "fallido", "fallidos"))
}

// countLabel renders n with the noun form that agrees with it.
func countLabel(n int, singular, plural string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, singular)
	}
	return fmt.Sprintf("%d %s", n, plural)
}
