package cli

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/agbru/breakfast/internal/orchestration"
)

func newState(t *testing.T, outcomes ...orchestration.Outcome) *orchestration.OrderState {
	t.Helper()
	state := orchestration.NewOrderState("cafe", "pan", "jugo")
	for _, o := range outcomes {
		if err := state.Record(o); err != nil {
			t.Fatalf("Record(%q) failed: %v", o.Task, err)
		}
	}
	return state
}

func TestFormatSummary(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		outcomes []orchestration.Outcome
		want     []string
	}{
		{
			name: "Mixed",
			outcomes: []orchestration.Outcome{
				{Task: "cafe", OK: true, Message: "Café listo en 1.50 segundos"},
				{Task: "pan", OK: true, Message: "Pan tostado en 3.00 segundos"},
				{Task: "jugo", OK: false, Message: "No se pudo exprimir el jugo: no hay fruta disponible"},
			},
			want: []string{
				SummaryHeader,
				"cafe: Listo — Café listo en 1.50 segundos",
				"pan: Listo — Pan tostado en 3.00 segundos",
				"jugo: Falló — No se pudo exprimir el jugo: no hay fruta disponible",
				SummaryFooter,
			},
		},
		{
			name: "Not attempted",
			outcomes: []orchestration.Outcome{
				{Task: "pan", OK: true, Message: "Pan tostado en 2.00 segundos"},
			},
			want: []string{
				SummaryHeader,
				"cafe: No se intentó",
				"pan: Listo — Pan tostado en 2.00 segundos",
				"jugo: No se intentó",
				SummaryFooter,
			},
		},
		{
			name: "Empty",
			want: []string{
				SummaryHeader,
				"cafe: No se intentó",
				"pan: No se intentó",
				"jugo: No se intentó",
				SummaryFooter,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := FormatSummary(newState(t, tt.outcomes...))
			want := strings.Join(tt.want, "\n") + "\n"
			if got != want {
				t.Errorf("FormatSummary() =\n%s\nwant\n%s", got, want)
			}
		})
	}
}

func TestFormatSummary_RecordedOutOfOrder(t *testing.T) {
	t.Parallel()
	state := newState(t,
		orchestration.Outcome{Task: "jugo", OK: true, Message: "j"},
		orchestration.Outcome{Task: "cafe", OK: true, Message: "c"},
		orchestration.Outcome{Task: "pan", OK: true, Message: "p"},
	)
	lines := strings.Split(strings.TrimSpace(FormatSummary(state)), "\n")
	if len(lines) != 5 {
		t.Fatalf("expected 5 lines, got %d", len(lines))
	}
	for i, prefix := range []string{"cafe:", "pan:", "jugo:"} {
		if !strings.HasPrefix(lines[i+1], prefix) {
			t.Errorf("line %d = %q, want prefix %q", i+1, lines[i+1], prefix)
		}
	}
}

func TestDisplaySummary_Idempotent(t *testing.T) {
	t.Parallel()
	state := newState(t,
		orchestration.Outcome{Task: "cafe", OK: false, Message: "No se pudo preparar el café: falta café"},
		orchestration.Outcome{Task: "pan", OK: true, Message: "Pan tostado en 2.50 segundos"},
	)

	var first, second bytes.Buffer
	CLISummaryPresenter{}.PresentSummary(state, &first)
	CLISummaryPresenter{}.PresentSummary(state, &second)

	if first.String() != second.String() {
		t.Errorf("summary not idempotent:\n%q\n%q", first.String(), second.String())
	}
	if !strings.HasPrefix(first.String(), "\n"+SummaryHeader) {
		t.Errorf("summary should start with a blank line and header, got %q", first.String())
	}
}

func TestDisplaySummary_AllFailed(t *testing.T) {
	t.Parallel()
	state := newState(t,
		orchestration.Outcome{Task: "cafe", Message: "a"},
		orchestration.Outcome{Task: "pan", Message: "b"},
		orchestration.Outcome{Task: "jugo", Message: "c"},
	)
	var buf bytes.Buffer
	DisplaySummary(state, &buf)
	if got := strings.Count(buf.String(), ": Falló — "); got != 3 {
		t.Errorf("expected 3 failed lines, got %d:\n%s", got, buf.String())
	}
}

func TestDisplayOutcome(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	CLIOutcomePresenter{}.PresentOutcome(orchestration.Outcome{Task: "cafe", OK: true, Message: "Café listo en 1.00 segundos"}, &buf)
	if got, want := buf.String(), "Café listo en 1.00 segundos\n"; got != want {
		t.Errorf("DisplayOutcome() = %q, want %q", got, want)
	}
}

func TestDisplayOrderStart(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		seed uint64
		want string
	}{
		{"No seed", 0, "Pedido: cafe, pan, jugo\n"},
		{"Seed", 42, "Pedido: cafe, pan, jugo (seed 42)\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			DisplayOrderStart([]string{"cafe", "pan", "jugo"}, tt.seed, &buf)
			if buf.String() != tt.want {
				t.Errorf("DisplayOrderStart() = %q, want %q", buf.String(), tt.want)
			}
		})
	}
}

func TestDisplayOrderStats(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		outcomes []bool
		elapsed  time.Duration
		want     string
	}{
		{
			name:     "Rounded to two decimals",
			outcomes: []bool{true, false, true},
			elapsed:  3502324880 * time.Nanosecond,
			want:     "Pedido completado en 3.50 segundos: 2 listos, 1 fallido\n",
		},
		{
			name:     "Singular ready",
			outcomes: []bool{false, true, false},
			elapsed:  250 * time.Millisecond,
			want:     "Pedido completado en 0.25 segundos: 1 listo, 2 fallidos\n",
		},
		{
			name:     "Zero counts are plural",
			outcomes: []bool{true, true, true},
			elapsed:  4 * time.Second,
			want:     "Pedido completado en 4.00 segundos: 3 listos, 0 fallidos\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			names := []string{"cafe", "pan", "jugo"}
			var outcomes []orchestration.Outcome
			for i, ok := range tt.outcomes {
				outcomes = append(outcomes, orchestration.Outcome{Task: names[i], OK: ok, Message: "m"})
			}
			var buf bytes.Buffer
			DisplayOrderStats(newState(t, outcomes...), tt.elapsed, &buf)
			if buf.String() != tt.want {
				t.Errorf("DisplayOrderStats() = %q, want %q", buf.String(), tt.want)
			}
		})
	}
}
