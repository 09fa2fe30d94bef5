package notify

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/alejandrodnm/gridbot/internal/domain"
	"github.com/alejandrodnm/gridbot/internal/ports"
	"github.com/olekukonko/tablewriter"
)

// cuántas entradas del leaderboard caben en la línea de progreso
const progressTop = 3

// Compile-time interface check.
var _ ports.Notifier = (*Console)(nil)

// Console implementa ports.Notifier escribiendo a stdout.
type Console struct {
	out io.Writer
	top int // filas del leaderboard en la tabla final
}

// NewConsole crea un notificador que escribe a stdout.
func NewConsole(top int) *Console {
	return &Console{out: os.Stdout, top: top}
}

// NewConsoleWriter crea un notificador para tests.
func NewConsoleWriter(w io.Writer, top int) *Console {
	return &Console{out: w, top: top}
}

// Progress imprime una línea compacta con el avance y el podio actual.
func (c *Console) Progress(done, total, excluded int64, top []domain.BacktestResult) {
	now := time.Now().Format("15:04:05")

	pct := 100.0
	if total > 0 {
		pct = 100 * float64(done) / float64(total)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "[%s] sweep %d/%d (%.1f%%)", now, done, total, pct)
	if excluded > 0 {
		fmt.Fprintf(&sb, " excl:%d", excluded)
	}

	n := min(progressTop, len(top))
	for i := 0; i < n; i++ {
		fmt.Fprintf(&sb, " | [%s => %.2f]", top[i].Params.Label(), top[i].PnL)
	}

	fmt.Fprintln(c.out, sb.String())
}

// NotifyResults imprime el resumen final y la tabla del leaderboard.
func (c *Console) NotifyResults(_ context.Context, run *domain.SweepRun) error {
	fmt.Fprintf(c.out, "\n=== SWEEP %s (%s) — %d combinations, %d excluded, %s, %d workers ===\n",
		run.ID[:8], run.Variant, run.Total, run.Excluded,
		run.Duration.Round(time.Millisecond), run.Workers)

	results := run.TopK(c.top)
	if len(results) == 0 {
		fmt.Fprintln(c.out, "  no valid results")
		return nil
	}

	table := tablewriter.NewWriter(c.out)
	table.Header("#", "Params", "PnL", "Fees", "Trades", "Voided")
	for i, res := range results {
		table.Append(
			fmt.Sprintf("%d", i+1),
			res.Params.Label(),
			fmt.Sprintf("%.2f", res.PnL),
			fmt.Sprintf("%.2f", res.TotalFees),
			fmt.Sprintf("%d", res.Trades),
			fmt.Sprintf("%d", res.VoidedOrders),
		)
	}
	table.Render()

	if best, ok := run.Best(); ok {
		fmt.Fprintf(c.out, "  best: %s => PnL %.2f (fees %.2f)\n",
			best.Params.Label(), best.PnL, best.TotalFees)
	}
	return nil
}
