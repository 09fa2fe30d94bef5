package ports

import (
	"context"

	"github.com/alejandrodnm/gridbot/internal/domain"
)

// Notifier presenta el progreso y los resultados del sweep al usuario.
type Notifier interface {
	// Progress emite una línea de estado con el snapshot actual.
	Progress(done, total, excluded int64, top []domain.BacktestResult)

	// NotifyResults imprime el resumen final del sweep con su leaderboard.
	NotifyResults(ctx context.Context, run *domain.SweepRun) error
}
