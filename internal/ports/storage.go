package ports

import (
	"context"

	"github.com/alejandrodnm/gridbot/internal/domain"
)

// Storage persiste el histórico de sweeps.
type Storage interface {
	// SaveSweep guarda el resumen del run y sus mejores resultados.
	SaveSweep(ctx context.Context, run *domain.SweepRun) error

	// ListSweeps devuelve los resúmenes más recientes, el último primero.
	ListSweeps(ctx context.Context, limit int) ([]domain.SweepSummary, error)

	// Close cierra la conexión a la base de datos limpiamente.
	Close() error
}
