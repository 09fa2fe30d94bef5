package ports

import (
	"context"

	"github.com/alejandrodnm/gridbot/internal/domain"
)

// SeriesProvider carga la serie de ticks de un instrumento ya parseada y
// validada. El core nunca abre ficheros: ese trabajo es del adapter.
type SeriesProvider interface {
	// LoadSeries devuelve la serie ordenada por tiempo del símbolo dado.
	LoadSeries(ctx context.Context, symbol string) (domain.Series, error)
}
