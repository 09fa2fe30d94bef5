// Package csvdata carga series de ticks desde ficheros CSV con formato
// "indice,bid,ask" y una línea de cabecera. Una fila malformada se salta con
// un warning; solo un fichero ilegible es fatal.
package csvdata

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/alejandrodnm/gridbot/internal/domain"
	"github.com/alejandrodnm/gridbot/internal/ports"
)

// Compile-time interface check.
var _ ports.SeriesProvider = (*Loader)(nil)

// Loader implementa ports.SeriesProvider leyendo <dir>/<symbol>.csv.
type Loader struct {
	dir string
}

// NewLoader crea un Loader sobre el directorio de datos dado.
func NewLoader(dir string) *Loader {
	return &Loader{dir: dir}
}

// LoadSeries lee y parsea la serie completa del símbolo. El timestamp sale de
// la primera columna si es numérica; si no, se usa el índice de fila.
func (l *Loader) LoadSeries(ctx context.Context, symbol string) (domain.Series, error) {
	path := filepath.Join(l.dir, symbol+".csv")

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("csvdata.LoadSeries: open %q: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.ReuseRecord = true

	var series domain.Series
	line := 0
	for {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("csvdata.LoadSeries: %w", err)
		}

		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("csvdata.LoadSeries: read %q: %w", path, err)
		}

		line++
		if line == 1 {
			// cabecera ("tick,bid,ask" o ",Bids,Asks")
			continue
		}
		if len(rec) < 3 {
			slog.Warn("skipping malformed row", "file", path, "line", line)
			continue
		}

		bid, errB := strconv.ParseFloat(rec[1], 64)
		ask, errA := strconv.ParseFloat(rec[2], 64)
		if errB != nil || errA != nil {
			slog.Warn("skipping non-numeric row", "file", path, "line", line)
			continue
		}

		ts, err := strconv.ParseInt(rec[0], 10, 64)
		if err != nil {
			ts = int64(len(series))
		}

		series = append(series, domain.Tick{Timestamp: ts, Bid: bid, Ask: ask})
	}

	slog.Debug("series loaded", "symbol", symbol, "ticks", len(series))
	return series, nil
}

// LoadSet carga varias series y las alinea en un SeriesSet.
func (l *Loader) LoadSet(ctx context.Context, symbols []string) (*domain.SeriesSet, error) {
	series := make(map[string]domain.Series, len(symbols))
	for _, sym := range symbols {
		s, err := l.LoadSeries(ctx, sym)
		if err != nil {
			return nil, err
		}
		series[sym] = s
	}
	return domain.NewSeriesSet(series)
}
