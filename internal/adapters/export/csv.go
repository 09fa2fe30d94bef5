// Package export vuelca la traza de la mejor combinación a dos CSVs: el
// histórico de mercado tick a tick y las señales de trade ejecutadas.
package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/alejandrodnm/gridbot/internal/domain"
	"github.com/alejandrodnm/gridbot/internal/ports"
)

// Compile-time interface check.
var _ ports.TraceExporter = (*CSVExporter)(nil)

// CSVExporter implementa ports.TraceExporter escribiendo dos ficheros.
type CSVExporter struct {
	marketPath  string
	signalsPath string
}

// NewCSVExporter crea un exportador hacia las rutas dadas.
func NewCSVExporter(marketPath, signalsPath string) *CSVExporter {
	return &CSVExporter{marketPath: marketPath, signalsPath: signalsPath}
}

// Export escribe los dos ficheros. La señal durante el warm-up se exporta
// como "N/A".
func (e *CSVExporter) Export(trace *domain.Trace) error {
	if err := e.writeMarket(trace.Rows); err != nil {
		return err
	}
	return e.writeSignals(trace.Trades)
}

func (e *CSVExporter) writeMarket(rows []domain.TraceRow) error {
	f, err := os.Create(e.marketPath)
	if err != nil {
		return fmt.Errorf("export.Export: create %q: %w", e.marketPath, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"Timestamp", "Bid", "Ask", "Mid", "Signal", "Position", "HighSpread"}); err != nil {
		return fmt.Errorf("export.Export: write header: %w", err)
	}

	for _, row := range rows {
		signal := "N/A"
		if row.SignalOK {
			signal = strconv.FormatFloat(row.Signal, 'f', 6, 64)
		}
		rec := []string{
			strconv.FormatInt(row.Timestamp, 10),
			strconv.FormatFloat(row.Bid, 'f', 6, 64),
			strconv.FormatFloat(row.Ask, 'f', 6, 64),
			strconv.FormatFloat(row.Mid, 'f', 6, 64),
			signal,
			strconv.Itoa(row.Position),
			strconv.FormatBool(row.HighSpread),
		}
		if err := w.Write(rec); err != nil {
			return fmt.Errorf("export.Export: write row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("export.Export: flush %q: %w", e.marketPath, err)
	}
	return nil
}

func (e *CSVExporter) writeSignals(trades []domain.TradeEvent) error {
	f, err := os.Create(e.signalsPath)
	if err != nil {
		return fmt.Errorf("export.Export: create %q: %w", e.signalsPath, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"Timestamp", "Side", "Price", "Quantity", "Signal"}); err != nil {
		return fmt.Errorf("export.Export: write header: %w", err)
	}

	for _, ev := range trades {
		rec := []string{
			strconv.FormatInt(ev.Timestamp, 10),
			ev.Side,
			strconv.FormatFloat(ev.Price, 'f', 6, 64),
			strconv.Itoa(ev.Quantity),
			strconv.FormatFloat(ev.Signal, 'f', 6, 64),
		}
		if err := w.Write(rec); err != nil {
			return fmt.Errorf("export.Export: write row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("export.Export: flush %q: %w", e.signalsPath, err)
	}
	return nil
}
