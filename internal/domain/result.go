package domain

import "time"

// BacktestResult es el resultado de evaluar una combinación de parámetros.
// Inmutable; se emite exactamente una vez por combinación.
type BacktestResult struct {
	Params       Params
	PnL          float64
	TotalFees    float64
	Trades       int // órdenes ejecutadas (incluye el cierre final si lo hubo)
	VoidedOrders int // órdenes anuladas por el límite de posición
}

// Better devuelve true si r debe quedar por encima de other en el ranking:
// mayor PnL primero, y a igual PnL gana el label lexicográficamente menor,
// para que el ranking sea determinista con cualquier número de workers.
func (r BacktestResult) Better(other BacktestResult) bool {
	if r.PnL != other.PnL {
		return r.PnL > other.PnL
	}
	return r.Params.Label() < other.Params.Label()
}

// SweepRun es el resumen de un sweep completo de la rejilla.
type SweepRun struct {
	ID        string
	Variant   string
	StartedAt time.Time
	Duration  time.Duration
	Workers   int
	Total     int // combinaciones programadas
	Excluded  int // combinaciones inválidas que el runner rechazó
	Results   []BacktestResult // válidas, ordenadas por PnL descendente
}

// Best devuelve el mejor resultado del sweep. El bool es false si no hubo
// ningún resultado válido.
func (s *SweepRun) Best() (BacktestResult, bool) {
	if len(s.Results) == 0 {
		return BacktestResult{}, false
	}
	return s.Results[0], true
}

// TopK devuelve los k mejores resultados (o todos si hay menos).
func (s *SweepRun) TopK(k int) []BacktestResult {
	if k > len(s.Results) {
		k = len(s.Results)
	}
	out := make([]BacktestResult, k)
	copy(out, s.Results[:k])
	return out
}

// SweepSummary es la fila ligera que se persiste por cada sweep histórico.
type SweepSummary struct {
	ID         string
	Variant    string
	StartedAt  time.Time
	Duration   time.Duration
	Total      int
	Excluded   int
	BestParams string
	BestPnL    float64
}
