package domain

import (
	"fmt"
	"sort"
)

// SeriesSet agrupa las series de varios instrumentos alineadas por índice:
// el tick i de cada serie corresponde al mismo instante. Es el único dato
// compartido entre workers durante un sweep y nunca se muta después de
// construirlo.
type SeriesSet struct {
	symbols []string
	series  map[string]Series
	length  int
}

// NewSeriesSet construye un SeriesSet validando que todas las series tengan
// la misma longitud. Una serie vacía es válida (backtest degenerado, PnL 0).
func NewSeriesSet(series map[string]Series) (*SeriesSet, error) {
	if len(series) == 0 {
		return nil, fmt.Errorf("domain.NewSeriesSet: no series provided")
	}

	symbols := make([]string, 0, len(series))
	for sym := range series {
		symbols = append(symbols, sym)
	}
	sort.Strings(symbols)

	length := len(series[symbols[0]])
	for _, sym := range symbols {
		if len(series[sym]) != length {
			return nil, fmt.Errorf("domain.NewSeriesSet: series %q has %d ticks, expected %d",
				sym, len(series[sym]), length)
		}
	}

	return &SeriesSet{symbols: symbols, series: series, length: length}, nil
}

// Len devuelve el número de ticks alineados.
func (s *SeriesSet) Len() int {
	return s.length
}

// Symbols devuelve los símbolos en orden determinista.
func (s *SeriesSet) Symbols() []string {
	out := make([]string, len(s.symbols))
	copy(out, s.symbols)
	return out
}

// Quote devuelve el tick del instrumento en el índice dado. El bool es false
// si el símbolo no existe, el índice está fuera de rango o el tick no tiene
// precios válidos: el llamante debe saltar el tick entero, nunca procesarlo
// a medias.
func (s *SeriesSet) Quote(symbol string, i int) (Tick, bool) {
	serie, ok := s.series[symbol]
	if !ok || i < 0 || i >= len(serie) {
		return Tick{}, false
	}
	t := serie[i]
	if !t.Valid() {
		return Tick{}, false
	}
	return t, true
}
