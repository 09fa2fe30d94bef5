package domain

// TraceRow es el estado observable de un tick durante un backtest con traza:
// precios, señal de la estrategia, posición resultante y flag de spread alto.
type TraceRow struct {
	Timestamp  int64
	Bid        float64
	Ask        float64
	Mid        float64
	Signal     float64 // media corta o media de la diferencia, según variante
	SignalOK   bool    // false durante el warm-up
	Position   int     // posición tras aplicar la orden del tick
	HighSpread bool
}

// TradeEvent es una orden ejecutada durante un backtest con traza.
type TradeEvent struct {
	Timestamp int64
	Side      string // "BUY" | "SELL"
	Price     float64
	Quantity  int     // siempre positivo; el lado indica el signo
	Signal    float64 // señal en el momento de la orden (0 si no disponible)
}

// Trace es la traza completa tick a tick de una evaluación, pensada para
// exportar la mejor combinación del sweep. Su producción es opcional: el
// runner solo la rellena cuando se le pide explícitamente.
type Trace struct {
	Rows   []TraceRow
	Trades []TradeEvent
}
