package strategy

// panic.go — estrategia de un solo instrumento sobre la media móvil corta.
//
// Cuatro reglas por tick, evaluadas como pipeline secuencial (una regla
// posterior puede pisar la orden decidida por una anterior en el mismo tick):
//   1. Salida por reversión: en posición, si la media corta revierte desde su
//      extremo favorable más de MATurn, cerrar.
//   2. Flanco de spread alto: al pasar de spread alto a normal, anotar el
//      índice y la media de referencia, y empezar a esperar.
//   3. Re-entrada: plano, sin spread alto, cumplido el periodo de espera y
//      con la media corta desplazada al menos HSExitChange desde la
//      referencia, abrir en la dirección de mid vs media.
//   4. Liquidación forzosa: con spread alto y posición abierta, cerrar ya.

import (
	"math"

	"github.com/alejandrodnm/gridbot/internal/domain"
)

// Compile-time interface check.
var _ Strategy = (*Panic)(nil)

// PanicConfig son los parámetros fijos de la variante panic (no se barren).
type PanicConfig struct {
	Symbol              string
	HighSpreadThreshold float64 // spread >= umbral => episodio de spread alto
	PositionSize        int     // tamaño fijo de cada entrada
}

// panicState es el estado mutable de una ejecución. Incluye explícitamente
// prevHighSpread: el flag de "el tick anterior tenía spread alto" pertenece a
// la ejecución, no al paquete, para que las ejecuciones concurrentes no se
// contaminen entre sí.
type panicState struct {
	prevHighSpread bool
	waiting        bool
	waitStart      int     // índice del último tick del episodio de spread alto
	baseline       float64 // media corta (o mid) al arrancar la espera
	inPosition     bool
	isLong         bool
	extreme        float64 // extremo favorable de la media corta en posición
}

// Panic implementa Strategy para la variante de un solo instrumento.
type Panic struct {
	cfg  PanicConfig
	p    domain.PanicParams
	st   panicState
	mids []float64 // historial de mid-price de los ticks ya procesados
	obs  Observation
}

// NewPanic crea una instancia fresca para una ejecución.
func NewPanic(cfg PanicConfig, p domain.PanicParams) *Panic {
	return &Panic{cfg: cfg, p: p}
}

// NewPanicFactory devuelve la Factory de la variante panic.
func NewPanicFactory(cfg PanicConfig) Factory {
	return func(params domain.Params) (Strategy, error) {
		p, ok := params.(domain.PanicParams)
		if !ok {
			return nil, errWrongParams(VariantPanic, params)
		}
		return NewPanic(cfg, p), nil
	}
}

// Symbol devuelve el instrumento operado.
func (s *Panic) Symbol() string {
	return s.cfg.Symbol
}

// Observe devuelve la observación del último Step.
func (s *Panic) Observe() Observation {
	return s.obs
}

// Step aplica el pipeline de reglas al tick i. La media corta se calcula
// sobre los ticks anteriores al actual: durante el warm-up no hay media y
// ninguna regla que dependa de ella puede disparar.
func (s *Panic) Step(data *domain.SeriesSet, i, position int) int {
	tick, ok := data.Quote(s.cfg.Symbol, i)
	if !ok {
		s.obs = Observation{}
		return 0
	}

	mid := tick.Mid()
	hs := tick.Spread() >= s.cfg.HighSpreadThreshold
	avg, avgOK := domain.Average(s.mids, len(s.mids)-1, s.p.ShortWindow)
	s.obs = Observation{Signal: avg, SignalOK: avgOK, HighSpread: hs}

	qty := 0

	// 1) salida por reversión de la media corta desde su extremo
	if avgOK && s.st.inPosition {
		if s.st.isLong {
			if avg > s.st.extreme {
				s.st.extreme = avg
			} else if s.st.extreme-avg >= s.p.MATurn {
				qty = -position
				s.exit()
			}
		} else {
			if avg < s.st.extreme {
				s.st.extreme = avg
			} else if avg-s.st.extreme >= s.p.MATurn {
				qty = -position
				s.exit()
			}
		}
	}

	// 2) flanco de salida de spread alto => arranca el periodo de espera
	if s.st.prevHighSpread && !hs {
		s.st.waitStart = i - 1
		if avgOK {
			s.st.baseline = avg
		} else {
			s.st.baseline = mid
		}
		s.st.waiting = true
	}

	// 3) re-entrada tras la espera, solo con media disponible
	if s.st.waiting && position == 0 && !hs && avgOK &&
		i-s.st.waitStart >= s.p.WaitingPeriod {
		if math.Abs(avg-s.st.baseline) >= s.p.HSExitChange {
			switch {
			case mid > avg:
				qty = s.cfg.PositionSize
				s.enter(true, avg)
			case mid < avg:
				qty = -s.cfg.PositionSize
				s.enter(false, avg)
			}
			// mid == avg: sin trade, pero la señal se consume igualmente
			s.st.waiting = false
		}
	}

	// 4) liquidación forzosa en spread alto: pisa cualquier orden anterior
	if hs && position != 0 {
		qty = -position
		s.exit()
	}

	s.st.prevHighSpread = hs
	s.mids = append(s.mids, mid)
	return qty
}

func (s *Panic) enter(long bool, avg float64) {
	s.st.inPosition = true
	s.st.isLong = long
	s.st.extreme = avg
}

func (s *Panic) exit() {
	s.st.inPosition = false
	s.st.isLong = false
	s.st.extreme = 0
}
