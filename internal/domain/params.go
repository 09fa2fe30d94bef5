package domain

import "fmt"

// Params es un punto de la rejilla de parámetros. Value object: inmutable una
// vez generado, una instancia por combinación del sweep.
type Params interface {
	// Validate devuelve error si la combinación es semánticamente inválida.
	// El generador de rejilla filtra estas combinaciones antes de programarlas;
	// si una se cuela, el runner la excluye sin tratarla como PnL 0.
	Validate() error

	// Label devuelve una representación compacta y estable, usada para
	// reporting y como desempate determinista en el leaderboard.
	Label() string
}

// PanicParams son los parámetros ajustables de la estrategia de un solo
// instrumento (salida en spread alto + re-entrada tras espera).
type PanicParams struct {
	ShortWindow   int     // ventana de la media móvil corta
	WaitingPeriod int     // ticks de espera tras salir de un episodio de spread alto
	HSExitChange  float64 // cambio mínimo de la media corta para re-entrar
	MATurn        float64 // reversión de la media corta que fuerza la salida
}

// Validate comprueba que las ventanas sean positivas y los umbrales > 0.
func (p PanicParams) Validate() error {
	if p.ShortWindow < 1 {
		return fmt.Errorf("short window %d < 1", p.ShortWindow)
	}
	if p.WaitingPeriod < 1 {
		return fmt.Errorf("waiting period %d < 1", p.WaitingPeriod)
	}
	if p.HSExitChange <= 0 {
		return fmt.Errorf("hs exit change threshold %g <= 0", p.HSExitChange)
	}
	if p.MATurn <= 0 {
		return fmt.Errorf("ma turn threshold %g <= 0", p.MATurn)
	}
	return nil
}

// Label devuelve "SW=80 WP=80 HSX=0.200 MAT=0.900".
func (p PanicParams) Label() string {
	return fmt.Sprintf("SW=%d WP=%d HSX=%.3f MAT=%.3f",
		p.ShortWindow, p.WaitingPeriod, p.HSExitChange, p.MATurn)
}

// BasketParams son los parámetros ajustables de la estrategia multi-instrumento
// (spread sintético ETF contra cesta de componentes).
type BasketParams struct {
	Window            int     // ventana de la media móvil de la diferencia
	PositiveThreshold float64 // media por encima => vender el ETF
	NegativeThreshold float64 // media por debajo => comprar el ETF
	OrderQuantity     int     // tamaño fijo de cada orden
}

// Validate comprueba ventana y cantidad positivas y el orden de los umbrales.
func (p BasketParams) Validate() error {
	if p.Window < 1 {
		return fmt.Errorf("rolling avg window %d < 1", p.Window)
	}
	if p.OrderQuantity < 1 {
		return fmt.Errorf("order quantity %d < 1", p.OrderQuantity)
	}
	if p.NegativeThreshold >= p.PositiveThreshold {
		return fmt.Errorf("negative threshold %g >= positive threshold %g",
			p.NegativeThreshold, p.PositiveThreshold)
	}
	return nil
}

// Label devuelve "W=1 POS=33.000 NEG=-33.000 QTY=100".
func (p BasketParams) Label() string {
	return fmt.Sprintf("W=%d POS=%.3f NEG=%.3f QTY=%d",
		p.Window, p.PositiveThreshold, p.NegativeThreshold, p.OrderQuantity)
}
