package strategy

// basket.go — estrategia multi-instrumento sobre el spread sintético
// ETF - (intercept + Σ ratio_i * componente_i). Si la media móvil de esa
// diferencia supera el umbral positivo el ETF está caro (vender); si cae por
// debajo del negativo está barato (comprar). Sin concepto de spread alto ni
// de espera.

import (
	"fmt"

	"github.com/alejandrodnm/gridbot/internal/domain"
)

// Compile-time interface check.
var _ Strategy = (*Basket)(nil)

// BasketConfig es el modelo fijo de la cesta: qué ETF replica qué componentes
// y con qué pesos. Los pesos salen de una regresión externa y no se barren.
type BasketConfig struct {
	ETF        string
	Components []string
	Ratios     map[string]float64
	Intercept  float64
}

// Basket implementa Strategy para la variante multi-instrumento.
type Basket struct {
	cfg   BasketConfig
	p     domain.BasketParams
	diffs []float64 // historial de la diferencia cruda, incluido el tick actual
	obs   Observation
}

// NewBasket crea una instancia fresca para una ejecución.
func NewBasket(cfg BasketConfig, p domain.BasketParams) *Basket {
	return &Basket{cfg: cfg, p: p}
}

// NewBasketFactory devuelve la Factory de la variante basket.
func NewBasketFactory(cfg BasketConfig) Factory {
	return func(params domain.Params) (Strategy, error) {
		p, ok := params.(domain.BasketParams)
		if !ok {
			return nil, errWrongParams(VariantBasket, params)
		}
		return NewBasket(cfg, p), nil
	}
}

// Symbol devuelve el ETF, único instrumento sobre el que se ordena.
func (s *Basket) Symbol() string {
	return s.cfg.ETF
}

// Observe devuelve la observación del último Step.
func (s *Basket) Observe() Observation {
	return s.obs
}

// Step calcula la diferencia sintética del tick i y decide la orden. Un tick
// al que le falte el precio del ETF o de cualquier componente se salta entero:
// ni muta estado ni emite orden.
func (s *Basket) Step(data *domain.SeriesSet, i, _ int) int {
	etf, ok := data.Quote(s.cfg.ETF, i)
	if !ok {
		s.obs = Observation{}
		return 0
	}

	expected := s.cfg.Intercept
	for _, sym := range s.cfg.Components {
		comp, ok := data.Quote(sym, i)
		if !ok {
			s.obs = Observation{}
			return 0
		}
		expected += s.cfg.Ratios[sym] * comp.Mid()
	}

	s.diffs = append(s.diffs, etf.Mid()-expected)

	ma, maOK := domain.Average(s.diffs, len(s.diffs)-1, s.p.Window)
	s.obs = Observation{Signal: ma, SignalOK: maOK}
	if !maOK {
		return 0
	}

	switch {
	case ma > s.p.PositiveThreshold:
		return -s.p.OrderQuantity
	case ma < s.p.NegativeThreshold:
		return s.p.OrderQuantity
	}
	return 0
}

func errWrongParams(v Variant, params domain.Params) error {
	return fmt.Errorf("strategy: variant %q cannot use parameters %T", v, params)
}
