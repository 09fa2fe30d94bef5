package strategy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alejandrodnm/gridbot/internal/domain"
)

var basketTestConfig = BasketConfig{
	ETF:        "VP",
	Components: []string{"SHEEP"},
	Ratios:     map[string]float64{"SHEEP": 2.0},
	Intercept:  1.0,
}

// basketSet construye un SeriesSet con el ETF y un componente a partir de
// pares bid/ask por tick.
func basketSet(t *testing.T, etf, comp [][2]float64) *domain.SeriesSet {
	t.Helper()
	require.Equal(t, len(etf), len(comp))

	etfSeries := make(domain.Series, len(etf))
	compSeries := make(domain.Series, len(comp))
	for i := range etf {
		etfSeries[i] = domain.Tick{Timestamp: int64(i), Bid: etf[i][0], Ask: etf[i][1]}
		compSeries[i] = domain.Tick{Timestamp: int64(i), Bid: comp[i][0], Ask: comp[i][1]}
	}

	set, err := domain.NewSeriesSet(map[string]domain.Series{
		"VP":    etfSeries,
		"SHEEP": compSeries,
	})
	require.NoError(t, err)
	return set
}

func TestBasket_SellWhenETFRich(t *testing.T) {
	// componente mid 5 => esperado 1 + 2*5 = 11; ETF mid 13 => diff +2 > POS
	data := basketSet(t,
		[][2]float64{{12.9, 13.1}},
		[][2]float64{{4.9, 5.1}},
	)

	p := domain.BasketParams{Window: 1, PositiveThreshold: 1, NegativeThreshold: -1, OrderQuantity: 10}
	s := NewBasket(basketTestConfig, p)

	assert.Equal(t, -10, s.Step(data, 0, 0))

	obs := s.Observe()
	assert.True(t, obs.SignalOK)
	assert.InDelta(t, 2.0, obs.Signal, 1e-9)
}

func TestBasket_BuyWhenETFCheap(t *testing.T) {
	// ETF mid 9 contra esperado 11 => diff -2 < NEG
	data := basketSet(t,
		[][2]float64{{8.9, 9.1}},
		[][2]float64{{4.9, 5.1}},
	)

	p := domain.BasketParams{Window: 1, PositiveThreshold: 1, NegativeThreshold: -1, OrderQuantity: 10}
	s := NewBasket(basketTestConfig, p)

	assert.Equal(t, 10, s.Step(data, 0, 0))
}

func TestBasket_HoldInsideBand(t *testing.T) {
	// diff 0: dentro de la banda, sin orden
	data := basketSet(t,
		[][2]float64{{10.9, 11.1}},
		[][2]float64{{4.9, 5.1}},
	)

	p := domain.BasketParams{Window: 1, PositiveThreshold: 1, NegativeThreshold: -1, OrderQuantity: 10}
	s := NewBasket(basketTestConfig, p)

	assert.Equal(t, 0, s.Step(data, 0, 0))
}

func TestBasket_WarmUp(t *testing.T) {
	data := basketSet(t,
		[][2]float64{{12.9, 13.1}, {12.9, 13.1}},
		[][2]float64{{4.9, 5.1}, {4.9, 5.1}},
	)

	p := domain.BasketParams{Window: 2, PositiveThreshold: 1, NegativeThreshold: -1, OrderQuantity: 10}
	s := NewBasket(basketTestConfig, p)

	// primer tick: un solo diff para ventana 2, sin decisión
	assert.Equal(t, 0, s.Step(data, 0, 0))
	assert.False(t, s.Observe().SignalOK)

	assert.Equal(t, -10, s.Step(data, 1, 0))
	assert.True(t, s.Observe().SignalOK)
}

func TestBasket_SkipsTickWithMissingPrice(t *testing.T) {
	// t0 tiene el componente sin bid: el tick se salta entero y no entra en
	// el historial de la media
	data := basketSet(t,
		[][2]float64{{12.9, 13.1}, {12.9, 13.1}},
		[][2]float64{{0, 5.1}, {4.9, 5.1}},
	)

	p := domain.BasketParams{Window: 1, PositiveThreshold: 1, NegativeThreshold: -1, OrderQuantity: 10}
	s := NewBasket(basketTestConfig, p)

	assert.Equal(t, 0, s.Step(data, 0, 0))
	assert.False(t, s.Observe().SignalOK)

	// el siguiente tick válido decide con su propio diff, no con basura de t0
	assert.Equal(t, -10, s.Step(data, 1, 0))
	assert.InDelta(t, 2.0, s.Observe().Signal, 1e-9)
}

func TestBasketFactory_RejectsWrongParams(t *testing.T) {
	factory := NewBasketFactory(basketTestConfig)

	_, err := factory(domain.PanicParams{ShortWindow: 1, WaitingPeriod: 1, HSExitChange: 0.2, MATurn: 0.5})
	assert.Error(t, err)

	s, err := factory(domain.BasketParams{Window: 1, PositiveThreshold: 1, NegativeThreshold: -1, OrderQuantity: 10})
	assert.NoError(t, err)
	assert.Equal(t, "VP", s.Symbol())
}

func TestParseVariant(t *testing.T) {
	v, err := ParseVariant("panic")
	assert.NoError(t, err)
	assert.Equal(t, VariantPanic, v)

	v, err = ParseVariant("basket")
	assert.NoError(t, err)
	assert.Equal(t, VariantBasket, v)

	_, err = ParseVariant("martingale")
	assert.Error(t, err)
}
