package sweep

// grid.go — expansión de un juego de parámetros base en la rejilla cartesiana
// de valores perturbados: base * (1 + k/100) para k en [-range..+range] con
// paso step. Los enteros se redondean con suelo 1; los umbrales positivos se
// acotan a un épsilon para no generar ventanas ni umbrales no positivos.

import (
	"math"
	"sort"

	"github.com/alejandrodnm/gridbot/internal/domain"
)

const positiveFloor = 1e-6

// FuzzInt genera los valores perturbados de un parámetro entero, ordenados
// ascendentemente. Con range 10 y step 1 devuelve 21 valores.
func FuzzInt(base, rangePct, stepPct int) []int {
	var vals []int
	for k := -rangePct; k <= rangePct; k += stepPct {
		v := int(math.Round(float64(base) * float64(100+k) / 100))
		if v < 1 {
			v = 1
		}
		vals = append(vals, v)
	}
	sort.Ints(vals)
	return vals
}

// FuzzFloat genera los valores perturbados de un parámetro real, sin acotar.
func FuzzFloat(base float64, rangePct, stepPct int) []float64 {
	var vals []float64
	for k := -rangePct; k <= rangePct; k += stepPct {
		vals = append(vals, base*float64(100+k)/100)
	}
	sort.Float64s(vals)
	return vals
}

// FuzzPositive es FuzzFloat con suelo en un épsilon positivo, para umbrales
// que no admiten valores <= 0.
func FuzzPositive(base float64, rangePct, stepPct int) []float64 {
	vals := FuzzFloat(base, rangePct, stepPct)
	for i, v := range vals {
		if v <= 0 {
			vals[i] = positiveFloor
		}
	}
	return vals
}

// ExpandPanic genera el producto cartesiano de la variante panic. El orden es
// determinista: bucles anidados sobre listas ordenadas.
func ExpandPanic(base domain.PanicParams, rangePct, stepPct int) []domain.Params {
	sws := FuzzInt(base.ShortWindow, rangePct, stepPct)
	wps := FuzzInt(base.WaitingPeriod, rangePct, stepPct)
	hsxs := FuzzPositive(base.HSExitChange, rangePct, stepPct)
	mats := FuzzPositive(base.MATurn, rangePct, stepPct)

	combos := make([]domain.Params, 0, len(sws)*len(wps)*len(hsxs)*len(mats))
	for _, sw := range sws {
		for _, wp := range wps {
			for _, hsx := range hsxs {
				for _, mat := range mats {
					p := domain.PanicParams{
						ShortWindow:   sw,
						WaitingPeriod: wp,
						HSExitChange:  hsx,
						MATurn:        mat,
					}
					if p.Validate() != nil {
						continue
					}
					combos = append(combos, p)
				}
			}
		}
	}
	return combos
}

// ExpandBasket genera el producto cartesiano de la variante basket, filtrando
// las combinaciones con umbral negativo >= positivo antes de programarlas.
func ExpandBasket(base domain.BasketParams, rangePct, stepPct int) []domain.Params {
	ws := FuzzInt(base.Window, rangePct, stepPct)
	pos := FuzzPositive(base.PositiveThreshold, rangePct, stepPct)
	negs := FuzzFloat(base.NegativeThreshold, rangePct, stepPct)
	qtys := FuzzInt(base.OrderQuantity, rangePct, stepPct)

	combos := make([]domain.Params, 0, len(ws)*len(pos)*len(negs)*len(qtys))
	for _, w := range ws {
		for _, pt := range pos {
			for _, nt := range negs {
				for _, q := range qtys {
					p := domain.BasketParams{
						Window:            w,
						PositiveThreshold: pt,
						NegativeThreshold: nt,
						OrderQuantity:     q,
					}
					if p.Validate() != nil {
						continue
					}
					combos = append(combos, p)
				}
			}
		}
	}
	return combos
}
