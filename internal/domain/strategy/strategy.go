// Package strategy contiene las máquinas de estado de trading. Cada instancia
// se crea fresca por backtest a través de una Factory y es propiedad exclusiva
// de esa ejecución: todo el estado mutable (flags de espera, extremos,
// historial de medias) vive dentro de la instancia, nunca en variables de
// paquete, para que miles de combinaciones puedan evaluarse en paralelo sin
// interferencia.
package strategy

import (
	"fmt"

	"github.com/alejandrodnm/gridbot/internal/domain"
)

// Variant selecciona la máquina de estado a usar.
type Variant string

const (
	// VariantPanic opera un solo instrumento: liquida en episodios de spread
	// alto y re-entra tras un periodo de espera si la media corta se movió.
	VariantPanic Variant = "panic"

	// VariantBasket opera un ETF contra el spread sintético de su cesta de
	// componentes.
	VariantBasket Variant = "basket"
)

// ParseVariant valida el nombre de variante de la config o los flags.
func ParseVariant(s string) (Variant, error) {
	switch Variant(s) {
	case VariantPanic, VariantBasket:
		return Variant(s), nil
	}
	return "", fmt.Errorf("strategy.ParseVariant: unknown variant %q", s)
}

// Observation es lo que la estrategia observó en el último Step, para trazas.
type Observation struct {
	Signal     float64
	SignalOK   bool
	HighSpread bool
}

// Strategy es la transición por tick: dado el índice actual y la posición de
// la cuenta, devuelve la cantidad a ordenar (0 = sin orden). El runner aplica
// la orden al ledger; la estrategia nunca toca caja ni posición.
type Strategy interface {
	// Symbol devuelve el instrumento sobre el que se emiten las órdenes.
	Symbol() string

	// Step procesa el tick i y devuelve la cantidad de la orden.
	Step(data *domain.SeriesSet, i, position int) int

	// Observe devuelve la observación del último Step.
	Observe() Observation
}

// Factory construye una Strategy nueva para una combinación de parámetros.
// Devuelve error si el tipo de parámetros no corresponde a la variante.
type Factory func(params domain.Params) (Strategy, error)
