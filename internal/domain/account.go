package domain

// Account es el estado contable de un backtest: posición, caja y fees
// acumuladas. Lo posee en exclusiva una ejecución del runner; nunca se
// comparte ni se reutiliza entre combinaciones o goroutines.
type Account struct {
	Position  int
	Cash      float64
	TotalFees float64
}

// Apply ejecuta una orden contra el tick actual respetando el límite de
// posición. Una orden que superaría el límite se anula entera (cantidad 0),
// nunca se llena parcialmente. Devuelve la cantidad realmente ejecutada.
//
// Una compra resta ask*qty*(1+fee) de caja; una venta suma bid*qty*(1-fee).
// Las fees se acumulan aparte para reporting.
func (a *Account) Apply(qty int, bid, ask, feeRate float64, positionLimit int) int {
	if qty > 0 && a.Position+qty > positionLimit {
		qty = 0
	}
	if qty < 0 && a.Position+qty < -positionLimit {
		qty = 0
	}

	switch {
	case qty > 0:
		a.Cash -= ask * float64(qty) * (1 + feeRate)
		a.TotalFees += ask * float64(qty) * feeRate
	case qty < 0:
		a.Cash += bid * float64(-qty) * (1 - feeRate)
		a.TotalFees += bid * float64(-qty) * feeRate
	}

	a.Position += qty
	return qty
}

// CloseOut aplana la posición residual contra el último tick: el cierre de un
// largo vende al bid, el de un corto compra al ask, con la misma fee.
// Garantiza el invariante terminal position == 0. Devuelve la cantidad de la
// orden de cierre (0 si ya estaba plano).
func (a *Account) CloseOut(last Tick, feeRate float64) int {
	closed := -a.Position

	switch {
	case a.Position > 0:
		a.Cash += last.Bid * float64(a.Position) * (1 - feeRate)
		a.TotalFees += last.Bid * float64(a.Position) * feeRate
	case a.Position < 0:
		a.Cash -= last.Ask * float64(-a.Position) * (1 + feeRate)
		a.TotalFees += last.Ask * float64(-a.Position) * feeRate
	}

	a.Position = 0
	return closed
}
