// Package backtest ejecuta una pasada completa de la serie de ticks por la
// máquina de estado y el ledger, sin I/O. Evaluate es pura y determinista:
// mismos inputs, mismo PnL bit a bit, independientemente del scheduling.
package backtest

import (
	"fmt"

	"github.com/alejandrodnm/gridbot/internal/domain"
	"github.com/alejandrodnm/gridbot/internal/domain/strategy"
)

// Runner evalúa combinaciones de parámetros sobre una serie compartida.
// Es seguro usar el mismo Runner desde varias goroutines: no tiene estado
// mutable, todo el estado por ejecución vive en la Strategy y el Account
// que cada Evaluate crea.
type Runner struct {
	factory       strategy.Factory
	feeRate       float64
	positionLimit int
}

// NewRunner crea un Runner con el modelo de costes dado.
func NewRunner(factory strategy.Factory, feeRate float64, positionLimit int) *Runner {
	return &Runner{factory: factory, feeRate: feeRate, positionLimit: positionLimit}
}

// Evaluate corre un backtest completo para una combinación. Una serie vacía
// devuelve PnL 0 (resultado válido, no error); una combinación inválida
// devuelve error para que el scheduler la excluya del leaderboard en vez de
// colarla como PnL 0.
func (r *Runner) Evaluate(params domain.Params, data *domain.SeriesSet) (domain.BacktestResult, error) {
	return r.run(params, data, nil)
}

// EvaluateTrace corre el mismo backtest registrando la traza tick a tick.
// Pensado para re-evaluar la mejor combinación del sweep y exportarla.
func (r *Runner) EvaluateTrace(params domain.Params, data *domain.SeriesSet) (domain.BacktestResult, *domain.Trace, error) {
	trace := &domain.Trace{Rows: make([]domain.TraceRow, 0, data.Len())}
	res, err := r.run(params, data, trace)
	if err != nil {
		return domain.BacktestResult{}, nil, err
	}
	return res, trace, nil
}

func (r *Runner) run(params domain.Params, data *domain.SeriesSet, trace *domain.Trace) (domain.BacktestResult, error) {
	if err := params.Validate(); err != nil {
		return domain.BacktestResult{}, fmt.Errorf("backtest: invalid params %s: %w", params.Label(), err)
	}

	strat, err := r.factory(params)
	if err != nil {
		return domain.BacktestResult{}, fmt.Errorf("backtest: %w", err)
	}

	res := domain.BacktestResult{Params: params}
	symbol := strat.Symbol()
	var acct domain.Account

	for i := 0; i < data.Len(); i++ {
		qty := strat.Step(data, i, acct.Position)

		tick, ok := data.Quote(symbol, i)
		executed := 0
		if qty != 0 && ok {
			executed = acct.Apply(qty, tick.Bid, tick.Ask, r.feeRate, r.positionLimit)
			if executed == 0 {
				res.VoidedOrders++
			} else {
				res.Trades++
			}
		}

		if trace != nil {
			r.record(trace, strat.Observe(), tick, acct.Position, executed)
		}
	}

	// aplanado terminal: ningún run acaba con posición abierta
	if acct.Position != 0 {
		last, ok := data.Quote(symbol, data.Len()-1)
		if ok {
			closed := acct.CloseOut(last, r.feeRate)
			res.Trades++
			if trace != nil {
				r.recordTrade(trace, strat.Observe(), last, closed)
			}
		}
	}

	res.PnL = acct.Cash
	res.TotalFees = acct.TotalFees
	return res, nil
}

func (r *Runner) record(trace *domain.Trace, obs strategy.Observation, tick domain.Tick, position, executed int) {
	trace.Rows = append(trace.Rows, domain.TraceRow{
		Timestamp:  tick.Timestamp,
		Bid:        tick.Bid,
		Ask:        tick.Ask,
		Mid:        tick.Mid(),
		Signal:     obs.Signal,
		SignalOK:   obs.SignalOK,
		Position:   position,
		HighSpread: obs.HighSpread,
	})
	if executed != 0 {
		r.recordTrade(trace, obs, tick, executed)
	}
}

func (r *Runner) recordTrade(trace *domain.Trace, obs strategy.Observation, tick domain.Tick, executed int) {
	ev := domain.TradeEvent{Timestamp: tick.Timestamp, Signal: obs.Signal}
	if executed > 0 {
		ev.Side = "BUY"
		ev.Price = tick.Ask
		ev.Quantity = executed
	} else {
		ev.Side = "SELL"
		ev.Price = tick.Bid
		ev.Quantity = -executed
	}
	trace.Trades = append(trace.Trades, ev)
}
