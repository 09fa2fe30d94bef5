package sweep

// sweep.go — scheduler data-parallel de la rejilla. Los workers reclaman
// combinaciones con un contador atómico (subconjuntos disjuntos, ninguna
// combinación se evalúa dos veces) y escriben cada resultado en el índice
// propio de un slice pre-dimensionado, sin lock. El leaderboard acotado es el
// único recurso compartido con mutex. Un goroutine reporter muestrea el
// progreso a intervalo fijo sin bloquear a los workers y emite un snapshot
// final antes de terminar.
//
// No hay cancelación: un sweep siempre corre hasta completarse.

import (
	"log/slog"
	"runtime"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/alejandrodnm/gridbot/internal/backtest"
	"github.com/alejandrodnm/gridbot/internal/domain"
	"github.com/alejandrodnm/gridbot/internal/domain/strategy"
)

// ProgressFunc recibe cada snapshot periódico del sweep.
type ProgressFunc func(done, total, excluded int64, top []domain.BacktestResult)

// Options configura un Sweeper.
type Options struct {
	Workers          int           // 0 = runtime.NumCPU()
	TopK             int           // capacidad del leaderboard (0 = 10)
	ProgressInterval time.Duration // 0 = 1s; <0 desactiva el reporter
	OnProgress       ProgressFunc  // nil desactiva el reporter
}

// Sweeper distribuye las combinaciones entre un pool fijo de workers, cada
// uno evaluando backtests de forma independiente.
type Sweeper struct {
	runner *backtest.Runner
	opts   Options
	board  *Leaderboard

	next      atomic.Int64
	completed atomic.Int64
	excluded  atomic.Int64
	total     atomic.Int64

	// las combinaciones inválidas se loguean con throttle para que un grid
	// degenerado no inunde la salida desde el hot loop
	warnLimit *rate.Limiter
}

// New crea un Sweeper. Workers a 0 usa el paralelismo hardware disponible.
func New(runner *backtest.Runner, opts Options) *Sweeper {
	if opts.Workers <= 0 {
		opts.Workers = runtime.NumCPU()
	}
	if opts.TopK <= 0 {
		opts.TopK = 10
	}
	if opts.ProgressInterval == 0 {
		opts.ProgressInterval = time.Second
	}
	return &Sweeper{
		runner:    runner,
		opts:      opts,
		board:     NewLeaderboard(opts.TopK),
		warnLimit: rate.NewLimiter(rate.Every(time.Second), 5),
	}
}

// CompletedCount devuelve cuántas combinaciones se han procesado hasta ahora.
// API de solo lectura para la capa de presentación.
func (s *Sweeper) CompletedCount() int64 {
	return s.completed.Load()
}

// CurrentTopK devuelve un snapshot del leaderboard actual.
func (s *Sweeper) CurrentTopK() []domain.BacktestResult {
	return s.board.TopK()
}

// Run evalúa todas las combinaciones y devuelve el sweep completo con los
// resultados válidos ordenados por PnL descendente. El resultado de cada
// combinación no depende del número de workers ni del orden de ejecución.
func (s *Sweeper) Run(variant strategy.Variant, combos []domain.Params, data *domain.SeriesSet) *domain.SweepRun {
	start := time.Now()
	total := int64(len(combos))

	s.next.Store(0)
	s.completed.Store(0)
	s.excluded.Store(0)
	s.total.Store(total)
	s.board.Reset()

	slog.Info("sweep starting",
		"variant", string(variant),
		"combinations", total,
		"workers", s.opts.Workers,
		"ticks", data.Len(),
	)

	// escrituras por índice disjunto: no necesitan lock
	results := make([]domain.BacktestResult, len(combos))
	valid := make([]bool, len(combos))

	workersDone := make(chan struct{})
	var reporterWG sync.WaitGroup
	if s.opts.OnProgress != nil && s.opts.ProgressInterval > 0 {
		reporterWG.Add(1)
		go s.report(workersDone, &reporterWG)
	}

	var wg sync.WaitGroup
	for w := 0; w < s.opts.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				idx := s.next.Add(1) - 1
				if idx >= total {
					return
				}

				res, err := s.runner.Evaluate(combos[idx], data)
				if err != nil {
					s.excluded.Add(1)
					if s.warnLimit.Allow() {
						slog.Warn("combination excluded",
							"params", combos[idx].Label(),
							"err", err,
						)
					}
				} else {
					results[idx] = res
					valid[idx] = true
					s.board.Push(res)
				}
				s.completed.Add(1)
			}
		}()
	}

	wg.Wait()
	close(workersDone)
	reporterWG.Wait()

	run := &domain.SweepRun{
		ID:        uuid.New().String(),
		Variant:   string(variant),
		StartedAt: start.UTC(),
		Duration:  time.Since(start),
		Workers:   s.opts.Workers,
		Total:     len(combos),
		Excluded:  int(s.excluded.Load()),
		Results:   collect(results, valid),
	}

	slog.Info("sweep complete",
		"run_id", run.ID,
		"duration", run.Duration,
		"excluded", run.Excluded,
	)
	return run
}

// report muestrea el estado a intervalo fijo y emite un último snapshot
// cuando los workers terminan. Nunca bloquea el progreso: solo toma el mutex
// del leaderboard lo justo para copiarlo.
func (s *Sweeper) report(workersDone <-chan struct{}, wg *sync.WaitGroup) {
	defer wg.Done()

	ticker := time.NewTicker(s.opts.ProgressInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.opts.OnProgress(s.completed.Load(), s.total.Load(), s.excluded.Load(), s.board.TopK())
		case <-workersDone:
			s.opts.OnProgress(s.completed.Load(), s.total.Load(), s.excluded.Load(), s.board.TopK())
			return
		}
	}
}

// collect filtra los resultados válidos y los ordena por PnL descendente con
// el mismo desempate que el leaderboard.
func collect(results []domain.BacktestResult, valid []bool) []domain.BacktestResult {
	out := make([]domain.BacktestResult, 0, len(results))
	for i, ok := range valid {
		if ok {
			out = append(out, results[i])
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Better(out[j])
	})
	return out
}
