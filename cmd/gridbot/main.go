package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alejandrodnm/gridbot/config"
	"github.com/alejandrodnm/gridbot/internal/adapters/csvdata"
	"github.com/alejandrodnm/gridbot/internal/adapters/export"
	"github.com/alejandrodnm/gridbot/internal/adapters/notify"
	"github.com/alejandrodnm/gridbot/internal/adapters/storage"
	"github.com/alejandrodnm/gridbot/internal/backtest"
	"github.com/alejandrodnm/gridbot/internal/domain"
	"github.com/alejandrodnm/gridbot/internal/domain/strategy"
	"github.com/alejandrodnm/gridbot/internal/sweep"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "path to config file")
	variantFlag := flag.String("variant", "", "strategy variant: panic|basket (overrides config)")
	workers := flag.Int("workers", 0, "worker goroutines (0 = NumCPU, overrides config)")
	topK := flag.Int("top", 0, "leaderboard size (overrides config)")
	noTrace := flag.Bool("no-trace", false, "skip CSV trace export of the best combination")
	history := flag.Int("history", 0, "print the last N sweep summaries and exit")
	verbose := flag.Bool("verbose", false, "set log level to debug")
	logFormat := flag.String("format", "", "log format: text|json (overrides config)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "err", err, "path", *configPath)
		os.Exit(1)
	}

	if *verbose {
		cfg.Log.Level = "debug"
	}
	if *logFormat != "" {
		cfg.Log.Format = *logFormat
	}
	if *variantFlag != "" {
		cfg.Variant = *variantFlag
	}
	if *workers > 0 {
		cfg.Sweep.Workers = *workers
	}
	if *topK > 0 {
		cfg.Sweep.TopK = *topK
	}
	setupLogger(cfg.Log)

	variant, err := strategy.ParseVariant(cfg.Variant)
	if err != nil {
		slog.Error("invalid variant", "err", err)
		os.Exit(1)
	}

	store, err := storage.NewSQLiteStorage(cfg.Storage.DSN)
	if err != nil {
		slog.Error("failed to open storage", "err", err, "dsn", cfg.Storage.DSN)
		os.Exit(1)
	}
	defer store.Close()

	// el sweep en sí no es cancelable; el contexto cubre la carga de datos y
	// el I/O posterior (persistencia, listado)
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if *history > 0 {
		printHistory(ctx, store, *history)
		return
	}

	slog.Info("gridbot starting",
		"config", *configPath,
		"variant", variant,
		"data_dir", cfg.Data.Dir,
		"workers", cfg.Sweep.Workers,
		"top_k", cfg.Sweep.TopK,
	)

	loader := csvdata.NewLoader(cfg.Data.Dir)
	data, factory, combos, err := buildVariant(ctx, cfg, variant, loader)
	if err != nil {
		slog.Error("failed to prepare sweep", "err", err)
		os.Exit(1)
	}

	runner := backtest.NewRunner(factory, cfg.Costs.FeeRate, cfg.Costs.PositionLimit)
	notifier := notify.NewConsole(cfg.Sweep.TopK)

	sweeper := sweep.New(runner, sweep.Options{
		Workers:          cfg.Sweep.Workers,
		TopK:             cfg.Sweep.TopK,
		ProgressInterval: cfg.ProgressInterval(),
		OnProgress:       notifier.Progress,
	})

	run := sweeper.Run(variant, combos, data)

	if err := notifier.NotifyResults(ctx, run); err != nil {
		slog.Warn("notifier error", "err", err)
	}
	if err := store.SaveSweep(ctx, run); err != nil {
		slog.Warn("failed to persist sweep", "err", err)
	}

	if !*noTrace && cfg.Trace.Enabled {
		if best, ok := run.Best(); ok {
			exportBest(runner, best.Params, data, cfg.Trace)
		}
	}

	slog.Info("gridbot finished", "run_id", run.ID, "duration", run.Duration)
}

// buildVariant carga las series y construye la fábrica y la rejilla de la
// variante seleccionada.
func buildVariant(ctx context.Context, cfg *config.Config, variant strategy.Variant, loader *csvdata.Loader) (*domain.SeriesSet, strategy.Factory, []domain.Params, error) {
	switch variant {
	case strategy.VariantPanic:
		data, err := loader.LoadSet(ctx, []string{cfg.Data.Symbol})
		if err != nil {
			return nil, nil, nil, err
		}
		factory := strategy.NewPanicFactory(strategy.PanicConfig{
			Symbol:              cfg.Data.Symbol,
			HighSpreadThreshold: cfg.Costs.HighSpreadThreshold,
			PositionSize:        cfg.Costs.PositionSize,
		})
		combos := sweep.ExpandPanic(cfg.PanicParams(), cfg.Sweep.RangePct, cfg.Sweep.StepPct)
		return data, factory, combos, nil

	case strategy.VariantBasket:
		symbols := append([]string{cfg.Data.ETF}, cfg.Data.Components...)
		data, err := loader.LoadSet(ctx, symbols)
		if err != nil {
			return nil, nil, nil, err
		}
		factory := strategy.NewBasketFactory(strategy.BasketConfig{
			ETF:        cfg.Data.ETF,
			Components: cfg.Data.Components,
			Ratios:     cfg.Basket.Ratios,
			Intercept:  cfg.Basket.Intercept,
		})
		combos := sweep.ExpandBasket(cfg.BasketParams(), cfg.Sweep.RangePct, cfg.Sweep.StepPct)
		return data, factory, combos, nil
	}
	return nil, nil, nil, fmt.Errorf("main: unsupported variant %q", variant)
}

// exportBest re-ejecuta la mejor combinación con traza y la vuelca a CSV.
func exportBest(runner *backtest.Runner, params domain.Params, data *domain.SeriesSet, cfg config.TraceConfig) {
	_, trace, err := runner.EvaluateTrace(params, data)
	if err != nil {
		slog.Warn("trace re-run failed", "err", err, "params", params.Label())
		return
	}

	exporter := export.NewCSVExporter(cfg.MarketCSV, cfg.SignalsCSV)
	if err := exporter.Export(trace); err != nil {
		slog.Warn("trace export failed", "err", err)
		return
	}
	slog.Info("trace exported",
		"params", params.Label(),
		"market_csv", cfg.MarketCSV,
		"signals_csv", cfg.SignalsCSV,
	)
}

func printHistory(ctx context.Context, store *storage.SQLiteStorage, limit int) {
	sweeps, err := store.ListSweeps(ctx, limit)
	if err != nil {
		slog.Error("failed to list sweeps", "err", err)
		os.Exit(1)
	}
	if len(sweeps) == 0 {
		fmt.Println("no sweeps recorded yet")
		return
	}
	for _, s := range sweeps {
		fmt.Printf("%s  %-6s  %s  combos:%d excl:%d  best: %s => %.2f\n",
			s.StartedAt.Format("2006-01-02 15:04:05"), s.Variant,
			s.Duration.Round(time.Millisecond), s.Total, s.Excluded, s.BestParams, s.BestPnL)
	}
}

func setupLogger(cfg config.LogConfig) {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(handler))
}
