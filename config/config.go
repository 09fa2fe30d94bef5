package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/alejandrodnm/gridbot/internal/domain"
)

// Config es la configuración completa de gridbot.
type Config struct {
	Variant string        `yaml:"variant"` // panic | basket
	Data    DataConfig    `yaml:"data"`
	Costs   CostsConfig   `yaml:"costs"`
	Panic   PanicConfig   `yaml:"panic"`
	Basket  BasketConfig  `yaml:"basket"`
	Sweep   SweepConfig   `yaml:"sweep"`
	Trace   TraceConfig   `yaml:"trace"`
	Storage StorageConfig `yaml:"storage"`
	Log     LogConfig     `yaml:"log"`
}

// DataConfig indica de dónde salen las series de ticks.
type DataConfig struct {
	Dir        string   `yaml:"dir"`
	Symbol     string   `yaml:"symbol"`     // variante panic
	ETF        string   `yaml:"etf"`        // variante basket
	Components []string `yaml:"components"` // variante basket
}

// CostsConfig es el modelo de costes y límites compartido por las variantes.
type CostsConfig struct {
	FeeRate             float64 `yaml:"fee_rate"`
	PositionLimit       int     `yaml:"position_limit"`
	PositionSize        int     `yaml:"position_size"`
	HighSpreadThreshold float64 `yaml:"high_spread_threshold"`
}

// PanicConfig son los parámetros base de la variante panic; el sweep los
// perturba alrededor de estos valores.
type PanicConfig struct {
	ShortWindow           int     `yaml:"short_window"`
	WaitingPeriod         int     `yaml:"waiting_period"`
	HSExitChangeThreshold float64 `yaml:"hs_exit_change_threshold"`
	MATurnThreshold       float64 `yaml:"ma_turn_threshold"`
}

// BasketConfig son los parámetros base de la variante basket más el modelo
// fijo de la cesta (pesos de la regresión, no se barren).
type BasketConfig struct {
	RollingAvgWindow      int                `yaml:"rolling_avg_window"`
	PositiveDiffThreshold float64            `yaml:"positive_diff_threshold"`
	NegativeDiffThreshold float64            `yaml:"negative_diff_threshold"`
	OrderQuantity         int                `yaml:"order_quantity"`
	Intercept             float64            `yaml:"intercept"`
	Ratios                map[string]float64 `yaml:"ratios"`
}

// SweepConfig controla la rejilla y el scheduler.
type SweepConfig struct {
	RangePct        int `yaml:"range_pct"`
	StepPct         int `yaml:"step_pct"`
	Workers         int `yaml:"workers"` // 0 = NumCPU
	TopK            int `yaml:"top_k"`
	ProgressSeconds int `yaml:"progress_seconds"`
}

// TraceConfig controla la exportación de la mejor combinación.
type TraceConfig struct {
	Enabled    bool   `yaml:"enabled"`
	MarketCSV  string `yaml:"market_csv"`
	SignalsCSV string `yaml:"signals_csv"`
}

// StorageConfig controla dónde se persiste el histórico.
type StorageConfig struct {
	DSN string `yaml:"dsn"` // ruta al archivo SQLite, o ":memory:"
}

// LogConfig controla el formato y nivel de logging.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug | info | warn | error
	Format string `yaml:"format"` // text | json
}

// Load carga la configuración desde el archivo YAML y el archivo .env si
// existe. Los valores del .env sobreescriben los del YAML para las keys que
// correspondan.
func Load(path string) (*Config, error) {
	// Cargar .env si existe (silencia error si no hay archivo)
	_ = godotenv.Load()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config.Load: read %q: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config.Load: parse YAML: %w", err)
	}

	applyEnvOverrides(&cfg)
	setDefaults(&cfg)

	return &cfg, nil
}

// ProgressInterval devuelve el intervalo del reporter como time.Duration.
func (c *Config) ProgressInterval() time.Duration {
	return time.Duration(c.Sweep.ProgressSeconds) * time.Second
}

// PanicParams devuelve los parámetros base de la variante panic.
func (c *Config) PanicParams() domain.PanicParams {
	return domain.PanicParams{
		ShortWindow:   c.Panic.ShortWindow,
		WaitingPeriod: c.Panic.WaitingPeriod,
		HSExitChange:  c.Panic.HSExitChangeThreshold,
		MATurn:        c.Panic.MATurnThreshold,
	}
}

// BasketParams devuelve los parámetros base de la variante basket.
func (c *Config) BasketParams() domain.BasketParams {
	return domain.BasketParams{
		Window:            c.Basket.RollingAvgWindow,
		PositiveThreshold: c.Basket.PositiveDiffThreshold,
		NegativeThreshold: c.Basket.NegativeDiffThreshold,
		OrderQuantity:     c.Basket.OrderQuantity,
	}
}

// applyEnvOverrides sobreescribe valores con variables de entorno si están
// presentes.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
}

// setDefaults asegura que los valores requeridos tengan valores sensatos.
func setDefaults(cfg *Config) {
	if cfg.Variant == "" {
		cfg.Variant = "panic"
	}
	if cfg.Data.Dir == "" {
		cfg.Data.Dir = "data"
	}
	if cfg.Data.Symbol == "" {
		cfg.Data.Symbol = "UEC"
	}
	if cfg.Data.ETF == "" {
		cfg.Data.ETF = "VP"
	}
	if len(cfg.Data.Components) == 0 {
		cfg.Data.Components = []string{"SHEEP", "ORE", "WHEAT"}
	}
	if cfg.Costs.FeeRate <= 0 {
		cfg.Costs.FeeRate = 0.002
	}
	if cfg.Costs.PositionLimit <= 0 {
		cfg.Costs.PositionLimit = 100
	}
	if cfg.Costs.PositionSize <= 0 {
		cfg.Costs.PositionSize = 100
	}
	if cfg.Costs.HighSpreadThreshold <= 0 {
		cfg.Costs.HighSpreadThreshold = 1.3
	}
	if cfg.Panic.ShortWindow <= 0 {
		cfg.Panic.ShortWindow = 80
	}
	if cfg.Panic.WaitingPeriod <= 0 {
		cfg.Panic.WaitingPeriod = 80
	}
	if cfg.Panic.HSExitChangeThreshold <= 0 {
		cfg.Panic.HSExitChangeThreshold = 0.2
	}
	if cfg.Panic.MATurnThreshold <= 0 {
		cfg.Panic.MATurnThreshold = 0.9
	}
	if cfg.Basket.RollingAvgWindow <= 0 {
		cfg.Basket.RollingAvgWindow = 1
	}
	if cfg.Basket.PositiveDiffThreshold == 0 {
		cfg.Basket.PositiveDiffThreshold = 33.0
	}
	if cfg.Basket.NegativeDiffThreshold == 0 {
		cfg.Basket.NegativeDiffThreshold = -33.0
	}
	if cfg.Basket.OrderQuantity <= 0 {
		cfg.Basket.OrderQuantity = 100
	}
	if cfg.Basket.Intercept == 0 {
		cfg.Basket.Intercept = 42.15015333713495
	}
	if len(cfg.Basket.Ratios) == 0 {
		cfg.Basket.Ratios = map[string]float64{
			"SHEEP": 0.89205968,
			"ORE":   22.4798756,
			"WHEAT": 2.88036676,
		}
	}
	if cfg.Sweep.RangePct <= 0 {
		cfg.Sweep.RangePct = 10
	}
	if cfg.Sweep.StepPct <= 0 {
		cfg.Sweep.StepPct = 1
	}
	if cfg.Sweep.TopK <= 0 {
		cfg.Sweep.TopK = 10
	}
	if cfg.Sweep.ProgressSeconds <= 0 {
		cfg.Sweep.ProgressSeconds = 1
	}
	if cfg.Trace.MarketCSV == "" {
		cfg.Trace.MarketCSV = "market_data_report.csv"
	}
	if cfg.Trace.SignalsCSV == "" {
		cfg.Trace.SignalsCSV = "trade_signals_report.csv"
	}
	if cfg.Storage.DSN == "" {
		cfg.Storage.DSN = "gridbot.db"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "text"
	}
}
