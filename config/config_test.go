package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "variant: panic\n"))
	require.NoError(t, err)

	assert.Equal(t, "panic", cfg.Variant)
	assert.Equal(t, "UEC", cfg.Data.Symbol)
	assert.Equal(t, "VP", cfg.Data.ETF)
	assert.Equal(t, []string{"SHEEP", "ORE", "WHEAT"}, cfg.Data.Components)
	assert.Equal(t, 0.002, cfg.Costs.FeeRate)
	assert.Equal(t, 100, cfg.Costs.PositionLimit)
	assert.Equal(t, 100, cfg.Costs.PositionSize)
	assert.Equal(t, 1.3, cfg.Costs.HighSpreadThreshold)
	assert.Equal(t, 80, cfg.Panic.ShortWindow)
	assert.Equal(t, 80, cfg.Panic.WaitingPeriod)
	assert.Equal(t, 0.2, cfg.Panic.HSExitChangeThreshold)
	assert.Equal(t, 0.9, cfg.Panic.MATurnThreshold)
	assert.Equal(t, 1, cfg.Basket.RollingAvgWindow)
	assert.Equal(t, 33.0, cfg.Basket.PositiveDiffThreshold)
	assert.Equal(t, -33.0, cfg.Basket.NegativeDiffThreshold)
	assert.Equal(t, 100, cfg.Basket.OrderQuantity)
	assert.InDelta(t, 42.150153, cfg.Basket.Intercept, 1e-6)
	assert.InDelta(t, 22.4798756, cfg.Basket.Ratios["ORE"], 1e-9)
	assert.Equal(t, 10, cfg.Sweep.RangePct)
	assert.Equal(t, 1, cfg.Sweep.StepPct)
	assert.Equal(t, 10, cfg.Sweep.TopK)
	assert.Equal(t, time.Second, cfg.ProgressInterval())
	assert.Equal(t, "gridbot.db", cfg.Storage.DSN)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
}

func TestLoad_ExplicitValues(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
variant: basket
data:
  dir: testdata
  etf: XYZ
  components: [AAA, BBB]
costs:
  fee_rate: 0.001
  position_limit: 50
sweep:
  range_pct: 5
  step_pct: 5
  workers: 2
  top_k: 3
  progress_seconds: 2
log:
  level: debug
  format: json
`))
	require.NoError(t, err)

	assert.Equal(t, "basket", cfg.Variant)
	assert.Equal(t, "XYZ", cfg.Data.ETF)
	assert.Equal(t, []string{"AAA", "BBB"}, cfg.Data.Components)
	assert.Equal(t, 0.001, cfg.Costs.FeeRate)
	assert.Equal(t, 50, cfg.Costs.PositionLimit)
	assert.Equal(t, 5, cfg.Sweep.RangePct)
	assert.Equal(t, 2, cfg.Sweep.Workers)
	assert.Equal(t, 3, cfg.Sweep.TopK)
	assert.Equal(t, 2*time.Second, cfg.ProgressInterval())
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("LOG_LEVEL", "warn")
	t.Setenv("LOG_FORMAT", "json")

	cfg, err := Load(writeConfig(t, "log:\n  level: info\n  format: text\n"))
	require.NoError(t, err)

	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_InvalidYAML(t *testing.T) {
	_, err := Load(writeConfig(t, "variant: [unclosed\n"))
	assert.Error(t, err)
}

func TestConfigParams(t *testing.T) {
	cfg, err := Load(writeConfig(t, "variant: panic\n"))
	require.NoError(t, err)

	pp := cfg.PanicParams()
	assert.NoError(t, pp.Validate())
	assert.Equal(t, 80, pp.ShortWindow)

	bp := cfg.BasketParams()
	assert.NoError(t, bp.Validate())
	assert.Equal(t, -33.0, bp.NegativeThreshold)
}
