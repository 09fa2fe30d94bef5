package csvdata

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCSV(t *testing.T, dir, symbol, content string) {
	t.Helper()
	err := os.WriteFile(filepath.Join(dir, symbol+".csv"), []byte(content), 0o644)
	require.NoError(t, err)
}

func TestLoadSeries(t *testing.T) {
	dir := t.TempDir()
	writeCSV(t, dir, "UEC", "tick,bid,ask\n0,9.8,10.0\n1,9.9,10.1\n")

	series, err := NewLoader(dir).LoadSeries(context.Background(), "UEC")

	require.NoError(t, err)
	require.Len(t, series, 2)
	assert.Equal(t, int64(0), series[0].Timestamp)
	assert.Equal(t, 9.8, series[0].Bid)
	assert.Equal(t, 10.1, series[1].Ask)
}

func TestLoadSeries_SkipsMalformedRows(t *testing.T) {
	dir := t.TempDir()
	writeCSV(t, dir, "UEC", "tick,bid,ask\n0,9.8,10.0\nbroken\n1,not-a-number,10.1\n2,9.9,10.1\n")

	series, err := NewLoader(dir).LoadSeries(context.Background(), "UEC")

	require.NoError(t, err)
	assert.Len(t, series, 2)
}

func TestLoadSeries_IndexFallbackTimestamp(t *testing.T) {
	dir := t.TempDir()
	writeCSV(t, dir, "UEC", ",Bids,Asks\nx,9.8,10.0\ny,9.9,10.1\n")

	series, err := NewLoader(dir).LoadSeries(context.Background(), "UEC")

	require.NoError(t, err)
	require.Len(t, series, 2)
	assert.Equal(t, int64(0), series[0].Timestamp)
	assert.Equal(t, int64(1), series[1].Timestamp)
}

func TestLoadSeries_MissingFile(t *testing.T) {
	_, err := NewLoader(t.TempDir()).LoadSeries(context.Background(), "UEC")
	assert.Error(t, err)
}

func TestLoadSet(t *testing.T) {
	dir := t.TempDir()
	writeCSV(t, dir, "VP", "tick,bid,ask\n0,19.9,20.1\n1,9.9,10.1\n")
	writeCSV(t, dir, "SHEEP", "tick,bid,ask\n0,9.9,10.1\n1,9.9,10.1\n")

	set, err := NewLoader(dir).LoadSet(context.Background(), []string{"VP", "SHEEP"})

	require.NoError(t, err)
	assert.Equal(t, 2, set.Len())
	assert.Equal(t, []string{"SHEEP", "VP"}, set.Symbols())
}

func TestLoadSet_LengthMismatch(t *testing.T) {
	dir := t.TempDir()
	writeCSV(t, dir, "VP", "tick,bid,ask\n0,19.9,20.1\n")
	writeCSV(t, dir, "SHEEP", "tick,bid,ask\n0,9.9,10.1\n1,9.9,10.1\n")

	_, err := NewLoader(dir).LoadSet(context.Background(), []string{"VP", "SHEEP"})
	assert.Error(t, err)
}
