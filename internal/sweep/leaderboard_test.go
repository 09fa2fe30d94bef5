package sweep

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alejandrodnm/gridbot/internal/domain"
)

func panicResult(sw int, pnl float64) domain.BacktestResult {
	return domain.BacktestResult{
		Params: domain.PanicParams{ShortWindow: sw, WaitingPeriod: 80, HSExitChange: 0.2, MATurn: 0.9},
		PnL:    pnl,
	}
}

func TestLeaderboard_KeepsBestK(t *testing.T) {
	board := NewLeaderboard(3)

	all := []domain.BacktestResult{
		panicResult(1, 5), panicResult(2, -3), panicResult(3, 12),
		panicResult(4, 0), panicResult(5, 8), panicResult(6, 7),
	}
	for _, res := range all {
		board.Push(res)
	}

	top := board.TopK()
	require.Len(t, top, 3)
	assert.Equal(t, 12.0, top[0].PnL)
	assert.Equal(t, 8.0, top[1].PnL)
	assert.Equal(t, 7.0, top[2].PnL)
}

func TestLeaderboard_MatchesFullSort(t *testing.T) {
	board := NewLeaderboard(5)

	var all []domain.BacktestResult
	for i := 0; i < 50; i++ {
		res := panicResult(i+1, float64((i*37)%23)-11)
		all = append(all, res)
		board.Push(res)
	}

	sort.Slice(all, func(i, j int) bool { return all[i].Better(all[j]) })

	top := board.TopK()
	require.Len(t, top, 5)
	for i := range top {
		assert.Equal(t, all[i].Params.Label(), top[i].Params.Label())
		assert.Equal(t, all[i].PnL, top[i].PnL)
	}
}

func TestLeaderboard_TieBreakDeterministic(t *testing.T) {
	board := NewLeaderboard(1)

	// mismo PnL: sobrevive el label lexicográficamente menor,
	// independientemente del orden de inserción
	board.Push(panicResult(80, 5))
	board.Push(panicResult(72, 5))

	top := board.TopK()
	require.Len(t, top, 1)
	assert.Equal(t, domain.PanicParams{ShortWindow: 72, WaitingPeriod: 80, HSExitChange: 0.2, MATurn: 0.9}.Label(),
		top[0].Params.Label())
}

func TestLeaderboard_FewerThanK(t *testing.T) {
	board := NewLeaderboard(10)
	board.Push(panicResult(1, 1))

	assert.Equal(t, 1, board.Len())
	assert.Len(t, board.TopK(), 1)
}

func TestLeaderboard_Reset(t *testing.T) {
	board := NewLeaderboard(3)
	board.Push(panicResult(1, 1))
	board.Reset()

	assert.Equal(t, 0, board.Len())
	assert.Empty(t, board.TopK())
}
