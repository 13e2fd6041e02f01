package metrics

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestCollector(t *testing.T) {
	t.Run("counts concurrent events", func(t *testing.T) {
		c := NewCollector()
		c.Start("mcts")

		var wg sync.WaitGroup
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for j := 0; j < 100; j++ {
					c.AddIteration()
					c.AddPlayout()
				}
				c.AddExpansion()
			}()
		}
		wg.Wait()

		m := c.Complete()
		require.Equal(t, "mcts", m.Algorithm)
		require.Equal(t, 800, m.Iterations)
		require.Equal(t, 800, m.Playouts)
		require.Equal(t, 8, m.Expansions)
		require.GreaterOrEqual(t, m.Duration, time.Duration(0))
	})

	t.Run("start resets counts", func(t *testing.T) {
		c := NewCollector()
		c.Start("beam")
		c.AddIteration()
		c.AddExpansion()
		c.Start("chokudai")
		m := c.Complete()
		require.Equal(t, "chokudai", m.Algorithm)
		require.Zero(t, m.Iterations)
		require.Zero(t, m.Expansions)
	})

	t.Run("dummy collector reports nothing", func(t *testing.T) {
		c := NewDummyCollector()
		c.Start("mcts")
		c.AddPlayout()
		require.Equal(t, SearchMetric{}, c.Complete())
	})
}

func TestPromCollector(t *testing.T) {
	reg := prometheus.NewRegistry()
	counters := NewPromCounters(reg)
	a := NewPromCollector(counters)
	b := NewPromCollector(counters)

	a.Start("mcts")
	a.AddIteration()
	a.AddIteration()
	a.AddPlayout()
	a.AddExpansion()
	b.Start("duct")
	b.AddPlayout()

	m := a.Complete()
	require.Equal(t, 2, m.Iterations)
	require.Equal(t, 1, m.Playouts)
	b.Complete()

	require.Equal(t, 2.0, testutil.ToFloat64(counters.iterations.WithLabelValues("mcts")))
	require.Equal(t, 1.0, testutil.ToFloat64(counters.playouts.WithLabelValues("mcts")))
	require.Equal(t, 1.0, testutil.ToFloat64(counters.playouts.WithLabelValues("duct")))
	require.Equal(t, 1.0, testutil.ToFloat64(counters.searches.WithLabelValues("duct")))
	require.Equal(t, 2, testutil.CollectAndCount(counters.duration))
}

func TestWriter(t *testing.T) {
	w, err := NewWriter(t.TempDir(), "test")
	require.NoError(t, err)

	err = w.WriteAgentConfigs([]AgentConfig{
		{ID: 1, Name: "uct", Algorithm: "mcts", Playouts: 1000, Exploration: 1},
		{ID: 2, Name: "greedy", Algorithm: "greedy"},
	})
	require.NoError(t, err)

	err = w.WriteGameRecords([]GameRecord{
		{ID: 0, Agent1: 1, Agent2: 2, GameMetric: GameMetric{Variant: "alternate", Result: 1, TotalMoves: 8}},
	})
	require.NoError(t, err)

	err = w.WriteMoveRecords([]MoveRecord{
		{Game: 0, MoveMetric: MoveMetric{Step: 0, Player: 0, Action: "DOWN", SearchMetric: SearchMetric{Algorithm: "mcts", Playouts: 1000}}},
	})
	require.NoError(t, err)

	read := func(name string) [][]string {
		f, err := os.Open(filepath.Join(w.Dir(), name))
		require.NoError(t, err)
		defer f.Close()
		rows, err := csv.NewReader(f).ReadAll()
		require.NoError(t, err)
		return rows
	}

	configs := read("agent_configs.csv")
	require.Len(t, configs, 3)
	require.Equal(t, "algorithm", configs[0][2])
	require.Equal(t, "mcts", configs[1][2])
	require.Equal(t, "1000", configs[1][6])

	games := read("game_records.csv")
	require.Len(t, games, 2)
	require.Equal(t, "alternate", games[1][3])
	require.Equal(t, "1", games[1][6])

	moves := read("move_records.csv")
	require.Len(t, moves, 2)
	require.Equal(t, "DOWN", moves[1][3])
	require.Equal(t, "1000", moves[1][7])
}
