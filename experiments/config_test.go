package experiments

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"maze/experiments/metrics"

	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())
}

func TestLoad(t *testing.T) {
	t.Run("overrides defaults from yaml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bench.yaml")
		err := os.WriteFile(path, []byte(`
name: small
games: 3
seed: 7
single:
  height: 7
  width: 7
  end_turn: 10
  walls: true
agents:
  - id: 1
    name: uct
    algorithm: mcts
    playouts: 50
    duration: 5ms
    expand_threshold: 4
  - id: 2
    name: hashed
    algorithm: hashed_beam
    width: 3
    depth: 5
scoring: [2]
matches:
  - variant: alternate
    agents: [1, 1]
`), 0644)
		require.NoError(t, err)

		config, err := Load(path)
		require.NoError(t, err)
		require.Equal(t, "small", config.Name)
		require.Equal(t, 3, config.Games)
		require.Equal(t, uint64(7), config.Seed)
		require.True(t, config.Single.Walls)
		require.Equal(t, DefaultConfig().Alternate, config.Alternate)
		require.Len(t, config.Agents, 2)
		require.Equal(t, metrics.AgentConfig{
			ID:              1,
			Name:            "uct",
			Algorithm:       MCTS,
			Playouts:        50,
			Duration:        5 * time.Millisecond,
			ExpandThreshold: 4,
		}, config.Agents[0])
		require.Equal(t, []int{2}, config.Scoring)
		require.Equal(t, [2]int{1, 1}, config.Matches[0].Agents)
	})

	t.Run("own agents drop the default scoring and matches", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "agents.yaml")
		require.NoError(t, os.WriteFile(path, []byte(`
agents:
  - id: 1
    name: greedy
    algorithm: greedy
`), 0644))

		config, err := Load(path)
		require.NoError(t, err)
		require.Len(t, config.Agents, 1)
		require.Empty(t, config.Scoring)
		require.Empty(t, config.Matches)
	})

	t.Run("keeps the default scoring and matches without own agents", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "games.yaml")
		require.NoError(t, os.WriteFile(path, []byte("games: 2\n"), 0644))

		config, err := Load(path)
		require.NoError(t, err)
		require.Equal(t, DefaultConfig().Scoring, config.Scoring)
		require.Equal(t, DefaultConfig().Matches, config.Matches)
	})

	t.Run("reports a missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
		require.ErrorContains(t, err, "read config")
	})

	t.Run("reports malformed yaml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.yaml")
		require.NoError(t, os.WriteFile(path, []byte("games: [1"), 0644))
		_, err := Load(path)
		require.ErrorContains(t, err, "parse config")
	})

	t.Run("validates the result", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "invalid.yaml")
		require.NoError(t, os.WriteFile(path, []byte("games: 0\n"), 0644))
		_, err := Load(path)
		require.ErrorContains(t, err, "invalid config")
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(c *Config)
		want   string
	}{
		{"no games", func(c *Config) { c.Games = 0 }, "games must be positive"},
		{"empty board", func(c *Config) { c.Single.Width = 0 }, "single board"},
		{"walls on a two-player board", func(c *Config) { c.Alternate.Walls = true }, "walls"},
		{"narrow two-player board", func(c *Config) { c.Simultaneous.Width = 2 }, "width >= 3"},
		{"duplicate agent", func(c *Config) { c.Agents = append(c.Agents, c.Agents[0]) }, "duplicate agent id"},
		{"unknown algorithm", func(c *Config) { c.Agents[0].Algorithm = "alphabeta" }, "unknown algorithm"},
		{"beam without width", func(c *Config) { c.Agents[2].Width = 0 }, "beam needs"},
		{"mcts without playouts", func(c *Config) { c.Agents[6].Playouts = 0 }, "playouts"},
		{"unknown scoring agent", func(c *Config) { c.Scoring = []int{42} }, "unknown agent 42"},
		{"scoring with a two-player algorithm", func(c *Config) { c.Scoring = []int{7} }, "cannot play the single maze"},
		{"unknown variant", func(c *Config) { c.Matches[0].Variant = "chess" }, "unknown variant"},
		{"duct on the alternate maze", func(c *Config) { c.Matches[0].Agents[0] = 8 }, "cannot play the alternate maze"},
		{"minimax on the simultaneous maze", func(c *Config) { c.Matches[2].Agents[1] = 5 }, "cannot play the simultaneous maze"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := DefaultConfig()
			tt.modify(&config)
			require.ErrorContains(t, config.Validate(), tt.want)
		})
	}
}
