package searcher

import (
	"testing"

	"maze/game"

	"github.com/stretchr/testify/require"
)

func TestPolicy(t *testing.T) {
	policy := Policy{
		{Action: game.Right, Visits: 3, Value: 1},
		{Action: game.Left, Visits: 5, Value: 2},
		{Action: game.Down, Visits: 5, Value: 4},
		{Action: game.Up, Visits: 0},
	}

	t.Run("most visited keeps the first of equal counts", func(t *testing.T) {
		require.Equal(t, game.Left, policy.MostVisited())
	})

	t.Run("best mean skips unvisited actions", func(t *testing.T) {
		require.Equal(t, game.Down, policy.BestMean())
	})

	t.Run("empty policy has no decision", func(t *testing.T) {
		require.Equal(t, game.InvalidAction, Policy{}.MostVisited())
		require.Equal(t, game.InvalidAction, Policy{}.BestMean())
	})

	t.Run("mean of an unvisited action is zero", func(t *testing.T) {
		require.Zero(t, policy[3].Mean())
	})
}
