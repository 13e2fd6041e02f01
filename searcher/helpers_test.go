package searcher

import (
	"testing"

	"maze/game"

	"github.com/stretchr/testify/require"
)

func mazeFromLayout(t *testing.T, endTurn int, layout ...string) *game.Maze {
	t.Helper()
	m, err := game.NewMazeFromLayout(game.MazeConfig{EndTurn: endTurn}, layout)
	require.NoError(t, err)
	return m
}

func alternateFromLayout(t *testing.T, endTurn int, layout ...string) *game.AlternateMaze {
	t.Helper()
	s, err := game.NewAlternateMazeFromLayout(endTurn, layout)
	require.NoError(t, err)
	return s
}

func simultaneousFromLayout(t *testing.T, endTurn int, layout ...string) *game.SimultaneousMaze {
	t.Helper()
	s, err := game.NewSimultaneousMazeFromLayout(endTurn, layout)
	require.NoError(t, err)
	return s
}

// bestEvaluation is the best heuristic score over every position exactly
// depth moves away.
func bestEvaluation(m *game.Maze, depth int) int {
	if depth == 0 || m.IsDone() {
		return m.Evaluate()
	}
	best := -1 << 62
	for _, action := range m.LegalActions() {
		next := m.Clone()
		next.Advance(action)
		if score := bestEvaluation(next, depth-1); score > best {
			best = score
		}
	}
	return best
}
