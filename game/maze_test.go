package game

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func mustMaze(t *testing.T, endTurn int, layout ...string) *Maze {
	t.Helper()
	cfg := DefaultMazeConfig()
	cfg.EndTurn = endTurn
	m, err := NewMazeFromLayout(cfg, layout)
	require.NoError(t, err)
	return m
}

func TestNewMaze(t *testing.T) {
	t.Run("same seed builds the same maze", func(t *testing.T) {
		a := NewMaze(11, DefaultMazeConfig())
		b := NewMaze(11, DefaultMazeConfig())
		require.Equal(t, a.String(), b.String(), "Generation should be deterministic")
		require.Equal(t, a.Hash(), b.Hash(), "Hashes should match")
	})

	t.Run("plain maze fills every other cell with 1-9 points", func(t *testing.T) {
		m := NewMaze(3, DefaultMazeConfig())
		for cell, p := range m.points {
			if cell == m.cell(m.character) {
				require.Zero(t, p, "Spawn cell should be empty")
				continue
			}
			require.GreaterOrEqual(t, p, 1)
			require.LessOrEqual(t, p, MaxPoint)
		}
	})

	t.Run("wall maze never puts walls or points under the character", func(t *testing.T) {
		for seed := uint64(0); seed < 20; seed++ {
			m := NewMaze(seed, WallMazeConfig())
			spawn := m.cell(m.character)
			require.False(t, m.walls[spawn], "Spawn cell should be open")
			require.Zero(t, m.points[spawn], "Spawn cell should be empty")
			for cell, wall := range m.walls {
				if wall {
					require.Zero(t, m.points[cell], "Walls should not hold points")
				}
			}
		}
	})
}

func TestNewMazeFromLayout(t *testing.T) {
	t.Run("rejects malformed layouts", func(t *testing.T) {
		cfg := DefaultMazeConfig()
		_, err := NewMazeFromLayout(cfg, nil)
		require.Error(t, err)
		_, err = NewMazeFromLayout(cfg, []string{"@1", "2"})
		require.Error(t, err, "Ragged rows should fail")
		_, err = NewMazeFromLayout(cfg, []string{"11", "22"})
		require.Error(t, err, "Missing character should fail")
		_, err = NewMazeFromLayout(cfg, []string{"@x"})
		require.Error(t, err, "Unknown cells should fail")
	})

	t.Run("reports an empty first row instead of panicking", func(t *testing.T) {
		require.NotPanics(t, func() {
			_, err := NewMazeFromLayout(DefaultMazeConfig(), []string{""})
			require.ErrorContains(t, err, "empty row")
		})
	})

	t.Run("round trips through String", func(t *testing.T) {
		m := mustMaze(t, 4, "@1#", "2.3")
		require.Equal(t, "turn:\t0\nscore:\t0\n@1#\n2.3\n", m.String())
	})
}

func TestMazeLegalActions(t *testing.T) {
	t.Run("corner allows two directions in fixed order", func(t *testing.T) {
		m := mustMaze(t, 4, "@..", "...", "...")
		require.Equal(t, []Action{Right, Down}, m.LegalActions())
	})

	t.Run("centre allows all four directions", func(t *testing.T) {
		m := mustMaze(t, 4, "...", ".@.", "...")
		require.Equal(t, []Action{Right, Left, Down, Up}, m.LegalActions())
	})

	t.Run("walls block movement", func(t *testing.T) {
		m := mustMaze(t, 4, "...", "#@.", ".#.")
		require.Equal(t, []Action{Right, Up}, m.LegalActions())
	})
}

func TestMazeAdvance(t *testing.T) {
	t.Run("collects points once", func(t *testing.T) {
		m := mustMaze(t, 4, "@5")
		m.Advance(Right)
		require.Equal(t, 5, m.Score())
		m.Advance(Left)
		m.Advance(Right)
		require.Equal(t, 5, m.Score(), "Collected cells should be empty")
		require.Equal(t, 3, m.Turn())
	})

	t.Run("finishes at the end turn", func(t *testing.T) {
		m := mustMaze(t, 2, "@5")
		m.Advance(Right)
		require.False(t, m.IsDone())
		m.Advance(Left)
		require.True(t, m.IsDone())
		require.Panics(t, func() { m.Advance(Right) }, "Advancing a finished maze should panic")
	})

	t.Run("panics on illegal and invalid actions", func(t *testing.T) {
		m := mustMaze(t, 4, "@5")
		require.Panics(t, func() { m.Clone().Advance(Up) })
		require.Panics(t, func() { m.Clone().Advance(InvalidAction) })
	})

	t.Run("clone does not alias the original", func(t *testing.T) {
		m := mustMaze(t, 4, "@5")
		c := m.Clone()
		c.Advance(Right)
		require.Equal(t, 0, m.Score())
		require.Equal(t, "turn:\t0\nscore:\t0\n@5\n", m.String())
	})
}

func TestMazeEvaluate(t *testing.T) {
	t.Run("prefers nearer points on equal score", func(t *testing.T) {
		near := mustMaze(t, 4, "@1..")
		far := mustMaze(t, 4, "@..1")
		require.Equal(t, -1, near.Evaluate())
		require.Equal(t, -3, far.Evaluate())
	})

	t.Run("walks around walls", func(t *testing.T) {
		m := mustMaze(t, 4, "@#1", "...")
		require.Equal(t, -4, m.Evaluate())
	})

	t.Run("uses board size when no point is reachable", func(t *testing.T) {
		m := mustMaze(t, 4, "@#1", ".#.")
		require.Equal(t, -6, m.Evaluate())
	})

	t.Run("weights score by board size", func(t *testing.T) {
		m := mustMaze(t, 4, "@2", "..")
		m.Advance(Right)
		require.Equal(t, 2*4-4, m.Evaluate(), "No points left falls back to board size")
	})
}

func TestMazeHash(t *testing.T) {
	t.Run("transpositions share a hash", func(t *testing.T) {
		a := mustMaze(t, 10, "@1", "2.")
		for _, action := range []Action{Right, Down, Left} {
			a.Advance(action)
		}
		b := mustMaze(t, 10, "@1", "2.")
		for _, action := range []Action{Down, Up, Right, Down, Left} {
			b.Advance(action)
		}
		fresh := mustMaze(t, 10, "..", "@.")

		require.Equal(t, a.Hash(), b.Hash(), "Paths to the same position should hash equally")
		require.Equal(t, fresh.Hash(), a.Hash(), "Incremental hash should match a freshly built one")
	})

	t.Run("different positions differ", func(t *testing.T) {
		a := mustMaze(t, 10, "@1", "2.")
		b := a.Clone()
		a.Advance(Right)
		b.Advance(Down)
		require.NotEqual(t, a.Hash(), b.Hash())
	})

	t.Run("no collisions across random walks", func(t *testing.T) {
		r := rand.New(rand.NewSource(7))
		boards := map[uint64]string{}
		for seed := uint64(0); seed < 30; seed++ {
			m := NewMaze(seed, WallMazeConfig())
			for !m.IsDone() {
				actions := m.LegalActions()
				m.Advance(actions[r.Intn(len(actions))])
				// walls are not hashed, so boards are only comparable within a seed
				board := fmt.Sprintf("%d\n%s", seed, strings.SplitN(m.String(), "\n", 3)[2])
				if prev, ok := boards[m.Hash()]; ok {
					require.Equal(t, prev, board, "Equal hashes should mean equal boards")
				}
				boards[m.Hash()] = board
			}
		}
	})
}
