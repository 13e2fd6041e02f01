package game

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func TestAlternateMaze(t *testing.T) {
	t.Run("players alternate and score is from the mover's perspective", func(t *testing.T) {
		s, err := NewAlternateMazeFromLayout(4, []string{"A1B", "234"})
		require.NoError(t, err)

		require.Equal(t, 0, s.Player())
		s.Advance(Right) // A takes 1
		require.Equal(t, 1, s.Player())
		require.Equal(t, -1, s.Score(), "B is to move and trails by 1")
		s.Advance(Down) // B takes 4
		require.Equal(t, 0, s.Player())
		require.Equal(t, -3, s.Score(), "A is to move and trails by 3")
	})

	t.Run("winning status is reported for the player to move", func(t *testing.T) {
		s, err := NewAlternateMazeFromLayout(2, []string{"A1B", "..."})
		require.NoError(t, err)
		require.Equal(t, None, s.WinningStatus())
		s.Advance(Right)
		s.Advance(Down)
		require.True(t, s.IsDone())
		require.Equal(t, Win, s.WinningStatus(), "A moves next and leads")
		require.Equal(t, 1.0, s.FirstPlayerValue())
	})

	t.Run("differential is zero-sum over random play", func(t *testing.T) {
		r := rand.New(rand.NewSource(42))
		for seed := uint64(0); seed < 20; seed++ {
			s := NewAlternateMaze(seed, DefaultAlternateConfig())
			total := 0
			for _, p := range s.points {
				total += p
			}
			for !s.IsDone() {
				actions := s.LegalActions()
				s.Advance(actions[r.Intn(len(actions))])

				chars := s.Characters()
				me := s.Player()
				require.Equal(t, chars[me].Score-chars[1-me].Score, s.Score())
				remaining := 0
				for _, p := range s.points {
					remaining += p
				}
				require.Equal(t, total, chars[0].Score+chars[1].Score+remaining,
					"Points should only move from the board to a player")
			}
		}
	})

	t.Run("start cells hold no points", func(t *testing.T) {
		s := NewAlternateMaze(5, DefaultAlternateConfig())
		for _, c := range s.Characters() {
			require.Zero(t, s.points[c.Y*s.width+c.X])
		}
	})

	t.Run("panics past the horizon", func(t *testing.T) {
		s, err := NewAlternateMazeFromLayout(1, []string{"A.B"})
		require.NoError(t, err)
		s.Advance(Right)
		require.Panics(t, func() { s.Advance(Left) })
	})

	t.Run("renders both players", func(t *testing.T) {
		s, err := NewAlternateMazeFromLayout(4, []string{"A1B"})
		require.NoError(t, err)
		require.Equal(t, "turn:\t0\nscore(0)\t 0\ty:0 x:0\nscore(1)\t 0\ty:0 x:2\nA1B\n", s.String())
	})
}
