package searcher

import (
	"testing"

	"maze/game"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func TestRandomAction(t *testing.T) {
	t.Run("returns legal actions reproducibly", func(t *testing.T) {
		m := game.NewMaze(3, game.DefaultMazeConfig())
		legal := m.LegalActions()

		first := make([]game.Action, 20)
		second := make([]game.Action, 20)
		r1, r2 := rand.New(rand.NewSource(42)), rand.New(rand.NewSource(42))
		for i := range first {
			first[i] = RandomAction(m, WithRand(r1))
			second[i] = RandomAction(m, WithRand(r2))
			require.Contains(t, legal, first[i])
		}
		require.Equal(t, first, second)
	})

	t.Run("reaches every legal action", func(t *testing.T) {
		m := mazeFromLayout(t, 4,
			"...",
			".@.",
			"...",
		)
		r := rand.New(rand.NewSource(7))
		seen := make(map[game.Action]bool)
		for i := 0; i < 200; i++ {
			seen[RandomAction(m, WithRand(r))] = true
		}
		require.Len(t, seen, 4)
	})

	t.Run("simultaneous action is legal for the player", func(t *testing.T) {
		s := simultaneousFromLayout(t, 2,
			"A.B",
			"...",
		)
		for i := 0; i < 20; i++ {
			require.Contains(t, s.LegalActions(1), RandomSimultaneousAction(s, 1, WithSeed(uint64(i))))
		}
	})

	t.Run("panics without legal actions", func(t *testing.T) {
		m := mazeFromLayout(t, 4, "@")
		require.Panics(t, func() { RandomAction(m) })
	})
}

func TestGreedyAction(t *testing.T) {
	t.Run("plays the golden sequence", func(t *testing.T) {
		m := mazeFromLayout(t, 4,
			"@.3",
			"2.9",
			"4.1",
		)
		var played []game.Action
		for !m.IsDone() {
			action := GreedyAction(m)
			played = append(played, action)
			m.Advance(action)
		}
		require.Equal(t, []game.Action{game.Down, game.Down, game.Right, game.Right}, played)
		require.Equal(t, 7, m.Score())
	})

	t.Run("plays the recorded sequence on generated maze 11", func(t *testing.T) {
		m := game.NewMaze(11, game.MazeConfig{Height: 3, Width: 3, EndTurn: 4})
		require.Equal(t, "turn:\t0\nscore:\t0\n475\n731\n44@\n", m.String())

		var played []game.Action
		for !m.IsDone() {
			action := GreedyAction(m)
			played = append(played, action)
			m.Advance(action)
		}
		require.Equal(t, []game.Action{game.Left, game.Left, game.Up, game.Up}, played)
		require.Equal(t, 19, m.Score())
	})

	t.Run("keeps the first of equal scores", func(t *testing.T) {
		m := mazeFromLayout(t, 4,
			".5.",
			"5@5",
			".5.",
		)
		require.Equal(t, game.Right, GreedyAction(m))
	})

	t.Run("does not mutate the state", func(t *testing.T) {
		m := mazeFromLayout(t, 4, "@9")
		before := m.String()
		GreedyAction(m)
		require.Equal(t, before, m.String())
	})
}
