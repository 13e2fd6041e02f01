package searcher

import (
	"maze/game"

	"golang.org/x/exp/rand"
)

// Playout plays uniformly random moves from a copy of state until the game
// ends and returns the outcome for the player to move in state.
func Playout[S game.TwoPlayer[S]](state S, r *rand.Rand) float64 {
	s := state.Clone()
	flipped := false
	for !s.IsDone() {
		actions := s.LegalActions()
		s.Advance(actions[r.Intn(len(actions))])
		flipped = !flipped
	}
	value := s.WinningStatus().Value()
	if flipped {
		return 1 - value
	}
	return value
}

// SimultaneousPlayout plays uniformly random joint moves from a copy of
// state until the game ends and returns the outcome for player 0.
func SimultaneousPlayout[S game.Simultaneous[S]](state S, r *rand.Rand) float64 {
	s := state.Clone()
	for !s.IsDone() {
		actions0, actions1 := s.LegalActions(0), s.LegalActions(1)
		s.Advance(actions0[r.Intn(len(actions0))], actions1[r.Intn(len(actions1))])
	}
	return s.WinningStatus().Value()
}

// PrimitiveMonteCarlo spreads playouts round-robin over the legal actions in
// order: playout i goes to action i mod k.
func PrimitiveMonteCarlo[S game.TwoPlayer[S]](state S, playouts int, options ...Option) Policy {
	c := newConfig(options)
	c.start("primitive_montecarlo")
	actions := state.LegalActions()
	if len(actions) == 0 {
		panic("primitive monte carlo without legal actions")
	}
	policy := newPolicy(actions)
	for cnt := 0; cnt < playouts; cnt++ {
		if c.stopped() {
			break
		}
		c.metrics.AddIteration()
		stat := &policy[cnt%len(actions)]
		next := state.Clone()
		next.Advance(stat.Action)
		stat.Value += 1 - Playout(next, c.rand)
		stat.Visits++
		c.metrics.AddPlayout()
	}
	return policy
}

// PrimitiveMonteCarloAction returns the action with the best mean playout
// result, first action on ties.
func PrimitiveMonteCarloAction[S game.TwoPlayer[S]](state S, playouts int, options ...Option) game.Action {
	return PrimitiveMonteCarlo(state, playouts, options...).BestMean()
}

// SimultaneousMonteCarlo runs playouts playouts for each of player's actions
// in order. Each playout pairs the candidate with a uniformly random opponent
// action.
func SimultaneousMonteCarlo[S game.Simultaneous[S]](state S, player, playouts int, options ...Option) Policy {
	c := newConfig(options)
	c.start("primitive_montecarlo")
	actions := state.LegalActions(player)
	if len(actions) == 0 {
		panic("primitive monte carlo without legal actions")
	}
	opponent := state.LegalActions(1 - player)
	policy := newPolicy(actions)
	for i := range policy {
		stat := &policy[i]
		for cnt := 0; cnt < playouts; cnt++ {
			if c.stopped() {
				return policy
			}
			c.metrics.AddIteration()
			other := opponent[c.rand.Intn(len(opponent))]
			next := state.Clone()
			if player == 0 {
				next.Advance(stat.Action, other)
			} else {
				next.Advance(other, stat.Action)
			}
			value := SimultaneousPlayout(next, c.rand)
			if player == 1 {
				value = 1 - value
			}
			stat.Value += value
			stat.Visits++
			c.metrics.AddPlayout()
		}
	}
	return policy
}

func SimultaneousMonteCarloAction[S game.Simultaneous[S]](state S, player, playouts int, options ...Option) game.Action {
	return SimultaneousMonteCarlo(state, player, playouts, options...).BestMean()
}

func newPolicy(actions []game.Action) Policy {
	policy := make(Policy, len(actions))
	for i, action := range actions {
		policy[i].Action = action
	}
	return policy
}
