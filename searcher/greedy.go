package searcher

import (
	"math"

	"maze/game"
)

// RandomAction picks a legal action uniformly at random.
func RandomAction[S game.State[S]](state S, options ...Option) game.Action {
	c := newConfig(options)
	actions := state.LegalActions()
	if len(actions) == 0 {
		panic("random action without legal actions")
	}
	return actions[c.rand.Intn(len(actions))]
}

// RandomSimultaneousAction picks a legal action for player uniformly at random.
func RandomSimultaneousAction[S game.Simultaneous[S]](state S, player int, options ...Option) game.Action {
	c := newConfig(options)
	actions := state.LegalActions(player)
	if len(actions) == 0 {
		panic("random action without legal actions")
	}
	return actions[c.rand.Intn(len(actions))]
}

// GreedyAction looks one move ahead and keeps the first action reaching the
// highest score.
func GreedyAction[S game.Scorable[S]](state S) game.Action {
	actions := state.LegalActions()
	if len(actions) == 0 {
		panic("greedy action without legal actions")
	}
	best, bestScore := game.InvalidAction, math.MinInt
	for _, action := range actions {
		next := state.Clone()
		next.Advance(action)
		if score := next.Score(); score > bestScore {
			best, bestScore = action, score
		}
	}
	return best
}
