package searcher

import (
	"math"

	"maze/game"
)

// MiniMaxScore is the negamax value of state searched depth plies deep,
// from the perspective of the player to move. Leaves use the exact score.
func MiniMaxScore[S game.Scorable[S]](state S, depth int) int {
	if state.IsDone() || depth == 0 {
		return state.Score()
	}
	actions := state.LegalActions()
	if len(actions) == 0 {
		return state.Score()
	}
	best := math.MinInt
	for _, action := range actions {
		next := state.Clone()
		next.Advance(action)
		if score := -MiniMaxScore(next, depth-1); score > best {
			best = score
		}
	}
	return best
}

// MiniMaxAction returns the first action achieving the negamax optimum. It
// returns InvalidAction when the state has no legal action.
func MiniMaxAction[S game.Scorable[S]](state S, depth int) game.Action {
	if depth < 1 {
		panic("minimax depth must be at least 1")
	}
	best, bestScore := game.InvalidAction, math.MinInt
	for _, action := range state.LegalActions() {
		next := state.Clone()
		next.Advance(action)
		if score := -MiniMaxScore(next, depth-1); score > bestScore {
			best, bestScore = action, score
		}
	}
	return best
}
