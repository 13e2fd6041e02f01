package searcher

import (
	"math"

	"maze/game"
)

const DUCTExpandThreshold = 5 // Visits before a DUCT leaf grows children

// ductNode keeps w and n from player 0's perspective. children[i][j] is the
// position after player 0 plays actions[0][i] and player 1 plays actions[1][j].
type ductNode[S game.Simultaneous[S]] struct {
	state    S
	w, n     float64
	actions  [2][]game.Action
	children [][]*ductNode[S]
}

type ductTree[S game.Simultaneous[S]] struct {
	*config
	expandAt int
}

func (t *ductTree[S]) expand(nd *ductNode[S]) {
	nd.actions = [2][]game.Action{nd.state.LegalActions(0), nd.state.LegalActions(1)}
	nd.children = make([][]*ductNode[S], len(nd.actions[0]))
	for i, a0 := range nd.actions[0] {
		nd.children[i] = make([]*ductNode[S], len(nd.actions[1]))
		for j, a1 := range nd.actions[1] {
			next := nd.state.Clone()
			next.Advance(a0, a1)
			nd.children[i][j] = &ductNode[S]{state: next}
		}
	}
	t.metrics.AddExpansion()
}

func (t *ductTree[S]) evaluate(nd *ductNode[S]) float64 {
	var value float64
	switch {
	case nd.state.IsDone():
		value = nd.state.WinningStatus().Value()
	case len(nd.children) == 0:
		value = SimultaneousPlayout(nd.state, t.rand)
		t.metrics.AddPlayout()
	default:
		value = t.evaluate(t.nextChild(nd))
	}
	nd.w += value
	nd.n++
	if len(nd.children) == 0 && !nd.state.IsDone() && int(nd.n) == t.expandAt {
		t.expand(nd)
	}
	return value
}

// marginals sums child statistics along one player's axis.
func (nd *ductNode[S]) marginals(player int) (w, n []float64) {
	w, n = make([]float64, len(nd.actions[player])), make([]float64, len(nd.actions[player]))
	for i, row := range nd.children {
		for j, child := range row {
			k := i
			if player == 1 {
				k = j
			}
			w[k] += child.w
			n[k] += child.n
		}
	}
	return w, n
}

// choose picks player's index by the best UCB1 score over the marginal
// statistics. Player 1 scores 1 - w/n.
func (t *ductTree[S]) choose(nd *ductNode[S], player int, total float64) int {
	w, n := nd.marginals(player)
	u := newUCB1(t.exploration, total)
	best, bestScore := 0, math.Inf(-1)
	for k := range n {
		q := w[k]
		if player == 1 {
			q = n[k] - w[k]
		}
		if score := u.evaluate(q, n[k]); score > bestScore {
			best, bestScore = k, score
		}
	}
	return best
}

// nextChild returns the first joint child never visited, scanning player 0's
// actions then player 1's, before any UCB1 selection.
func (t *ductTree[S]) nextChild(nd *ductNode[S]) *ductNode[S] {
	total := 0.0
	for _, row := range nd.children {
		for _, child := range row {
			if child.n == 0 {
				return child
			}
			total += child.n
		}
	}
	i := t.choose(nd, 0, total)
	j := t.choose(nd, 1, total)
	return nd.children[i][j]
}

// DUCTSearch grows a decoupled UCT tree and returns player's marginal root
// statistics. Values are from player's perspective.
func DUCTSearch[S game.Simultaneous[S]](state S, player, playouts int, options ...Option) Policy {
	if state.IsDone() {
		panic("duct on a finished state")
	}
	if player != 0 && player != 1 {
		panic("duct player must be 0 or 1")
	}
	c := newConfig(options)
	t := &ductTree[S]{config: c, expandAt: c.threshold(DUCTExpandThreshold)}
	t.start("duct")

	root := &ductNode[S]{state: state.Clone()}
	t.expand(root)
	for i := 0; i < playouts; i++ {
		if t.stopped() {
			break
		}
		t.metrics.AddIteration()
		t.evaluate(root)
	}

	w, n := root.marginals(player)
	policy := make(Policy, len(n))
	for k, action := range root.actions[player] {
		value := w[k]
		if player == 1 {
			value = n[k] - w[k]
		}
		policy[k] = ActionStat{Action: action, Visits: int(n[k]), Value: value}
	}
	return policy
}

// DUCTAction returns player's action with the most marginal root visits.
func DUCTAction[S game.Simultaneous[S]](state S, player, playouts int, options ...Option) game.Action {
	return DUCTSearch(state, player, playouts, options...).MostVisited()
}
