package searcher

import (
	"math"

	"maze/game"
)

const ExpandThreshold = 10 // Visits before an MCTS leaf grows children

// node is a UCT tree node. w and n are from the perspective of the player
// to move in state.
type node[S game.TwoPlayer[S]] struct {
	state    S
	w, n     float64
	actions  []game.Action
	children []*node[S]
}

type uctTree[S game.TwoPlayer[S]] struct {
	*config
	expandAt int
}

func (t *uctTree[S]) expand(nd *node[S]) {
	nd.actions = nd.state.LegalActions()
	nd.children = make([]*node[S], len(nd.actions))
	for i, action := range nd.actions {
		next := nd.state.Clone()
		next.Advance(action)
		nd.children[i] = &node[S]{state: next}
	}
	t.metrics.AddExpansion()
}

func (t *uctTree[S]) evaluate(nd *node[S]) float64 {
	if nd.state.IsDone() {
		value := nd.state.WinningStatus().Value()
		nd.w += value
		nd.n++
		return value
	}
	if len(nd.children) == 0 {
		value := Playout(nd.state, t.rand)
		t.metrics.AddPlayout()
		nd.w += value
		nd.n++
		if int(nd.n) == t.expandAt {
			t.expand(nd)
		}
		return value
	}
	value := 1 - t.evaluate(t.nextChild(nd))
	nd.w += value
	nd.n++
	return value
}

// nextChild returns the first unvisited child, otherwise the child with the
// best UCB1 score from this node's perspective.
func (t *uctTree[S]) nextChild(nd *node[S]) *node[S] {
	total := 0.0
	for _, child := range nd.children {
		if child.n == 0 {
			return child
		}
		total += child.n
	}
	u := newUCB1(t.exploration, total)
	var best *node[S]
	bestScore := math.Inf(-1)
	for _, child := range nd.children {
		if score := u.evaluate(child.n-child.w, child.n); score > bestScore {
			best, bestScore = child, score
		}
	}
	return best
}

// MCTSSearch grows a UCT tree from state for the given number of playouts
// and returns the root statistics.
func MCTSSearch[S game.TwoPlayer[S]](state S, playouts int, options ...Option) Policy {
	if state.IsDone() {
		panic("mcts on a finished state")
	}
	c := newConfig(options)
	t := &uctTree[S]{config: c, expandAt: c.threshold(ExpandThreshold)}
	t.start("mcts")

	root := &node[S]{state: state.Clone()}
	t.expand(root)
	for i := 0; i < playouts; i++ {
		if t.stopped() {
			break
		}
		t.metrics.AddIteration()
		t.evaluate(root)
	}

	policy := make(Policy, len(root.children))
	for i, child := range root.children {
		policy[i] = ActionStat{Action: root.actions[i], Visits: int(child.n), Value: child.n - child.w}
	}
	return policy
}

// MCTSAction returns the most visited root action.
func MCTSAction[S game.TwoPlayer[S]](state S, playouts int, options ...Option) game.Action {
	return MCTSSearch(state, playouts, options...).MostVisited()
}
