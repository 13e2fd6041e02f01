package searcher

import (
	"cmp"

	"maze/game"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/slices"
)

// candidate is a beam entry: a position, its heuristic score, and the root
// action that led to it.
type candidate[S any] struct {
	state       S
	score       int
	firstAction game.Action
}

// Result is the outcome of a beam-style search: the root action of the best
// candidate and that candidate's heuristic score.
type Result struct {
	Action game.Action
	Score  int
}

// BeamSearch keeps the width best candidates per level for up to depth
// levels and stops early once the best candidate is finished.
func BeamSearch[S game.Evaluable[S]](state S, width, depth int, options ...Option) Result {
	c := newConfig(options)
	c.start("beam")
	return beamSearch(state, width, depth, nil, c)
}

func BeamSearchAction[S game.Evaluable[S]](state S, width, depth int, options ...Option) game.Action {
	return BeamSearch(state, width, depth, options...).Action
}

// HashedBeamSearch is BeamSearch that drops every candidate whose hash was
// already produced on the same level. The first candidate seen wins.
func HashedBeamSearch[S game.Hashable[S]](state S, width, depth int, options ...Option) Result {
	c := newConfig(options)
	c.start("hashed_beam")
	return beamSearch(state, width, depth, func(s S) uint64 { return s.Hash() }, c)
}

func HashedBeamSearchAction[S game.Hashable[S]](state S, width, depth int, options ...Option) game.Action {
	return HashedBeamSearch(state, width, depth, options...).Action
}

func beamSearch[S game.Evaluable[S]](state S, width, depth int, hash func(S) uint64, c *config) Result {
	if width < 1 || depth < 1 {
		panic("beam width and depth must be at least 1")
	}
	beam := []candidate[S]{{state: state, score: state.Evaluate(), firstAction: game.InvalidAction}}
	best := beam[0]
	for t := 0; t < depth; t++ {
		if c.stopped() {
			break
		}
		c.metrics.AddIteration()

		var seen map[uint64]struct{}
		if hash != nil {
			seen = make(map[uint64]struct{})
		}
		next := make([]candidate[S], 0, len(beam)*4)
		for _, now := range beam {
			if now.state.IsDone() {
				continue
			}
			c.metrics.AddExpansion()
			for _, action := range now.state.LegalActions() {
				child := now.state.Clone()
				child.Advance(action)
				if seen != nil {
					h := hash(child)
					if _, ok := seen[h]; ok {
						continue
					}
					seen[h] = struct{}{}
				}
				first := now.firstAction
				if t == 0 {
					first = action
				}
				next = append(next, candidate[S]{state: child, score: child.Evaluate(), firstAction: first})
			}
		}
		if len(next) == 0 {
			log.Warn().Int("level", t).Msg("Beam exhausted, returning best candidate so far")
			break
		}

		slices.SortStableFunc(next, func(a, b candidate[S]) int {
			return cmp.Compare(b.score, a.score)
		})
		if len(next) > width {
			next = next[:width]
		}
		beam = next
		best = beam[0]
		if best.state.IsDone() {
			break
		}
	}
	return Result{Action: best.firstAction, Score: best.score}
}
