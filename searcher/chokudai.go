package searcher

import (
	"container/heap"

	"maze/game"
)

// chokudaiBeam is a max-heap of candidates ordered by score, then by
// insertion order so equal scores pop first-in first-out.
type chokudaiBeam[S any] struct {
	items []candidate[S]
	order []int
	seq   int
}

func (b *chokudaiBeam[S]) Len() int { return len(b.items) }

func (b *chokudaiBeam[S]) Less(i, j int) bool {
	if b.items[i].score != b.items[j].score {
		return b.items[i].score > b.items[j].score
	}
	return b.order[i] < b.order[j]
}

func (b *chokudaiBeam[S]) Swap(i, j int) {
	b.items[i], b.items[j] = b.items[j], b.items[i]
	b.order[i], b.order[j] = b.order[j], b.order[i]
}

func (b *chokudaiBeam[S]) Push(x any) {
	b.items = append(b.items, x.(candidate[S]))
	b.order = append(b.order, b.seq)
	b.seq++
}

func (b *chokudaiBeam[S]) Pop() any {
	n := len(b.items) - 1
	item := b.items[n]
	b.items, b.order = b.items[:n], b.order[:n]
	return item
}

func (b *chokudaiBeam[S]) peek() candidate[S] {
	return b.items[0]
}

// ChokudaiSearch runs number passes over depth+1 per-level beams, expanding
// up to width candidates from every level in each pass. A pass leaves a
// level as soon as its best candidate is finished. The result comes from the
// deepest non-empty level; its Action is InvalidAction when no candidate
// below the root was produced.
func ChokudaiSearch[S game.Evaluable[S]](state S, width, depth, number int, options ...Option) Result {
	if width < 1 || depth < 1 || number < 1 {
		panic("chokudai width, depth and number must be at least 1")
	}
	c := newConfig(options)
	c.start("chokudai")

	beams := make([]*chokudaiBeam[S], depth+1)
	for t := range beams {
		beams[t] = &chokudaiBeam[S]{}
	}
	heap.Push(beams[0], candidate[S]{state: state, score: state.Evaluate(), firstAction: game.InvalidAction})

	for cnt := 0; cnt < number; cnt++ {
		if c.stopped() {
			break
		}
		c.metrics.AddIteration()
		for t := 0; t < depth; t++ {
			now, next := beams[t], beams[t+1]
			for i := 0; i < width; i++ {
				if now.Len() == 0 || now.peek().state.IsDone() {
					break
				}
				parent := heap.Pop(now).(candidate[S])
				c.metrics.AddExpansion()
				for _, action := range parent.state.LegalActions() {
					child := parent.state.Clone()
					child.Advance(action)
					first := parent.firstAction
					if t == 0 {
						first = action
					}
					heap.Push(next, candidate[S]{state: child, score: child.Evaluate(), firstAction: first})
				}
			}
		}
	}

	for t := depth; t >= 0; t-- {
		if beams[t].Len() > 0 {
			best := beams[t].peek()
			return Result{Action: best.firstAction, Score: best.score}
		}
	}
	return Result{Action: game.InvalidAction}
}

func ChokudaiSearchAction[S game.Evaluable[S]](state S, width, depth, number int, options ...Option) game.Action {
	return ChokudaiSearch(state, width, depth, number, options...).Action
}
