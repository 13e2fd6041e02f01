package searcher

import "maze/game"

// ActionStat is the accumulated statistics of one root action. Value is the
// total reward from the searching player's perspective.
type ActionStat struct {
	Action game.Action
	Visits int
	Value  float64
}

func (s ActionStat) Mean() float64 {
	if s.Visits == 0 {
		return 0
	}
	return s.Value / float64(s.Visits)
}

// Policy lists root actions in legal-action order.
type Policy []ActionStat

// MostVisited returns the first action with the highest visit count.
func (p Policy) MostVisited() game.Action {
	best, bestVisits := game.InvalidAction, -1
	for _, s := range p {
		if s.Visits > bestVisits {
			best, bestVisits = s.Action, s.Visits
		}
	}
	return best
}

// BestMean returns the first visited action with the highest mean value,
// or the first action when nothing was visited.
func (p Policy) BestMean() game.Action {
	if len(p) == 0 {
		return game.InvalidAction
	}
	best, bestMean := p[0].Action, -1.0
	for _, s := range p {
		if s.Visits == 0 {
			continue
		}
		if mean := s.Mean(); mean > bestMean {
			best, bestMean = s.Action, mean
		}
	}
	return best
}
