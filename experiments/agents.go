package experiments

import (
	"fmt"

	"maze/engine"
	"maze/experiments/metrics"
	"maze/game"
	"maze/searcher"

	"golang.org/x/exp/rand"
)

// searchOptions turns an agent config into search options. Every agent gets
// its own random stream so results do not depend on match order.
func searchOptions(a metrics.AgentConfig, seed uint64, collector metrics.Collector) []searcher.Option {
	options := []searcher.Option{
		searcher.WithRand(rand.New(rand.NewSource(seed ^ uint64(a.ID)<<32))),
		searcher.WithMetrics(collector),
	}
	if a.Duration > 0 {
		options = append(options, searcher.WithDuration(a.Duration))
	}
	if a.Exploration > 0 {
		options = append(options, searcher.WithExploration(a.Exploration))
	}
	if a.ExpandThreshold > 0 {
		options = append(options, searcher.WithExpandThreshold(a.ExpandThreshold))
	}
	return options
}

// SinglePlayer builds a single-maze player from an agent config.
func SinglePlayer(a metrics.AgentConfig, seed uint64, collector metrics.Collector) (engine.Player[*game.Maze], error) {
	options := searchOptions(a, seed, collector)
	p := engine.Player[*game.Maze]{ID: a.ID, Name: a.Name, Metrics: collector}
	switch a.Algorithm {
	case Random:
		p.Decide, p.Metrics = func(s *game.Maze) game.Action { return searcher.RandomAction(s, options...) }, nil
	case Greedy:
		p.Decide, p.Metrics = searcher.GreedyAction[*game.Maze], nil
	case Beam:
		p.Decide = func(s *game.Maze) game.Action { return searcher.BeamSearchAction(s, a.Width, a.Depth, options...) }
	case HashedBeam:
		p.Decide = func(s *game.Maze) game.Action { return searcher.HashedBeamSearchAction(s, a.Width, a.Depth, options...) }
	case Chokudai:
		p.Decide = func(s *game.Maze) game.Action {
			return searcher.ChokudaiSearchAction(s, a.Width, a.Depth, a.Number, options...)
		}
	default:
		return p, fmt.Errorf("%s cannot play the single maze", a.Algorithm)
	}
	return p, nil
}

// AlternatePlayer builds an alternate-maze player from an agent config.
func AlternatePlayer(a metrics.AgentConfig, seed uint64, collector metrics.Collector) (engine.Player[*game.AlternateMaze], error) {
	options := searchOptions(a, seed, collector)
	p := engine.Player[*game.AlternateMaze]{ID: a.ID, Name: a.Name, Metrics: collector}
	switch a.Algorithm {
	case Random:
		p.Decide, p.Metrics = func(s *game.AlternateMaze) game.Action { return searcher.RandomAction(s, options...) }, nil
	case Greedy:
		p.Decide, p.Metrics = searcher.GreedyAction[*game.AlternateMaze], nil
	case MiniMax:
		p.Decide, p.Metrics = func(s *game.AlternateMaze) game.Action { return searcher.MiniMaxAction(s, a.Depth) }, nil
	case PrimitiveMonteCarlo:
		p.Decide = func(s *game.AlternateMaze) game.Action {
			return searcher.PrimitiveMonteCarloAction(s, a.Playouts, options...)
		}
	case MCTS:
		p.Decide = func(s *game.AlternateMaze) game.Action { return searcher.MCTSAction(s, a.Playouts, options...) }
	default:
		return p, fmt.Errorf("%s cannot play the alternate maze", a.Algorithm)
	}
	return p, nil
}

func SimultaneousPlayer(a metrics.AgentConfig, seed uint64, collector metrics.Collector) (engine.SimultaneousPlayer[*game.SimultaneousMaze], error) {
	options := searchOptions(a, seed, collector)
	p := engine.SimultaneousPlayer[*game.SimultaneousMaze]{ID: a.ID, Name: a.Name, Metrics: collector}
	switch a.Algorithm {
	case Random:
		p.Metrics = nil
		p.Decide = func(s *game.SimultaneousMaze, player int) game.Action {
			return searcher.RandomSimultaneousAction(s, player, options...)
		}
	case PrimitiveMonteCarlo:
		p.Decide = func(s *game.SimultaneousMaze, player int) game.Action {
			return searcher.SimultaneousMonteCarloAction(s, player, a.Playouts, options...)
		}
	case MCTS:
		// Searches the position as if player moved first and the opponent
		// answered.
		p.Decide = func(s *game.SimultaneousMaze, player int) game.Action {
			return searcher.MCTSAction(s.AlternateView(player), a.Playouts, options...)
		}
	case DUCT:
		p.Decide = func(s *game.SimultaneousMaze, player int) game.Action {
			return searcher.DUCTAction(s, player, a.Playouts, options...)
		}
	default:
		return p, fmt.Errorf("%s cannot play the simultaneous maze", a.Algorithm)
	}
	return p, nil
}
