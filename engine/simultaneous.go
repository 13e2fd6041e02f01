package engine

import (
	"fmt"
	"time"

	"maze/experiments/metrics"
	"maze/game"

	"github.com/rs/zerolog/log"
)

// PlaySimultaneous lets both players decide on the same position every
// turn. Result and Score are from players[0]'s perspective.
func PlaySimultaneous[S SimultaneousScorable[S]](state S, players [2]SimultaneousPlayer[S]) (Game, error) {
	g := Game{Metric: metrics.GameMetric{Variant: "simultaneous", FirstAgent: players[0].ID, StartTime: time.Now()}}
	for step := 0; !state.IsDone(); step++ {
		if step >= MaxMoves {
			finish(&g.Metric, step*2)
			return g, ErrMoveLimit
		}
		var actions [2]game.Action
		for id, p := range players {
			start := time.Now()
			actions[id] = p.Decide(state, id)
			m := searchMetric(p.Metrics, p.Name, time.Since(start))
			if actions[id] == game.InvalidAction {
				finish(&g.Metric, len(g.Moves))
				return g, fmt.Errorf("%s at step %d: %w", p.Name, step, ErrNoDecision)
			}
			g.Moves = append(g.Moves, metrics.MoveMetric{Step: step, Player: id, Action: actions[id].String(), SearchMetric: m})
		}
		log.Debug().Int("step", step).Stringer("action0", actions[0]).Stringer("action1", actions[1]).Msg("joint move")
		state.Advance(actions[0], actions[1])
	}
	finish(&g.Metric, len(g.Moves))
	g.Metric.Result = state.WinningStatus().Value()
	g.Metric.Score = state.Score()
	return g, nil
}

// SimultaneousWinRate plays one game per seed and returns players[0]'s mean
// win-rate point.
func SimultaneousWinRate[S SimultaneousScorable[S]](newState func(seed uint64) S, players [2]SimultaneousPlayer[S], games int, seed uint64) (float64, []Game, error) {
	if games <= 0 {
		return 0, nil, fmt.Errorf("games must be positive, got %d", games)
	}
	played := make([]Game, 0, games)
	total := 0.0
	for i := 0; i < games; i++ {
		s := seed + uint64(i)
		g, err := PlaySimultaneous(newState(s), players)
		g.Metric.Seed = s
		if err != nil {
			return 0, played, fmt.Errorf("game %d: %w", i, err)
		}
		total += g.Metric.Result
		played = append(played, g)
	}
	rate := total / float64(games)
	log.Info().Str("player", players[0].Name).Str("opponent", players[1].Name).Int("games", games).Float64("win_rate", rate).Msg("simultaneous win rate")
	return rate, played, nil
}
