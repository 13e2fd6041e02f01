package engine

import (
	"fmt"
	"time"

	"maze/experiments/metrics"
	"maze/game"

	"github.com/rs/zerolog/log"
)

// PlayGame lets player walk state until it is finished. The state is
// advanced in place.
func PlayGame[S game.Scorable[S]](state S, player Player[S]) (Game, error) {
	g := Game{Metric: metrics.GameMetric{Variant: "single", FirstAgent: player.ID, StartTime: time.Now()}}
	for step := 0; !state.IsDone(); step++ {
		if step >= MaxMoves {
			finish(&g.Metric, step)
			return g, ErrMoveLimit
		}
		start := time.Now()
		action := player.Decide(state)
		m := searchMetric(player.Metrics, player.Name, time.Since(start))
		if action == game.InvalidAction {
			finish(&g.Metric, step)
			return g, fmt.Errorf("%s at step %d: %w", player.Name, step, ErrNoDecision)
		}
		log.Debug().Str("player", player.Name).Int("step", step).Stringer("action", action).Msg("move")
		g.Moves = append(g.Moves, metrics.MoveMetric{Step: step, Action: action.String(), SearchMetric: m})
		state.Advance(action)
	}
	finish(&g.Metric, len(g.Moves))
	g.Metric.Score = state.Score()
	g.Metric.Result = float64(g.Metric.Score)
	return g, nil
}

// AverageScore plays games seeded seed, seed+1, ... and returns the mean
// final score.
func AverageScore[S game.Scorable[S]](newState func(seed uint64) S, player Player[S], games int, seed uint64) (float64, []Game, error) {
	if games <= 0 {
		return 0, nil, fmt.Errorf("games must be positive, got %d", games)
	}
	played := make([]Game, 0, games)
	total := 0
	for i := 0; i < games; i++ {
		s := seed + uint64(i)
		g, err := PlayGame(newState(s), player)
		g.Metric.Seed = s
		if err != nil {
			return 0, played, fmt.Errorf("game %d: %w", i, err)
		}
		total += g.Metric.Score
		played = append(played, g)
	}
	average := float64(total) / float64(games)
	log.Info().Str("player", player.Name).Int("games", games).Float64("score", average).Msg("average score")
	return average, played, nil
}
