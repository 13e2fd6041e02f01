package engine

import (
	"fmt"
	"time"

	"maze/experiments/metrics"
	"maze/game"

	"github.com/rs/zerolog/log"
)

// PlayAlternating plays players[0] as the first mover against players[1].
// The game metric's Result is the first mover's win-rate point and Score is
// the first mover's point differential.
func PlayAlternating[S Alternating[S]](state S, players [2]Player[S]) (Game, error) {
	g := Game{Metric: metrics.GameMetric{Variant: "alternate", FirstAgent: players[0].ID, StartTime: time.Now()}}
	for step := 0; !state.IsDone(); step++ {
		if step >= MaxMoves {
			finish(&g.Metric, step)
			return g, ErrMoveLimit
		}
		id := state.Player()
		p := players[id]
		start := time.Now()
		action := p.Decide(state)
		m := searchMetric(p.Metrics, p.Name, time.Since(start))
		if action == game.InvalidAction {
			finish(&g.Metric, step)
			return g, fmt.Errorf("%s at step %d: %w", p.Name, step, ErrNoDecision)
		}
		log.Debug().Str("player", p.Name).Int("step", step).Stringer("action", action).Msg("move")
		g.Moves = append(g.Moves, metrics.MoveMetric{Step: step, Player: id, Action: action.String(), SearchMetric: m})
		state.Advance(action)
	}
	finish(&g.Metric, len(g.Moves))
	g.Metric.Result = state.FirstPlayerValue()
	g.Metric.Score = state.Score()
	if state.Player() != 0 {
		g.Metric.Score = -g.Metric.Score
	}
	return g, nil
}

// FirstPlayerWinRate plays every seed twice, once with each player moving
// first, and returns players[0]'s mean win-rate point.
func FirstPlayerWinRate[S Alternating[S]](newState func(seed uint64) S, players [2]Player[S], games int, seed uint64) (float64, []Game, error) {
	if games <= 0 {
		return 0, nil, fmt.Errorf("games must be positive, got %d", games)
	}
	played := make([]Game, 0, games*2)
	total := 0.0
	for i := 0; i < games; i++ {
		s := seed + uint64(i)
		for j := 0; j < 2; j++ {
			order := players
			if j == 1 {
				order = [2]Player[S]{players[1], players[0]}
			}
			g, err := PlayAlternating(newState(s), order)
			g.Metric.Seed = s
			if err != nil {
				return 0, played, fmt.Errorf("game %d side %d: %w", i, j, err)
			}
			value := g.Metric.Result
			if j == 1 {
				value = 1 - value
			}
			total += value
			played = append(played, g)
		}
	}
	rate := total / float64(games*2)
	log.Info().Str("player", players[0].Name).Str("opponent", players[1].Name).Int("games", games*2).Float64("win_rate", rate).Msg("first player win rate")
	return rate, played, nil
}
