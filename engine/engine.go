package engine

import (
	"errors"
	"time"

	"maze/experiments/metrics"
	"maze/game"
)

const MaxMoves = 10000

var (
	// ErrNoDecision is returned when a decider yields InvalidAction.
	ErrNoDecision = errors.New("search produced no decision")
	// ErrMoveLimit is returned when a game runs past MaxMoves.
	ErrMoveLimit = errors.New("move limit reached")
)

// Decider chooses the next action for the player to move in state.
type Decider[S any] func(state S) game.Action

// SimultaneousDecider chooses player's action for the next joint move.
type SimultaneousDecider[S any] func(state S, player int) game.Action

// Player is a named decider. When Metrics is set it is read after every
// decision and should be the collector the decider's search reports to.
type Player[S any] struct {
	ID      int
	Name    string
	Decide  Decider[S]
	Metrics metrics.Collector
}

type SimultaneousPlayer[S any] struct {
	ID      int
	Name    string
	Decide  SimultaneousDecider[S]
	Metrics metrics.Collector
}

// Game is the outcome of one played game with its per-move metrics.
type Game struct {
	Metric metrics.GameMetric
	Moves  []metrics.MoveMetric
}

// Alternating is a two-player alternating state that can report the
// outcome for the player who moved first.
type Alternating[S any] interface {
	game.TwoPlayer[S]
	Player() int
	FirstPlayerValue() float64
}

// SimultaneousScorable is a simultaneous state with a player-0 score.
type SimultaneousScorable[S any] interface {
	game.Simultaneous[S]
	Score() int
}

func searchMetric(collector metrics.Collector, name string, elapsed time.Duration) metrics.SearchMetric {
	var m metrics.SearchMetric
	if collector != nil {
		m = collector.Complete()
	}
	if m.Algorithm == "" {
		m.Algorithm = name
	}
	m.Duration = elapsed
	return m
}

func finish(m *metrics.GameMetric, moves int) {
	m.EndTime = time.Now()
	m.Duration = m.EndTime.Sub(m.StartTime)
	m.TotalMoves = moves
}
