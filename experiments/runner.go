package experiments

import (
	"fmt"

	"maze/engine"
	"maze/experiments/metrics"
	"maze/game"

	"github.com/rs/zerolog/log"
)

type ScoreResult struct {
	Agent   metrics.AgentConfig
	Average float64
}

type MatchResult struct {
	Variant string
	Agents  [2]metrics.AgentConfig
	WinRate float64 // Of Agents[0]
}

type Report struct {
	Scores  []ScoreResult
	Matches []MatchResult
	Dir     string // Where CSV records were written, if anywhere
}

type Runner struct {
	config       Config
	newCollector func() metrics.Collector

	count       int
	gameRecords []metrics.GameRecord
	moveRecords []metrics.MoveRecord
}

type RunnerOption func(r *Runner)

// WithCollectors sets the factory for the per-agent metrics collectors.
func WithCollectors(newCollector func() metrics.Collector) RunnerOption {
	return func(r *Runner) {
		if newCollector != nil {
			r.newCollector = newCollector
		}
	}
}

func NewRunner(config Config, options ...RunnerOption) *Runner {
	r := &Runner{
		config:       config,
		newCollector: metrics.NewCollector,
	}
	for _, option := range options {
		option(r)
	}
	return r
}

// Run plays every scoring run and match, then writes the records when an
// output directory is configured.
func (r *Runner) Run() (Report, error) {
	var report Report
	if err := r.config.Validate(); err != nil {
		return report, fmt.Errorf("invalid config: %w", err)
	}
	log.Info().Str("name", r.config.Name).Int("games", r.config.Games).Msg("starting experiment")

	for _, id := range r.config.Scoring {
		result, err := r.score(id)
		if err != nil {
			return report, err
		}
		report.Scores = append(report.Scores, result)
	}
	for i, m := range r.config.Matches {
		log.Info().Msgf("starting match %d of %d (%s)", i+1, len(r.config.Matches), m.Variant)
		result, err := r.match(m)
		if err != nil {
			return report, fmt.Errorf("match %d: %w", i, err)
		}
		report.Matches = append(report.Matches, result)
	}
	log.Info().Str("name", r.config.Name).Msg("completed experiment")

	if r.config.Output != "" {
		dir, err := r.write()
		if err != nil {
			return report, err
		}
		report.Dir = dir
	}
	return report, nil
}

func (r *Runner) agent(id int) (metrics.AgentConfig, error) {
	a, ok := r.config.Agent(id)
	if !ok {
		return a, fmt.Errorf("unknown agent %d", id)
	}
	return a, nil
}

func (r *Runner) score(id int) (ScoreResult, error) {
	a, err := r.agent(id)
	if err != nil {
		return ScoreResult{}, err
	}
	player, err := SinglePlayer(a, r.config.Seed, r.newCollector())
	if err != nil {
		return ScoreResult{}, err
	}
	cfg := r.config.Single.MazeConfig(r.config.Seed)
	newMaze := func(seed uint64) *game.Maze { return game.NewMaze(seed, cfg) }

	average, games, err := engine.AverageScore(newMaze, player, r.config.Games, r.config.Seed)
	if err != nil {
		return ScoreResult{}, fmt.Errorf("scoring %s: %w", a.Name, err)
	}
	r.record(a.ID, a.ID, games)
	return ScoreResult{Agent: a, Average: average}, nil
}

func (r *Runner) match(m Match) (MatchResult, error) {
	result := MatchResult{Variant: m.Variant}
	a0, err := r.agent(m.Agents[0])
	if err != nil {
		return result, err
	}
	a1, err := r.agent(m.Agents[1])
	if err != nil {
		return result, err
	}
	result.Agents = [2]metrics.AgentConfig{a0, a1}
	seed := r.config.Seed

	var games []engine.Game
	switch m.Variant {
	case VariantAlternate:
		p0, err := AlternatePlayer(a0, seed, r.newCollector())
		if err != nil {
			return result, err
		}
		p1, err := AlternatePlayer(a1, seed, r.newCollector())
		if err != nil {
			return result, err
		}
		cfg := r.config.Alternate.AlternateConfig()
		newMaze := func(seed uint64) *game.AlternateMaze { return game.NewAlternateMaze(seed, cfg) }
		result.WinRate, games, err = engine.FirstPlayerWinRate(newMaze, [2]engine.Player[*game.AlternateMaze]{p0, p1}, r.config.Games, seed)
		if err != nil {
			return result, err
		}
	case VariantSimultaneous:
		p0, err := SimultaneousPlayer(a0, seed, r.newCollector())
		if err != nil {
			return result, err
		}
		p1, err := SimultaneousPlayer(a1, seed, r.newCollector())
		if err != nil {
			return result, err
		}
		cfg := r.config.Simultaneous.AlternateConfig()
		newMaze := func(seed uint64) *game.SimultaneousMaze { return game.NewSimultaneousMaze(seed, cfg) }
		result.WinRate, games, err = engine.SimultaneousWinRate(newMaze, [2]engine.SimultaneousPlayer[*game.SimultaneousMaze]{p0, p1}, r.config.Games, seed)
		if err != nil {
			return result, err
		}
	default:
		return result, fmt.Errorf("unknown variant %q", m.Variant)
	}

	r.record(a0.ID, a1.ID, games)
	log.Info().Str("agent1", a0.Name).Str("agent2", a1.Name).Float64("win_rate", result.WinRate).Msg("completed match")
	return result, nil
}

func (r *Runner) record(agent1, agent2 int, games []engine.Game) {
	for _, g := range games {
		r.count++
		r.gameRecords = append(r.gameRecords, metrics.GameRecord{
			ID:         r.count,
			Agent1:     agent1,
			Agent2:     agent2,
			GameMetric: g.Metric,
		})
		for _, mm := range g.Moves {
			r.moveRecords = append(r.moveRecords, metrics.MoveRecord{
				Game:       r.count,
				MoveMetric: mm,
			})
		}
	}
}

func (r *Runner) write() (string, error) {
	writer, err := metrics.NewWriter(r.config.Output, r.config.Name)
	if err != nil {
		return "", fmt.Errorf("failed to create experiment writer: %w", err)
	}
	if err := writer.WriteAgentConfigs(r.config.Agents); err != nil {
		return "", fmt.Errorf("failed to store agent configs: %w", err)
	}
	log.Info().Msg("stored agent configs")
	if err := writer.WriteGameRecords(r.gameRecords); err != nil {
		return "", fmt.Errorf("failed to write game records: %w", err)
	}
	log.Info().Msg("stored game records")
	if err := writer.WriteMoveRecords(r.moveRecords); err != nil {
		return "", fmt.Errorf("failed to write move records: %w", err)
	}
	log.Info().Msg("stored move records")
	return writer.Dir(), nil
}
