package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"maze/engine"
	"maze/experiments"
	"maze/experiments/metrics"
	"maze/game"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	logLevel   string
	configPath string

	rootCmd = &cobra.Command{
		Use:   "maze",
		Short: "Game search algorithms on small maze games",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, err := zerolog.ParseLevel(logLevel)
			if err != nil {
				return fmt.Errorf("invalid log level: %w", err)
			}
			zerolog.SetGlobalLevel(level)
			log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
			return nil
		},
	}

	playSeed    uint64
	playVariant string
	playAgents  []int
	playCmd     = &cobra.Command{
		Use:   "play",
		Short: "Play one game and print every position",
		RunE:  runPlay,
	}

	benchOut     string
	benchGames   int
	benchMetrics bool
	benchCmd     = &cobra.Command{
		Use:   "bench",
		Short: "Run the scoring runs and matches of a benchmark config",
		RunE:  runBench,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "zerolog level")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "YAML benchmark config, defaults when empty")

	playCmd.Flags().Uint64Var(&playSeed, "seed", 0, "maze seed")
	playCmd.Flags().StringVar(&playVariant, "variant", "single", "single, alternate or simultaneous")
	playCmd.Flags().IntSliceVar(&playAgents, "agents", []int{2}, "agent IDs, one for single, two otherwise")

	benchCmd.Flags().StringVar(&benchOut, "out", "", "directory for CSV records, overrides the config")
	benchCmd.Flags().IntVar(&benchGames, "games", 0, "games per run, overrides the config")
	benchCmd.Flags().BoolVar(&benchMetrics, "metrics", false, "export search counters to prometheus and log them")

	rootCmd.AddCommand(playCmd, benchCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadConfig() (experiments.Config, error) {
	if configPath == "" {
		return experiments.DefaultConfig(), nil
	}
	return experiments.Load(configPath)
}

func agents(config experiments.Config, want int) ([]metrics.AgentConfig, error) {
	if len(playAgents) != want {
		return nil, fmt.Errorf("%s needs %d agents, got %d", playVariant, want, len(playAgents))
	}
	found := make([]metrics.AgentConfig, want)
	for i, id := range playAgents {
		a, ok := config.Agent(id)
		if !ok {
			return nil, fmt.Errorf("unknown agent %d", id)
		}
		found[i] = a
	}
	return found, nil
}

func runPlay(cmd *cobra.Command, args []string) error {
	config, err := loadConfig()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	switch playVariant {
	case "single":
		a, err := agents(config, 1)
		if err != nil {
			return err
		}
		player, err := experiments.SinglePlayer(a[0], config.Seed, metrics.NewDummyCollector())
		if err != nil {
			return err
		}
		state := game.NewMaze(playSeed, config.Single.MazeConfig(config.Seed))
		fmt.Fprintln(out, state)
		for !state.IsDone() {
			action := player.Decide(state)
			if action == game.InvalidAction {
				return engine.ErrNoDecision
			}
			state.Advance(action)
			fmt.Fprintf(out, "%s\n%s\n", action, state)
		}
		fmt.Fprintf(out, "score: %d\n", state.Score())
	case experiments.VariantAlternate:
		a, err := agents(config, 2)
		if err != nil {
			return err
		}
		var players [2]engine.Player[*game.AlternateMaze]
		for i := range players {
			if players[i], err = experiments.AlternatePlayer(a[i], config.Seed, metrics.NewDummyCollector()); err != nil {
				return err
			}
		}
		state := game.NewAlternateMaze(playSeed, config.Alternate.AlternateConfig())
		fmt.Fprintln(out, state)
		for !state.IsDone() {
			p := players[state.Player()]
			action := p.Decide(state)
			if action == game.InvalidAction {
				return engine.ErrNoDecision
			}
			state.Advance(action)
			fmt.Fprintf(out, "%s: %s\n%s\n", p.Name, action, state)
		}
		fmt.Fprintf(out, "first player result: %v\n", state.FirstPlayerValue())
	case experiments.VariantSimultaneous:
		a, err := agents(config, 2)
		if err != nil {
			return err
		}
		var players [2]engine.SimultaneousPlayer[*game.SimultaneousMaze]
		for i := range players {
			if players[i], err = experiments.SimultaneousPlayer(a[i], config.Seed, metrics.NewDummyCollector()); err != nil {
				return err
			}
		}
		state := game.NewSimultaneousMaze(playSeed, config.Simultaneous.AlternateConfig())
		fmt.Fprintln(out, state)
		for !state.IsDone() {
			a0, a1 := players[0].Decide(state, 0), players[1].Decide(state, 1)
			if a0 == game.InvalidAction || a1 == game.InvalidAction {
				return engine.ErrNoDecision
			}
			state.Advance(a0, a1)
			fmt.Fprintf(out, "%s / %s\n%s\n", a0, a1, state)
		}
		fmt.Fprintf(out, "%s for player 0, score rate %.3f\n", state.WinningStatus(), state.ScoreRate())
	default:
		return fmt.Errorf("unknown variant %q", playVariant)
	}
	return nil
}

func runBench(cmd *cobra.Command, args []string) error {
	config, err := loadConfig()
	if err != nil {
		return err
	}
	if benchOut != "" {
		config.Output = benchOut
	}
	if benchGames > 0 {
		config.Games = benchGames
	}

	var options []experiments.RunnerOption
	reg := prometheus.NewRegistry()
	if benchMetrics {
		counters := metrics.NewPromCounters(reg)
		options = append(options, experiments.WithCollectors(func() metrics.Collector {
			return metrics.NewPromCollector(counters)
		}))
	}

	report, err := experiments.NewRunner(config, options...).Run()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, s := range report.Scores {
		fmt.Fprintf(out, "%-12s %-20s average score %.2f\n", s.Agent.Name, s.Agent.Algorithm, s.Average)
	}
	for _, m := range report.Matches {
		fmt.Fprintf(out, "%-12s %-12s vs %-12s win rate %.3f\n", m.Variant, m.Agents[0].Name, m.Agents[1].Name, m.WinRate)
	}
	if report.Dir != "" {
		log.Info().Str("dir", report.Dir).Msg("wrote records")
	}

	if benchMetrics {
		families, err := reg.Gather()
		if err != nil {
			return fmt.Errorf("gather metrics: %w", err)
		}
		logFamilies(families)
	}
	return nil
}

func logFamilies(families []*dto.MetricFamily) {
	for _, f := range families {
		for _, m := range f.GetMetric() {
			labels := make([]string, 0, len(m.GetLabel()))
			for _, l := range m.GetLabel() {
				labels = append(labels, l.GetName()+"="+l.GetValue())
			}
			switch f.GetType() {
			case dto.MetricType_COUNTER:
				log.Info().Str("metric", f.GetName()).Str("labels", strings.Join(labels, ",")).
					Float64("value", m.GetCounter().GetValue()).Msg("counter")
			case dto.MetricType_HISTOGRAM:
				h := m.GetHistogram()
				log.Info().Str("metric", f.GetName()).Str("labels", strings.Join(labels, ",")).
					Uint64("count", h.GetSampleCount()).Float64("sum", h.GetSampleSum()).Msg("histogram")
			}
		}
	}
}
