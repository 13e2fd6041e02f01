package experiments

import (
	"errors"
	"fmt"
	"os"
	"time"

	"maze/experiments/metrics"
	"maze/game"

	"golang.org/x/exp/slices"
	"gopkg.in/yaml.v3"
)

const (
	Random              = "random"
	Greedy              = "greedy"
	MiniMax             = "minimax"
	Beam                = "beam"
	HashedBeam          = "hashed_beam"
	Chokudai            = "chokudai"
	PrimitiveMonteCarlo = "primitive_montecarlo"
	MCTS                = "mcts"
	DUCT                = "duct"
)

const (
	VariantAlternate    = "alternate"
	VariantSimultaneous = "simultaneous"
)

// Board sizes one maze variant.
type Board struct {
	Height  int  `yaml:"height"`
	Width   int  `yaml:"width"`
	EndTurn int  `yaml:"end_turn"`
	Walls   bool `yaml:"walls,omitempty"`
}

// Match pits two agents, by ID, against each other on one variant.
type Match struct {
	Variant string `yaml:"variant"`
	Agents  [2]int `yaml:"agents"`
}

// Config describes a benchmark run: single-agent scoring runs on the
// single maze and head-to-head matches on the two-player mazes.
type Config struct {
	Name   string `yaml:"name"`
	Games  int    `yaml:"games"`
	Seed   uint64 `yaml:"seed"`
	Output string `yaml:"output,omitempty"` // CSV directory, empty to skip

	Single       Board `yaml:"single"`
	Alternate    Board `yaml:"alternate"`
	Simultaneous Board `yaml:"simultaneous"`

	Agents  []metrics.AgentConfig `yaml:"agents"`
	Scoring []int                 `yaml:"scoring"` // Agent IDs
	Matches []Match               `yaml:"matches"`
}

func DefaultConfig() Config {
	return Config{
		Name:         "bench",
		Games:        100,
		Seed:         0,
		Single:       Board{Height: 3, Width: 4, EndTurn: 4},
		Alternate:    Board{Height: 3, Width: 3, EndTurn: 4},
		Simultaneous: Board{Height: 3, Width: 3, EndTurn: 4},
		Agents: []metrics.AgentConfig{
			{ID: 1, Name: "random", Algorithm: Random},
			{ID: 2, Name: "greedy", Algorithm: Greedy},
			{ID: 3, Name: "beam", Algorithm: Beam, Width: 2, Depth: 4},
			{ID: 4, Name: "chokudai", Algorithm: Chokudai, Width: 1, Depth: 4, Number: 2},
			{ID: 5, Name: "minimax", Algorithm: MiniMax, Depth: 4},
			{ID: 6, Name: "pmc", Algorithm: PrimitiveMonteCarlo, Playouts: 300},
			{ID: 7, Name: "mcts", Algorithm: MCTS, Playouts: 300, Exploration: 1},
			{ID: 8, Name: "duct", Algorithm: DUCT, Playouts: 300, Exploration: 1},
		},
		Scoring: []int{1, 2, 3, 4},
		Matches: []Match{
			{Variant: VariantAlternate, Agents: [2]int{5, 1}},
			{Variant: VariantAlternate, Agents: [2]int{7, 6}},
			{Variant: VariantSimultaneous, Agents: [2]int{8, 6}},
		},
	}
}

// Load reads a YAML config on top of DefaultConfig and validates it. A file
// that lists its own agents drops the default scoring and matches it does not
// restate, since those refer to the default agent IDs.
func Load(path string) (Config, error) {
	config := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return config, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &config); err != nil {
		return config, fmt.Errorf("parse config: %w", err)
	}
	var keys map[string]yaml.Node
	if err := yaml.Unmarshal(data, &keys); err != nil {
		return config, fmt.Errorf("parse config: %w", err)
	}
	if _, ok := keys["agents"]; ok {
		if _, ok := keys["scoring"]; !ok {
			config.Scoring = nil
		}
		if _, ok := keys["matches"]; !ok {
			config.Matches = nil
		}
	}
	if err := config.Validate(); err != nil {
		return config, fmt.Errorf("invalid config: %w", err)
	}
	return config, nil
}

// Agent returns the agent with the given ID.
func (c Config) Agent(id int) (metrics.AgentConfig, bool) {
	for _, a := range c.Agents {
		if a.ID == id {
			return a, true
		}
	}
	return metrics.AgentConfig{}, false
}

func (c Config) Validate() error {
	if c.Games <= 0 {
		return fmt.Errorf("games must be positive, got %d", c.Games)
	}
	for name, b := range map[string]Board{"single": c.Single, "alternate": c.Alternate, "simultaneous": c.Simultaneous} {
		if err := b.validate(); err != nil {
			return fmt.Errorf("%s board: %w", name, err)
		}
	}
	if c.Alternate.Walls || c.Simultaneous.Walls {
		return errors.New("walls are only supported on the single board")
	}
	if c.Alternate.Width < 3 || c.Simultaneous.Width < 3 {
		return errors.New("two-player boards need width >= 3")
	}

	seen := make(map[int]bool)
	for _, a := range c.Agents {
		if seen[a.ID] {
			return fmt.Errorf("duplicate agent id %d", a.ID)
		}
		seen[a.ID] = true
		if err := validateAgent(a); err != nil {
			return fmt.Errorf("agent %d (%s): %w", a.ID, a.Name, err)
		}
	}

	for _, id := range c.Scoring {
		a, ok := c.Agent(id)
		if !ok {
			return fmt.Errorf("scoring: unknown agent %d", id)
		}
		if !supports(singleAlgorithms, a.Algorithm) {
			return fmt.Errorf("scoring: %s cannot play the single maze", a.Algorithm)
		}
	}
	for i, m := range c.Matches {
		algorithms := alternateAlgorithms
		switch m.Variant {
		case VariantAlternate:
		case VariantSimultaneous:
			algorithms = simultaneousAlgorithms
		default:
			return fmt.Errorf("match %d: unknown variant %q", i, m.Variant)
		}
		for _, id := range m.Agents {
			a, ok := c.Agent(id)
			if !ok {
				return fmt.Errorf("match %d: unknown agent %d", i, id)
			}
			if !supports(algorithms, a.Algorithm) {
				return fmt.Errorf("match %d: %s cannot play the %s maze", i, a.Algorithm, m.Variant)
			}
		}
	}
	return nil
}

// MazeConfig is the single-maze config for b. Every maze built from it shares
// one Zobrist table so hashes stay comparable across games.
func (b Board) MazeConfig(zobristSeed uint64) game.MazeConfig {
	return game.MazeConfig{
		Height:  b.Height,
		Width:   b.Width,
		EndTurn: b.EndTurn,
		Walls:   b.Walls,
		Zobrist: game.NewZobristTable(b.Height, b.Width, zobristSeed),
	}
}

func (b Board) AlternateConfig() game.AlternateConfig {
	return game.AlternateConfig{Height: b.Height, Width: b.Width, EndTurn: b.EndTurn}
}

func (b Board) validate() error {
	if b.Height <= 0 || b.Width <= 0 {
		return fmt.Errorf("invalid size %dx%d", b.Height, b.Width)
	}
	if b.EndTurn <= 0 {
		return fmt.Errorf("end_turn must be positive, got %d", b.EndTurn)
	}
	return nil
}

func validateAgent(a metrics.AgentConfig) error {
	if a.Duration < 0 || a.Duration > time.Minute {
		return fmt.Errorf("duration %s out of range", a.Duration)
	}
	switch a.Algorithm {
	case Random, Greedy:
	case MiniMax:
		if a.Depth < 1 {
			return errors.New("minimax needs depth >= 1")
		}
	case Beam, HashedBeam:
		if a.Width < 1 || a.Depth < 1 {
			return errors.New("beam needs width and depth >= 1")
		}
	case Chokudai:
		if a.Width < 1 || a.Depth < 1 || a.Number < 1 {
			return errors.New("chokudai needs width, depth and number >= 1")
		}
	case PrimitiveMonteCarlo, MCTS, DUCT:
		if a.Playouts < 1 {
			return errors.New("playouts must be >= 1")
		}
		if a.Exploration < 0 || a.ExpandThreshold < 0 {
			return errors.New("exploration and expand_threshold must not be negative")
		}
	default:
		return fmt.Errorf("unknown algorithm %q", a.Algorithm)
	}
	return nil
}

var (
	singleAlgorithms       = []string{Random, Greedy, Beam, HashedBeam, Chokudai}
	alternateAlgorithms    = []string{Random, Greedy, MiniMax, PrimitiveMonteCarlo, MCTS}
	simultaneousAlgorithms = []string{Random, PrimitiveMonteCarlo, MCTS, DUCT}
)

func supports(algorithms []string, algorithm string) bool {
	return slices.Contains(algorithms, algorithm)
}
