package metrics

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// AgentConfig describes one search agent taking part in an experiment.
// Fields that an algorithm does not use are left at zero.
type AgentConfig struct {
	ID              int           `yaml:"id"`
	Name            string        `yaml:"name"`
	Algorithm       string        `yaml:"algorithm"`
	Width           int           `yaml:"width,omitempty"`
	Depth           int           `yaml:"depth,omitempty"`
	Number          int           `yaml:"number,omitempty"`
	Playouts        int           `yaml:"playouts,omitempty"`
	Duration        time.Duration `yaml:"duration,omitempty"`
	Exploration     float64       `yaml:"exploration,omitempty"`
	ExpandThreshold int           `yaml:"expand_threshold,omitempty"`
}

type GameRecord struct {
	ID     int
	Agent1 int // AgentConfig.ID
	Agent2 int // AgentConfig.ID, equal to Agent1 for single-player games
	GameMetric
}

type MoveRecord struct {
	Game int // GameRecord.ID
	MoveMetric
}

type Writer struct {
	baseDir string
}

// NewWriter creates <root>/<name>/<timestamp> and writes every file there.
func NewWriter(root, name string) (*Writer, error) {
	timestamp := time.Now().UTC().Format("20060102T150405Z")
	baseDir := filepath.Join(root, name, timestamp)
	err := os.MkdirAll(baseDir, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	return &Writer{
		baseDir: baseDir,
	}, nil
}

func (w *Writer) Dir() string {
	return w.baseDir
}

func (w *Writer) WriteAgentConfigs(configs []AgentConfig) error {
	header := []string{"id", "name", "algorithm", "width", "depth", "number", "playouts", "duration", "exploration", "expand_threshold"}
	rows := make([][]string, 0, len(configs))
	for _, config := range configs {
		rows = append(rows, []string{
			strconv.Itoa(config.ID),
			config.Name,
			config.Algorithm,
			strconv.Itoa(config.Width),
			strconv.Itoa(config.Depth),
			strconv.Itoa(config.Number),
			strconv.Itoa(config.Playouts),
			config.Duration.String(),
			strconv.FormatFloat(config.Exploration, 'f', -1, 64),
			strconv.Itoa(config.ExpandThreshold),
		})
	}
	return w.write("agent_configs.csv", "agent configs", header, rows)
}

func (w *Writer) WriteGameRecords(records []GameRecord) error {
	header := []string{"id", "agent1", "agent2", "variant", "seed", "first_agent", "result", "score", "start_time", "end_time", "duration", "total_moves"}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.ID),
			strconv.Itoa(record.Agent1),
			strconv.Itoa(record.Agent2),
			record.Variant,
			strconv.FormatUint(record.Seed, 10),
			strconv.Itoa(record.FirstAgent),
			strconv.FormatFloat(record.Result, 'f', -1, 64),
			strconv.Itoa(record.Score),
			record.StartTime.Format(time.RFC3339Nano),
			record.EndTime.Format(time.RFC3339Nano),
			record.Duration.String(),
			strconv.Itoa(record.TotalMoves),
		})
	}
	return w.write("game_records.csv", "game records", header, rows)
}

func (w *Writer) WriteMoveRecords(records []MoveRecord) error {
	header := []string{"game", "step", "player", "action", "algorithm", "duration", "iterations", "playouts", "expansions"}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.Game),
			strconv.Itoa(record.Step),
			strconv.Itoa(record.Player),
			record.Action,
			record.Algorithm,
			record.Duration.String(),
			strconv.Itoa(record.Iterations),
			strconv.Itoa(record.Playouts),
			strconv.Itoa(record.Expansions),
		})
	}
	return w.write("move_records.csv", "move records", header, rows)
}

func (w *Writer) write(file, what string, header []string, rows [][]string) error {
	path := filepath.Join(w.baseDir, file)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s file: %w", what, err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)

	err = writer.Write(header)
	if err != nil {
		return fmt.Errorf("failed to write %s header: %w", what, err)
	}
	err = writer.WriteAll(rows)
	if err != nil {
		return fmt.Errorf("failed to write %s rows: %w", what, err)
	}
	return nil
}
