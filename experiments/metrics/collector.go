package metrics

import (
	"sync/atomic"
	"time"
)

type SearchMetric struct {
	Algorithm  string
	Duration   time.Duration
	Iterations int
	Playouts   int
	Expansions int
}

type MoveMetric struct {
	Step   int
	Player int // Player index
	Action string
	SearchMetric
}

type GameMetric struct {
	Seed       uint64
	Variant    string
	FirstAgent int // AgentConfig.ID of the player moving first
	Result     float64
	Score      int
	StartTime  time.Time
	EndTime    time.Time
	Duration   time.Duration
	TotalMoves int
}

// Collector counts the work done by one search. Searches call Start when
// they begin; the owner of the collector reads the totals with Complete.
type Collector interface {
	Start(algorithm string)
	AddIteration()
	AddPlayout()
	AddExpansion()
	Complete() SearchMetric
}

type collector struct {
	algorithm  string
	startTime  time.Time
	iterations atomic.Int32
	playouts   atomic.Int32
	expansions atomic.Int32
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(algorithm string) {
	m.algorithm = algorithm
	m.startTime = time.Now()
	m.iterations.Store(0)
	m.playouts.Store(0)
	m.expansions.Store(0)
}

func (m *collector) AddIteration() {
	m.iterations.Add(1)
}

func (m *collector) AddPlayout() {
	m.playouts.Add(1)
}

func (m *collector) AddExpansion() {
	m.expansions.Add(1)
}

func (m *collector) Complete() SearchMetric {
	return SearchMetric{
		Algorithm:  m.algorithm,
		Duration:   time.Since(m.startTime),
		Iterations: int(m.iterations.Load()),
		Playouts:   int(m.playouts.Load()),
		Expansions: int(m.expansions.Load()),
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(algorithm string) {}
func (m *dummyCollector) AddIteration()          {}
func (m *dummyCollector) AddPlayout()            {}
func (m *dummyCollector) AddExpansion()          {}
func (m *dummyCollector) Complete() SearchMetric { return SearchMetric{} }
