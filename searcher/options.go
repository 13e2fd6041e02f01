package searcher

import (
	"time"

	"maze/experiments/metrics"

	"golang.org/x/exp/rand"
)

// Option configures a single search call.
type Option func(c *config)

type config struct {
	rand            *rand.Rand
	duration        time.Duration
	deadline        time.Time
	stop            func() bool
	metrics         metrics.Collector
	exploration     float64
	expandThreshold int
}

// WithRand sets the random source used for playouts and random moves.
func WithRand(r *rand.Rand) Option {
	return func(c *config) {
		if r != nil {
			c.rand = r
		}
	}
}

func WithSeed(seed uint64) Option {
	return func(c *config) {
		c.rand = rand.New(rand.NewSource(seed))
	}
}

// WithDuration bounds the search by wall time. The budget is checked at the
// top of every iteration, so a search always finishes the iteration it is in.
func WithDuration(duration time.Duration) Option {
	return func(c *config) {
		if duration > 0 {
			c.duration = duration
		}
	}
}

// WithStop installs a cooperative stop check, polled alongside the duration.
func WithStop(stop func() bool) Option {
	return func(c *config) {
		c.stop = stop
	}
}

func WithMetrics(collector metrics.Collector) Option {
	return func(c *config) {
		if collector != nil {
			c.metrics = collector
		}
	}
}

// WithExploration sets the UCB1 exploration constant C.
func WithExploration(exploration float64) Option {
	return func(c *config) {
		if exploration >= 0 {
			c.exploration = exploration
		}
	}
}

// WithExpandThreshold sets the visit count at which a leaf grows children.
func WithExpandThreshold(threshold int) Option {
	return func(c *config) {
		if threshold > 0 {
			c.expandThreshold = threshold
		}
	}
}

func newConfig(options []Option) *config {
	c := &config{ // Default values
		metrics:     metrics.NewDummyCollector(),
		exploration: DefaultExploration,
	}
	for _, option := range options {
		option(c)
	}
	if c.rand == nil {
		c.rand = rand.New(rand.NewSource(uint64(time.Now().UnixNano())))
	}
	return c
}

func (c *config) start(algorithm string) {
	c.metrics.Start(algorithm)
	if c.duration > 0 {
		c.deadline = time.Now().Add(c.duration)
	}
}

func (c *config) stopped() bool {
	if c.stop != nil && c.stop() {
		return true
	}
	return !c.deadline.IsZero() && !time.Now().Before(c.deadline)
}

func (c *config) threshold(fallback int) int {
	if c.expandThreshold > 0 {
		return c.expandThreshold
	}
	return fallback
}
