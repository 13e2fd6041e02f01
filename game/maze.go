package game

import (
	"fmt"
	"strings"

	"golang.org/x/exp/rand"
)

type Coord struct {
	Y, X int
}

// MazeConfig describes a single-agent maze. Zobrist may be nil, in which case
// a table seeded with 0 is built for the maze dimensions.
type MazeConfig struct {
	Height  int
	Width   int
	EndTurn int
	Walls   bool
	Zobrist *ZobristTable
}

func DefaultMazeConfig() MazeConfig {
	return MazeConfig{Height: 3, Width: 4, EndTurn: 4}
}

func WallMazeConfig() MazeConfig {
	return MazeConfig{Height: 7, Width: 7, EndTurn: 49, Walls: true}
}

func (c MazeConfig) validate() {
	if c.Height <= 0 || c.Width <= 0 {
		panic(fmt.Sprintf("invalid maze size %dx%d", c.Height, c.Width))
	}
	if c.EndTurn < 0 {
		panic(fmt.Sprintf("invalid end turn %d", c.EndTurn))
	}
	if c.Zobrist != nil && !c.Zobrist.fits(c.Height, c.Width) {
		panic("zobrist table dimensions do not match the maze")
	}
}

// Maze is the single-agent scoring maze: one character walks for EndTurn
// turns collecting the points of every cell it enters.
type Maze struct {
	cfg       *MazeConfig
	walls     []bool // shared between clones, never mutated
	points    []int
	turn      int
	character Coord
	score     int
	hash      uint64
}

// NewMaze generates a maze from seed. Walls, when enabled, are laid out by
// the stick-down procedure: every odd cell becomes a wall and pushes one
// more wall into a random neighbour (the first row may also push upwards).
func NewMaze(seed uint64, cfg MazeConfig) *Maze {
	cfg.validate()
	r := rand.New(rand.NewSource(seed))
	m := newEmptyMaze(cfg)
	m.character = Coord{Y: r.Intn(cfg.Height), X: r.Intn(cfg.Width)}

	if cfg.Walls {
		for y := 1; y < cfg.Height; y += 2 {
			for x := 1; x < cfg.Width; x += 2 {
				c := Coord{Y: y, X: x}
				if c == m.character {
					continue
				}
				m.walls[m.cell(c)] = true
				directions := 3
				if y == 1 {
					directions = 4
				}
				d := r.Intn(directions)
				next := Coord{Y: y + dy[d], X: x + dx[d]}
				if next == m.character || !m.inside(next) {
					continue
				}
				m.walls[m.cell(next)] = true
			}
		}
	}

	for y := 0; y < cfg.Height; y++ {
		for x := 0; x < cfg.Width; x++ {
			c := Coord{Y: y, X: x}
			if c == m.character {
				continue
			}
			var point int
			if cfg.Walls {
				point = r.Intn(MaxPoint + 1)
			} else {
				point = 1 + r.Intn(MaxPoint)
			}
			if m.walls[m.cell(c)] {
				point = 0
			}
			m.points[m.cell(c)] = point
		}
	}
	m.initHash()
	return m
}

// NewMazeFromLayout builds a maze from rows of '@' (character), '#' (wall),
// '1'-'9' (points) and '.' (empty). The layout overrides the configured size.
func NewMazeFromLayout(cfg MazeConfig, layout []string) (*Maze, error) {
	if len(layout) == 0 {
		return nil, fmt.Errorf("empty layout")
	}
	cfg.Height, cfg.Width = len(layout), len(layout[0])
	if cfg.Width == 0 {
		return nil, fmt.Errorf("empty row")
	}
	if cfg.Zobrist != nil && !cfg.Zobrist.fits(cfg.Height, cfg.Width) {
		return nil, fmt.Errorf("zobrist table dimensions do not match %dx%d layout", cfg.Height, cfg.Width)
	}
	m := newEmptyMaze(cfg)
	found := false
	for y, row := range layout {
		if len(row) != cfg.Width {
			return nil, fmt.Errorf("row %d has width %d, want %d", y, len(row), cfg.Width)
		}
		for x, ch := range row {
			c := Coord{Y: y, X: x}
			switch {
			case ch == '@':
				if found {
					return nil, fmt.Errorf("more than one character in layout")
				}
				m.character, found = c, true
			case ch == '#':
				m.walls[m.cell(c)] = true
				m.cfg.Walls = true
			case ch >= '1' && ch <= '9':
				m.points[m.cell(c)] = int(ch - '0')
			case ch == '.':
			default:
				return nil, fmt.Errorf("unexpected %q at row %d column %d", ch, y, x)
			}
		}
	}
	if !found {
		return nil, fmt.Errorf("layout has no character")
	}
	m.initHash()
	return m, nil
}

func newEmptyMaze(cfg MazeConfig) *Maze {
	if cfg.Zobrist == nil {
		cfg.Zobrist = NewZobristTable(cfg.Height, cfg.Width, 0)
	}
	return &Maze{
		cfg:    &cfg,
		walls:  make([]bool, cfg.Height*cfg.Width),
		points: make([]int, cfg.Height*cfg.Width),
	}
}

func (m *Maze) cell(c Coord) int {
	return c.Y*m.cfg.Width + c.X
}

func (m *Maze) inside(c Coord) bool {
	return c.Y >= 0 && c.Y < m.cfg.Height && c.X >= 0 && c.X < m.cfg.Width
}

func (m *Maze) open(c Coord) bool {
	return m.inside(c) && !m.walls[m.cell(c)]
}

func (m *Maze) initHash() {
	z := m.cfg.Zobrist
	m.hash = z.Character(m.cell(m.character))
	for cell, p := range m.points {
		if p > 0 {
			m.hash ^= z.Point(cell, p)
		}
	}
}

func (m *Maze) Clone() *Maze {
	c := *m
	c.points = append([]int(nil), m.points...)
	return &c
}

func (m *Maze) IsDone() bool {
	return m.turn == m.cfg.EndTurn
}

func (m *Maze) LegalActions() []Action {
	actions := make([]Action, 0, 4)
	for a := Right; a <= Up; a++ {
		if m.open(Coord{Y: m.character.Y + dy[a], X: m.character.X + dx[a]}) {
			actions = append(actions, a)
		}
	}
	return actions
}

// Advance moves the character and collects the destination's points. The
// hash is updated here and nowhere else.
func (m *Maze) Advance(a Action) {
	if m.IsDone() {
		panic("advance on a finished maze")
	}
	if a < Right || a > Up {
		panic(fmt.Sprintf("advance with invalid action %d", a))
	}
	next := Coord{Y: m.character.Y + dy[a], X: m.character.X + dx[a]}
	if !m.open(next) {
		panic(fmt.Sprintf("illegal action %s from (%d,%d)", a, m.character.Y, m.character.X))
	}
	z := m.cfg.Zobrist
	m.hash ^= z.Character(m.cell(m.character))
	m.character = next
	cell := m.cell(next)
	m.hash ^= z.Character(cell)
	if p := m.points[cell]; p > 0 {
		m.hash ^= z.Point(cell, p)
		m.score += p
		m.points[cell] = 0
	}
	m.turn++
}

func (m *Maze) Score() int {
	return m.score
}

// Evaluate ranks positions by collected points, breaking ties by the walking
// distance to the nearest remaining point.
func (m *Maze) Evaluate() int {
	return m.score*m.cfg.Height*m.cfg.Width - m.distanceToNearestPoint()
}

func (m *Maze) distanceToNearestPoint() int {
	type step struct {
		c        Coord
		distance int
	}
	seen := make([]bool, len(m.points))
	queue := []step{{c: m.character}}
	seen[m.cell(m.character)] = true
	for len(queue) > 0 {
		s := queue[0]
		queue = queue[1:]
		if m.points[m.cell(s.c)] > 0 {
			return s.distance
		}
		for a := Right; a <= Up; a++ {
			next := Coord{Y: s.c.Y + dy[a], X: s.c.X + dx[a]}
			if m.open(next) && !seen[m.cell(next)] {
				seen[m.cell(next)] = true
				queue = append(queue, step{c: next, distance: s.distance + 1})
			}
		}
	}
	return m.cfg.Height * m.cfg.Width
}

func (m *Maze) Hash() uint64 {
	return m.hash
}

func (m *Maze) Turn() int {
	return m.turn
}

func (m *Maze) Character() Coord {
	return m.character
}

func (m *Maze) Config() MazeConfig {
	return *m.cfg
}

func (m *Maze) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "turn:\t%d\nscore:\t%d\n", m.turn, m.score)
	for y := 0; y < m.cfg.Height; y++ {
		for x := 0; x < m.cfg.Width; x++ {
			c := Coord{Y: y, X: x}
			switch {
			case m.walls[m.cell(c)]:
				b.WriteByte('#')
			case c == m.character:
				b.WriteByte('@')
			case m.points[m.cell(c)] > 0:
				b.WriteByte(byte('0' + m.points[m.cell(c)]))
			default:
				b.WriteByte('.')
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}
