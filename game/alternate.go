package game

import (
	"fmt"
	"strings"

	"golang.org/x/exp/rand"
)

type Character struct {
	Y, X  int
	Score int
}

type AlternateConfig struct {
	Height  int
	Width   int
	EndTurn int
}

func DefaultAlternateConfig() AlternateConfig {
	return AlternateConfig{Height: 3, Width: 3, EndTurn: 4}
}

// AlternateMaze is the two-player maze where players take turns moving.
// characters[0] moves on even turns, characters[1] on odd turns.
type AlternateMaze struct {
	height, width int
	endTurn       int
	points        []int
	turn          int
	characters    [2]Character
}

// NewAlternateMaze places the players on either side of the centre row and
// fills every other cell with 0-9 points.
func NewAlternateMaze(seed uint64, cfg AlternateConfig) *AlternateMaze {
	if cfg.Height <= 0 || cfg.Width < 3 {
		panic(fmt.Sprintf("invalid alternate maze size %dx%d", cfg.Height, cfg.Width))
	}
	r := rand.New(rand.NewSource(seed))
	s := &AlternateMaze{
		height:  cfg.Height,
		width:   cfg.Width,
		endTurn: cfg.EndTurn,
		points:  make([]int, cfg.Height*cfg.Width),
		characters: [2]Character{
			{Y: cfg.Height / 2, X: cfg.Width/2 - 1},
			{Y: cfg.Height / 2, X: cfg.Width/2 + 1},
		},
	}
	for y := 0; y < cfg.Height; y++ {
		for x := 0; x < cfg.Width; x++ {
			point := r.Intn(MaxPoint + 1)
			if s.occupied(y, x) {
				continue
			}
			s.points[y*s.width+x] = point
		}
	}
	return s
}

// NewAlternateMazeFromLayout builds a position from rows of 'A' (first
// player), 'B' (second player), digits and '.'.
func NewAlternateMazeFromLayout(endTurn int, layout []string) (*AlternateMaze, error) {
	height, width, points, chars, err := parseTwoPlayerLayout(layout)
	if err != nil {
		return nil, err
	}
	return &AlternateMaze{
		height:     height,
		width:      width,
		endTurn:    endTurn,
		points:     points,
		characters: chars,
	}, nil
}

func parseTwoPlayerLayout(layout []string) (int, int, []int, [2]Character, error) {
	var chars [2]Character
	if len(layout) == 0 {
		return 0, 0, nil, chars, fmt.Errorf("empty layout")
	}
	height, width := len(layout), len(layout[0])
	points := make([]int, height*width)
	var found [2]bool
	for y, row := range layout {
		if len(row) != width {
			return 0, 0, nil, chars, fmt.Errorf("row %d has width %d, want %d", y, len(row), width)
		}
		for x, ch := range row {
			switch {
			case ch == 'A' || ch == 'B':
				id := int(ch - 'A')
				if found[id] {
					return 0, 0, nil, chars, fmt.Errorf("player %c placed twice", ch)
				}
				chars[id], found[id] = Character{Y: y, X: x}, true
			case ch >= '1' && ch <= '9':
				points[y*width+x] = int(ch - '0')
			case ch == '.':
			default:
				return 0, 0, nil, chars, fmt.Errorf("unexpected %q at row %d column %d", ch, y, x)
			}
		}
	}
	if !found[0] || !found[1] {
		return 0, 0, nil, chars, fmt.Errorf("layout needs both A and B")
	}
	return height, width, points, chars, nil
}

func (s *AlternateMaze) occupied(y, x int) bool {
	for _, c := range s.characters {
		if c.Y == y && c.X == x {
			return true
		}
	}
	return false
}

func (s *AlternateMaze) Clone() *AlternateMaze {
	c := *s
	c.points = append([]int(nil), s.points...)
	return &c
}

// Player returns the index of the player to move.
func (s *AlternateMaze) Player() int {
	return s.turn % 2
}

func (s *AlternateMaze) IsDone() bool {
	return s.turn == s.endTurn
}

func (s *AlternateMaze) LegalActions() []Action {
	c := s.characters[s.Player()]
	actions := make([]Action, 0, 4)
	for a := Right; a <= Up; a++ {
		y, x := c.Y+dy[a], c.X+dx[a]
		if y >= 0 && y < s.height && x >= 0 && x < s.width {
			actions = append(actions, a)
		}
	}
	return actions
}

func (s *AlternateMaze) Advance(a Action) {
	if s.IsDone() {
		panic("advance on a finished alternate maze")
	}
	if a < Right || a > Up {
		panic(fmt.Sprintf("advance with invalid action %d", a))
	}
	c := &s.characters[s.Player()]
	y, x := c.Y+dy[a], c.X+dx[a]
	if y < 0 || y >= s.height || x < 0 || x >= s.width {
		panic(fmt.Sprintf("illegal action %s for player %d", a, s.Player()))
	}
	c.Y, c.X = y, x
	if p := s.points[y*s.width+x]; p > 0 {
		c.Score += p
		s.points[y*s.width+x] = 0
	}
	s.turn++
}

// Score is the point differential of the player to move over the opponent.
func (s *AlternateMaze) Score() int {
	me := s.Player()
	return s.characters[me].Score - s.characters[1-me].Score
}

func (s *AlternateMaze) WinningStatus() WinningStatus {
	if !s.IsDone() {
		return None
	}
	return statusOf(s.Score())
}

// FirstPlayerValue is the finished outcome for characters[0] as a win-rate
// point, regardless of whose turn it is.
func (s *AlternateMaze) FirstPlayerValue() float64 {
	if !s.IsDone() {
		panic("first player value of an unfinished game")
	}
	return statusOf(s.characters[0].Score - s.characters[1].Score).Value()
}

func statusOf(diff int) WinningStatus {
	switch {
	case diff > 0:
		return Win
	case diff < 0:
		return Lose
	default:
		return Draw
	}
}

func (s *AlternateMaze) Turn() int {
	return s.turn
}

func (s *AlternateMaze) Characters() [2]Character {
	return s.characters
}

func (s *AlternateMaze) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "turn:\t%d\n", s.turn)
	for id, c := range s.characters {
		fmt.Fprintf(&b, "score(%d)\t %d\ty:%d x:%d\n", id, c.Score, c.Y, c.X)
	}
	writeTwoPlayerGrid(&b, s.height, s.width, s.points, s.characters)
	return b.String()
}

func writeTwoPlayerGrid(b *strings.Builder, height, width int, points []int, chars [2]Character) {
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			switch {
			case chars[0].Y == y && chars[0].X == x:
				b.WriteByte('A')
			case chars[1].Y == y && chars[1].X == x:
				b.WriteByte('B')
			case points[y*width+x] > 0:
				b.WriteByte(byte('0' + points[y*width+x]))
			default:
				b.WriteByte('.')
			}
		}
		b.WriteByte('\n')
	}
}
