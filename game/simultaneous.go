package game

import (
	"fmt"
	"strings"

	"golang.org/x/exp/rand"
)

// SimultaneousMaze is the two-player maze where both players commit an
// action every turn. Points are laid out mirror-symmetrically so neither
// side starts ahead.
type SimultaneousMaze struct {
	height, width int
	endTurn       int
	points        []int
	turn          int
	characters    [2]Character
}

func NewSimultaneousMaze(seed uint64, cfg AlternateConfig) *SimultaneousMaze {
	if cfg.Height <= 0 || cfg.Width < 3 {
		panic(fmt.Sprintf("invalid simultaneous maze size %dx%d", cfg.Height, cfg.Width))
	}
	r := rand.New(rand.NewSource(seed))
	s := &SimultaneousMaze{
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
		for x := 0; x < cfg.Width/2+cfg.Width%2; x++ {
			point := r.Intn(MaxPoint + 1)
			mirror := cfg.Width - 1 - x
			if s.occupied(y, x) || s.occupied(y, mirror) {
				continue
			}
			s.points[y*s.width+x] = point
			s.points[y*s.width+mirror] = point
		}
	}
	return s
}

func NewSimultaneousMazeFromLayout(endTurn int, layout []string) (*SimultaneousMaze, error) {
	height, width, points, chars, err := parseTwoPlayerLayout(layout)
	if err != nil {
		return nil, err
	}
	return &SimultaneousMaze{
		height:     height,
		width:      width,
		endTurn:    endTurn,
		points:     points,
		characters: chars,
	}, nil
}

func (s *SimultaneousMaze) occupied(y, x int) bool {
	for _, c := range s.characters {
		if c.Y == y && c.X == x {
			return true
		}
	}
	return false
}

func (s *SimultaneousMaze) Clone() *SimultaneousMaze {
	c := *s
	c.points = append([]int(nil), s.points...)
	return &c
}

func (s *SimultaneousMaze) IsDone() bool {
	return s.turn == s.endTurn
}

func (s *SimultaneousMaze) LegalActions(player int) []Action {
	c := s.characters[player]
	actions := make([]Action, 0, 4)
	for a := Right; a <= Up; a++ {
		y, x := c.Y+dy[a], c.X+dx[a]
		if y >= 0 && y < s.height && x >= 0 && x < s.width {
			actions = append(actions, a)
		}
	}
	return actions
}

// Advance moves both players. When both land on the same cell each of them
// collects its points before the cell is cleared.
func (s *SimultaneousMaze) Advance(action0, action1 Action) {
	if s.IsDone() {
		panic("advance on a finished simultaneous maze")
	}
	for id, a := range [2]Action{action0, action1} {
		if a < Right || a > Up {
			panic(fmt.Sprintf("advance with invalid action %d for player %d", a, id))
		}
		c := &s.characters[id]
		y, x := c.Y+dy[a], c.X+dx[a]
		if y < 0 || y >= s.height || x < 0 || x >= s.width {
			panic(fmt.Sprintf("illegal action %s for player %d", a, id))
		}
		c.Y, c.X = y, x
		c.Score += s.points[y*s.width+x]
	}
	for _, c := range s.characters {
		s.points[c.Y*s.width+c.X] = 0
	}
	s.turn++
}

// Score is player 0's point differential over player 1.
func (s *SimultaneousMaze) Score() int {
	return s.characters[0].Score - s.characters[1].Score
}

// ScoreRate is player 0's share of all collected points, 0 when nobody has
// scored yet.
func (s *SimultaneousMaze) ScoreRate() float64 {
	total := s.characters[0].Score + s.characters[1].Score
	if total == 0 {
		return 0
	}
	return float64(s.characters[0].Score) / float64(total)
}

func (s *SimultaneousMaze) WinningStatus() WinningStatus {
	if !s.IsDone() {
		return None
	}
	return statusOf(s.Score())
}

// AlternateView re-expresses the position as an alternating game in which
// player moves first and every simultaneous turn becomes two plies.
func (s *SimultaneousMaze) AlternateView(player int) *AlternateMaze {
	if player != 0 && player != 1 {
		panic(fmt.Sprintf("invalid player %d", player))
	}
	chars := s.characters
	if player == 1 {
		chars[0], chars[1] = chars[1], chars[0]
	}
	return &AlternateMaze{
		height:     s.height,
		width:      s.width,
		endTurn:    s.endTurn * 2,
		points:     append([]int(nil), s.points...),
		turn:       s.turn * 2,
		characters: chars,
	}
}

func (s *SimultaneousMaze) Turn() int {
	return s.turn
}

func (s *SimultaneousMaze) Characters() [2]Character {
	return s.characters
}

func (s *SimultaneousMaze) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "turn:\t%d\n", s.turn)
	for id, c := range s.characters {
		fmt.Fprintf(&b, "score(%d)\t %d\n", id, c.Score)
	}
	writeTwoPlayerGrid(&b, s.height, s.width, s.points, s.characters)
	return b.String()
}
