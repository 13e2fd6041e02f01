package game

// Action identifies one of the four grid directions. Legal action lists are
// ordered, and search results depend on that order for tie-breaking.
type Action int

const (
	Right Action = iota
	Left
	Down
	Up
)

// InvalidAction is returned by a search that could not reach a decision. It
// never appears in a legal action list and must not be passed to Advance.
const InvalidAction Action = -1

var actionNames = [...]string{"RIGHT", "LEFT", "DOWN", "UP"}

func (a Action) String() string {
	if a < 0 || int(a) >= len(actionNames) {
		return "INVALID"
	}
	return actionNames[a]
}

var (
	dx = [4]int{1, -1, 0, 0}
	dy = [4]int{0, 0, 1, -1}
)

type WinningStatus int

const (
	None WinningStatus = iota
	Win
	Lose
	Draw
)

func (w WinningStatus) String() string {
	switch w {
	case Win:
		return "WIN"
	case Lose:
		return "LOSE"
	case Draw:
		return "DRAW"
	default:
		return "NONE"
	}
}

// Value maps a finished outcome to a win-rate point: 1 for a win, 0 for a
// loss, 0.5 for a draw.
func (w WinningStatus) Value() float64 {
	switch w {
	case Win:
		return 1.0
	case Lose:
		return 0.0
	default:
		return 0.5
	}
}

// State is a turn-based position that searches copy before mutating.
// Clone must return an independent value so branches never alias.
type State[S any] interface {
	Clone() S
	LegalActions() []Action
	Advance(Action)
	IsDone() bool
}

// Scorable states expose an exact score. For two-player states it is the
// differential from the perspective of the player to move.
type Scorable[S any] interface {
	State[S]
	Score() int
}

// Evaluable states expose a fast heuristic used to rank beam candidates.
type Evaluable[S any] interface {
	State[S]
	Evaluate() int
}

// Hashable states carry an incrementally maintained position fingerprint.
type Hashable[S any] interface {
	Evaluable[S]
	Hash() uint64
}

// TwoPlayer states alternate turns. WinningStatus is reported from the
// perspective of the player to move and is None until IsDone.
type TwoPlayer[S any] interface {
	Scorable[S]
	WinningStatus() WinningStatus
}

// Simultaneous states advance both players at once. WinningStatus is
// reported from player 0's perspective.
type Simultaneous[S any] interface {
	Clone() S
	LegalActions(player int) []Action
	Advance(action0, action1 Action)
	IsDone() bool
	WinningStatus() WinningStatus
}
