package game

import "golang.org/x/exp/rand"

// MaxPoint is the largest point value a cell can hold.
const MaxPoint = 9

// ZobristTable holds the random keys used to fingerprint maze positions: one
// key per (cell, point value) and one key per cell for the character. A table
// is never mutated after construction and may be shared by any number of
// states of the same dimensions.
type ZobristTable struct {
	height, width int
	points        [][MaxPoint + 1]uint64
	character     []uint64
}

func NewZobristTable(height, width int, seed uint64) *ZobristTable {
	if height <= 0 || width <= 0 {
		panic("zobrist table needs positive dimensions")
	}
	r := rand.New(rand.NewSource(seed))
	z := &ZobristTable{
		height:    height,
		width:     width,
		points:    make([][MaxPoint + 1]uint64, height*width),
		character: make([]uint64, height*width),
	}
	for cell := range z.points {
		for p := 1; p <= MaxPoint; p++ {
			z.points[cell][p] = nonZero(r)
		}
	}
	for cell := range z.character {
		z.character[cell] = nonZero(r)
	}
	return z
}

// A zero key would make its fact invisible to XOR.
func nonZero(r *rand.Rand) uint64 {
	v := r.Uint64()
	for v == 0 {
		v = r.Uint64()
	}
	return v
}

func (z *ZobristTable) fits(height, width int) bool {
	return z.height == height && z.width == width
}

// Point returns the key for point value p lying on cell (row-major index).
func (z *ZobristTable) Point(cell, p int) uint64 {
	return z.points[cell][p]
}

// Character returns the key for the character standing on cell.
func (z *ZobristTable) Character(cell int) uint64 {
	return z.character[cell]
}
