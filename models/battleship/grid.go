package battleship

import "fmt"

// GridSize is the fixed edge length of every board.
const GridSize = 6

const (
	PositionStateEmpty uint8 = iota
	PositionStateOccupied
	PositionStateHit
	PositionStateMiss

	// Buffer cells around a sunken ship
	PositionStateRevealedEmpty
)

type Coordinates struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func NewCoordinates(row, col int) Coordinates {
	return Coordinates{Row: row, Col: col}
}

// String renders 1-based coordinates, the way players type them.
func (c Coordinates) String() string {
	return fmt.Sprintf("%d %d", c.Row+1, c.Col+1)
}

// Returns the 3x3 block centered on c, c included. Cells may
// fall outside of the grid.
func (c Coordinates) neighbourhood() []Coordinates {
	block := make([]Coordinates, 0, 9)
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			block = append(block, Coordinates{Row: c.Row + dr, Col: c.Col + dc})
		}
	}
	return block
}

// ChebyshevDistance is the king-move distance between two cells.
func ChebyshevDistance(a, b Coordinates) int {
	return max(abs(a.Row-b.Row), abs(a.Col-b.Col))
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

type Grid [GridSize][GridSize]uint8

func InBounds(c Coordinates) bool {
	return c.Row >= 0 && c.Row < GridSize && c.Col >= 0 && c.Col < GridSize
}

// coordinateSet is keyed by value; Coordinates has no identity
// beyond its pair.
type coordinateSet map[Coordinates]struct{}

func (s coordinateSet) has(c Coordinates) bool {
	_, prs := s[c]
	return prs
}

func (s coordinateSet) add(c Coordinates) {
	s[c] = struct{}{}
}
