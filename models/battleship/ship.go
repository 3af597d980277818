package battleship

const (
	MinShipLength = 1
	MaxShipLength = 4
)

type Orientation uint8

const (
	OrientationHorizontal Orientation = iota
	OrientationVertical
)

func (o Orientation) String() string {
	if o == OrientationVertical {
		return "vertical"
	}
	return "horizontal"
}

// Ship is a straight segment of Length cells starting at Anchor.
// Horizontal ships extend along columns, vertical ones along rows.
// Position is fixed once placed; only health changes, and only
// through Board.Shoot.
type Ship struct {
	Anchor      Coordinates
	Length      int
	Orientation Orientation
	health      int
}

func NewShip(anchor Coordinates, length int, orientation Orientation) *Ship {
	return &Ship{
		Anchor:      anchor,
		Length:      length,
		Orientation: orientation,
		health:      length,
	}
}

// OccupiedCells derives the ship cells from anchor to tail.
func (sh *Ship) OccupiedCells() []Coordinates {
	cells := make([]Coordinates, 0, sh.Length)
	for i := 0; i < sh.Length; i++ {
		c := sh.Anchor
		if sh.Orientation == OrientationVertical {
			c.Row += i
		} else {
			c.Col += i
		}
		cells = append(cells, c)
	}
	return cells
}

func (sh *Ship) occupies(c Coordinates) bool {
	switch sh.Orientation {
	case OrientationVertical:
		return c.Col == sh.Anchor.Col && c.Row >= sh.Anchor.Row && c.Row < sh.Anchor.Row+sh.Length
	default:
		return c.Row == sh.Anchor.Row && c.Col >= sh.Anchor.Col && c.Col < sh.Anchor.Col+sh.Length
	}
}

// ApplyHit takes one point of health and reports what is left.
func (sh *Ship) ApplyHit() (int, bool) {
	if sh.health > 0 {
		sh.health--
	}
	return sh.health, sh.IsDestroyed()
}

func (sh *Ship) IsDestroyed() bool {
	return sh.health == 0
}

func (sh *Ship) Health() int {
	return sh.health
}
