package battleship

import (
	"strconv"
	"strings"

	cerr "github.com/saeidalz13/seabattle/internal/error"
)

type ShotOutcome uint8

const (
	ShotOutcomeMiss ShotOutcome = iota
	ShotOutcomeHit
	ShotOutcomeSunk
)

func (o ShotOutcome) String() string {
	switch o {
	case ShotOutcomeHit:
		return "hit"
	case ShotOutcomeSunk:
		return "sunk"
	default:
		return "miss"
	}
}

// BoardView is the read-only side of a board that strategies
// and renderers get to see.
type BoardView interface {
	VisibleState(c Coordinates) uint8
	SunkenShips() int
	FleetSize() int
	Render() string
}

// Board keeps two exclusion sets: `blocked` holds ship cells and
// buffer zones while ships are placed, `targeted` holds every cell
// that cannot be shot anymore once play starts. FinalizePlacement
// moves the board from the first phase to the second.
type Board struct {
	grid        Grid
	ships       []*Ship
	blocked     coordinateSet
	targeted    coordinateSet
	finalized   bool
	sunkenShips int
	visible     bool
}

var _ BoardView = (*Board)(nil)

func NewBoard() *Board {
	return &Board{
		ships:    make([]*Ship, 0, len(DefaultFleet)),
		blocked:  make(coordinateSet, GridSize*GridSize),
		targeted: make(coordinateSet, GridSize*GridSize),
		visible:  true,
	}
}

func (b *Board) InBounds(c Coordinates) bool {
	return InBounds(c)
}

// Adds every in-bounds, not yet excluded cell around the ship to the
// exclusion set of the current phase. With reveal the cells are also
// marked as revealed empty water.
func (b *Board) markBuffer(ship *Ship, reveal bool) {
	excluded := b.exclusionSet()

	for _, cell := range ship.OccupiedCells() {
		for _, n := range cell.neighbourhood() {
			if !InBounds(n) || excluded.has(n) {
				continue
			}
			if reveal {
				b.grid[n.Row][n.Col] = PositionStateRevealedEmpty
			}
			excluded.add(n)
		}
	}
}

func (b *Board) exclusionSet() coordinateSet {
	if b.finalized {
		return b.targeted
	}
	return b.blocked
}

// AddShip places the ship or rejects it without touching the board.
func (b *Board) AddShip(ship *Ship) error {
	if b.finalized {
		return cerr.ErrPlacementFinalized
	}
	if ship.Length < MinShipLength || ship.Length > MaxShipLength {
		return cerr.ErrShipLength(ship.Length)
	}

	cells := ship.OccupiedCells()
	for _, c := range cells {
		if !InBounds(c) {
			return cerr.ErrShipOutOfGridBound(c.Row, c.Col)
		}
		if b.blocked.has(c) {
			return cerr.ErrShipPositionExcluded(c.Row, c.Col)
		}
	}

	for _, c := range cells {
		b.grid[c.Row][c.Col] = PositionStateOccupied
		b.blocked.add(c)
	}
	b.ships = append(b.ships, ship)
	b.markBuffer(ship, false)
	return nil
}

// FinalizePlacement ends the placement phase. Placement exclusions
// are dropped and the board starts tracking shots instead.
func (b *Board) FinalizePlacement() error {
	if b.finalized {
		return cerr.ErrPlacementFinalized
	}
	b.finalized = true
	b.blocked = nil
	return nil
}

func (b *Board) IsFinalized() bool {
	return b.finalized
}

func (b *Board) Shoot(c Coordinates) (ShotOutcome, error) {
	if !b.finalized {
		return ShotOutcomeMiss, cerr.ErrPlacementNotFinalized
	}
	if !InBounds(c) {
		return ShotOutcomeMiss, cerr.ErrXorYOutOfGridBound(c.Row, c.Col)
	}
	if b.targeted.has(c) {
		return ShotOutcomeMiss, cerr.ErrAttackPositionAlreadyTargeted(c.Row, c.Col)
	}
	b.targeted.add(c)

	for _, ship := range b.ships {
		if ship.IsDestroyed() || !ship.occupies(c) {
			continue
		}

		b.grid[c.Row][c.Col] = PositionStateHit
		if _, destroyed := ship.ApplyHit(); !destroyed {
			return ShotOutcomeHit, nil
		}

		b.sunkenShips++
		b.markBuffer(ship, true)
		return ShotOutcomeSunk, nil
	}

	b.grid[c.Row][c.Col] = PositionStateMiss
	return ShotOutcomeMiss, nil
}

func (b *Board) IsFleetDestroyed() bool {
	return b.sunkenShips == len(b.ships)
}

// Winner reports whether every ship on this board is gone, which
// means the side shooting at it has won.
func (b *Board) Winner() bool {
	return b.IsFleetDestroyed()
}

func (b *Board) IsTargeted(c Coordinates) bool {
	return b.finalized && b.targeted.has(c)
}

func (b *Board) SunkenShips() int {
	return b.sunkenShips
}

func (b *Board) FleetSize() int {
	return len(b.ships)
}

// Ships returns a copy of the fleet slice; the ships themselves are shared.
func (b *Board) Ships() []*Ship {
	ships := make([]*Ship, len(b.ships))
	copy(ships, b.ships)
	return ships
}

// CellState returns the raw state, hidden ships included.
func (b *Board) CellState(c Coordinates) uint8 {
	if !InBounds(c) {
		return PositionStateEmpty
	}
	return b.grid[c.Row][c.Col]
}

// VisibleState masks intact ship cells when the board is hidden.
func (b *Board) VisibleState(c Coordinates) uint8 {
	state := b.CellState(c)
	if state == PositionStateOccupied && !b.visible {
		return PositionStateEmpty
	}
	return state
}

func (b *Board) SetVisible(visible bool) {
	b.visible = visible
}

func (b *Board) IsVisible() bool {
	return b.visible
}

var positionGlyphs = map[uint8]string{
	PositionStateEmpty:         "O",
	PositionStateOccupied:      "■",
	PositionStateHit:           "X",
	PositionStateMiss:          "T",
	PositionStateRevealedEmpty: ".",
}

// Render draws the board with 1-based row and column labels.
func (b *Board) Render() string {
	var sb strings.Builder

	sb.WriteString("  |")
	for col := 0; col < GridSize; col++ {
		sb.WriteString(" " + strconv.Itoa(col+1) + " |")
	}

	for row := 0; row < GridSize; row++ {
		sb.WriteString("\n" + strconv.Itoa(row+1) + " |")
		for col := 0; col < GridSize; col++ {
			sb.WriteString(" " + positionGlyphs[b.VisibleState(NewCoordinates(row, col))] + " |")
		}
	}
	return sb.String()
}
