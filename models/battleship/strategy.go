package battleship

import (
	"io"
	"math/rand"
	"time"
)

// Strategy picks the next cell to shoot at on the opponent board.
// Returning an error wrapping cerr.ErrInvalidInput asks the game to
// request a target again; any other error ends the step.
type Strategy interface {
	NextTarget(own *Board, opponent BoardView) (Coordinates, error)
}

// RandomStrategy shoots anywhere on the grid with no memory of earlier
// shots. Cells already targeted are proposed again and rejected by the
// board, which keeps the win rate of the automated side unchanged.
// Strategies sharing an rng must be driven from one goroutine.
type RandomStrategy struct {
	rng *rand.Rand
}

var _ Strategy = (*RandomStrategy)(nil)

func NewRandomStrategy(rng *rand.Rand) *RandomStrategy {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &RandomStrategy{rng: rng}
}

func (rs *RandomStrategy) NextTarget(_ *Board, _ BoardView) (Coordinates, error) {
	return NewCoordinates(rs.rng.Intn(GridSize), rs.rng.Intn(GridSize)), nil
}

// TargetReader collects a move from a person. Row and column are 1-based.
type TargetReader interface {
	ReadTarget() (row, col int, err error)
}

type InteractiveStrategy struct {
	input TargetReader
}

var _ Strategy = (*InteractiveStrategy)(nil)

func NewInteractiveStrategy(input TargetReader) *InteractiveStrategy {
	return &InteractiveStrategy{input: input}
}

// NextTarget does not check bounds: whatever the person typed goes to
// Board.Shoot, which rejects it and gets the game to ask again.
func (is *InteractiveStrategy) NextTarget(_ *Board, _ BoardView) (Coordinates, error) {
	row, col, err := is.input.ReadTarget()
	if err != nil {
		return Coordinates{}, err
	}
	return NewCoordinates(row-1, col-1), nil
}

// StrategyFunc adapts a plain function to Strategy.
type StrategyFunc func(own *Board, opponent BoardView) (Coordinates, error)

func (f StrategyFunc) NextTarget(own *Board, opponent BoardView) (Coordinates, error) {
	return f(own, opponent)
}

// FixedTargets replays a list of targets in order and returns io.EOF
// once it runs out.
func FixedTargets(targets ...Coordinates) Strategy {
	next := 0
	return StrategyFunc(func(_ *Board, _ BoardView) (Coordinates, error) {
		if next >= len(targets) {
			return Coordinates{}, io.EOF
		}
		c := targets[next]
		next++
		return c, nil
	})
}
