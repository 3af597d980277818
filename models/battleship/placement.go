package battleship

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	cerr "github.com/saeidalz13/seabattle/internal/error"
)

const (
	DefaultMaxPlacementAttempts = 1000

	// Zero means restart until a board comes out complete
	DefaultMaxPlacementRestarts = 0
)

// PlacementGenerator builds boards by dropping ships at random anchors
// and orientations. There is no backtracking: a board that runs out of
// attempts is thrown away and a fresh one is started. Termination is
// only probabilistic, which is why both limits are configurable.
// A generator may be shared between goroutines.
type PlacementGenerator struct {
	maxAttempts int
	maxRestarts int

	// guards rng
	mu  sync.Mutex
	rng *rand.Rand
}

type PlacementOption func(*PlacementGenerator) error

func NewPlacementGenerator(optFuncs ...PlacementOption) (*PlacementGenerator, error) {
	pg := &PlacementGenerator{
		maxAttempts: DefaultMaxPlacementAttempts,
		maxRestarts: DefaultMaxPlacementRestarts,
	}
	for _, opt := range optFuncs {
		if err := opt(pg); err != nil {
			return nil, err
		}
	}
	if pg.rng == nil {
		pg.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return pg, nil
}

// WithMaxAttempts bounds the candidate ships tried for a whole board,
// shared across all of its ships.
func WithMaxAttempts(attempts int) PlacementOption {
	return func(pg *PlacementGenerator) error {
		if attempts < 1 {
			return fmt.Errorf("max placement attempts must be positive, got %d", attempts)
		}
		pg.maxAttempts = attempts
		return nil
	}
}

// WithMaxRestarts bounds how many fresh boards GenerateSecure may start
// after the first one fails. Zero removes the bound.
func WithMaxRestarts(restarts int) PlacementOption {
	return func(pg *PlacementGenerator) error {
		if restarts < 0 {
			return fmt.Errorf("max placement restarts cannot be negative, got %d", restarts)
		}
		pg.maxRestarts = restarts
		return nil
	}
}

func WithRand(rng *rand.Rand) PlacementOption {
	return func(pg *PlacementGenerator) error {
		if rng == nil {
			return errors.New("rng cannot be nil")
		}
		pg.rng = rng
		return nil
	}
}

// Callers hold pg.mu.
func (pg *PlacementGenerator) randomShip(length int) *Ship {
	anchor := NewCoordinates(pg.rng.Intn(GridSize), pg.rng.Intn(GridSize))
	return NewShip(anchor, length, Orientation(pg.rng.Intn(2)))
}

// Generate makes one attempt at a full board. On success the board is
// finalized and ready to be shot at.
func (pg *PlacementGenerator) Generate(fleet Fleet) (*Board, error) {
	if err := fleet.Validate(); err != nil {
		return nil, err
	}

	pg.mu.Lock()
	defer pg.mu.Unlock()

	board := NewBoard()
	attempts := 0

	for placed, length := range fleet {
		for {
			attempts++
			if attempts > pg.maxAttempts {
				return nil, cerr.ErrPlacementAttempts(pg.maxAttempts, placed, len(fleet))
			}

			err := board.AddShip(pg.randomShip(length))
			if err == nil {
				break
			}
			if !errors.Is(err, cerr.ErrInvalidPlacement) {
				return nil, err
			}
		}
	}

	if err := board.FinalizePlacement(); err != nil {
		return nil, err
	}
	return board, nil
}

// GenerateSecure repeats Generate on fresh boards until one succeeds,
// the restart limit is hit or ctx is done.
func (pg *PlacementGenerator) GenerateSecure(ctx context.Context, fleet Fleet) (*Board, error) {
	for restarts := 0; ; restarts++ {
		board, err := pg.Generate(fleet)
		if err == nil {
			if restarts > 0 {
				log.Debug().Int("restarts", restarts).Str("fleet", fleet.String()).Msg("board placed after restarts")
			}
			return board, nil
		}
		if !errors.Is(err, cerr.ErrPlacementExhausted) {
			return nil, err
		}

		if pg.maxRestarts > 0 && restarts >= pg.maxRestarts {
			return nil, errors.Join(err, cerr.ErrPlacementRestarts(restarts))
		}
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("board generation interrupted: %w", err)
		}
		log.Debug().Err(err).Int("restart", restarts+1).Msg("placement exhausted; starting a fresh board")
	}
}
