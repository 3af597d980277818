package battleship

import (
	"context"
	"errors"
	"math/rand"
	"testing"

	cerr "github.com/saeidalz13/seabattle/internal/error"
)

func newTestGenerator(t *testing.T, seed int64, optFuncs ...PlacementOption) *PlacementGenerator {
	t.Helper()

	optFuncs = append([]PlacementOption{WithRand(rand.New(rand.NewSource(seed)))}, optFuncs...)
	pg, err := NewPlacementGenerator(optFuncs...)
	if err != nil {
		t.Fatal(err)
	}
	return pg
}

func TestGeneratedBoardsKeepSpacing(t *testing.T) {
	pg := newTestGenerator(t, 42)

	for i := 0; i < 200; i++ {
		board, err := pg.GenerateSecure(context.Background(), DefaultFleet)
		if err != nil {
			t.Fatal(err)
		}
		if !board.IsFinalized() {
			t.Fatal("generated board is not finalized")
		}

		ships := board.Ships()
		if len(ships) != len(DefaultFleet) {
			t.Fatalf("expected ships: %d\tgot: %d", len(DefaultFleet), len(ships))
		}
		for j, ship := range ships {
			if ship.Length != DefaultFleet[j] {
				t.Fatalf("expected length: %d\tgot: %d", DefaultFleet[j], ship.Length)
			}
		}

		for a := range ships {
			for b := range ships {
				if a == b {
					continue
				}
				for _, ca := range ships[a].OccupiedCells() {
					if !InBounds(ca) {
						t.Fatalf("ship cell out of bound: %v", ca)
					}
					for _, cb := range ships[b].OccupiedCells() {
						if ChebyshevDistance(ca, cb) <= 1 {
							t.Fatalf("ships %d and %d too close: %v, %v", a, b, ca, cb)
						}
					}
				}
			}
		}
	}
}

func TestGenerateAttemptsExhausted(t *testing.T) {
	// One attempt cannot place a fleet of two
	pg := newTestGenerator(t, 7, WithMaxAttempts(1))

	_, err := pg.Generate(Fleet{1, 1})
	if !errors.Is(err, cerr.ErrPlacementExhausted) {
		t.Fatalf("expected error: %v\tgot: %v", cerr.ErrPlacementExhausted, err)
	}
}

func TestGenerateSecureRestartLimit(t *testing.T) {
	pg := newTestGenerator(t, 7, WithMaxAttempts(1), WithMaxRestarts(3))

	_, err := pg.GenerateSecure(context.Background(), Fleet{1, 1})
	if !errors.Is(err, cerr.ErrPlacementExhausted) {
		t.Fatalf("expected error: %v\tgot: %v", cerr.ErrPlacementExhausted, err)
	}
}

func TestGenerateSecureCancelled(t *testing.T) {
	pg := newTestGenerator(t, 7, WithMaxAttempts(1))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := pg.GenerateSecure(ctx, Fleet{1, 1})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected error: %v\tgot: %v", context.Canceled, err)
	}
}

func TestGenerateInvalidFleet(t *testing.T) {
	pg := newTestGenerator(t, 1)

	for _, fleet := range []Fleet{{}, {5}, {0, 1}} {
		if _, err := pg.GenerateSecure(context.Background(), fleet); !errors.Is(err, cerr.ErrInvalidFleet) {
			t.Fatalf("fleet %v\texpected error: %v\tgot: %v", fleet, cerr.ErrInvalidFleet, err)
		}
	}
}

func TestPlacementOptions(t *testing.T) {
	tests := []struct {
		name string
		opt  PlacementOption
	}{
		{name: "zero attempts", opt: WithMaxAttempts(0)},
		{name: "negative restarts", opt: WithMaxRestarts(-1)},
		{name: "nil rng", opt: WithRand(nil)},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if _, err := NewPlacementGenerator(test.opt); err == nil {
				t.Fatal("expected option error")
			}
		})
	}
}
