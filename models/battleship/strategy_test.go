package battleship

import (
	"math/rand"
	"testing"
)

func TestRandomStrategyStaysInGrid(t *testing.T) {
	rs := NewRandomStrategy(rand.New(rand.NewSource(3)))
	seen := make(map[Coordinates]bool)

	for i := 0; i < 2000; i++ {
		c, err := rs.NextTarget(nil, nil)
		if err != nil {
			t.Fatal(err)
		}
		if !InBounds(c) {
			t.Fatalf("target out of grid: %v", c)
		}
		seen[c] = true
	}

	if len(seen) != GridSize*GridSize {
		t.Fatalf("expected every cell proposed\tgot: %d", len(seen))
	}
}

func TestInteractiveStrategyConvertsToZeroBased(t *testing.T) {
	is := NewInteractiveStrategy(&scriptedReader{moves: [][2]int{{1, 6}}})

	c, err := is.NextTarget(nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if c != NewCoordinates(0, 5) {
		t.Fatalf("expected target: %v\tgot: %v", NewCoordinates(0, 5), c)
	}
	if c.String() != "1 6" {
		t.Fatalf("expected string: %q\tgot: %q", "1 6", c.String())
	}
}
