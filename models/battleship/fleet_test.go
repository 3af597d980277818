package battleship

import (
	"errors"
	"testing"

	cerr "github.com/saeidalz13/seabattle/internal/error"
)

func TestParseFleet(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected Fleet
		err      error
	}{
		{name: "default", input: "3,2,2,1,1,1,1", expected: DefaultFleet},
		{name: "spaces", input: " 4, 1 ,", expected: Fleet{4, 1}},
		{name: "not a number", input: "3,a", err: cerr.ErrInvalidFleet},
		{name: "too long", input: "5", err: cerr.ErrInvalidFleet},
		{name: "empty", input: "", err: cerr.ErrInvalidFleet},
		{name: "does not fit", input: "4,4,4,4,4,4,4,4,4,4", err: cerr.ErrInvalidFleet},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			fleet, err := ParseFleet(test.input)
			if test.err != nil {
				if !errors.Is(err, test.err) {
					t.Fatalf("expected error: %v\tgot: %v", test.err, err)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if fleet.String() != test.expected.String() {
				t.Fatalf("expected fleet: %s\tgot: %s", test.expected, fleet)
			}
		})
	}
}
