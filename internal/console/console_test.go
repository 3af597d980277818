package console

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	cerr "github.com/saeidalz13/seabattle/internal/error"
	mb "github.com/saeidalz13/seabattle/models/battleship"
)

func TestParseTarget(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		row, col int
		err      error
	}{
		{name: "valid", line: "2 5", row: 2, col: 5},
		{name: "extra spaces", line: "  1\t6 ", row: 1, col: 6},
		{name: "out of bound is not checked here", line: "0 9", row: 0, col: 9},
		{name: "one number", line: "3", err: cerr.ErrInvalidInput},
		{name: "three numbers", line: "1 2 3", err: cerr.ErrInvalidInput},
		{name: "letters", line: "a 2", err: cerr.ErrInvalidInput},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			row, col, err := ParseTarget(test.line)
			if test.err != nil {
				if !errors.Is(err, test.err) {
					t.Fatalf("expected error: %v\tgot: %v", test.err, err)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if row != test.row || col != test.col {
				t.Fatalf("expected: %d %d\tgot: %d %d", test.row, test.col, row, col)
			}
		})
	}
}

func TestReaderEOF(t *testing.T) {
	var out bytes.Buffer
	r := NewReader(strings.NewReader("1 1\n"), &out, "> ")

	row, col, err := r.ReadTarget()
	if err != nil || row != 1 || col != 1 {
		t.Fatalf("expected 1 1\tgot: %d %d %v", row, col, err)
	}
	if _, _, err := r.ReadTarget(); !errors.Is(err, io.EOF) {
		t.Fatalf("expected error: %v\tgot: %v", io.EOF, err)
	}
	if out.String() != "> > " {
		t.Fatalf("expected two prompts\tgot: %q", out.String())
	}
}

func TestJoinBoards(t *testing.T) {
	joined := JoinBoards("ab\nc", "x\ny\nz")
	expected := "ab    ||   x\nc     ||   y\n      ||   z\n"
	if joined != expected {
		t.Fatalf("expected: %q\tgot: %q", expected, joined)
	}
}

func TestPrinterMessages(t *testing.T) {
	var out bytes.Buffer
	p := NewPrinter(&out)

	p.Notify(mb.GameEvent{Kind: mb.EventTargetRejected, Side: mb.SideHost, Err: cerr.ErrXorYOutOfGridBound(6, 0)})
	p.Notify(mb.GameEvent{Kind: mb.EventTargetRejected, Side: mb.SideJoin, Err: cerr.ErrAttackPositionAlreadyTargeted(1, 1)})
	p.Notify(mb.GameEvent{Kind: mb.EventShot, Side: mb.SideJoin, Target: mb.NewCoordinates(0, 1), Outcome: mb.ShotOutcomeSunk})

	expected := "Shooting outside of the board is not allowed!\nComputer shoots 1 2\nShip destroyed!\n"
	if out.String() != expected {
		t.Fatalf("expected: %q\tgot: %q", expected, out.String())
	}
}
