// Package console is the terminal side of a game: it reads moves typed
// as "row col" and prints boards and game events.
package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	cerr "github.com/saeidalz13/seabattle/internal/error"
	mb "github.com/saeidalz13/seabattle/models/battleship"
)

// Reader reads one move per line. It implements battleship.TargetReader.
type Reader struct {
	scanner *bufio.Scanner
	out     io.Writer
	prompt  string
}

var _ mb.TargetReader = (*Reader)(nil)

func NewReader(in io.Reader, out io.Writer, prompt string) *Reader {
	return &Reader{
		scanner: bufio.NewScanner(in),
		out:     out,
		prompt:  prompt,
	}
}

// ReadTarget returns io.EOF once input is closed. Malformed lines come
// back as cerr.ErrInvalidInput so that the game asks again.
func (r *Reader) ReadTarget() (int, int, error) {
	fmt.Fprint(r.out, r.prompt)

	if !r.scanner.Scan() {
		if err := r.scanner.Err(); err != nil {
			return 0, 0, err
		}
		return 0, 0, io.EOF
	}

	return ParseTarget(r.scanner.Text())
}

// ParseTarget reads two whitespace separated 1-based numbers.
func ParseTarget(line string) (int, int, error) {
	fields := strings.Fields(line)
	if len(fields) != 2 {
		return 0, 0, cerr.ErrInputCoordinateCount(len(fields))
	}

	nums := [2]int{}
	for i, field := range fields {
		n, err := strconv.Atoi(field)
		if err != nil {
			return 0, 0, cerr.ErrInputNotNumber(field)
		}
		nums[i] = n
	}
	return nums[0], nums[1], nil
}

// JoinBoards prints two rendered boards next to each other.
func JoinBoards(left, right string) string {
	leftLines := strings.Split(left, "\n")
	rightLines := strings.Split(right, "\n")

	width := 0
	for _, line := range leftLines {
		width = max(width, len([]rune(line)))
	}

	var sb strings.Builder
	for i := 0; i < max(len(leftLines), len(rightLines)); i++ {
		var l, r string
		if i < len(leftLines) {
			l = leftLines[i]
		}
		if i < len(rightLines) {
			r = rightLines[i]
		}
		pad := width - len([]rune(l))
		sb.WriteString(l + strings.Repeat(" ", pad) + "    ||   " + r + "\n")
	}
	return sb.String()
}

const rules = `************************************
    The rules are simple!
     shoot with: row col
      row - row number
      col - column number
  Do not shoot outside of the board!
  Do not shoot twice at the same cell!
       Fair winds!
************************************`

// Printer writes game events and boards for a person playing as host.
type Printer struct {
	out  io.Writer
	game *mb.Game
}

var _ mb.GameObserver = (*Printer)(nil)

func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

func (p *Printer) Attach(game *mb.Game) {
	p.game = game
	game.AddObserver(p)
}

func (p *Printer) Rules() {
	fmt.Fprintln(p.out, rules)
}

func (p *Printer) Boards() {
	if p.game == nil {
		return
	}
	host := "Player board\n" + p.game.Player(mb.SideHost).Board().Render()
	join := "Computer board\n" + p.game.Player(mb.SideJoin).Board().Render()
	fmt.Fprint(p.out, JoinBoards(host, join))
}

func (p *Printer) Turn(side mb.Side) {
	if side == mb.SideHost {
		fmt.Fprintln(p.out, "Your move:")
		return
	}
	fmt.Fprintln(p.out, "Computer's move:")
}

func (p *Printer) Notify(ev mb.GameEvent) {
	switch ev.Kind {
	case mb.EventShot:
		if ev.Side == mb.SideJoin {
			fmt.Fprintf(p.out, "Computer shoots %s\n", ev.Target)
		}
		switch ev.Outcome {
		case mb.ShotOutcomeSunk:
			fmt.Fprintln(p.out, "Ship destroyed!")
		case mb.ShotOutcomeHit:
			fmt.Fprintln(p.out, "Ship damaged!")
		default:
			fmt.Fprintln(p.out, "Miss!")
		}

	case mb.EventTargetRejected:
		// The computer retries silently
		if ev.Side == mb.SideHost {
			fmt.Fprintln(p.out, rejectionMessage(ev.Err))
		}

	case mb.EventGameOver:
		p.Boards()
		if ev.Winner == mb.SideHost {
			fmt.Fprintln(p.out, "You won!")
		} else {
			fmt.Fprintln(p.out, "The computer won!")
		}
	}
}

func rejectionMessage(err error) string {
	switch {
	case errors.Is(err, cerr.ErrOutOfBounds):
		return "Shooting outside of the board is not allowed!"
	case errors.Is(err, cerr.ErrAlreadyTargeted):
		return "You have already shot at these coordinates!"
	case errors.Is(err, cerr.ErrInvalidInput):
		return "Enter two numbers: row col"
	default:
		return err.Error()
	}
}
