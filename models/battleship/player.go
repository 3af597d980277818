package battleship

import "github.com/google/uuid"

const (
	PlayerMatchStatusLost      = -1
	PlayerMatchStatusUndefined = 0
	PlayerMatchStatusWon       = 1
)

type Side uint8

const (
	SideHost Side = iota
	SideJoin
)

func (s Side) Other() Side {
	return 1 - s
}

func (s Side) String() string {
	if s == SideJoin {
		return "join"
	}
	return "host"
}

// Player owns one board and shoots at the other side's board.
type Player struct {
	uuid        string
	side        Side
	board       *Board
	strategy    Strategy
	matchStatus int
	shotsFired  int
	hits        int
}

func NewPlayer(side Side, board *Board, strategy Strategy) *Player {
	return &Player{
		uuid:        uuid.NewString()[:10],
		side:        side,
		board:       board,
		strategy:    strategy,
		matchStatus: PlayerMatchStatusUndefined,
	}
}

func (p *Player) Uuid() string {
	return p.uuid
}

func (p *Player) Side() Side {
	return p.side
}

func (p *Player) IsHost() bool {
	return p.side == SideHost
}

func (p *Player) Board() *Board {
	return p.board
}

func (p *Player) MatchStatus() int {
	return p.matchStatus
}

func (p *Player) IsLoser() bool {
	return p.board.IsFleetDestroyed()
}

func (p *Player) ShotsFired() int {
	return p.shotsFired
}

func (p *Player) Hits() int {
	return p.hits
}

func (p *Player) recordShot(outcome ShotOutcome) {
	p.shotsFired++
	if outcome != ShotOutcomeMiss {
		p.hits++
	}
}
