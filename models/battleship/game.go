package battleship

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	cerr "github.com/saeidalz13/seabattle/internal/error"
	"github.com/saeidalz13/seabattle/internal/logger"
)

type GameState uint8

const (
	GameStateAwaitingMove GameState = iota
	GameStateOver
)

type ShotRecord struct {
	Side    Side        `json:"side"`
	Target  Coordinates `json:"target"`
	Outcome ShotOutcome `json:"outcome"`
}

type StepResult struct {
	Shot     ShotRecord
	GameOver bool
	Winner   Side

	// Side holding the move after this step
	NextSide Side
}

// Game alternates moves between the host and the join side. A hit or a
// sunk ship keeps the move with the shooter, a miss passes it on. The
// game ends as soon as either fleet is destroyed.
type Game struct {
	uuid             string
	players          [2]*Player
	activeSide       Side
	state            GameState
	winner           Side
	history          []ShotRecord
	observers        []GameObserver
	maxTargetRetries int
	logger           zerolog.Logger
}

type GameOption func(*Game) error

func NewGame(hostBoard, joinBoard *Board, hostStrategy, joinStrategy Strategy, optFuncs ...GameOption) (*Game, error) {
	for _, b := range []*Board{hostBoard, joinBoard} {
		if b == nil || !b.IsFinalized() {
			return nil, cerr.ErrPlacementNotFinalized
		}
		if b.FleetSize() == 0 {
			return nil, cerr.ErrFleetEmpty()
		}
	}
	if hostStrategy == nil || joinStrategy == nil {
		return nil, errors.New("both sides need a strategy")
	}

	game := Game{
		uuid:       uuid.NewString()[:6],
		activeSide: SideHost,
		state:      GameStateAwaitingMove,
		history:    make([]ShotRecord, 0, GridSize*GridSize),
	}
	game.players[SideHost] = NewPlayer(SideHost, hostBoard, hostStrategy)
	game.players[SideJoin] = NewPlayer(SideJoin, joinBoard, joinStrategy)

	for _, opt := range optFuncs {
		if err := opt(&game); err != nil {
			return nil, err
		}
	}
	game.logger = logger.ForGame(game.uuid)
	return &game, nil
}

// WithTargetRetries caps the rejected targets allowed in one step.
// Zero keeps asking forever.
func WithTargetRetries(retries int) GameOption {
	return func(g *Game) error {
		if retries < 0 {
			return fmt.Errorf("target retries cannot be negative, got %d", retries)
		}
		g.maxTargetRetries = retries
		return nil
	}
}

func WithObserver(observer GameObserver) GameOption {
	return func(g *Game) error {
		g.AddObserver(observer)
		return nil
	}
}

func WithGameUuid(gameUuid string) GameOption {
	return func(g *Game) error {
		if gameUuid == "" {
			return errors.New("game uuid cannot be empty")
		}
		g.uuid = gameUuid
		return nil
	}
}

func (g *Game) AddObserver(observer GameObserver) {
	if observer != nil {
		g.observers = append(g.observers, observer)
	}
}

func (g *Game) notify(ev GameEvent) {
	ev.GameUuid = g.uuid
	for _, o := range g.observers {
		o.Notify(ev)
	}
}

// Step resolves exactly one shot. Targets rejected by the strategy or
// the board are asked for again without ending the step.
func (g *Game) Step() (StepResult, error) {
	if g.state == GameStateOver {
		return StepResult{GameOver: true, Winner: g.winner, NextSide: g.activeSide}, cerr.ErrGameFinished(g.uuid)
	}

	attacker := g.players[g.activeSide]
	defender := g.players[g.activeSide.Other()]

	rejected := 0
	for {
		target, err := attacker.strategy.NextTarget(attacker.board, defender.board)
		if err == nil {
			var outcome ShotOutcome
			outcome, err = defender.board.Shoot(target)
			if err == nil {
				return g.resolve(attacker, target, outcome), nil
			}
		}

		if !isRecoverableTargetErr(err) {
			return StepResult{}, err
		}

		rejected++
		g.logger.Debug().
			Err(err).
			Str("side", attacker.side.String()).
			Int("row", target.Row).
			Int("col", target.Col).
			Msg("target rejected")
		g.notify(GameEvent{Kind: EventTargetRejected, Side: attacker.side, Target: target, Err: err})
		if g.maxTargetRetries > 0 && rejected >= g.maxTargetRetries {
			return StepResult{}, cerr.ErrTargetRetries(rejected)
		}
	}
}

func isRecoverableTargetErr(err error) bool {
	return errors.Is(err, cerr.ErrInvalidInput) ||
		errors.Is(err, cerr.ErrOutOfBounds) ||
		errors.Is(err, cerr.ErrAlreadyTargeted)
}

func (g *Game) resolve(attacker *Player, target Coordinates, outcome ShotOutcome) StepResult {
	shot := ShotRecord{Side: attacker.side, Target: target, Outcome: outcome}
	g.history = append(g.history, shot)
	attacker.recordShot(outcome)

	if outcome == ShotOutcomeMiss {
		g.activeSide = g.activeSide.Other()
	}
	g.notify(GameEvent{Kind: EventShot, Side: attacker.side, Target: target, Outcome: outcome})

	result := StepResult{Shot: shot, NextSide: g.activeSide}

	// Only one board changes per step, so at most one of these holds.
	var loser *Player
	switch {
	case g.players[SideJoin].board.IsFleetDestroyed():
		loser = g.players[SideJoin]
	case g.players[SideHost].board.IsFleetDestroyed():
		loser = g.players[SideHost]
	default:
		return result
	}

	winner := g.players[loser.side.Other()]
	g.state = GameStateOver
	g.winner = winner.side
	winner.matchStatus = PlayerMatchStatusWon
	loser.matchStatus = PlayerMatchStatusLost

	g.logger.Info().
		Str("winner", winner.side.String()).
		Int("shots", len(g.history)).
		Msg("game over")
	g.notify(GameEvent{Kind: EventGameOver, Side: winner.side, Winner: winner.side})

	result.GameOver = true
	result.Winner = winner.side
	return result
}

// RunToCompletion steps until the game ends or ctx is done.
func (g *Game) RunToCompletion(ctx context.Context) (Side, error) {
	for g.state != GameStateOver {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		if _, err := g.Step(); err != nil {
			return 0, err
		}
	}
	return g.winner, nil
}

func (g *Game) Uuid() string {
	return g.uuid
}

func (g *Game) ActiveSide() Side {
	return g.activeSide
}

func (g *Game) State() GameState {
	return g.state
}

func (g *Game) IsOver() bool {
	return g.state == GameStateOver
}

// Winner is only meaningful once the game is over.
func (g *Game) Winner() (Side, bool) {
	return g.winner, g.state == GameStateOver
}

func (g *Game) Player(side Side) *Player {
	return g.players[side]
}

// returns a slice of players in the order of host then join.
func (g *Game) Players() []*Player {
	return []*Player{g.players[SideHost], g.players[SideJoin]}
}

func (g *Game) FindPlayer(playerUuid string) (*Player, error) {
	for _, p := range g.players {
		if p.uuid == playerUuid {
			return p, nil
		}
	}
	return nil, cerr.ErrPlayerNotExist(playerUuid)
}

func (g *Game) History() []ShotRecord {
	history := make([]ShotRecord, len(g.history))
	copy(history, g.history)
	return history
}

func (g *Game) TotalShots() int {
	return len(g.history)
}
