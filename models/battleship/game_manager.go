package battleship

import (
	"context"
	"fmt"
	"sync"

	cerr "github.com/saeidalz13/seabattle/internal/error"
)

type GameManager interface {
	CreateGame(ctx context.Context, fleet Fleet, hostStrategy, joinStrategy Strategy, optFuncs ...GameOption) (*Game, error)
	GetGame(gameUuid string) (*Game, error)
	TerminateGame(gameUuid string)
	ActiveGames() int
}

// BattleshipGameManager keeps the games of this process. Games are
// never stored anywhere else and vanish with the process.
type BattleshipGameManager struct {
	games     map[string]*Game
	placement *PlacementGenerator
	mu        sync.RWMutex
}

var _ GameManager = (*BattleshipGameManager)(nil)

func NewBattleshipGameManager(placement *PlacementGenerator) *BattleshipGameManager {
	return &BattleshipGameManager{
		games:     make(map[string]*Game, 10),
		placement: placement,
	}
}

// CreateGame places a fleet on each side's board and registers a game
// ready for its first step. The join board starts hidden.
func (bgm *BattleshipGameManager) CreateGame(ctx context.Context, fleet Fleet, hostStrategy, joinStrategy Strategy, optFuncs ...GameOption) (*Game, error) {
	hostBoard, err := bgm.placement.GenerateSecure(ctx, fleet)
	if err != nil {
		return nil, fmt.Errorf("host board: %w", err)
	}
	joinBoard, err := bgm.placement.GenerateSecure(ctx, fleet)
	if err != nil {
		return nil, fmt.Errorf("join board: %w", err)
	}
	joinBoard.SetVisible(false)

	game, err := NewGame(hostBoard, joinBoard, hostStrategy, joinStrategy, optFuncs...)
	if err != nil {
		return nil, err
	}

	bgm.mu.Lock()
	bgm.games[game.uuid] = game
	bgm.mu.Unlock()

	return game, nil
}

func (bgm *BattleshipGameManager) GetGame(gameUuid string) (*Game, error) {
	bgm.mu.RLock()
	game, prs := bgm.games[gameUuid]
	bgm.mu.RUnlock()
	if !prs {
		return nil, cerr.ErrGameNotExist(gameUuid)
	}

	return game, nil
}

func (bgm *BattleshipGameManager) TerminateGame(gameUuid string) {
	bgm.mu.Lock()
	delete(bgm.games, gameUuid)
	bgm.mu.Unlock()
}

func (bgm *BattleshipGameManager) ActiveGames() int {
	bgm.mu.RLock()
	defer bgm.mu.RUnlock()
	return len(bgm.games)
}
