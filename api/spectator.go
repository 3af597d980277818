package api

import (
	"sync"

	mb "github.com/saeidalz13/seabattle/models/battleship"
	mc "github.com/saeidalz13/seabattle/models/connection"
)

// Spectator mirrors the game it watches to every connected session.
// Boards are only read inside Notify, which runs on the goroutine that
// drives the game; sessions get the cached snapshot.
type Spectator struct {
	sessionManager mc.SessionManager

	mu       sync.RWMutex
	snapshot *mc.Message[mc.RespSnapshot]
}

func NewSpectator(sessionManager mc.SessionManager) *Spectator {
	return &Spectator{sessionManager: sessionManager}
}

// Watch switches the feed to game. Call it before the game's first step.
func (sp *Spectator) Watch(game *mb.Game) {
	sp.refresh(game)
	sp.sessionManager.Enqueue(mc.NewBroadcastJSON(game.Uuid(), sp.Snapshot()))
	game.AddObserver(&gameWatch{spectator: sp, game: game})
}

// Snapshot returns the latest picture of the watched game or a
// CodeNoGame message when nothing is being watched.
func (sp *Spectator) Snapshot() interface{} {
	sp.mu.RLock()
	defer sp.mu.RUnlock()

	if sp.snapshot == nil {
		return mc.NewMessage[mc.NoPayload](mc.CodeNoGame)
	}
	return *sp.snapshot
}

func (sp *Spectator) refresh(game *mb.Game) {
	host, join := game.Player(mb.SideHost).Board(), game.Player(mb.SideJoin).Board()

	msg := mc.NewMessage[mc.RespSnapshot](mc.CodeSnapshot)
	msg.AddPayload(mc.RespSnapshot{
		GameUuid:        game.Uuid(),
		HostBoard:       host.Render(),
		JoinBoard:       join.Render(),
		ActiveSide:      uint8(game.ActiveSide()),
		SunkenShipsHost: host.SunkenShips(),
		SunkenShipsJoin: join.SunkenShips(),
		TotalShots:      game.TotalShots(),
	})

	sp.mu.Lock()
	sp.snapshot = &msg
	sp.mu.Unlock()
}

type gameWatch struct {
	spectator *Spectator
	game      *mb.Game
}

func (gw *gameWatch) Notify(ev mb.GameEvent) {
	sp := gw.spectator
	game := gw.game

	switch ev.Kind {
	case mb.EventShot:
		sp.refresh(game)

		msg := mc.NewMessage[mc.RespShot](mc.CodeShot)
		msg.AddPayload(mc.RespShot{
			GameUuid:        game.Uuid(),
			Side:            uint8(ev.Side),
			Target:          ev.Target,
			Outcome:         ev.Outcome.String(),
			NextSide:        uint8(game.ActiveSide()),
			SunkenShipsHost: game.Player(mb.SideHost).Board().SunkenShips(),
			SunkenShipsJoin: game.Player(mb.SideJoin).Board().SunkenShips(),
		})
		sp.sessionManager.Enqueue(mc.NewBroadcastJSON(game.Uuid(), msg))

	case mb.EventGameOver:
		sp.refresh(game)

		msg := mc.NewMessage[mc.RespEndGame](mc.CodeEndGame)
		msg.AddPayload(mc.RespEndGame{
			GameUuid:             game.Uuid(),
			WinnerSide:           uint8(ev.Winner),
			TotalShots:           game.TotalShots(),
			HostLayoutCommitment: game.Player(mb.SideHost).Board().LayoutCommitmentHex(),
			JoinLayoutCommitment: game.Player(mb.SideJoin).Board().LayoutCommitmentHex(),
		})
		sp.sessionManager.Enqueue(mc.NewBroadcastJSON(game.Uuid(), msg))
	}
}
