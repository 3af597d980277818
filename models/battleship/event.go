package battleship

type EventKind uint8

const (
	EventShot EventKind = iota
	EventTargetRejected
	EventGameOver
)

type GameEvent struct {
	Kind     EventKind
	GameUuid string
	Side     Side
	Target   Coordinates
	Outcome  ShotOutcome
	Winner   Side

	// Set for EventTargetRejected
	Err error
}

// GameObserver is notified on the goroutine that drives the game, so
// implementations must not block for long.
type GameObserver interface {
	Notify(ev GameEvent)
}

type ObserverFunc func(ev GameEvent)

func (f ObserverFunc) Notify(ev GameEvent) {
	f(ev)
}
