package error

import (
	"errors"
	"fmt"
)

var (
	ErrOutOfBounds            = errors.New("coordinates out of grid bound")
	ErrAlreadyTargeted        = errors.New("coordinates already targeted")
	ErrInvalidPlacement       = errors.New("invalid ship placement")
	ErrPlacementExhausted     = errors.New("placement attempts exhausted")
	ErrInvalidFleet           = errors.New("invalid fleet")
	ErrPlacementFinalized     = errors.New("board placement already finalized")
	ErrPlacementNotFinalized  = errors.New("board placement not finalized")
	ErrInvalidInput           = errors.New("invalid input")
	ErrGameOver               = errors.New("game is over")
	ErrGameNotExists          = errors.New("game does not exist")
	ErrPlayerNotExists        = errors.New("player does not exist")
	ErrTargetRetriesExhausted = errors.New("target retries exhausted")
	ErrSessionNotFound        = errors.New("session not found")
)

func ErrXorYOutOfGridBound(row, col int) error {
	return fmt.Errorf("%w\trow: %d\tcol: %d", ErrOutOfBounds, row, col)
}

func ErrAttackPositionAlreadyTargeted(row, col int) error {
	return fmt.Errorf("%w\trow: %d\tcol: %d", ErrAlreadyTargeted, row, col)
}

func ErrShipOutOfGridBound(row, col int) error {
	return fmt.Errorf("%w: ship cell out of grid bound\trow: %d\tcol: %d", ErrInvalidPlacement, row, col)
}

func ErrShipPositionExcluded(row, col int) error {
	return fmt.Errorf("%w: ship cell occupied or in buffer zone\trow: %d\tcol: %d", ErrInvalidPlacement, row, col)
}

func ErrShipLength(length int) error {
	return fmt.Errorf("%w: ship length must be between 1 and 4, got %d", ErrInvalidPlacement, length)
}

func ErrPlacementAttempts(attempts, placed, fleetSize int) error {
	return fmt.Errorf("%w after %d attempts; placed %d of %d ships", ErrPlacementExhausted, attempts, placed, fleetSize)
}

func ErrPlacementRestarts(restarts int) error {
	return fmt.Errorf("%w: no complete board after %d restarts", ErrPlacementExhausted, restarts)
}

func ErrFleetShipLength(idx, length int) error {
	return fmt.Errorf("%w: ship %d has length %d, must be between 1 and 4", ErrInvalidFleet, idx, length)
}

func ErrFleetEmpty() error {
	return fmt.Errorf("%w: fleet has no ships", ErrInvalidFleet)
}

func ErrFleetTooLarge(cells, capacity int) error {
	return fmt.Errorf("%w: fleet needs %d cells but grid has %d", ErrInvalidFleet, cells, capacity)
}

func ErrFleetFormat(value string) error {
	return fmt.Errorf("%w: cannot parse ship length %q", ErrInvalidFleet, value)
}

func ErrInputCoordinateCount(got int) error {
	return fmt.Errorf("%w: enter two coordinates, got %d", ErrInvalidInput, got)
}

func ErrInputNotNumber(value string) error {
	return fmt.Errorf("%w: coordinates must be numbers, got %q", ErrInvalidInput, value)
}

func ErrTargetRetries(retries int) error {
	return fmt.Errorf("%w: no valid target after %d retries", ErrTargetRetriesExhausted, retries)
}

func ErrGameNotExist(gameUuid string) error {
	return fmt.Errorf("%w, uuid: %s", ErrGameNotExists, gameUuid)
}

func ErrPlayerNotExist(playerUuid string) error {
	return fmt.Errorf("%w, uuid: %s", ErrPlayerNotExists, playerUuid)
}

func ErrGameFinished(gameUuid string) error {
	return fmt.Errorf("%w, uuid: %s", ErrGameOver, gameUuid)
}

func ErrSessionNotExist(sessionId string) error {
	return fmt.Errorf("%w, id: %s", ErrSessionNotFound, sessionId)
}
