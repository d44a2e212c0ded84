package game

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidMaxPlayers = errors.New("max players must be between 2 and 4")
	ErrGameNotFound      = errors.New("game not found")
	ErrNotHost           = errors.New("only the host can start the game")
	ErrNotJoined         = errors.New("player has not joined this game")
	ErrAlreadyJoined     = errors.New("player already joined this game")
	ErrAlreadySubmitted  = errors.New("move already submitted")
	ErrGameFull          = errors.New("game is full")
	ErrBadCiphertext     = errors.New("invalid encrypted move")
	ErrUnknownRequest    = errors.New("invalid reveal request")
	ErrBadProof          = errors.New("decryption proof rejected")
	ErrPayloadLength     = errors.New("payload length mismatch")
)

// StateError reports an operation attempted while the game was not in the
// required state.
type StateError struct {
	Op       string
	Expected State
	Actual   State
}

func (e *StateError) Error() string {
	return fmt.Sprintf("%s: game is %s, want %s", e.Op, e.Actual, e.Expected)
}

// MoveValueError reports a decoded oracle payload slot outside {1,2,3}.
type MoveValueError struct {
	Slot  int
	Value uint64
}

func (e *MoveValueError) Error() string {
	return fmt.Sprintf("invalid move value %d in slot %d", e.Value, e.Slot)
}

func wrap(kind, cause error) error {
	return fmt.Errorf("%w: %v", kind, cause)
}
