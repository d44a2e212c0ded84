package game

import (
	"time"

	"sealed_rps/internal/seal"
)

// State - lifecycle phase of a game
type State int

const (
	StateOpen State = iota
	StateReady
	StateStarted
	StateRevealing
	StateRevealed
)

func (s State) String() string {
	switch s {
	case StateOpen:
		return "open"
	case StateReady:
		return "ready"
	case StateStarted:
		return "started"
	case StateRevealing:
		return "revealing"
	case StateRevealed:
		return "revealed"
	default:
		return "unknown"
	}
}

// Move - plaintext move value as decoded from the oracle payload
type Move uint8

const (
	MoveNone     Move = 0 // not yet revealed / no winning move (draw)
	MoveRock     Move = 1
	MovePaper    Move = 2
	MoveScissors Move = 3
)

func (m Move) String() string {
	switch m {
	case MoveRock:
		return "rock"
	case MovePaper:
		return "paper"
	case MoveScissors:
		return "scissors"
	default:
		return "none"
	}
}

// PlayerID - opaque player identity carried in JWT claims
type PlayerID string

// Game - one match from creation through reveal. Games are never deleted;
// StateRevealed is permanent history.
type Game struct {
	ID              uint64     `json:"id"`
	Host            PlayerID   `json:"host"`
	MaxPlayers      int        `json:"max_players"`
	State           State      `json:"state"`
	Players         []PlayerID `json:"players"`
	MovesSubmitted  int        `json:"moves_submitted"`
	RevealRequestID uint64     `json:"reveal_request_id"` // 0 until the reveal request is issued
	Winners         []PlayerID `json:"winners"`
	RevealedMoves   []Move     `json:"revealed_moves"`

	revealRequestedAt time.Time
}

// PlayerState - per (game, player) ledger entry, created on join
type PlayerState struct {
	Joined        bool        `json:"joined"`
	MoveSubmitted bool        `json:"move_submitted"`
	MoveRevealed  bool        `json:"move_revealed"`
	EncryptedMove seal.Handle `json:"encrypted_move"`
	RevealedMove  Move        `json:"revealed_move"`
}

func (g *Game) joined(p PlayerID) bool {
	for _, id := range g.Players {
		if id == p {
			return true
		}
	}
	return false
}

// snapshot returns a copy safe to hand out after the registry lock is released
func (g *Game) snapshot() Game {
	out := *g
	out.Players = append([]PlayerID(nil), g.Players...)
	out.Winners = append([]PlayerID(nil), g.Winners...)
	out.RevealedMoves = append([]Move(nil), g.RevealedMoves...)
	return out
}
