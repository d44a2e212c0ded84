package game

import (
	"errors"
	"reflect"
	"testing"
)

// runToRevealing takes a two-player game through submission and returns the
// game id and outstanding request id.
func runToRevealing(t *testing.T, reg *Registry, players []PlayerID) (uint64, uint64) {
	t.Helper()
	id := setupStarted(t, reg, players)
	submitAll(t, reg, id, players)
	g, _ := reg.Game(id)
	if g.State != StateRevealing {
		t.Fatalf("setup: state = %s; want revealing", g.State)
	}
	return id, g.RevealRequestID
}

func TestCallbackRevealsWinners(t *testing.T) {
	reg, _, ce := newTestRegistry()
	id, reqID := runToRevealing(t, reg, []PlayerID{"alice", "bob"})

	// alice rock, bob paper
	if err := reg.HandleDecryption(reqID, slots(1, 2), nil); err != nil {
		t.Fatalf("callback: %v", err)
	}

	g, _ := reg.Game(id)
	if g.State != StateRevealed {
		t.Fatalf("state = %s; want revealed", g.State)
	}
	if !reflect.DeepEqual(g.Winners, []PlayerID{"bob"}) {
		t.Fatalf("winners = %v; want [bob]", g.Winners)
	}
	if !reflect.DeepEqual(g.RevealedMoves, []Move{MoveRock, MovePaper}) {
		t.Fatalf("revealed moves = %v", g.RevealedMoves)
	}

	for _, p := range []PlayerID{"alice", "bob"} {
		ps, _ := reg.PlayerState(id, p)
		if !ps.MoveRevealed || ps.RevealedMove == MoveNone {
			t.Fatalf("player %s not revealed: %+v", p, ps)
		}
	}

	if ce.count(EventGameRevealed) != 1 {
		t.Fatalf("game_revealed events = %d; want 1", ce.count(EventGameRevealed))
	}
}

func TestCallbackDraw(t *testing.T) {
	reg, _, ce := newTestRegistry()
	id, reqID := runToRevealing(t, reg, []PlayerID{"alice", "bob"})

	// both scissors
	if err := reg.HandleDecryption(reqID, slots(3, 3), nil); err != nil {
		t.Fatalf("callback: %v", err)
	}

	g, _ := reg.Game(id)
	if len(g.Winners) != 0 {
		t.Fatalf("winners = %v; want none", g.Winners)
	}
	if !reflect.DeepEqual(g.RevealedMoves, []Move{MoveScissors, MoveScissors}) {
		t.Fatalf("revealed moves = %v", g.RevealedMoves)
	}

	// the revealed event encodes a draw as winning move 0
	for _, ev := range ce.events {
		if ev.Type == EventGameRevealed {
			if ev.Payload["winning_move"] != MoveNone {
				t.Fatalf("winning_move = %v; want MoveNone", ev.Payload["winning_move"])
			}
		}
	}
}

func TestCallbackThreeWayDraw(t *testing.T) {
	reg, _, _ := newTestRegistry()
	id, reqID := runToRevealing(t, reg, []PlayerID{"alice", "bob", "carol"})

	if err := reg.HandleDecryption(reqID, slots(1, 2, 3), nil); err != nil {
		t.Fatalf("callback: %v", err)
	}

	g, _ := reg.Game(id)
	if len(g.Winners) != 0 {
		t.Fatalf("winners = %v; want none (all three moves present)", g.Winners)
	}
}

func TestCallbackUnknownRequest(t *testing.T) {
	reg, _, _ := newTestRegistry()
	id, reqID := runToRevealing(t, reg, []PlayerID{"alice", "bob"})

	if err := reg.HandleDecryption(reqID+100, slots(1, 2), nil); !errors.Is(err, ErrUnknownRequest) {
		t.Fatalf("got %v, want ErrUnknownRequest", err)
	}

	g, _ := reg.Game(id)
	if g.State != StateRevealing {
		t.Fatalf("unknown request mutated state: %s", g.State)
	}
}

func TestCallbackReplayRejected(t *testing.T) {
	reg, _, _ := newTestRegistry()
	id, reqID := runToRevealing(t, reg, []PlayerID{"alice", "bob"})

	if err := reg.HandleDecryption(reqID, slots(1, 2), nil); err != nil {
		t.Fatalf("first callback: %v", err)
	}

	// the request id is consumed on acceptance; a replay with different
	// moves must not change anything
	if err := reg.HandleDecryption(reqID, slots(2, 1), nil); !errors.Is(err, ErrUnknownRequest) {
		t.Fatalf("replay: got %v, want ErrUnknownRequest", err)
	}

	g, _ := reg.Game(id)
	if !reflect.DeepEqual(g.Winners, []PlayerID{"bob"}) {
		t.Fatalf("replay changed winners: %v", g.Winners)
	}
	if !reflect.DeepEqual(g.RevealedMoves, []Move{MoveRock, MovePaper}) {
		t.Fatalf("replay changed moves: %v", g.RevealedMoves)
	}
}

func TestCallbackLengthMismatch(t *testing.T) {
	reg, _, _ := newTestRegistry()
	id, reqID := runToRevealing(t, reg, []PlayerID{"alice", "bob"})

	for _, payload := range [][]byte{slots(1), slots(1, 2, 3), {}, make([]byte, 63)} {
		if err := reg.HandleDecryption(reqID, payload, nil); !errors.Is(err, ErrPayloadLength) {
			t.Fatalf("len %d: got %v, want ErrPayloadLength", len(payload), err)
		}
	}

	// a rejected callback does not consume the request; a correct retry works
	if err := reg.HandleDecryption(reqID, slots(1, 2), nil); err != nil {
		t.Fatalf("retry after rejection: %v", err)
	}
	g, _ := reg.Game(id)
	if g.State != StateRevealed {
		t.Fatalf("state = %s; want revealed", g.State)
	}
}

func TestCallbackBadProof(t *testing.T) {
	reg, fo, _ := newTestRegistry()
	id, reqID := runToRevealing(t, reg, []PlayerID{"alice", "bob"})

	fo.rejectProof = true
	if err := reg.HandleDecryption(reqID, slots(1, 2), nil); !errors.Is(err, ErrBadProof) {
		t.Fatalf("got %v, want ErrBadProof", err)
	}

	g, _ := reg.Game(id)
	if g.State != StateRevealing || len(g.RevealedMoves) != 0 {
		t.Fatalf("failed proof mutated state: %+v", g)
	}
}

func TestCallbackBadMoveValueIsAtomic(t *testing.T) {
	reg, _, _ := newTestRegistry()
	id, reqID := runToRevealing(t, reg, []PlayerID{"alice", "bob"})

	// first slot fine, second out of range: nothing may be written
	var mvErr *MoveValueError
	if err := reg.HandleDecryption(reqID, slots(1, 7), nil); !errors.As(err, &mvErr) {
		t.Fatalf("got %v, want MoveValueError", err)
	}
	if mvErr.Slot != 1 || mvErr.Value != 7 {
		t.Fatalf("error names wrong slot/value: %+v", mvErr)
	}

	g, _ := reg.Game(id)
	if g.State != StateRevealing {
		t.Fatalf("state = %s; want revealing", g.State)
	}
	for _, p := range []PlayerID{"alice", "bob"} {
		ps, _ := reg.PlayerState(id, p)
		if ps.MoveRevealed || ps.RevealedMove != MoveNone {
			t.Fatalf("partial write for %s: %+v", p, ps)
		}
	}
}

func TestRevealedGameIsTerminal(t *testing.T) {
	reg, _, _ := newTestRegistry()
	id, reqID := runToRevealing(t, reg, []PlayerID{"alice", "bob"})
	reg.HandleDecryption(reqID, slots(1, 2), nil)

	var stateErr *StateError
	if err := reg.JoinGame("carol", id); !errors.As(err, &stateErr) {
		t.Fatalf("join revealed: got %v, want StateError", err)
	}
	if err := reg.StartGame("alice", id); !errors.As(err, &stateErr) {
		t.Fatalf("start revealed: got %v, want StateError", err)
	}
	if err := reg.SubmitMove("alice", id, []byte{1}, nil); !errors.As(err, &stateErr) {
		t.Fatalf("submit revealed: got %v, want StateError", err)
	}

	g, _ := reg.Game(id)
	if !reflect.DeepEqual(g.Winners, []PlayerID{"bob"}) || g.State != StateRevealed {
		t.Fatalf("terminal state changed: %+v", g)
	}
}
