package game

import (
	"encoding/binary"
	"fmt"

	"sealed_rps/internal/logger"
	"sealed_rps/internal/oracle"
)

// HandleDecryption is the inbound half of the oracle boundary: the callback
// carrying plaintext moves for an outstanding reveal request. The transport
// layer has already authenticated the sender as the oracle; everything else
// is validated here, and the game is mutated only after the full payload has
// been checked. The request index entry is consumed only on acceptance, so a
// rejected callback can be retried with the same id.
func (r *Registry) HandleDecryption(requestID uint64, payload []byte, proof []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	gameID, ok := r.requests[requestID]
	if !ok {
		callbacks.WithLabelValues("unknown_request").Inc()
		return ErrUnknownRequest
	}

	g := r.games[gameID]
	if g.State != StateRevealing {
		callbacks.WithLabelValues("state_mismatch").Inc()
		return &StateError{Op: "reveal", Expected: StateRevealing, Actual: g.State}
	}

	want := len(g.Players) * oracle.SlotSize
	if len(payload) != want {
		callbacks.WithLabelValues("bad_length").Inc()
		return fmt.Errorf("%w: got %d bytes, want %d", ErrPayloadLength, len(payload), want)
	}

	if err := r.checker.VerifyDecryptionProof(requestID, payload, proof); err != nil {
		callbacks.WithLabelValues("bad_proof").Inc()
		return wrap(ErrBadProof, err)
	}

	moves, err := decodeMoves(payload)
	if err != nil {
		callbacks.WithLabelValues("bad_value").Inc()
		return err
	}

	// All checks passed; commit atomically.
	delete(r.requests, requestID)
	winning, winners := resolveWinners(g.Players, moves)
	g.State = StateRevealed
	g.RevealedMoves = moves
	g.Winners = winners
	for i, p := range g.Players {
		ps := r.players[playerKey{gameID, p}]
		ps.MoveRevealed = true
		ps.RevealedMove = moves[i]
	}

	callbacks.WithLabelValues("accepted").Inc()
	gamesRevealed.Inc()
	logger.Info("game revealed", "game_id", gameID, "request_id", requestID,
		"winning_move", winning.String(), "winners", len(winners))
	r.emit(Event{Type: EventGameRevealed, GameID: gameID, Payload: map[string]any{
		"winning_move": winning, // MoveNone encodes a draw
		"winners":      winners,
		"moves":        moves,
	}})

	r.recordMatch(g)
	return nil
}

// decodeMoves splits the payload into fixed-width big-endian slots, one per
// player in join order, and rejects any value outside {1,2,3}. Well-formed
// clients never seal an out-of-range move, but the oracle is not trusted
// blindly.
func decodeMoves(payload []byte) ([]Move, error) {
	n := len(payload) / oracle.SlotSize
	moves := make([]Move, n)
	for i := 0; i < n; i++ {
		slot := payload[i*oracle.SlotSize : (i+1)*oracle.SlotSize]

		overflow := false
		for _, b := range slot[:oracle.SlotSize-8] {
			if b != 0 {
				overflow = true
				break
			}
		}
		v := binary.BigEndian.Uint64(slot[oracle.SlotSize-8:])
		if overflow || v < uint64(MoveRock) || v > uint64(MoveScissors) {
			return nil, &MoveValueError{Slot: i, Value: v}
		}
		moves[i] = Move(v)
	}
	return moves, nil
}
