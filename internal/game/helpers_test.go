package game

import (
	"encoding/binary"
	"errors"
	"sync"
	"testing"

	"sealed_rps/internal/oracle"
	"sealed_rps/internal/seal"
)

type fakeSealer struct {
	rejectProof bool
	allowed     []string
}

func (f *fakeSealer) Sealed(input []byte, proof []byte) (seal.Handle, error) {
	if f.rejectProof {
		return "", errors.New("proof rejected")
	}
	return seal.Handle("h:" + string(input)), nil
}

func (f *fakeSealer) Allow(h seal.Handle, identity string) {
	f.allowed = append(f.allowed, identity)
}

type fakeOracle struct {
	mu          sync.Mutex
	seq         uint64
	requests    [][]seal.Handle
	rejectProof bool
	failRequest bool
}

func (f *fakeOracle) RequestDecryption(handles []seal.Handle) (uint64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failRequest {
		return 0, errors.New("oracle unavailable")
	}
	f.seq++
	f.requests = append(f.requests, append([]seal.Handle(nil), handles...))
	return f.seq, nil
}

func (f *fakeOracle) VerifyDecryptionProof(requestID uint64, payload []byte, proof []byte) error {
	if f.rejectProof {
		return errors.New("bad proof")
	}
	return nil
}

type captureEmitter struct {
	events []Event
}

func (e *captureEmitter) Emit(ev Event) {
	e.events = append(e.events, ev)
}

func (e *captureEmitter) count(eventType string) int {
	n := 0
	for _, ev := range e.events {
		if ev.Type == eventType {
			n++
		}
	}
	return n
}

func newTestRegistry() (*Registry, *fakeOracle, *captureEmitter) {
	fo := &fakeOracle{}
	ce := &captureEmitter{}
	reg := NewRegistry(&fakeSealer{}, fo, fo)
	reg.Emitter = ce
	return reg, fo, ce
}

// setupStarted creates a game, joins all players and starts it.
func setupStarted(t *testing.T, reg *Registry, players []PlayerID) uint64 {
	t.Helper()

	id, err := reg.CreateGame(players[0], len(players))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	for _, p := range players[1:] {
		if err := reg.JoinGame(p, id); err != nil {
			t.Fatalf("join %s: %v", p, err)
		}
	}
	if err := reg.StartGame(players[0], id); err != nil {
		t.Fatalf("start: %v", err)
	}
	return id
}

// submitAll submits one move per player in the given order.
func submitAll(t *testing.T, reg *Registry, id uint64, players []PlayerID) {
	t.Helper()
	for i, p := range players {
		if err := reg.SubmitMove(p, id, []byte{byte(i + 1)}, nil); err != nil {
			t.Fatalf("submit %s: %v", p, err)
		}
	}
}

// slots packs values into consecutive 32-byte big-endian payload slots.
func slots(vals ...uint64) []byte {
	out := make([]byte, len(vals)*oracle.SlotSize)
	for i, v := range vals {
		binary.BigEndian.PutUint64(out[i*oracle.SlotSize+oracle.SlotSize-8:], v)
	}
	return out
}

// permutations returns every ordering of the given players.
func permutations(players []PlayerID) [][]PlayerID {
	if len(players) <= 1 {
		return [][]PlayerID{append([]PlayerID(nil), players...)}
	}

	var out [][]PlayerID
	for i := range players {
		rest := make([]PlayerID, 0, len(players)-1)
		rest = append(rest, players[:i]...)
		rest = append(rest, players[i+1:]...)
		for _, tail := range permutations(rest) {
			out = append(out, append([]PlayerID{players[i]}, tail...))
		}
	}
	return out
}
