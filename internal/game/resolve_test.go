package game

import (
	"errors"
	"reflect"
	"testing"
)

func TestResolveWinners(t *testing.T) {
	cases := []struct {
		name        string
		players     []PlayerID
		moves       []Move
		wantMove    Move
		wantWinners []PlayerID
	}{
		{"paper beats rock", []PlayerID{"a", "b"}, []Move{MoveRock, MovePaper}, MovePaper, []PlayerID{"b"}},
		{"order independent", []PlayerID{"b", "a"}, []Move{MovePaper, MoveRock}, MovePaper, []PlayerID{"b"}},
		{"rock beats scissors", []PlayerID{"a", "b"}, []Move{MoveScissors, MoveRock}, MoveRock, []PlayerID{"b"}},
		{"scissors beats paper", []PlayerID{"a", "b"}, []Move{MoveScissors, MovePaper}, MoveScissors, []PlayerID{"a"}},
		{"same move is a draw", []PlayerID{"a", "b"}, []Move{MoveScissors, MoveScissors}, MoveNone, nil},
		{"three distinct is a draw", []PlayerID{"a", "b", "c"}, []Move{MoveRock, MovePaper, MoveScissors}, MoveNone, nil},
		{"shared winning move", []PlayerID{"a", "b", "c"}, []Move{MovePaper, MoveRock, MovePaper}, MovePaper, []PlayerID{"a", "c"}},
		{"four players two values", []PlayerID{"a", "b", "c", "d"}, []Move{MoveRock, MoveScissors, MoveScissors, MoveRock}, MoveRock, []PlayerID{"a", "d"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			gotMove, gotWinners := resolveWinners(tc.players, tc.moves)
			if gotMove != tc.wantMove {
				t.Fatalf("winning move = %s; want %s", gotMove, tc.wantMove)
			}
			if !reflect.DeepEqual(gotWinners, tc.wantWinners) {
				t.Fatalf("winners = %v; want %v", gotWinners, tc.wantWinners)
			}
		})
	}
}

func TestDecodeMoves(t *testing.T) {
	payload := slots(1, 3, 2)
	moves, err := decodeMoves(payload)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := []Move{MoveRock, MoveScissors, MovePaper}
	if !reflect.DeepEqual(moves, want) {
		t.Fatalf("moves = %v; want %v", moves, want)
	}
}

func TestDecodeMovesRejectsOutOfRange(t *testing.T) {
	for _, bad := range []uint64{0, 4, 255} {
		_, err := decodeMoves(slots(1, bad))
		var mvErr *MoveValueError
		if !errors.As(err, &mvErr) {
			t.Fatalf("value %d: expected MoveValueError, got %v", bad, err)
		}
		if mvErr.Slot != 1 || mvErr.Value != bad {
			t.Fatalf("value %d: got slot=%d value=%d", bad, mvErr.Slot, mvErr.Value)
		}
	}
}

func TestDecodeMovesRejectsHighBytes(t *testing.T) {
	payload := slots(1)
	payload[0] = 0xff // high byte set: value no longer fits a move
	if _, err := decodeMoves(payload); err == nil {
		t.Fatal("expected error for slot with high bytes set")
	}
}
