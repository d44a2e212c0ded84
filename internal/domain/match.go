package domain

import "time"

// Match - history record of one revealed game. Written once when a game
// reaches the revealed state; the live state machine never reads it back.
type Match struct {
	ID              int64     `db:"id" json:"id"`
	GameID          int64     `db:"game_id" json:"game_id"`
	Players         []string  `db:"players" json:"players"`
	Moves           []int16   `db:"moves" json:"moves"`
	Winners         []string  `db:"winners" json:"winners"`
	WinningMove     int16     `db:"winning_move" json:"winning_move"` // 0 encodes a draw
	RevealRequestID int64     `db:"reveal_request_id" json:"reveal_request_id"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
}
