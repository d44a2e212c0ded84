package repository

import (
	"context"
	"encoding/json"

	"sealed_rps/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type MatchRepository struct {
	db *pgxpool.Pool
}

func NewMatchRepository(db *pgxpool.Pool) *MatchRepository {
	return &MatchRepository{db: db}
}

func (r *MatchRepository) Create(ctx context.Context, m *domain.Match) error {
	playersJSON, err := json.Marshal(m.Players)
	if err != nil {
		return err
	}
	movesJSON, err := json.Marshal(m.Moves)
	if err != nil {
		return err
	}
	// a draw has no winners; store an empty array rather than null
	winnersJSON := []byte("[]")
	if len(m.Winners) > 0 {
		winnersJSON, err = json.Marshal(m.Winners)
		if err != nil {
			return err
		}
	}

	return r.db.QueryRow(ctx,
		`INSERT INTO matches (game_id, players, moves, winners, winning_move, reveal_request_id)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at`,
		m.GameID,
		playersJSON,
		movesJSON,
		winnersJSON,
		m.WinningMove,
		m.RevealRequestID,
	).Scan(&m.ID, &m.CreatedAt)
}

// GetByPlayer returns recent matches the player took part in, newest first.
func (r *MatchRepository) GetByPlayer(ctx context.Context, player string, limit int) ([]*domain.Match, error) {
	if limit <= 0 {
		limit = 100
	}

	rows, err := r.db.Query(ctx,
		`SELECT id, game_id, players, moves, winners, winning_move, reveal_request_id, created_at
		 FROM matches
		 WHERE players @> to_jsonb($1::text)
		 ORDER BY created_at DESC
		 LIMIT $2`,
		player, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []*domain.Match
	for rows.Next() {
		var (
			m           domain.Match
			playersJSON []byte
			movesJSON   []byte
			winnersJSON []byte
		)
		if err := rows.Scan(&m.ID, &m.GameID, &playersJSON, &movesJSON, &winnersJSON,
			&m.WinningMove, &m.RevealRequestID, &m.CreatedAt); err != nil {
			return nil, err
		}
		_ = json.Unmarshal(playersJSON, &m.Players)
		_ = json.Unmarshal(movesJSON, &m.Moves)
		_ = json.Unmarshal(winnersJSON, &m.Winners)
		res = append(res, &m)
	}

	return res, rows.Err()
}

// PlayerStats - aggregate record for one player
type PlayerStats struct {
	Player string `json:"player"`
	Games  int    `json:"games"`
	Wins   int    `json:"wins"`
	Draws  int    `json:"draws"`
}

func (r *MatchRepository) GetPlayerStats(ctx context.Context, player string) (*PlayerStats, error) {
	stats := &PlayerStats{Player: player}

	err := r.db.QueryRow(ctx,
		`SELECT
			COUNT(*) AS games,
			COUNT(*) FILTER (WHERE winners @> to_jsonb($1::text)) AS wins,
			COUNT(*) FILTER (WHERE winning_move = 0) AS draws
		 FROM matches
		 WHERE players @> to_jsonb($1::text)`,
		player,
	).Scan(&stats.Games, &stats.Wins, &stats.Draws)
	if err != nil {
		return nil, err
	}

	return stats, nil
}
