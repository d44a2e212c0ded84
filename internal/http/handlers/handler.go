package handlers

import (
	"errors"
	"net/http"

	"sealed_rps/internal/game"
	"sealed_rps/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Handler struct {
	Registry *game.Registry
	DB       *pgxpool.Pool
	Matches  *repository.MatchRepository
}

func NewHandler(registry *game.Registry, db *pgxpool.Pool) *Handler {
	h := &Handler{
		Registry: registry,
		DB:       db,
	}
	if db != nil {
		h.Matches = repository.NewMatchRepository(db)
	}
	return h
}

// playerID reads the identity set by the JWT middleware
func playerID(c *gin.Context) (game.PlayerID, bool) {
	v, ok := c.Get("player_id")
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		return "", false
	}
	return game.PlayerID(s), true
}

// respondGameError maps the registry error taxonomy onto HTTP statuses. Each
// error kind stays distinguishable so clients can tell why an action was
// rejected, not merely that it was.
func respondGameError(c *gin.Context, err error) {
	var stateErr *game.StateError
	var moveErr *game.MoveValueError

	switch {
	case errors.Is(err, game.ErrGameNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.As(err, &stateErr):
		c.JSON(http.StatusConflict, gin.H{
			"error":          stateErr.Error(),
			"expected_state": stateErr.Expected.String(),
			"actual_state":   stateErr.Actual.String(),
		})
	case errors.Is(err, game.ErrNotHost), errors.Is(err, game.ErrNotJoined):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, game.ErrAlreadyJoined),
		errors.Is(err, game.ErrAlreadySubmitted),
		errors.Is(err, game.ErrGameFull):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, game.ErrInvalidMaxPlayers),
		errors.Is(err, game.ErrBadCiphertext),
		errors.Is(err, game.ErrPayloadLength),
		errors.Is(err, game.ErrBadProof),
		errors.As(err, &moveErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, game.ErrUnknownRequest):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
