package handlers

import (
	"encoding/base64"
	"net/http"
	"strconv"

	"sealed_rps/internal/game"

	"github.com/gin-gonic/gin"
)

// CreateGame opens a new game with the caller as host. Expects {max_players:int}
func (h *Handler) CreateGame(c *gin.Context) {
	player, ok := playerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "player not found"})
		return
	}

	var req struct {
		MaxPlayers int `json:"max_players"`
	}
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}

	id, err := h.Registry.CreateGame(player, req.MaxPlayers)
	if err != nil {
		respondGameError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"game_id": id})
}

func (h *Handler) JoinGame(c *gin.Context) {
	player, ok := playerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "player not found"})
		return
	}

	gameID, ok := gameIDParam(c)
	if !ok {
		return
	}

	if err := h.Registry.JoinGame(player, gameID); err != nil {
		respondGameError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *Handler) StartGame(c *gin.Context) {
	player, ok := playerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "player not found"})
		return
	}

	gameID, ok := gameIDParam(c)
	if !ok {
		return
	}

	if err := h.Registry.StartGame(player, gameID); err != nil {
		respondGameError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// SubmitMove records the caller's encrypted move.
// Expects {ciphertext:base64, proof:base64}
func (h *Handler) SubmitMove(c *gin.Context) {
	player, ok := playerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "player not found"})
		return
	}

	gameID, ok := gameIDParam(c)
	if !ok {
		return
	}

	var req struct {
		Ciphertext string `json:"ciphertext"`
		Proof      string `json:"proof"`
	}
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}

	ciphertext, err := base64.StdEncoding.DecodeString(req.Ciphertext)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ciphertext is not valid base64"})
		return
	}
	proof, err := base64.StdEncoding.DecodeString(req.Proof)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "proof is not valid base64"})
		return
	}

	if err := h.Registry.SubmitMove(player, gameID, ciphertext, proof); err != nil {
		respondGameError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *Handler) GetGame(c *gin.Context) {
	gameID, ok := gameIDParam(c)
	if !ok {
		return
	}

	g, err := h.Registry.Game(gameID)
	if err != nil {
		respondGameError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":                g.ID,
		"host":              g.Host,
		"max_players":       g.MaxPlayers,
		"current_players":   len(g.Players),
		"moves_submitted":   g.MovesSubmitted,
		"state":             g.State.String(),
		"players":           g.Players,
		"winners":           g.Winners,
		"revealed_moves":    g.RevealedMoves,
		"reveal_request_id": g.RevealRequestID,
	})
}

func (h *Handler) GetPlayerState(c *gin.Context) {
	gameID, ok := gameIDParam(c)
	if !ok {
		return
	}

	player := c.Param("player")
	if player == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "player required"})
		return
	}

	ps, err := h.Registry.PlayerState(gameID, game.PlayerID(player))
	if err != nil {
		respondGameError(c, err)
		return
	}

	c.JSON(http.StatusOK, ps)
}

// TotalGames returns the count of games ever created.
func (h *Handler) TotalGames(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"total": h.Registry.TotalGames()})
}

// PlayerMatches returns finished matches for a player from history storage.
func (h *Handler) PlayerMatches(c *gin.Context) {
	player := c.Param("player")
	if player == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "player required"})
		return
	}

	limit := 0
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			limit = n
		}
	}

	matches, err := h.Matches.GetByPlayer(c.Request.Context(), player, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"matches": matches})
}

// PlayerStats returns aggregate win/draw counts for a player.
func (h *Handler) PlayerStats(c *gin.Context) {
	player := c.Param("player")
	if player == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "player required"})
		return
	}

	stats, err := h.Matches.GetPlayerStats(c.Request.Context(), player)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
		return
	}

	c.JSON(http.StatusOK, stats)
}

func gameIDParam(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid game id"})
		return 0, false
	}
	return id, true
}
