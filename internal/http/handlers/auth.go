package handlers

import (
	"net/http"

	"sealed_rps/internal/service"

	"github.com/gin-gonic/gin"
)

type AuthRequest struct {
	PlayerID string `json:"player_id"`
}

// Auth issues a JWT for the given player id. Identities are opaque strings;
// wallet-based authentication sits outside this service.
func (h *Handler) Auth(c *gin.Context) {
	var req AuthRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}

	if req.PlayerID == "" || len(req.PlayerID) > 64 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid player id"})
		return
	}

	token, err := service.GenerateJWT(req.PlayerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "token generation failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "player_id": req.PlayerID})
}
