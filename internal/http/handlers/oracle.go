package handlers

import (
	"encoding/base64"
	"net/http"

	"github.com/gin-gonic/gin"
)

// DecryptionCallback is the inbound oracle route. Sender authentication is
// handled by the OracleAuth middleware; the registry validates everything
// else about the callback.
// Expects {request_id:uint, payload:base64, proof:base64}
func (h *Handler) DecryptionCallback(c *gin.Context) {
	var req struct {
		RequestID uint64 `json:"request_id"`
		Payload   string `json:"payload"`
		Proof     string `json:"proof"`
	}
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}

	payload, err := base64.StdEncoding.DecodeString(req.Payload)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "payload is not valid base64"})
		return
	}
	proof, err := base64.StdEncoding.DecodeString(req.Proof)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "proof is not valid base64"})
		return
	}

	if err := h.Registry.HandleDecryption(req.RequestID, payload, proof); err != nil {
		respondGameError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}
