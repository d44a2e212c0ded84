package middleware

import (
	"net/http"
	"strings"

	"sealed_rps/internal/service"

	"github.com/gin-gonic/gin"
)

// JWT authenticates the caller from a Bearer token and stores the player id
// in the gin context.
func JWT() gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		token := strings.TrimPrefix(auth, "Bearer ")
		if token == "" || token == auth {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "token required"})
			return
		}

		playerID, err := service.ParseJWT(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set("player_id", playerID)
		c.Next()
	}
}

// OracleAuth guards the decryption callback route: only a caller presenting
// the configured oracle shared secret gets through.
func OracleAuth(key string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if key == "" || c.GetHeader("X-Oracle-Key") != key {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "oracle authorization failed"})
			return
		}
		c.Next()
	}
}
