package http

import (
	"os"
	"strconv"
	"time"

	"sealed_rps/internal/config"
	"sealed_rps/internal/game"
	"sealed_rps/internal/http/handlers"
	"sealed_rps/internal/http/middleware"
	"sealed_rps/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

func RegisterRoutes(r *gin.Engine, registry *game.Registry, db *pgxpool.Pool, hub *ws.Hub, cfg *config.Config, version string) {
	h := handlers.NewHandler(registry, db)
	healthHandler := handlers.NewHealthHandler(db, version)

	// read limits from env, with safe defaults
	apiRateLimit := 30
	if v := os.Getenv("API_RATE_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			apiRateLimit = n
		}
	}
	apiRateWindow := time.Minute
	if v := os.Getenv("API_RATE_WINDOW_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			apiRateWindow = time.Duration(n) * time.Second
		}
	}

	authRateLimit := 5
	if v := os.Getenv("AUTH_RATE_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			authRateLimit = n
		}
	}
	authRateWindow := time.Minute
	if v := os.Getenv("AUTH_RATE_WINDOW_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			authRateWindow = time.Duration(n) * time.Second
		}
	}

	// Health checks (no rate limiting)
	r.GET("/health", healthHandler.Liveness)
	r.GET("/healthz", healthHandler.Liveness)
	r.GET("/readyz", healthHandler.Readiness)

	gameRL := middleware.GameRateLimit(
		cfg.GameRateLimit,
		time.Duration(cfg.GameRateWindow)*time.Second,
	)

	v1 := r.Group("/api/v1")
	v1.Use(middleware.RedisRateLimit(apiRateLimit, apiRateWindow))

	// Identity
	v1.POST("/auth", middleware.RedisRateLimit(authRateLimit, authRateWindow), h.Auth)

	// Game lifecycle
	v1.POST("/games", middleware.JWT(), gameRL, h.CreateGame)
	v1.POST("/games/:id/join", middleware.JWT(), gameRL, h.JoinGame)
	v1.POST("/games/:id/start", middleware.JWT(), gameRL, h.StartGame)
	v1.POST("/games/:id/move", middleware.JWT(), gameRL, h.SubmitMove)

	// Reads
	v1.GET("/games", h.TotalGames)
	v1.GET("/games/:id", h.GetGame)
	v1.GET("/games/:id/players/:player", h.GetPlayerState)

	// Match history
	v1.GET("/players/:player/matches", h.PlayerMatches)
	v1.GET("/players/:player/stats", h.PlayerStats)

	// Decryption oracle callback
	v1.POST("/oracle/decryption", middleware.OracleAuth(cfg.OracleKey), h.DecryptionCallback)

	// Live game event feed
	r.GET("/ws", h.WS(hub))
}
