package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"sealed_rps/internal/config"
	"sealed_rps/internal/db"
	"sealed_rps/internal/game"
	httpServer "sealed_rps/internal/http"
	"sealed_rps/internal/http/middleware"
	"sealed_rps/internal/logger"
	"sealed_rps/internal/oracle"
	"sealed_rps/internal/repository"
	"sealed_rps/internal/seal"
	"sealed_rps/internal/service"
	"sealed_rps/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var version = "dev"

func main() {
	cfg := config.Load()
	logger.Init(cfg.LogLevel, cfg.LogJSON)
	service.InitJWT()

	dbPool := db.Connect(cfg.DatabaseURL)
	defer dbPool.Close()

	// Encryption and decryption collaborators. The dev sealer and simulated
	// oracle stand in for the real encryption SDK and oracle network; an
	// external oracle would deliver results through the same callback route.
	sealer := seal.NewDevSealer()
	sim := oracle.NewSimOracle(sealer, time.Duration(cfg.OracleDelayMs)*time.Millisecond, []byte(cfg.OracleKey))

	hub := ws.NewHub()
	registry := game.NewRegistry(sealer, sim, sim)
	registry.Emitter = hub
	registry.Matches = repository.NewMatchRepository(dbPool)
	sim.Callback = registry.HandleDecryption

	registry.StartStallWatch(
		time.Duration(cfg.RevealStallSeconds)*time.Second,
		time.Minute,
	)

	r := gin.Default()

	// CORS for production (frontend on different domain)
	r.Use(func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if origin != "" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
			c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
			c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		}
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	middleware.InitRedisRateLimiter(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	httpServer.RegisterRoutes(r, registry, dbPool, hub, cfg, version)

	srv := &http.Server{
		Addr:    ":" + cfg.AppPort,
		Handler: r,
	}

	go func() {
		logger.Info("server started", "port", cfg.AppPort, "version", version)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("listen failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("server forced to shutdown", "error", err)
	}

	logger.Info("server exited")
}
