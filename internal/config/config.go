package config

import (
	"os"
	"strconv"

	"sealed_rps/internal/logger"

	"github.com/joho/godotenv"
)

type Config struct {
	AppPort     string
	DatabaseURL string
	JWTSecret   string

	// Shared secret identifying the decryption oracle on the callback route.
	OracleKey string
	// Delay the simulated oracle waits before delivering a decryption result.
	OracleDelayMs int

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	LogLevel string
	LogJSON  bool

	// Game action limits (per player)
	GameRateLimit  int
	GameRateWindow int

	// Age after which a game stuck in the revealing state is reported.
	RevealStallSeconds int
}

// Load reads configuration from the environment
func Load() *Config {
	_ = godotenv.Load()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		logger.Fatal("DATABASE_URL is not set")
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		logger.Fatal("JWT_SECRET is not set")
	}

	oracleKey := os.Getenv("ORACLE_KEY")
	if oracleKey == "" {
		logger.Fatal("ORACLE_KEY is not set")
	}

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}

	cfg := &Config{
		AppPort:            port,
		DatabaseURL:        dbURL,
		JWTSecret:          jwtSecret,
		OracleKey:          oracleKey,
		OracleDelayMs:      250,
		RedisAddr:          os.Getenv("REDIS_ADDR"),
		RedisPassword:      os.Getenv("REDIS_PASSWORD"),
		LogLevel:           os.Getenv("LOG_LEVEL"),
		LogJSON:            os.Getenv("LOG_JSON") == "true",
		GameRateLimit:      60,
		GameRateWindow:     60,
		RevealStallSeconds: 300,
	}

	if v := os.Getenv("REDIS_DB"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.RedisDB = n
		}
	}
	if v := os.Getenv("ORACLE_DELAY_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.OracleDelayMs = n
		}
	}
	if v := os.Getenv("GAME_RATE_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.GameRateLimit = n
		}
	}
	if v := os.Getenv("GAME_RATE_WINDOW"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.GameRateWindow = n
		}
	}
	if v := os.Getenv("REVEAL_STALL_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.RevealStallSeconds = n
		}
	}

	return cfg
}
