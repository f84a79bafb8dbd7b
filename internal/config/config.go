package config

import (
	"log/slog"
	"os"
	"strconv"
)

type Config struct {
	Port            string
	Env             string
	MongoURI        string
	MongoDatabase   string
	MongoCollection string
	AuthUserClaim   string
	AuthJWTSecret   string
	HistoryLimit    int
}

func Load() Config {
	cfg := Config{
		Port:            getEnv("PORT", "8080"),
		Env:             getEnv("ENV", "development"),
		MongoURI:        getEnv("MONGO_URI", "mongodb://127.0.0.1:27017"),
		MongoDatabase:   getEnv("MONGO_DATABASE", "ectopass"),
		MongoCollection: getEnv("MONGO_COLLECTION", "passwords"),
		AuthUserClaim:   getEnv("AUTH_USER_CLAIM", "user_id"),
		AuthJWTSecret:   getEnv("AUTH_JWT_SECRET", ""),
		HistoryLimit:    getEnvInt("VAULT_HISTORY_LIMIT", 0),
	}

	if cfg.Env == "production" && cfg.AuthJWTSecret == "" {
		slog.Warn("AUTH_JWT_SECRET not set — tokens will be decoded without signature verification")
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		slog.Warn("invalid integer in environment, using fallback", "key", key, "value", v)
		return fallback
	}
	return n
}
