package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config gathers the environment-driven settings main needs. An empty
// MongoURI means run on the in-memory store (local development).
type Config struct {
	MongoURI           string
	MongoDBName        string
	ServerPort         string
	PushWebhookURL     string
	NotificationsLimit int
}

// Load reads .env if present, then the environment. Missing optional values
// fall back to development defaults.
func Load() Config {
	// .env is optional; containerized deployments set the environment directly.
	_ = godotenv.Load(".env")

	cfg := Config{
		MongoURI:           os.Getenv("MONGO_URI"),
		MongoDBName:        os.Getenv("MONGO_DB_NAME"),
		ServerPort:         os.Getenv("SERVER_PORT"),
		PushWebhookURL:     os.Getenv("PUSH_WEBHOOK_URL"),
		NotificationsLimit: 0,
	}
	if cfg.MongoDBName == "" {
		cfg.MongoDBName = "kanban_db"
	}
	if cfg.ServerPort == "" {
		cfg.ServerPort = "8080"
	}
	if raw := os.Getenv("NOTIFICATIONS_LIMIT"); raw != "" {
		if limit, err := strconv.Atoi(raw); err == nil {
			cfg.NotificationsLimit = limit
		}
	}
	return cfg
}
