package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Config holds the environment-backed settings for the server process.
type Config struct {
	Port     string
	DBPath   string
	LogFile  string
	LogLevel string
}

// Load reads an optional .env file and resolves settings with defaults.
// A missing .env file is not an error; real environments set vars directly.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Port:     getEnv("PORT", ":8008"),
		DBPath:   getEnv("DB_PATH", "task-planner.db"),
		LogFile:  getEnv("LOG_FILE", "logs/server.log"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
