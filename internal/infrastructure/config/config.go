package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// App
	AppVersion string

	// Server
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	// MongoDB (REX record store)
	MongoURI string
	MongoDB  string

	// PostgreSQL (maintenance window reference data)
	PostgresURI string

	// Opportunity scanner
	ScanInterval  time.Duration
	ScanBatchSize int

	// Full REX editor deep links
	EditorBaseURL string

	// Notification service
	NotifierEndpoint     string
	NotifierClientID     string
	NotifierClientSecret string
	NotifierTokenURL     string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	// Load .env file if it exists
	godotenv.Load()

	// Set defaults and override with env vars
	config := &Config{
		AppVersion:   getEnv("APP_VERSION", "1.0.0"),
		Port:         getEnv("PORT", "8080"),
		ReadTimeout:  time.Duration(getEnvAsInt("READ_TIMEOUT", 30)) * time.Second,
		WriteTimeout: time.Duration(getEnvAsInt("WRITE_TIMEOUT", 30)) * time.Second,

		MongoURI: getEnv("MONGODB_DSN", "mongodb://localhost:27017"),
		MongoDB:  getEnv("MONGO_DB", "rexlog"),

		PostgresURI: getEnv("POSTGRES_DSN", "postgres://localhost:5432/maintenance"),

		ScanInterval:  time.Duration(getEnvAsInt("SCAN_INTERVAL", 300)) * time.Second,
		ScanBatchSize: getEnvAsInt("SCAN_BATCH_SIZE", 100),

		EditorBaseURL: getEnv("EDITOR_BASE_URL", "https://app.example.com/rex/new"),

		NotifierEndpoint:     getEnv("NOTIFIER_ENDPOINT", ""),
		NotifierClientID:     getEnv("NOTIFIER_CLIENT_ID", ""),
		NotifierClientSecret: getEnv("NOTIFIER_CLIENT_SECRET", ""),
		NotifierTokenURL:     getEnv("NOTIFIER_TOKEN_URL", ""),
	}

	return config, nil
}

// Helper functions to get environment variables
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}
