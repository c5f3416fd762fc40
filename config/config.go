package config

import (
	"os"
	"path/filepath"
	"strconv"
	"sync"
)

// Config holds all application configuration
type Config struct {
	// Server settings
	Port int
	Host string
	Env  string // "development" or "production"

	// Data directory
	DataDir string

	// Database
	DatabasePath string

	// External services
	MeiliHost   string
	MeiliAPIKey string
	MeiliIndex  string

	OpenAIAPIKey  string
	OpenAIBaseURL string
	OpenAIModel   string

	ECourtsBaseURL string
	ECourtsAPIKey  string

	// Workers
	AnalysisWorkers     int
	ReminderWindowHours int

	// Debug settings
	DBLogQueries bool
}

var (
	cfg  *Config
	once sync.Once
)

// Get returns the global configuration (singleton)
func Get() *Config {
	once.Do(func() {
		cfg = load()
	})
	return cfg
}

// load reads configuration from environment variables
func load() *Config {
	dataDir := getEnv("LM_DATA_DIR", "./data")
	appDir := filepath.Join(dataDir, "app", "lawmasters")

	return &Config{
		// Server
		Port: getEnvInt("PORT", 12700),
		Host: getEnv("HOST", "0.0.0.0"),
		Env:  getEnv("ENV", "development"),

		// Data
		DataDir:      dataDir,
		DatabasePath: filepath.Join(appDir, "database.sqlite"),

		// Meilisearch
		MeiliHost:   getEnv("MEILI_HOST", ""),
		MeiliAPIKey: getEnv("MEILI_API_KEY", ""),
		MeiliIndex:  getEnv("MEILI_INDEX", "lawmasters_matters"),

		// OpenAI
		OpenAIAPIKey:  getEnv("OPENAI_API_KEY", ""),
		OpenAIBaseURL: getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
		OpenAIModel:   getEnv("OPENAI_MODEL", "gpt-4o-mini"),

		// eCourts
		ECourtsBaseURL: getEnv("ECOURTS_BASE_URL", ""),
		ECourtsAPIKey:  getEnv("ECOURTS_API_KEY", ""),

		// Workers
		AnalysisWorkers:     getEnvInt("ANALYSIS_WORKERS", 2),
		ReminderWindowHours: getEnvInt("REMINDER_WINDOW_HOURS", 24),

		// Debug
		DBLogQueries: getEnv("DB_LOG_QUERIES", "") == "1",
	}
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Env != "production"
}

// GetDataRoot returns the LM_DATA_DIR path
func (c *Config) GetDataRoot() string {
	return c.DataDir
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}
