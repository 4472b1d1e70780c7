package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	ServerPort     string
	DatabaseType   string
	DatabasePath   string
	DatabaseURL    string
	MigrationsPath string

	JWTSecret     string
	TokenDuration time.Duration

	AWSRegion    string
	SESFromEmail string
	SESFromName  string
	AppBaseURL   string
	EmailDebug   bool

	// External speech analyzer; empty URL means the built-in mock is used
	AnalyzerURL     string
	AnalyzerTimeout time.Duration
	UploadMaxSize   int64
	AudioDir        string

	SchedulerEnabled bool
	AdminKey         string
}

// Load reads configuration from environment variables with sensible defaults.
// A .env file in the working directory is loaded first when present.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		ServerPort:     getEnv("PORT", "8080"),
		DatabaseType:   getEnv("DB_TYPE", "sqlite"),
		DatabasePath:   getEnv("DB_PATH", "./speechcoach.db"),
		DatabaseURL:    getEnv("DB_URL", ""),
		MigrationsPath: getEnv("MIGRATIONS_PATH", "./migrations"),

		JWTSecret:     getEnv("JWT_SECRET", "dev-only-secret-change-me"),
		TokenDuration: time.Duration(getEnvInt("TOKEN_DURATION_HOURS", 24)) * time.Hour,

		AWSRegion:    getEnv("AWS_REGION", "us-east-1"),
		SESFromEmail: getEnv("SES_FROM_EMAIL", ""),
		SESFromName:  getEnv("SES_FROM_NAME", "SpeechCoach"),
		AppBaseURL:   getEnv("APP_BASE_URL", "http://localhost:8080"),
		EmailDebug:   getEnvBool("EMAIL_DEBUG", false),

		AnalyzerURL:     getEnv("ANALYZER_URL", ""),
		AnalyzerTimeout: time.Duration(getEnvInt("ANALYZER_TIMEOUT_SECONDS", 10)) * time.Second,
		UploadMaxSize:   int64(getEnvInt("UPLOAD_MAX_MB", 10)) * 1024 * 1024,
		AudioDir:        getEnv("AUDIO_DIR", "./audio-cache"),

		SchedulerEnabled: getEnvBool("SCHEDULER_ENABLED", true),
		AdminKey:         getEnv("ADMIN_KEY", ""),
	}
}

// getEnv reads an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt reads an integer environment variable or returns a default value
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

// getEnvBool reads a boolean environment variable or returns a default value
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}
