package config

import (
	"os"
	"time"
)

type Config struct {
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	JWTSecret  string
	ServerPort string

	GeminiAPIKey string
	GeminiModel  string

	// GradeRetryDelay is the base backoff after a rate-limited grading
	// call; attempt n waits n times this long. GradePacing is the pause
	// after each provider-backed grading during a session submission.
	GradeRetryDelay time.Duration
	GradePacing     time.Duration
}

func Load() *Config {
	return &Config{
		DBHost:          getEnv("DB_HOST", "localhost"),
		DBPort:          getEnv("DB_PORT", "5432"),
		DBUser:          getEnv("DB_USER", "postgres"),
		DBPassword:      getEnv("DB_PASSWORD", "postgres"),
		DBName:          getEnv("DB_NAME", "interviewprep"),
		JWTSecret:       getEnv("JWT_SECRET", "super-secret-key-change-me"),
		ServerPort:      getEnv("SERVER_PORT", "8080"),
		GeminiAPIKey:    getEnv("GEMINI_API_KEY", ""),
		GeminiModel:     getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		GradeRetryDelay: getDurationEnv("GRADE_RETRY_DELAY", 2*time.Second),
		GradePacing:     getDurationEnv("GRADE_PACING", 1200*time.Millisecond),
	}
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return fallback
}
