package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	JWTSecret   string
	JWTLifetime time.Duration

	ServerPort  string
	CORSOrigins string
	UploadDir   string
	SeedData    bool

	OpenAIKey   string
	OpenAIModel string

	// Sliding-window rate limits, requests per window keyed by client IP.
	RateLimitMax     int
	AuthRateLimitMax int
	RateLimitWindow  time.Duration
}

func LoadConfig() (*Config, error) {
	err := godotenv.Load()
	if err != nil {
		log.Println("Error loading .env file, using environment variables")
	}

	return &Config{
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", "postgres"),
		DBName:     getEnv("DB_NAME", "ielts_check"),

		JWTSecret:   getEnv("JWT_SECRET", "secret"),
		JWTLifetime: time.Duration(getEnvInt("JWT_LIFETIME_HOURS", 24)) * time.Hour,

		ServerPort:  getEnv("SERVER_PORT", "8080"),
		CORSOrigins: getEnv("CORS_ORIGINS", "*"),
		UploadDir:   getEnv("UPLOAD_DIR", "/tmp/uploads"),
		SeedData:    getEnvBool("SEED_DATA", false),

		OpenAIKey:   getEnv("OPENAI_API_KEY", ""),
		OpenAIModel: getEnv("OPENAI_MODEL", ""),

		RateLimitMax:     getEnvInt("RATE_LIMIT_MAX", 100),
		AuthRateLimitMax: getEnvInt("AUTH_RATE_LIMIT_MAX", 5),
		RateLimitWindow:  time.Duration(getEnvInt("RATE_LIMIT_WINDOW_SECONDS", 60)) * time.Second,
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}
