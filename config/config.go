package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port            string
	JWTSecret       string
	DBPath          string
	TokenExpiry     time.Duration
	LogLevel        string
	AdminUsername   string
	AdminPassword   string
	SeedDemoData    bool
	AuditWebhookURL string
}

var (
	AppConfig Config
)

func LoadConfig() {
	envFile, err := findEnvFile(".env")
	if err == nil {
		err = godotenv.Load(envFile)
	}
	if err != nil {
		log.Printf("Warning: .env file not found, using environment variables")
	}

	AppConfig = Config{
		Port:            getEnvOrDefault("PORT", "3000"),
		JWTSecret:       mustGetEnv("JWT_SECRET"),
		DBPath:          getEnvOrDefault("DB_PATH", "payroll.db"),
		TokenExpiry:     getDurationOrDefault("TOKEN_EXPIRY", 24*time.Hour),
		LogLevel:        getEnvOrDefault("LOG_LEVEL", "info"),
		AdminUsername:   getEnvOrDefault("ADMIN_USERNAME", "admin"),
		AdminPassword:   mustGetEnv("ADMIN_PASSWORD"),
		SeedDemoData:    getBoolOrDefault("SEED_DEMO_DATA", false),
		AuditWebhookURL: getEnvOrDefault("AUDIT_WEBHOOK_URL", ""),
	}
}

func mustGetEnv(key string) string {
	value := os.Getenv(key)
	if value == "" {
		log.Fatalf("Environment variable %s is required", key)
	}
	return value
}

func getEnvOrDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getBoolOrDefault(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		log.Printf("Warning: %s=%q is not a boolean, using %v", key, value, defaultValue)
		return defaultValue
	}
	return parsed
}

func getDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		log.Printf("Warning: %s=%q is not a duration, using %s", key, value, defaultValue)
		return defaultValue
	}
	return parsed
}
