package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port string
	// DBUrl is the normal (row-level-security constrained) connection.
	// DBServiceUrl is the optional elevated service-role connection used only
	// for cross-referencing application linkage in job listings.
	DBUrl        string
	DBServiceUrl string

	SupabaseUrl       string
	SupabaseJWTSecret string
	FrontendURL       string

	// SMTP configuration (guardian consent mail)
	SMTPHost      string
	SMTPPort      string
	SMTPUsername  string
	SMTPPassword  string
	SMTPFromEmail string

	// Redis configuration
	RedisURL      string
	RedisPassword string

	// Rate limiting configuration
	RateLimitWindowSeconds   int
	RateLimitGlobalThreshold int

	// Role override lifetime in minutes (self-granted impersonation)
	OverrideTTLMinutes int
}

func LoadConfig() (*Config, error) {
	// Only effective locally; ignored in production when the file is absent
	_ = godotenv.Load()

	cfg := &Config{
		Port:         getEnv("PORT", "8080"),
		DBUrl:        getEnv("DATABASE_URL", ""),
		DBServiceUrl: getEnv("DATABASE_SERVICE_URL", ""),
		// Trailing slash stripped to avoid double slashes in derived URLs
		SupabaseUrl:       strings.TrimRight(getEnv("SUPABASE_URL", ""), "/"),
		SupabaseJWTSecret: getEnv("SUPABASE_JWT_SECRET", ""),
		FrontendURL:       strings.TrimRight(getEnv("FRONTEND_URL", "http://localhost:3000"), "/"),

		SMTPHost:      getEnv("SMTP_HOST", "smtp-relay.brevo.com"),
		SMTPPort:      getEnv("SMTP_PORT", "587"),
		SMTPUsername:  getEnv("SMTP_USERNAME", ""),
		SMTPPassword:  getEnv("SMTP_PASSWORD", ""),
		SMTPFromEmail: getEnv("SMTP_FROM_EMAIL", "noreply@jobbridge.app"),

		RedisURL:      getEnv("REDIS_URL", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),

		RateLimitWindowSeconds:   getEnvInt("RATE_LIMIT_WINDOW_SECONDS", 60),
		RateLimitGlobalThreshold: getEnvInt("RATE_LIMIT_GLOBAL_THRESHOLD", 100),

		OverrideTTLMinutes: getEnvInt("ROLE_OVERRIDE_TTL_MINUTES", 240),
	}

	if cfg.DBUrl == "" {
		log.Println("WARNING: DATABASE_URL is missing. Application may fail to connect.")
	}
	if cfg.DBServiceUrl == "" {
		log.Println("WARNING: DATABASE_SERVICE_URL not configured. Application annotation uses the normal credential.")
	}
	if cfg.RedisURL == "" {
		log.Println("WARNING: REDIS_URL not configured. Rate limiting will use in-memory fallback.")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt returns an integer environment variable or fallback if not set/invalid
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}
