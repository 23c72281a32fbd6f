package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	Port        int
	LogLevel    string
	LogFormat   string
	Environment string

	DBUser     string
	DBPassword string
	DBHost     string
	DBPort     string
	DBName     string

	// JWT verification against the remote key set
	JWKSURL     string
	JWTAudience string
	JWTIssuer   string

	CORSOrigins []string

	ServiceName string
	Version     string
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		LogLevel:    getEnv("LOG_LEVEL", "INFO"),
		LogFormat:   getEnv("LOG_FORMAT", "json"),
		Environment: getEnv("ENVIRONMENT", "dev"),
		DBUser:      getEnv("DB_USER", "postgres"),
		DBPassword:  getEnv("DB_PASSWORD", "postgres"),
		DBHost:      getEnv("DB_HOST", "localhost"),
		DBPort:      getEnv("DB_PORT", "5432"),
		DBName:      getEnv("DB_NAME", "collection"),
		JWKSURL:     getEnv("AUTH_JWKS_URL", ""),
		JWTAudience: getEnv("JWT_AUDIENCE", "collection-service"),
		JWTIssuer:   getEnv("JWT_ISSUER", "https://auth.takeyourtrade.com"),
		ServiceName: getEnv("SERVICE_NAME", "collection-service"),
		Version:     getEnv("SERVICE_VERSION", "1.0.0"),
	}

	portStr := getEnv("PORT", "8000")
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid PORT value: %w", err)
	}
	cfg.Port = port

	// Token verification cannot work without a key source
	if cfg.JWKSURL == "" {
		return nil, fmt.Errorf("AUTH_JWKS_URL environment variable must be set")
	}

	cfg.CORSOrigins = parseOrigins(getEnv("CORS_ORIGINS", ""))

	return cfg, nil
}

// defaultOrigins are the hosts allowed when CORS_ORIGINS is not set.
var defaultOrigins = []string{
	"https://app.takeyourtrade.com",
	"https://takeyourtrade.com",
	"https://www.takeyourtrade.com",
	"http://localhost:3000",
	"http://localhost:8000",
}

// parseOrigins accepts either a JSON array string or a comma-separated list.
func parseOrigins(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return defaultOrigins
	}

	if strings.HasPrefix(raw, "[") {
		var origins []string
		if err := json.Unmarshal([]byte(raw), &origins); err == nil {
			return origins
		}
	}

	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	if len(origins) == 0 {
		return defaultOrigins
	}
	return origins
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// GetDBConnString returns the PostgreSQL connection string
func (c *Config) GetDBConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBName,
	)
}
