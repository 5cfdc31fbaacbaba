// Package config loads service configuration from the environment, with a
// best-effort .env file for local development.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all runtime configuration for the orchestrator.
type Config struct {
	ServiceName string
	HTTPPort    int

	LogLevel  string
	LogFormat string

	// JWT
	JWTSecret     string
	JWTIssuer     string
	JWTExpiration time.Duration

	// Kafka brokers; empty disables the producer and events go to the log.
	KafkaBrokers []string

	// Underwriting policy: "ratio" (default) or "tiered".
	UnderwritingPolicy string

	// Loan defaults applied when the conversation never captured a figure.
	DefaultTenureMonths int
	DefaultInterestRate float64

	// Sanction letter output directory.
	LetterDir string

	// PAN sandbox verification. Empty credentials keep the simulated mode.
	PANBaseURL         string
	PANClientID        string
	PANClientSecret    string
	PANProductInstance string
	PANRequestTimeout  time.Duration

	// Decision explainer. Empty API key keeps the template fallback.
	ExplainerBaseURL string
	ExplainerAPIKey  string
	ExplainerTimeout time.Duration
}

// Load reads configuration from the environment. A .env file in the
// working directory is loaded first when present; real environment
// variables win.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		ServiceName: getEnv("SERVICE_NAME", "loanops-orchestrator"),
		HTTPPort:    getEnvInt("HTTP_PORT", 8080),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "json"),

		JWTSecret:     getEnv("JWT_SECRET", "dev-secret-change-me"),
		JWTIssuer:     getEnv("JWT_ISSUER", "loanops"),
		JWTExpiration: getEnvDuration("JWT_EXPIRATION", 24*time.Hour),

		KafkaBrokers: splitNonEmpty(getEnv("KAFKA_BROKERS", "")),

		UnderwritingPolicy: getEnv("UNDERWRITING_POLICY", "ratio"),

		DefaultTenureMonths: getEnvInt("DEFAULT_TENURE_MONTHS", 24),
		DefaultInterestRate: getEnvFloat("DEFAULT_INTEREST_RATE", 10.5),

		LetterDir: getEnv("LETTER_DIR", "generated"),

		PANBaseURL:         getEnv("PAN_BASE_URL", "https://dg-sandbox.setu.co"),
		PANClientID:        getEnv("PAN_CLIENT_ID", ""),
		PANClientSecret:    getEnv("PAN_CLIENT_SECRET", ""),
		PANProductInstance: getEnv("PAN_PRODUCT_INSTANCE_ID", ""),
		PANRequestTimeout:  getEnvDuration("PAN_REQUEST_TIMEOUT", 10*time.Second),

		ExplainerBaseURL: getEnv("EXPLAINER_BASE_URL", "https://generativelanguage.googleapis.com"),
		ExplainerAPIKey:  getEnv("EXPLAINER_API_KEY", ""),
		ExplainerTimeout: getEnvDuration("EXPLAINER_TIMEOUT", 10*time.Second),
	}
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if v, ok := os.LookupEnv(key); ok {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func splitNonEmpty(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
