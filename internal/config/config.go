package config

import (
	"crypto/rand"
	"encoding/base64"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

type Config struct {
	Port              string
	BackendBaseURL    string
	PaystackPublicKey string
	ChatWebhookURL    string
	UploadDir         string
	CSRFKey           []byte
	SessionKey        []byte
	CookieDomain      string
	CookieSecure      bool
	RequestTimeout    time.Duration

	// Business constants the backend expects on product payloads. The
	// admin form's is_trending / free_delivery toggles translate through
	// these rather than inline literals.
	TrendingScore    int
	FlatShippingCost decimal.Decimal
}

func LoadConfig() (*Config, error) {
	// .env is optional; real deployments set env vars directly.
	if err := godotenv.Load(); err != nil {
		slog.Debug("No .env file found, using environment only")
	}

	cfg := &Config{
		Port:              getEnv("PORT", "8585"),
		BackendBaseURL:    getEnv("BACKEND_BASE_URL", "http://localhost:8000"),
		PaystackPublicKey: getEnv("PAYSTACK_PUBLIC_KEY", ""),
		ChatWebhookURL:    getEnv("CHAT_WEBHOOK_URL", ""),
		UploadDir:         getEnv("UPLOAD_DIR", "static/uploads"),
		CookieDomain:      getEnv("COOKIE_DOMAIN", ""),
		CookieSecure:      getEnv("COOKIE_SECURE", "false") == "true",
		RequestTimeout:    30 * time.Second,
		TrendingScore:     getEnvInt("TRENDING_SCORE", 100),
		FlatShippingCost:  getEnvDecimal("FLAT_SHIPPING_COST", decimal.NewFromInt(10)),
	}

	if cfg.PaystackPublicKey == "" {
		slog.Warn("PAYSTACK_PUBLIC_KEY not set. Payment pages will not be able to open the checkout popup.")
	}

	cfg.CSRFKey = loadKey("CSRF_KEY")
	cfg.SessionKey = loadKey("SESSION_KEY")

	// Make sure port is valid
	if _, err := strconv.Atoi(cfg.Port); err != nil {
		slog.Error("Invalid PORT environment variable. Falling back to default.", "PORT", os.Getenv("PORT"))
		cfg.Port = "8585"
	}

	return cfg, nil
}

// loadKey decodes a base64 key from the environment, falling back to a
// generated development key with a loud warning.
func loadKey(name string) []byte {
	raw := os.Getenv(name)
	if raw == "" {
		slog.Warn(name + " environment variable not set. Generating a random key for development. This key will change on each restart. PLEASE SET " + name + " IN PRODUCTION!")
		return generateRandomBytes(32)
	}
	decoded, err := base64.StdEncoding.DecodeString(raw)
	if err != nil || len(decoded) < 32 {
		slog.Warn(name + " is invalid or too short (min 32 bytes recommended). Generating a random key for development. PLEASE SET A SECURE " + name + " IN PRODUCTION!")
		return generateRandomBytes(32)
	}
	return decoded
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	raw, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		slog.Error("Invalid integer environment variable, using default", "key", key, "value", raw)
		return defaultValue
	}
	return n
}

func getEnvDecimal(key string, defaultValue decimal.Decimal) decimal.Decimal {
	raw, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		slog.Error("Invalid decimal environment variable, using default", "key", key, "value", raw)
		return defaultValue
	}
	return d
}

// generateRandomBytes generates a random byte slice of specified length
// Uses crypto/rand for secure random numbers.
func generateRandomBytes(n int) []byte {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil { // Use crypto/rand
		slog.Error("Failed to read random bytes", "error", err)
		// Fallback only prevents a panic; not for production use
		fallbackKey := "fallback-insecure-key-" + strconv.FormatInt(time.Now().UnixNano(), 10)
		if len(fallbackKey) < n {
			paddedKey := make([]byte, n)
			copy(paddedKey, fallbackKey)
			return paddedKey
		}
		return []byte(fallbackKey)[:n]
	}
	return b
}
