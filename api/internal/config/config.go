package config

import (
	"log"
	"os"
	"strings"
)

// Config holds the process configuration. The AES keys and IV pool are NOT
// here: they are wire-contract constants owned by the envelope package, not
// configurable policy.
type Config struct {
	Environment    string // "development" or "production"
	Port           string
	AllowedOrigins []string

	// Upstream e-courts endpoint and the device identity requests carry.
	BaseURL  string
	DeviceID string
}

// Load parses the environment and applies development fallbacks. Production
// refuses to boot without the upstream coordinates.
func Load() *Config {
	env := getEnv("ECOURTS_ENV", "production")

	baseURL := getEnv("ECOURTS_BASE_URL", "")
	if baseURL == "" {
		if env == "production" {
			log.Fatal("[FATAL] ECOURTS_BASE_URL environment variable is required in production.")
		}
		baseURL = "https://app.ecourts.gov.in/ecourts_mobile"
	}

	deviceID := getEnv("ECOURTS_DEVICE_ID", "")
	if deviceID == "" {
		if env == "production" {
			log.Fatal("[FATAL] ECOURTS_DEVICE_ID environment variable is required in production.")
		}
		deviceID = "f8a73f979cf3487d"
	}

	corsOrigins := getEnv("CORS_ALLOWED_ORIGINS", "")
	if corsOrigins == "" {
		if env == "production" {
			log.Fatal("[FATAL] CORS_ALLOWED_ORIGINS environment variable is required in production.")
		}
		corsOrigins = "http://localhost:5173"
	}

	return &Config{
		Environment:    env,
		Port:           getEnv("PORT", "8080"),
		AllowedOrigins: strings.Split(corsOrigins, ","),
		BaseURL:        strings.TrimRight(baseURL, "/"),
		DeviceID:       deviceID,
	}
}

// getEnv retrieves an environment variable or returns a fallback value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
