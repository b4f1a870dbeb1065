package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	JWTSecret  string
	ServerPort string

	// Audience for Google ID-token sign-in (OAuth client ID).
	GoogleClientID string

	// Image storage.
	GCSBucket    string
	GCSPublicURL string

	// Payment simulation: when false every charge is declined.
	PaymentApproveAll bool

	// Quiet window for the debounced scroll-position saver.
	ScrollSaveInterval time.Duration
}

func LoadConfig() (*Config, error) {
	err := godotenv.Load()
	if err != nil {
		log.Println("Error loading .env file, using environment variables")
	}

	return &Config{
		DBHost:             getEnv("DB_HOST", "localhost"),
		DBPort:             getEnv("DB_PORT", "5432"),
		DBUser:             getEnv("DB_USER", "postgres"),
		DBPassword:         getEnv("DB_PASSWORD", "postgres"),
		DBName:             getEnv("DB_NAME", "neuron_study"),
		JWTSecret:          getEnv("JWT_SECRET", "secret"),
		ServerPort:         getEnv("SERVER_PORT", "8080"),
		GoogleClientID:     getEnv("GOOGLE_CLIENT_ID", ""),
		GCSBucket:          getEnv("GCS_BUCKET", ""),
		GCSPublicURL:       getEnv("GCS_PUBLIC_URL", ""),
		PaymentApproveAll:  getEnvBool("PAYMENT_APPROVE_ALL", true),
		ScrollSaveInterval: getEnvDuration("SCROLL_SAVE_INTERVAL", time.Second),
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	return value == "1" || value == "true" || value == "yes"
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		log.Printf("Invalid duration in %s: %v, using default", key, err)
		return defaultValue
	}
	return d
}
