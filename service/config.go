package service

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Environment string
	BaseURL     string

	// Per-app listen ports. Each binary picks the one it needs.
	BlogPort   string
	AdminPort  string
	DevAPIPort string

	API struct {
		URL     string
		Timeout time.Duration
	}

	Session struct {
		Secret string
		MaxAge int
	}

	DevBackend struct {
		DBPath string
		Seed   bool
	}
}

func LoadConfig() (*Config, error) {
	config := &Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		BaseURL:     getEnv("BASE_URL", "http://localhost:3030"),
		BlogPort:    getEnv("BLOG_PORT", "3030"),
		AdminPort:   getEnv("ADMIN_PORT", "4040"),
		DevAPIPort:  getEnv("DEV_API_PORT", "8000"),
	}

	// API
	config.API.URL = getEnv("API_URL", "http://localhost:8000/api")
	timeout := getEnv("API_TIMEOUT_SECONDS", "10")
	if secs, err := strconv.Atoi(timeout); err == nil {
		config.API.Timeout = time.Duration(secs) * time.Second
	} else {
		config.API.Timeout = 10 * time.Second
	}

	// Session
	config.Session.Secret = getEnv("SESSION_SECRET", "development-secret")
	maxAge := getEnv("SESSION_MAX_AGE", "604800") // 7 days
	if age, err := strconv.Atoi(maxAge); err == nil {
		config.Session.MaxAge = age
	} else {
		config.Session.MaxAge = 604800
	}

	// Dev fixture backend
	config.DevBackend.DBPath = getEnv("DEV_API_DB_PATH", "./db/campusnews-dev.db")
	config.DevBackend.Seed = getEnv("DEV_API_SEED", "true") == "true"

	return config, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
