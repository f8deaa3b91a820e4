// Package config loads application configuration from environment variables.
package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Config holds all runtime configuration for the service.
type Config struct {
	Port   string
	AppEnv string

	// UploadSecret protects the publish endpoint. Empty disables the check.
	UploadSecret string

	// GitHub content store. Token and Repo are required for publishing but
	// their absence is reported per request, not at startup, so the service
	// can still come up and serve health checks.
	GitHubToken   string
	GitHubRepo    string // "owner/repository"
	GitHubBranch  string
	GitHubAPIBase string // override for tests / GitHub Enterprise
}

// Load reads configuration from a .env file (if present) and environment variables.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, reading from environment")
	}

	return &Config{
		Port:   getEnv("PORT", "8080"),
		AppEnv: getEnv("APP_ENV", "development"),

		UploadSecret: os.Getenv("UPLOAD_SECRET"),

		GitHubToken:   os.Getenv("GITHUB_TOKEN"),
		GitHubRepo:    os.Getenv("GITHUB_REPO"),
		GitHubBranch:  getEnv("GITHUB_BRANCH", "main"),
		GitHubAPIBase: getEnv("GITHUB_API_BASE", "https://api.github.com"),
	}
}

// IsProduction returns true when the app is running in production mode.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
