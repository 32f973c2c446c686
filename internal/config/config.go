// Package config loads application configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds everything the composition root needs to wire the service.
type Config struct {
	GitHubToken        string
	GeminiAPIKey       string
	ListenAddr         string
	DBPath             string
	TrendingWindowDays int
}

// Load reads configuration, consulting a .env file first when one exists.
// GITHUB_TOKEN and GEMINI_API_KEY are required; the service refuses to
// start without them. Optional variables with defaults: LISTEN_ADDR
// (":8080"), DB_PATH ("ideas.db"), TRENDING_WINDOW_DAYS (730).
func Load() (*Config, error) {
	// A missing .env file is fine; real env vars still apply.
	_ = godotenv.Load()

	token := os.Getenv("GITHUB_TOKEN")
	geminiKey := os.Getenv("GEMINI_API_KEY")
	if token == "" || geminiKey == "" {
		return nil, fmt.Errorf("GITHUB_TOKEN or GEMINI_API_KEY not set")
	}

	listenAddr := ":8080"
	if v, ok := os.LookupEnv("LISTEN_ADDR"); ok {
		listenAddr = v
	}

	dbPath := "ideas.db"
	if v, ok := os.LookupEnv("DB_PATH"); ok {
		dbPath = v
	}

	trendingWindowDays := 730
	if v, ok := os.LookupEnv("TRENDING_WINDOW_DAYS"); ok {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed <= 0 {
			return nil, fmt.Errorf("TRENDING_WINDOW_DAYS has invalid value %q", v)
		}
		trendingWindowDays = parsed
	}

	return &Config{
		GitHubToken:        token,
		GeminiAPIKey:       geminiKey,
		ListenAddr:         listenAddr,
		DBPath:             dbPath,
		TrendingWindowDays: trendingWindowDays,
	}, nil
}
