package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	// Target site
	SiteURL   string
	IndexPath string
	SiteToken string

	// Search tuning
	PageSize       int
	CandidateLimit int
	FuzzyThreshold float64
	Debounce       time.Duration
	ExcerptRadius  int

	// Section extraction
	FetchTimeout  time.Duration
	ContentRootID string

	// Preview server
	Port    string
	SiteDir string

	// Index builder
	SourceDir   string
	IndexOutput string
}

func Load() Config {
	cfg := Config{
		SiteURL:   envOr("SITE_URL", "http://localhost:8087"),
		IndexPath: envOr("INDEX_PATH", "/search.json"),
		SiteToken: os.Getenv("SITE_TOKEN"),

		PageSize:       envInt("PAGE_SIZE", 5),
		CandidateLimit: envInt("CANDIDATE_LIMIT", 100),
		FuzzyThreshold: envFloat("FUZZY_THRESHOLD", 0.35),
		Debounce:       envDuration("DEBOUNCE", 200*time.Millisecond),
		ExcerptRadius:  envInt("EXCERPT_RADIUS", 50),

		FetchTimeout:  envDuration("FETCH_TIMEOUT", 10*time.Second),
		ContentRootID: envOr("CONTENT_ROOT_ID", "readme"),

		Port:    envOr("PORT", "8087"),
		SiteDir: envOr("SITE_DIR", "public"),

		SourceDir:   envOr("SOURCE_DIR", "content"),
		IndexOutput: envOr("INDEX_OUTPUT", "public/search.json"),
	}

	if cfg.PageSize <= 0 {
		cfg.PageSize = 5
	}
	if cfg.CandidateLimit <= 0 {
		cfg.CandidateLimit = 100
	}
	if cfg.FuzzyThreshold <= 0 || cfg.FuzzyThreshold > 1 {
		cfg.FuzzyThreshold = 0.35
	}
	if cfg.Debounce < 0 {
		cfg.Debounce = 200 * time.Millisecond
	}
	if cfg.ExcerptRadius <= 0 {
		cfg.ExcerptRadius = 50
	}
	if cfg.FetchTimeout <= 0 {
		cfg.FetchTimeout = 10 * time.Second
	}
	if cfg.ContentRootID == "" {
		cfg.ContentRootID = "readme"
	}

	return cfg
}

func (c Config) Validate() error {
	if c.SiteURL == "" {
		return fmt.Errorf("SITE_URL is required")
	}
	if c.IndexPath == "" {
		return fmt.Errorf("INDEX_PATH is required")
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
