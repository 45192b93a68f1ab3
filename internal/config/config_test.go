package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	if cfg.SiteURL != "http://localhost:8087" {
		t.Errorf("expected default site url, got %s", cfg.SiteURL)
	}
	if cfg.IndexPath != "/search.json" {
		t.Errorf("expected default index path, got %s", cfg.IndexPath)
	}
	if cfg.PageSize != 5 {
		t.Errorf("expected page size 5, got %d", cfg.PageSize)
	}
	if cfg.CandidateLimit != 100 {
		t.Errorf("expected candidate limit 100, got %d", cfg.CandidateLimit)
	}
	if cfg.FuzzyThreshold != 0.35 {
		t.Errorf("expected threshold 0.35, got %v", cfg.FuzzyThreshold)
	}
	if cfg.Debounce != 200*time.Millisecond {
		t.Errorf("expected debounce 200ms, got %v", cfg.Debounce)
	}
	if cfg.ExcerptRadius != 50 {
		t.Errorf("expected excerpt radius 50, got %d", cfg.ExcerptRadius)
	}
	if cfg.FetchTimeout != 10*time.Second {
		t.Errorf("expected fetch timeout 10s, got %v", cfg.FetchTimeout)
	}
	if cfg.ContentRootID != "readme" {
		t.Errorf("expected content root readme, got %s", cfg.ContentRootID)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("SITE_URL", "https://docs.example.com")
	t.Setenv("PAGE_SIZE", "10")
	t.Setenv("FUZZY_THRESHOLD", "0.5")
	t.Setenv("DEBOUNCE", "50ms")
	t.Setenv("SITE_TOKEN", "tok")

	cfg := Load()
	if cfg.SiteURL != "https://docs.example.com" {
		t.Errorf("expected overridden site url, got %s", cfg.SiteURL)
	}
	if cfg.PageSize != 10 {
		t.Errorf("expected page size 10, got %d", cfg.PageSize)
	}
	if cfg.FuzzyThreshold != 0.5 {
		t.Errorf("expected threshold 0.5, got %v", cfg.FuzzyThreshold)
	}
	if cfg.Debounce != 50*time.Millisecond {
		t.Errorf("expected debounce 50ms, got %v", cfg.Debounce)
	}
	if cfg.SiteToken != "tok" {
		t.Errorf("expected token, got %q", cfg.SiteToken)
	}
}

func TestLoad_ClampsInvalidValues(t *testing.T) {
	t.Setenv("PAGE_SIZE", "-3")
	t.Setenv("FUZZY_THRESHOLD", "1.5")
	t.Setenv("EXCERPT_RADIUS", "0")
	t.Setenv("DEBOUNCE", "-1s")

	cfg := Load()
	if cfg.PageSize != 5 {
		t.Errorf("expected page size clamped to 5, got %d", cfg.PageSize)
	}
	if cfg.FuzzyThreshold != 0.35 {
		t.Errorf("expected threshold clamped to 0.35, got %v", cfg.FuzzyThreshold)
	}
	if cfg.ExcerptRadius != 50 {
		t.Errorf("expected radius clamped to 50, got %d", cfg.ExcerptRadius)
	}
	if cfg.Debounce != 200*time.Millisecond {
		t.Errorf("expected debounce clamped to 200ms, got %v", cfg.Debounce)
	}
}

func TestLoad_IgnoresMalformedValues(t *testing.T) {
	t.Setenv("PAGE_SIZE", "five")
	t.Setenv("DEBOUNCE", "soon")

	cfg := Load()
	if cfg.PageSize != 5 {
		t.Errorf("expected fallback page size, got %d", cfg.PageSize)
	}
	if cfg.Debounce != 200*time.Millisecond {
		t.Errorf("expected fallback debounce, got %v", cfg.Debounce)
	}
}

func TestValidate(t *testing.T) {
	cfg := Load()
	if err := cfg.Validate(); err != nil {
		t.Errorf("expected valid default config, got %v", err)
	}

	cfg.SiteURL = ""
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for missing site url")
	}

	cfg = Load()
	cfg.IndexPath = ""
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for missing index path")
	}
}
