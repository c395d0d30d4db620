package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	settings, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if settings.BaseURL != "https://ai.service.local/api/v1" {
		t.Errorf("BaseURL = %q, want default", settings.BaseURL)
	}
	if settings.RequestTimeout != 30*time.Second {
		t.Errorf("RequestTimeout = %v, want 30s", settings.RequestTimeout)
	}
	if settings.CacheTTL != 24*time.Hour {
		t.Errorf("CacheTTL = %v, want 24h", settings.CacheTTL)
	}
	if settings.CacheMaxSize != 1000 {
		t.Errorf("CacheMaxSize = %d, want 1000", settings.CacheMaxSize)
	}
	if settings.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want info", settings.LogLevel)
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("AICONNECT_BASE_URL", "https://staging.backend.example.com/api")
	t.Setenv("AICONNECT_REQUEST_TIMEOUT", "10s")
	t.Setenv("AICONNECT_CACHE_TTL", "1h")
	t.Setenv("AICONNECT_CACHE_MAX_SIZE", "50")
	t.Setenv("AICONNECT_LOG_LEVEL", "debug")

	settings, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if settings.BaseURL != "https://staging.backend.example.com/api" {
		t.Errorf("BaseURL = %q", settings.BaseURL)
	}
	if settings.RequestTimeout != 10*time.Second {
		t.Errorf("RequestTimeout = %v, want 10s", settings.RequestTimeout)
	}
	if settings.CacheTTL != time.Hour {
		t.Errorf("CacheTTL = %v, want 1h", settings.CacheTTL)
	}
	if settings.CacheMaxSize != 50 {
		t.Errorf("CacheMaxSize = %d, want 50", settings.CacheMaxSize)
	}
	if settings.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want debug", settings.LogLevel)
	}
}

func TestLoadRejectsMalformedDuration(t *testing.T) {
	t.Setenv("AICONNECT_REQUEST_TIMEOUT", "not-a-duration")

	if _, err := Load(); err == nil {
		t.Error("Load() should reject a malformed duration")
	}
}
