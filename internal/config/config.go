// Package config provides the runtime settings of the connector and schema
// validation for action documents.
package config

import (
	"time"

	"github.com/caarlos0/env/v11"
)

// Settings stores environment-driven settings for the connector runtime.
type Settings struct {
	// BaseURL is the AI backend base URL.
	BaseURL string `env:"AICONNECT_BASE_URL" envDefault:"https://ai.service.local/api/v1"`

	// RequestTimeout bounds each backend call.
	RequestTimeout time.Duration `env:"AICONNECT_REQUEST_TIMEOUT" envDefault:"30s"`

	// CacheTTL is the write-based expiry of response cache entries.
	CacheTTL time.Duration `env:"AICONNECT_CACHE_TTL" envDefault:"24h"`

	// CacheMaxSize bounds the response cache entry count.
	CacheMaxSize int `env:"AICONNECT_CACHE_MAX_SIZE" envDefault:"1000"`

	// LogLevel is the minimum log level (debug, info, warn, error).
	LogLevel string `env:"AICONNECT_LOG_LEVEL" envDefault:"info"`
}

// Load reads Settings from the environment, applying defaults for unset
// variables.
func Load() (Settings, error) {
	return env.ParseAs[Settings]()
}
