package config

import (
	"os"
	"strings"
)

// AppConfig is the main application configuration struct that composes
// domain-specific configuration from separate files.
//
// Configuration is loaded from environment variables using the
// github.com/caarlos0/env library. See individual domain config
// files for details on available environment variables:
//   - backend.go: Backend API client configuration
//   - idp.go: Identity provider (password reset) configuration
//   - redis.go: Redis and session store configuration
//   - http.go: HTTP server configuration
type AppConfig struct {
	// IsDev controls development mode behavior (template reloading from
	// disk, inline error details). Set DEV=true or NODE_ENV=development.
	IsDev bool `env:"DEV" envDefault:"false"`

	// Backend API client configuration.
	Backend BackendConfig `envPrefix:"BACKEND_"`

	// Identity provider configuration (password reset emails).
	IDP IDPConfig `envPrefix:"IDP_"`

	// Redis connection configuration.
	Redis RedisConfig `envPrefix:"REDIS_"`

	// Session store configuration.
	Session SessionConfig `envPrefix:"SESSION_"`

	// HTTP server configuration.
	HTTP HTTPConfig

	// Observability configuration.
	Observability ObservabilityConfig
}

// Sanitize applies guardrails to configuration values loaded from env.
// This should be called after loading configuration from environment variables.
func (c *AppConfig) Sanitize() {
	c.Backend.Sanitize()
	c.IDP.Sanitize()
	c.Session.Sanitize()
	c.Observability.Sanitize()

	// Check NODE_ENV for dev mode
	c.detectDevMode()
}

// detectDevMode checks both DEV and NODE_ENV environment variables.
// This is called by Sanitize() to ensure IsDev is set correctly.
// NODE_ENV is checked as a fallback (common in frontend tooling).
func (c *AppConfig) detectDevMode() {
	if !c.IsDev {
		nodeEnv := strings.ToLower(os.Getenv("NODE_ENV"))
		c.IsDev = nodeEnv == "development" || nodeEnv == "dev"
	}
}
