package config

import (
	"fmt"
	"strings"
	"time"
)

// BackendMode selects which authority implementation the application
// talks to.
type BackendMode string

const (
	// BackendModeReal talks to the real backend API over HTTP.
	BackendModeReal BackendMode = "real"
	// BackendModeStub uses the in-process stub authority (for local
	// development without a backend).
	BackendModeStub BackendMode = "stub"
)

// UnmarshalText implements encoding.TextUnmarshaler for BackendMode.
func (m *BackendMode) UnmarshalText(text []byte) error {
	v := strings.ToLower(string(text))
	switch v {
	case "real", "stub":
		*m = BackendMode(v)
		return nil
	default:
		return fmt.Errorf("invalid BackendMode: %q (valid options: real, stub)", v)
	}
}

// StubAuthConfig controls the in-process stub authority.
// Used when BACKEND_MODE=stub for development and testing.
type StubAuthConfig struct {
	// Secret signs the stub tokens.
	Secret string `env:"SECRET" envDefault:"ambassador-dev-secret"`

	// TokenTTL bounds stub token validity.
	TokenTTL time.Duration `env:"TOKEN_TTL" envDefault:"8h"`

	// Password is the shared password of the seeded dev accounts.
	Password string `env:"PASSWORD" envDefault:"devpass"`
}

// BackendConfig contains backend API client configuration.
type BackendConfig struct {
	// Mode determines whether to use the real backend or the stub.
	Mode BackendMode `env:"MODE" envDefault:"real"`

	// BaseURL is the backend API root.
	BaseURL string `env:"BASE_URL" envDefault:"http://localhost:3000/api"`

	// Timeout bounds each HTTP attempt against the backend.
	Timeout time.Duration `env:"TIMEOUT" envDefault:"60s"`

	// MaxRetries is the number of additional attempts after a
	// connection-level failure (no HTTP response).
	MaxRetries int `env:"MAX_RETRIES" envDefault:"2"`

	// RetryDelay is the fixed pause between attempts.
	RetryDelay time.Duration `env:"RETRY_DELAY" envDefault:"1s"`

	// Stub configuration (used when Mode=stub).
	Stub StubAuthConfig `envPrefix:"STUB_"`
}

// Sanitize applies guardrails to backend configuration values.
func (b *BackendConfig) Sanitize() {
	b.BaseURL = strings.TrimSpace(b.BaseURL)
	if b.Timeout <= 0 {
		b.Timeout = 60 * time.Second
	}
	if b.MaxRetries < 0 {
		b.MaxRetries = 0
	}
	if b.RetryDelay <= 0 {
		b.RetryDelay = time.Second
	}
	if b.Stub.TokenTTL <= 0 {
		b.Stub.TokenTTL = 8 * time.Hour
	}
}
