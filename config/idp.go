package config

import (
	"strings"
	"time"
)

// IDPConfig contains identity provider configuration. The provider is
// only used to send password reset emails; sign-in goes through the
// backend.
type IDPConfig struct {
	// BaseURL is the provider's accounts API root. Empty disables the
	// real sender (stub mode supplies its own).
	BaseURL string `env:"BASE_URL" envDefault:""`

	// APIKey authenticates requests to the provider.
	APIKey string `env:"API_KEY" envDefault:""`

	// Timeout bounds each request to the provider.
	Timeout time.Duration `env:"TIMEOUT" envDefault:"15s"`
}

// Sanitize applies guardrails to identity provider configuration values.
func (i *IDPConfig) Sanitize() {
	i.BaseURL = strings.TrimSpace(i.BaseURL)
	i.APIKey = strings.TrimSpace(i.APIKey)
	if i.Timeout <= 0 {
		i.Timeout = 15 * time.Second
	}
}

// Configured reports whether the real provider can be used.
func (i *IDPConfig) Configured() bool {
	return i.BaseURL != "" && i.APIKey != ""
}
