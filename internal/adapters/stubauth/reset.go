package stubauth

import (
	"context"
	"log/slog"
	"strings"

	"github.com/brandreach/ambassador-ui-api/internal/adapters/idp"
	"github.com/brandreach/ambassador-ui-api/internal/ports"
)

// ResetSender logs password-reset requests instead of emailing them.
// Unknown addresses report idp.ErrEmailNotFound so handler behaviour
// matches the real provider, enumeration hiding included.
type ResetSender struct {
	known  map[string]bool
	logger *slog.Logger
}

// NewResetSender builds the sender from the same user list the stub
// gateway was configured with.
func NewResetSender(users []User, logger *slog.Logger) *ResetSender {
	if logger == nil {
		logger = slog.Default()
	}
	known := make(map[string]bool, len(users))
	for _, u := range users {
		known[strings.ToLower(strings.TrimSpace(u.Email))] = true
	}
	return &ResetSender{known: known, logger: logger}
}

// SendPasswordReset pretends to send the email.
func (s *ResetSender) SendPasswordReset(ctx context.Context, email string) error {
	if !s.known[strings.ToLower(strings.TrimSpace(email))] {
		return idp.ErrEmailNotFound
	}
	s.logger.InfoContext(ctx, "stub password reset requested", "email", email)
	return nil
}

var _ ports.PasswordResetSender = (*ResetSender)(nil)
