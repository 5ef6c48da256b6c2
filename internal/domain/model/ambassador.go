//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"errors"
	"strings"
)

const minAuthorityUIDLen = 20

// Ambassador is a field ambassador account managed by admins.
type Ambassador struct {
	UID        string `json:"uid"`
	Email      string `json:"email"`
	TgUsername string `json:"tgUsername"`
	FirstName  string `json:"firstName,omitempty"`
	LastName   string `json:"lastName,omitempty"`
}

// DeletableUID reports whether the ambassador carries a UID safe to use
// as a deletion key: present, long enough to be an authority identifier,
// and not an email address mistakenly stored in the UID column.
func (a Ambassador) DeletableUID() bool {
	return len(a.UID) >= minAuthorityUIDLen && !strings.Contains(a.UID, "@")
}

// CreateAmbassadorInput carries the fields for enrolling an ambassador.
type CreateAmbassadorInput struct {
	Email      string `json:"email"`
	TgUsername string `json:"tgUsername"`
	Password   string `json:"password"`
}

// Validate applies the enrollment form rules.
func (in CreateAmbassadorInput) Validate() error {
	if !ValidEmail(in.Email) {
		return errors.New("please enter a valid email address")
	}
	if strings.TrimSpace(in.TgUsername) == "" {
		return errors.New("telegram username is required")
	}
	if len(in.Password) < minPasswordLen {
		return errors.New("password must be at least 8 characters")
	}
	return nil
}
