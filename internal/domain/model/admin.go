//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"errors"
	"strings"
)

// Admin is a backend administrator account managed by superadmins.
// The dashboard only mirrors what the backend returns; UID is the
// authority-issued stable identifier.
type Admin struct {
	UID       string `json:"uid"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

// FullName returns the display name for tables and greetings.
func (a Admin) FullName() string {
	return strings.TrimSpace(a.FirstName + " " + a.LastName)
}

// CreateAdminInput carries the fields for creating a new admin account.
// Password is forwarded to the backend and never persisted here.
type CreateAdminInput struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

const (
	minNameLen     = 2
	minPasswordLen = 8
)

// Validate applies the same field rules the original admin-creation form
// enforced: names of at least two characters, a plausible email, and a
// password of at least eight characters.
func (in CreateAdminInput) Validate() error {
	if len(strings.TrimSpace(in.FirstName)) < minNameLen {
		return errors.New("first name must be at least 2 characters")
	}
	if len(strings.TrimSpace(in.LastName)) < minNameLen {
		return errors.New("last name must be at least 2 characters")
	}
	if !ValidEmail(in.Email) {
		return errors.New("please enter a valid email address")
	}
	if len(in.Password) < minPasswordLen {
		return errors.New("password must be at least 8 characters")
	}
	return nil
}

// UpdateAdminInput carries the editable fields of an admin account.
type UpdateAdminInput struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

// Validate checks the editable fields with the same rules as creation.
func (in UpdateAdminInput) Validate() error {
	if len(strings.TrimSpace(in.FirstName)) < minNameLen {
		return errors.New("first name must be at least 2 characters")
	}
	if len(strings.TrimSpace(in.LastName)) < minNameLen {
		return errors.New("last name must be at least 2 characters")
	}
	if !ValidEmail(in.Email) {
		return errors.New("please enter a valid email address")
	}
	return nil
}

// ValidEmail applies the permissive anything@anything.anything check the
// original forms used. Real validation belongs to the backend.
func ValidEmail(email string) bool {
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 {
		return false
	}
	domain := email[at+1:]
	dot := strings.Index(domain, ".")
	if dot <= 0 || dot == len(domain)-1 {
		return false
	}
	return !strings.ContainsAny(email, " \t\r\n")
}
