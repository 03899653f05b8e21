// Package validate checks the shape of user input before it reaches the
// vault. It does not touch storage or crypto.
package validate

import (
	"fmt"
	"net/mail"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dmitrijs2005/passkeeper/internal/common"
)

const (
	UsernameMinLen = 3
	UsernameMaxLen = 50
	PasswordMinLen = 8
	// PasswordMaxBytes is bcrypt's input limit.
	PasswordMaxBytes = 72

	SiteMaxLen         = 100
	SiteUsernameMaxLen = 100
	NotesMaxLen        = 500

	passwordSpecials = `!@#$%^&*(),.?":{}|<>`
)

// FieldError describes why one input field was rejected. It matches
// common.ErrValidation via errors.Is.
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *FieldError) Unwrap() error {
	return common.ErrValidation
}

func fieldErr(field, format string, args ...any) error {
	return &FieldError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// Registration validates a new account.
func Registration(username, email, password string) error {
	if err := lengthBetween("username", username, UsernameMinLen, UsernameMaxLen); err != nil {
		return err
	}
	if err := Email(email); err != nil {
		return err
	}
	return PasswordStrength(password)
}

// Login only requires both fields to be present; anything else is left to
// credential verification so that no extra signal leaks.
func Login(username, password string) error {
	if strings.TrimSpace(username) == "" {
		return fieldErr("username", "is required")
	}
	if password == "" {
		return fieldErr("password", "is required")
	}
	return nil
}

// SecretEntry validates a credential before it is encrypted and stored.
func SecretEntry(site, siteUsername, secret, notes string) error {
	if err := lengthBetween("site", site, 1, SiteMaxLen); err != nil {
		return err
	}
	if err := lengthBetween("username", siteUsername, 1, SiteUsernameMaxLen); err != nil {
		return err
	}
	if secret == "" {
		return fieldErr("password", "is required")
	}
	if utf8.RuneCountInString(notes) > NotesMaxLen {
		return fieldErr("notes", "must be at most %d characters", NotesMaxLen)
	}
	return nil
}

// Email accepts a bare address such as "a@x.com"; display names are rejected.
func Email(email string) error {
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email || addr.Name != "" {
		return fieldErr("email", "is not a valid address")
	}
	at := strings.LastIndex(email, "@")
	if at < 1 || !strings.Contains(email[at+1:], ".") {
		return fieldErr("email", "is not a valid address")
	}
	return nil
}

// PasswordStrength requires upper and lower case letters, a digit and a
// special character, with a length between PasswordMinLen characters and
// PasswordMaxBytes bytes.
func PasswordStrength(password string) error {
	if utf8.RuneCountInString(password) < PasswordMinLen {
		return fieldErr("password", "must be at least %d characters", PasswordMinLen)
	}
	if len(password) > PasswordMaxBytes {
		return fieldErr("password", "must be at most %d bytes", PasswordMaxBytes)
	}

	var upper, lower, digit, special bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		case strings.ContainsRune(passwordSpecials, r):
			special = true
		}
	}
	switch {
	case !upper:
		return fieldErr("password", "must contain an upper case letter")
	case !lower:
		return fieldErr("password", "must contain a lower case letter")
	case !digit:
		return fieldErr("password", "must contain a digit")
	case !special:
		return fieldErr("password", "must contain one of %s", passwordSpecials)
	}
	return nil
}

func lengthBetween(field, v string, min, max int) error {
	n := utf8.RuneCountInString(strings.TrimSpace(v))
	if n < min {
		if min == 1 {
			return fieldErr(field, "is required")
		}
		return fieldErr(field, "must be at least %d characters", min)
	}
	if utf8.RuneCountInString(v) > max {
		return fieldErr(field, "must be at most %d characters", max)
	}
	return nil
}
