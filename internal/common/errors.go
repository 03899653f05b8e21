// Package common defines sentinel errors and small helpers shared across
// passkeeper layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound           = errors.New("not found")
	ErrDuplicatePrincipal = errors.New("username or email already registered")
	ErrStorage            = errors.New("storage error")

	// Input errors.
	ErrValidation = errors.New("validation error")

	// Auth errors. ErrInvalidCredentials is deliberately the same for an
	// unknown username and a wrong password.
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUnauthorized       = errors.New("authentication required")

	// Crypto errors.
	ErrDecryption = errors.New("decryption failed")
	ErrKeyStorage = errors.New("key storage error")
)
