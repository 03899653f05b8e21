// Package keystore persists the raw vault key material. It knows nothing
// about the key's format; callers decide how to encode and validate it.
package keystore

import (
	"context"
	"errors"
)

// ErrKeyNotFound is returned by Read when no key material has been
// persisted yet.
var ErrKeyNotFound = errors.New("key material not found")

// Store reads and writes the persisted key material.
type Store interface {
	// Read returns the stored bytes or ErrKeyNotFound if nothing is stored.
	Read(ctx context.Context) ([]byte, error)

	// Write persists b. Implementations must not silently replace existing
	// material.
	Write(ctx context.Context, b []byte) error

	// Location describes where the material lives, for log messages.
	Location() string
}
