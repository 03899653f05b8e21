package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"fmt"

	"github.com/dmitrijs2005/passkeeper/internal/common"
)

const (
	// KeySize is the vault key length: AES-256.
	KeySize = 32

	// cipherVersion is the first byte of every encoded ciphertext.
	cipherVersion byte = 1

	nonceSize = 12
	tagSize   = 16
)

// EncryptSecret seals plaintext with AES-256-GCM under key.
//
// A new random 12-byte nonce is generated on every call, so encrypting the
// same plaintext twice produces different outputs. The result is
// base64url text of:
//
//	[1 byte: version][12 bytes: nonce][N bytes: ciphertext][16 bytes: tag]
//
// which is everything DecryptSecret needs besides the key.
func EncryptSecret(plaintext, key []byte) (string, error) {
	aead, err := newGCM(key)
	if err != nil {
		return "", err
	}

	nonce := make([]byte, nonceSize)
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("generate nonce: %w", err)
	}

	out := make([]byte, 0, 1+nonceSize+len(plaintext)+aead.Overhead())
	out = append(out, cipherVersion)
	out = append(out, nonce...)
	out = aead.Seal(out, nonce, plaintext, []byte{cipherVersion})

	return base64.RawURLEncoding.EncodeToString(out), nil
}

// DecryptSecret reverses EncryptSecret. Any failure (bad encoding,
// unknown version, truncated input, wrong key or a tag that does not verify)
// is reported as common.ErrDecryption and no plaintext is returned.
func DecryptSecret(encoded string, key []byte) ([]byte, error) {
	raw, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("%w: malformed encoding", common.ErrDecryption)
	}
	if len(raw) < 1+nonceSize+tagSize {
		return nil, fmt.Errorf("%w: ciphertext too short", common.ErrDecryption)
	}
	if raw[0] != cipherVersion {
		return nil, fmt.Errorf("%w: unknown version %d", common.ErrDecryption, raw[0])
	}

	aead, err := newGCM(key)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrDecryption, err)
	}

	nonce := raw[1 : 1+nonceSize]
	plaintext, err := aead.Open(nil, nonce, raw[1+nonceSize:], raw[:1])
	if err != nil {
		return nil, fmt.Errorf("%w: authentication failed", common.ErrDecryption)
	}
	return plaintext, nil
}

func newGCM(key []byte) (cipher.AEAD, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("invalid key length %d, want %d", len(key), KeySize)
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

// SecretCipher binds EncryptSecret and DecryptSecret to the vault key so
// callers never handle the key bytes themselves.
type SecretCipher struct {
	key *Key
}

func NewSecretCipher(key *Key) *SecretCipher {
	return &SecretCipher{key: key}
}

func (c *SecretCipher) Encrypt(plaintext string) (string, error) {
	return EncryptSecret([]byte(plaintext), c.key.Bytes())
}

// Decrypt returns the plaintext or an error matching common.ErrDecryption.
func (c *SecretCipher) Decrypt(encoded string) (string, error) {
	b, err := DecryptSecret(encoded, c.key.Bytes())
	if err != nil {
		return "", err
	}
	defer common.WipeByteArray(b)
	return string(b), nil
}
