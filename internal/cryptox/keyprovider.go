package cryptox

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"sync"

	"github.com/awnumar/memguard"
	"github.com/dmitrijs2005/passkeeper/internal/common"
	"github.com/dmitrijs2005/passkeeper/internal/keystore"
	"github.com/dmitrijs2005/passkeeper/internal/logging"
)

// Key is the vault key held in locked, read-only memory.
type Key struct {
	buf *memguard.LockedBuffer
}

// NewKey moves material into protected memory. material is wiped by this
// call whether or not it succeeds.
func NewKey(material []byte) (*Key, error) {
	if len(material) != KeySize {
		common.WipeByteArray(material)
		return nil, fmt.Errorf("invalid key length %d, want %d", len(material), KeySize)
	}
	buf := memguard.NewBufferFromBytes(material)
	buf.Freeze()
	return &Key{buf: buf}, nil
}

// Bytes returns a read-only view of the key. The slice must not be retained
// after Destroy.
func (k *Key) Bytes() []byte {
	return k.buf.Bytes()
}

// Destroy wipes and releases the key memory.
func (k *Key) Destroy() {
	k.buf.Destroy()
}

// KeyProvider loads the vault key from a keystore.Store, creating it on
// first use, and holds it for the lifetime of the process.
//
// The key is persisted as base64url text with padding (44 characters).
type KeyProvider struct {
	store  keystore.Store
	logger logging.Logger

	mu  sync.Mutex
	key *Key
}

func NewKeyProvider(store keystore.Store, logger logging.Logger) *KeyProvider {
	return &KeyProvider{store: store, logger: logger}
}

// GetOrCreateKey returns the vault key. The first successful call reads the
// persisted material, or generates and persists new material if none
// exists; every later call returns the same *Key without touching the store.
//
// Failures are reported as common.ErrKeyStorage and must abort startup.
func (p *KeyProvider) GetOrCreateKey(ctx context.Context) (*Key, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.key != nil {
		return p.key, nil
	}

	raw, err := p.store.Read(ctx)
	switch {
	case errors.Is(err, keystore.ErrKeyNotFound):
		p.logger.Info(ctx, "no vault key found, generating a new one", "location", p.store.Location())
		p.key, err = p.create(ctx)
	case err != nil:
		err = fmt.Errorf("%w: %v", common.ErrKeyStorage, err)
	default:
		p.key, err = decodeKey(raw)
		common.WipeByteArray(raw)
	}
	if err != nil {
		p.logger.Error(ctx, "vault key unavailable", "location", p.store.Location(), "error", err)
		return nil, err
	}

	p.logger.Info(ctx, "vault key loaded", "location", p.store.Location())
	return p.key, nil
}

// Close destroys the held key, if any.
func (p *KeyProvider) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.key != nil {
		p.key.Destroy()
		p.key = nil
	}
}

func (p *KeyProvider) create(ctx context.Context) (*Key, error) {
	material := common.GenerateRandByteArray(KeySize)

	encoded := make([]byte, base64.URLEncoding.EncodedLen(KeySize))
	base64.URLEncoding.Encode(encoded, material)
	defer common.WipeByteArray(encoded)

	if err := p.store.Write(ctx, encoded); err != nil {
		common.WipeByteArray(material)
		return nil, fmt.Errorf("%w: %v", common.ErrKeyStorage, err)
	}

	return NewKey(material)
}

func decodeKey(raw []byte) (*Key, error) {
	trimmed := bytes.TrimSpace(raw)
	material := make([]byte, base64.URLEncoding.DecodedLen(len(trimmed)))
	n, err := base64.URLEncoding.Decode(material, trimmed)
	if err != nil {
		common.WipeByteArray(material)
		return nil, fmt.Errorf("%w: key material is not valid base64", common.ErrKeyStorage)
	}
	key, err := NewKey(material[:n])
	if err != nil {
		common.WipeByteArray(material)
		return nil, fmt.Errorf("%w: %v", common.ErrKeyStorage, err)
	}
	return key, nil
}
