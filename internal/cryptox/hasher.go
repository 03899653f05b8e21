// Package cryptox holds the vault's cryptographic primitives: password
// hashing for principals, authenticated encryption of stored secrets and the
// process-wide key provider.
package cryptox

import (
	"fmt"
	"sync/atomic"

	"github.com/dmitrijs2005/passkeeper/internal/common"
	"golang.org/x/crypto/bcrypt"
)

// DefaultBcryptCost is used when no explicit cost is configured.
const DefaultBcryptCost = 12

// Hasher hashes and verifies principal passwords with bcrypt. The salt and
// cost are embedded in every hash, so Verify needs nothing but the stored
// string.
type Hasher struct {
	cost int

	// dummy is a hash of random bytes that Equalize compares against. It is
	// built before the first login and replaced when stored hashes turn out to
	// use another cost.
	dummy      atomic.Pointer[[]byte]
	rebuilding atomic.Bool
}

// NewHasher returns a Hasher using cost, or DefaultBcryptCost when cost is
// below bcrypt.MinCost. Costs above bcrypt.MaxCost are clamped.
func NewHasher(cost int) *Hasher {
	switch {
	case cost < bcrypt.MinCost:
		cost = DefaultBcryptCost
	case cost > bcrypt.MaxCost:
		cost = bcrypt.MaxCost
	}
	h := &Hasher{cost: cost}
	h.dummy.Store(newDummyHash(cost))
	return h
}

func newDummyHash(cost int) *[]byte {
	secret := common.GenerateRandByteArray(32)
	defer common.WipeByteArray(secret)
	// 32 random bytes are within bcrypt's 72 byte limit, so this cannot fail.
	b, _ := bcrypt.GenerateFromPassword(secret, cost)
	return &b
}

func (h *Hasher) Cost() int { return h.cost }

// Hash returns a bcrypt hash of password with a fresh random salt. Hashing
// the same password twice gives two different strings.
func (h *Hasher) Hash(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(b), nil
}

// Verify reports whether password matches stored. Malformed hashes and
// mismatches both yield false; it never fails with an error.
func (h *Hasher) Verify(password, stored string) bool {
	h.follow(stored)
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(password)) == nil
}

// Equalize burns the same CPU time as a Verify against a stored hash. It is
// called when no stored hash exists so that an unknown username costs as much
// as a wrong password.
func (h *Hasher) Equalize(password string) {
	_ = bcrypt.CompareHashAndPassword(*h.dummy.Load(), []byte(password))
}

// DummyCost returns the cost Equalize currently runs at.
func (h *Hasher) DummyCost() int {
	c, _ := bcrypt.Cost(*h.dummy.Load())
	return c
}

// follow rebuilds the dummy hash in the background when stored was hashed
// at a cost other than the dummy's, e.g. after BcryptCost was changed.
func (h *Hasher) follow(stored string) {
	cost, err := bcrypt.Cost([]byte(stored))
	if err != nil || cost == h.DummyCost() {
		return
	}
	if !h.rebuilding.CompareAndSwap(false, true) {
		return
	}
	go func() {
		defer h.rebuilding.Store(false)
		h.dummy.Store(newDummyHash(cost))
	}()
}
