package cryptox

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHasher_HashAndVerify(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)

	hash, err := h.Hash("Str0ng!Pass")
	require.NoError(t, err)

	assert.True(t, h.Verify("Str0ng!Pass", hash))
	assert.False(t, h.Verify("Str0ng!Pas", hash))
	assert.False(t, h.Verify("", hash))
}

func TestHasher_SaltIsFreshPerCall(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)

	a, err := h.Hash("same-password")
	require.NoError(t, err)
	b, err := h.Hash("same-password")
	require.NoError(t, err)

	assert.NotEqual(t, a, b, "two hashes of one password must differ")
	assert.True(t, h.Verify("same-password", a))
	assert.True(t, h.Verify("same-password", b))
}

func TestHasher_HashEmbedsCost(t *testing.T) {
	h := NewHasher(bcrypt.MinCost + 1)

	hash, err := h.Hash("pw")
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.MinCost+1, cost)
	assert.NotContains(t, hash, "pw")
}

func TestHasher_VerifyMalformedReturnsFalse(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)

	for _, stored := range []string{
		"",
		"invalid-hash-format",
		"$2a$04$short",
		"$9z$04$abcdefghijklmnopqrstuuJ3Zo7iK8vHZz1t7aBqP2d0CkM9oQwW",
		string([]byte{0xff, 0xfe, 0xfd}),
	} {
		assert.False(t, h.Verify("anything", stored), "stored=%q", stored)
	}
}

func TestHasher_VerifyInvalidUTF8Password(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)
	hash, err := h.Hash("Str0ng!Pass")
	require.NoError(t, err)

	assert.False(t, h.Verify(string([]byte{0xc3, 0x28}), hash))
}

func TestHasher_RejectsOverlongPassword(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)

	_, err := h.Hash(strings.Repeat("a", 73))
	require.Error(t, err)
}

func TestNewHasher_CostBounds(t *testing.T) {
	assert.Equal(t, DefaultBcryptCost, NewHasher(0).Cost())
	assert.Equal(t, DefaultBcryptCost, NewHasher(bcrypt.MinCost-1).Cost())
	assert.Equal(t, bcrypt.MinCost, NewHasher(bcrypt.MinCost).Cost())
	assert.Equal(t, bcrypt.MaxCost, NewHasher(bcrypt.MaxCost+5).Cost())
}

func TestHasher_EqualizeDoesNotPanic(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)
	h.Equalize("whatever")
	h.Equalize("whatever-again")
}

func TestNewHasher_DummyReadyBeforeFirstEqualize(t *testing.T) {
	h := NewHasher(bcrypt.MinCost + 1)

	dummy := h.dummy.Load()
	require.NotNil(t, dummy)
	assert.Equal(t, bcrypt.MinCost+1, h.DummyCost())

	h.Equalize("whatever")
	assert.Same(t, dummy, h.dummy.Load(), "Equalize must not build a hash")
}

func TestHasher_FirstEqualizeCostsAboutOneVerify(t *testing.T) {
	if testing.Short() {
		t.Skip("timing test")
	}
	const cost = 10
	h := NewHasher(cost)
	hash, err := h.Hash("Str0ng!Pass")
	require.NoError(t, err)

	verify := time.Duration(1<<63 - 1)
	for range 3 {
		start := time.Now()
		h.Verify("wrong", hash)
		verify = min(verify, time.Since(start))
	}

	start := time.Now()
	h.Equalize("wrong")
	first := time.Since(start)

	// Generating a hash at the same cost would double the time.
	assert.Less(t, first, verify*17/10, "first Equalize %v vs Verify %v", first, verify)
}

func TestHasher_EqualizeFollowsStoredCost(t *testing.T) {
	old := NewHasher(bcrypt.MinCost)
	hash, err := old.Hash("Str0ng!Pass")
	require.NoError(t, err)

	h := NewHasher(bcrypt.MinCost + 1)
	require.False(t, h.Verify("wrong", hash))

	require.Eventually(t, func() bool { return h.DummyCost() == bcrypt.MinCost },
		5*time.Second, 10*time.Millisecond)
	assert.Equal(t, bcrypt.MinCost+1, h.Cost(), "new hashes keep the configured cost")
}

func TestHasher_MalformedHashKeepsDummy(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)
	dummy := h.dummy.Load()

	assert.False(t, h.Verify("x", "not-a-hash"))
	assert.Same(t, dummy, h.dummy.Load())
}
