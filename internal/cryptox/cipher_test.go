package cryptox

import (
	"bytes"
	"encoding/base64"
	"testing"

	"github.com/dmitrijs2005/passkeeper/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testKeyBytes(fill byte) []byte {
	return bytes.Repeat([]byte{fill}, KeySize)
}

func TestEncryptDecrypt_RoundTrip(t *testing.T) {
	key := testKeyBytes(0x11)

	for _, plain := range []string{"s3cret!", "", "пароль with unicode ✓", string(bytes.Repeat([]byte("x"), 4096))} {
		ct, err := EncryptSecret([]byte(plain), key)
		require.NoError(t, err)

		got, err := DecryptSecret(ct, key)
		require.NoError(t, err)
		assert.Equal(t, plain, string(got))
	}
}

func TestEncrypt_FreshNoncePerCall(t *testing.T) {
	key := testKeyBytes(0x22)

	a, err := EncryptSecret([]byte("s3cret!"), key)
	require.NoError(t, err)
	b, err := EncryptSecret([]byte("s3cret!"), key)
	require.NoError(t, err)

	assert.NotEqual(t, a, b)

	rawA, _ := base64.RawURLEncoding.DecodeString(a)
	rawB, _ := base64.RawURLEncoding.DecodeString(b)
	assert.NotEqual(t, rawA[1:1+nonceSize], rawB[1:1+nonceSize], "nonce reused")
}

func TestEncrypt_RejectsBadKeyLength(t *testing.T) {
	_, err := EncryptSecret([]byte("x"), []byte("short"))
	require.Error(t, err)
}

func TestDecrypt_WrongKeyFails(t *testing.T) {
	ct, err := EncryptSecret([]byte("s3cret!"), testKeyBytes(0x01))
	require.NoError(t, err)

	got, err := DecryptSecret(ct, testKeyBytes(0x02))
	require.ErrorIs(t, err, common.ErrDecryption)
	assert.Nil(t, got)
}

func TestDecrypt_TamperingFails(t *testing.T) {
	key := testKeyBytes(0x33)
	ct, err := EncryptSecret([]byte("s3cret!"), key)
	require.NoError(t, err)
	raw, err := base64.RawURLEncoding.DecodeString(ct)
	require.NoError(t, err)

	// flip one bit in the version, nonce, body and tag in turn
	for _, pos := range []int{0, 1, 1 + nonceSize, len(raw) - 1} {
		tampered := append([]byte(nil), raw...)
		tampered[pos] ^= 0x01

		got, err := DecryptSecret(base64.RawURLEncoding.EncodeToString(tampered), key)
		require.ErrorIs(t, err, common.ErrDecryption, "pos=%d", pos)
		assert.Nil(t, got)
	}
}

func TestDecrypt_MalformedInputFails(t *testing.T) {
	key := testKeyBytes(0x44)

	for _, in := range []string{
		"",
		"!!!not base64!!!",
		base64.RawURLEncoding.EncodeToString([]byte{cipherVersion, 1, 2, 3}),
		base64.RawURLEncoding.EncodeToString(make([]byte, 1+nonceSize+tagSize-1)),
	} {
		_, err := DecryptSecret(in, key)
		require.ErrorIs(t, err, common.ErrDecryption, "input=%q", in)
	}
}

func TestDecrypt_BadKeyLengthIsDecryptionError(t *testing.T) {
	ct, err := EncryptSecret([]byte("x"), testKeyBytes(0x55))
	require.NoError(t, err)

	_, err = DecryptSecret(ct, []byte("short"))
	require.ErrorIs(t, err, common.ErrDecryption)
}

func TestSecretCipher_RoundTrip(t *testing.T) {
	key, err := NewKey(testKeyBytes(0x66))
	require.NoError(t, err)
	t.Cleanup(key.Destroy)

	c := NewSecretCipher(key)

	ct, err := c.Encrypt("s3cret!")
	require.NoError(t, err)
	assert.NotContains(t, ct, "s3cret!")

	got, err := c.Decrypt(ct)
	require.NoError(t, err)
	assert.Equal(t, "s3cret!", got)
}

func TestSecretCipher_OtherKeyFails(t *testing.T) {
	k1, err := NewKey(testKeyBytes(0x77))
	require.NoError(t, err)
	t.Cleanup(k1.Destroy)
	k2, err := NewKey(testKeyBytes(0x78))
	require.NoError(t, err)
	t.Cleanup(k2.Destroy)

	ct, err := NewSecretCipher(k1).Encrypt("s3cret!")
	require.NoError(t, err)

	got, err := NewSecretCipher(k2).Decrypt(ct)
	require.ErrorIs(t, err, common.ErrDecryption)
	assert.Empty(t, got)
}
