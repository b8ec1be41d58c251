package security

import (
	"strings"
	"testing"

	"github.com/fuelmywork/fuelmywork-backend/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCodec(t *testing.T) *Codec {
	t.Helper()
	codec, err := NewCodec(config.CredentialsConfig{
		Passphrase: "a-very-long-test-passphrase",
		KeySalt:    "fuelmywork-credentials-v1",
	})
	require.NoError(t, err)
	require.False(t, codec.Passthrough())
	return codec
}

func TestCodecRoundTrip(t *testing.T) {
	codec := testCodec(t)

	for _, secret := range []string{"rzp_secret_abc123", "x", strings.Repeat("s", 512)} {
		stored, err := codec.Encrypt(secret)
		require.NoError(t, err)
		assert.NotEqual(t, secret, stored)
		assert.Contains(t, stored, ":")

		got, err := codec.Decrypt(stored)
		require.NoError(t, err)
		assert.Equal(t, secret, got)
	}
}

func TestCodecFreshNoncePerCall(t *testing.T) {
	codec := testCodec(t)

	first, err := codec.Encrypt("rzp_secret_abc123")
	require.NoError(t, err)
	second, err := codec.Encrypt("rzp_secret_abc123")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestCodecDecryptFailsSafe(t *testing.T) {
	codec := testCodec(t)

	stored, err := codec.Encrypt("rzp_secret_abc123")
	require.NoError(t, err)

	// Flip one hex digit of the ciphertext half.
	parts := strings.SplitN(stored, ":", 2)
	cipherHex := parts[1]
	flipped := "0"
	if cipherHex[0] == '0' {
		flipped = "1"
	}
	tampered := parts[0] + ":" + flipped + cipherHex[1:]

	got, err := codec.Decrypt(tampered)
	assert.Error(t, err)
	assert.Equal(t, tampered, got, "tampered input must come back unchanged")

	for _, malformed := range []string{"no-separator", "zz:zz", "abcd:not-hex"} {
		got, err := codec.Decrypt(malformed)
		assert.Error(t, err)
		assert.Equal(t, malformed, got)
	}
}

func TestCodecEmptyValues(t *testing.T) {
	codec := testCodec(t)

	stored, err := codec.Encrypt("")
	require.NoError(t, err)
	assert.Empty(t, stored)

	got, err := codec.Decrypt("")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestCodecPassthroughWithoutPassphrase(t *testing.T) {
	codec, err := NewCodec(config.CredentialsConfig{KeySalt: "fuelmywork-credentials-v1"})
	require.NoError(t, err)
	require.True(t, codec.Passthrough())

	stored, err := codec.Encrypt("rzp_secret_abc123")
	require.NoError(t, err)
	assert.Equal(t, "rzp_secret_abc123", stored)

	got, err := codec.Decrypt(stored)
	require.NoError(t, err)
	assert.Equal(t, "rzp_secret_abc123", got)
}
