package security

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/fuelmywork/fuelmywork-backend/pkg/config"
	"golang.org/x/crypto/argon2"
)

// Argon2id parameters for deriving the AES key from the configured
// passphrase. Changing these invalidates every stored secret.
const (
	kdfTime    = 3
	kdfMemory  = 64 * 1024
	kdfThreads = 2
	kdfKeyLen  = 32
)

// ErrMalformedCiphertext signals a stored value that does not carry the
// nonceHex:cipherHex layout the codec writes.
var ErrMalformedCiphertext = fmt.Errorf("malformed credential ciphertext")

// Codec encrypts creator gateway secrets at rest with AES-256-GCM.
//
// A codec built without a passphrase passes values through unchanged; config
// refuses that in production, and callers must surface a loud warning
// elsewhere.
type Codec struct {
	aead cipher.AEAD
}

// NewCodec derives the AES key from the configured passphrase via argon2id.
func NewCodec(cfg config.CredentialsConfig) (*Codec, error) {
	passphrase := strings.TrimSpace(cfg.Passphrase)
	if passphrase == "" {
		return &Codec{}, nil
	}
	if cfg.KeySalt == "" {
		return nil, fmt.Errorf("credentials key salt is required")
	}

	key := argon2.IDKey([]byte(passphrase), []byte(cfg.KeySalt), kdfTime, kdfMemory, kdfThreads, kdfKeyLen)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("building cipher: %w", err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("building gcm: %w", err)
	}
	return &Codec{aead: aead}, nil
}

// Passthrough reports whether the codec stores secrets unencrypted.
func (c *Codec) Passthrough() bool {
	return c == nil || c.aead == nil
}

// Encrypt seals the secret under a fresh random nonce. The same plaintext
// encrypted twice yields different ciphertexts.
func (c *Codec) Encrypt(secret string) (string, error) {
	if secret == "" {
		return "", nil
	}
	if c.Passthrough() {
		return secret, nil
	}

	nonce := make([]byte, c.aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("generate nonce: %w", err)
	}

	sealed := c.aead.Seal(nil, nonce, []byte(secret), nil)
	return hex.EncodeToString(nonce) + ":" + hex.EncodeToString(sealed), nil
}

// Decrypt opens a stored value. On malformed or tampered input it returns the
// input unchanged together with an error so callers can treat the creator as
// not configured instead of crashing the request.
func (c *Codec) Decrypt(stored string) (string, error) {
	if stored == "" {
		return "", nil
	}
	if c.Passthrough() {
		return stored, nil
	}

	parts := strings.SplitN(stored, ":", 2)
	if len(parts) != 2 {
		return stored, ErrMalformedCiphertext
	}

	nonce, err := hex.DecodeString(parts[0])
	if err != nil || len(nonce) != c.aead.NonceSize() {
		return stored, ErrMalformedCiphertext
	}
	sealed, err := hex.DecodeString(parts[1])
	if err != nil {
		return stored, ErrMalformedCiphertext
	}

	opened, err := c.aead.Open(nil, nonce, sealed, nil)
	if err != nil {
		return stored, fmt.Errorf("open ciphertext: %w", err)
	}
	return string(opened), nil
}
