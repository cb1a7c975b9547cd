// Package crypt provides authenticated symmetric encryption for single text
// fields. Tokens carry a version, an issue timestamp and a random nonce, and
// are AES-256-GCM sealed, so tampering and key mismatch are both detected.
package crypt

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"time"
)

const (
	tokenVersion = 0x01
	keySize      = 32
	headerSize   = 1 + 8 // version byte + big-endian unix timestamp
)

// ErrInvalidToken marks ciphertext that failed authentication: tampered data
// or a wrong key. It is distinguishable from malformed-input errors so
// callers can log the difference.
var ErrInvalidToken = errors.New("invalid encryption token")

// Codec encrypts and decrypts optional text fields with a fixed key. It is an
// explicitly constructed collaborator: build one at startup and pass it where
// needed.
type Codec struct {
	aead cipher.AEAD
}

// NewCodec builds a codec from a base64-encoded 32-byte key. It fails fast on
// a missing or malformed key; there is no plaintext fallback.
func NewCodec(encodedKey string) (*Codec, error) {
	if encodedKey == "" {
		return nil, fmt.Errorf("encryption key is required")
	}

	key, err := decodeKey(encodedKey)
	if err != nil {
		return nil, fmt.Errorf("encryption key must be base64-encoded: %w", err)
	}
	if len(key) != keySize {
		return nil, fmt.Errorf("encryption key must decode to %d bytes, got %d", keySize, len(key))
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cipher: %w", err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize GCM: %w", err)
	}

	return &Codec{aead: aead}, nil
}

func decodeKey(encoded string) ([]byte, error) {
	// Accept both standard and URL-safe encodings; key generators vary.
	if key, err := base64.StdEncoding.DecodeString(encoded); err == nil {
		return key, nil
	}
	return base64.URLEncoding.DecodeString(encoded)
}

// Encrypt seals plaintext into a token. A nil input passes through as nil so
// optional fields stay optional.
func (c *Codec) Encrypt(plaintext *string) (*string, error) {
	if plaintext == nil {
		return nil, nil
	}

	header := make([]byte, headerSize)
	header[0] = tokenVersion
	binary.BigEndian.PutUint64(header[1:], uint64(time.Now().Unix()))

	nonce := make([]byte, c.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}

	// The header is authenticated as additional data, so version/timestamp
	// tampering breaks the seal too.
	sealed := c.aead.Seal(nil, nonce, []byte(*plaintext), header)

	token := make([]byte, 0, headerSize+len(nonce)+len(sealed))
	token = append(token, header...)
	token = append(token, nonce...)
	token = append(token, sealed...)

	encoded := base64.RawURLEncoding.EncodeToString(token)
	return &encoded, nil
}

// Decrypt opens a token produced by Encrypt. A nil input passes through as
// nil. Tampered or wrong-key tokens fail with ErrInvalidToken.
func (c *Codec) Decrypt(ciphertext *string) (*string, error) {
	if ciphertext == nil {
		return nil, nil
	}

	token, err := base64.RawURLEncoding.DecodeString(*ciphertext)
	if err != nil {
		return nil, fmt.Errorf("%w: not base64", ErrInvalidToken)
	}

	nonceSize := c.aead.NonceSize()
	if len(token) < headerSize+nonceSize+c.aead.Overhead() {
		return nil, fmt.Errorf("%w: token too short", ErrInvalidToken)
	}
	if token[0] != tokenVersion {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrInvalidToken, token[0])
	}

	header := token[:headerSize]
	nonce := token[headerSize : headerSize+nonceSize]
	sealed := token[headerSize+nonceSize:]

	plaintext, err := c.aead.Open(nil, nonce, sealed, header)
	if err != nil {
		return nil, fmt.Errorf("%w: authentication failed", ErrInvalidToken)
	}

	out := string(plaintext)
	return &out, nil
}
