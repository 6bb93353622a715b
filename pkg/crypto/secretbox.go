package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"strings"

	"golang.org/x/crypto/scrypt"
)

const (
	envelopePrefix = "encrypted:"
	ivSize         = 12
	tagSize        = 16

	// Fixed application salt for key derivation. Changing it invalidates
	// every secret stored at rest.
	scryptSalt = "questhive.secretbox.v1"
)

var ErrDecryptFailed = errors.New("cannot decrypt secret value")

// SecretBox encrypts secrets at rest with AES-256-GCM. The cipher key is
// derived from a single process-wide base secret with scrypt, so a leaked
// database dump is useless without the base secret, and a weak base secret
// still costs a memory-hard derivation per guess.
type SecretBox struct {
	aead cipher.AEAD
}

func NewSecretBox(baseSecret string) (*SecretBox, error) {
	if baseSecret == "" {
		return nil, errors.New("base secret must not be empty")
	}

	key, err := scrypt.Key([]byte(baseSecret), []byte(scryptSalt), 1<<15, 8, 1, 32)
	if err != nil {
		return nil, err
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}

	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	return &SecretBox{aead: aead}, nil
}

// Encrypt returns "encrypted:<hex iv>:<hex tag>:<hex ciphertext>" with a
// fresh random IV for every call.
func (b *SecretBox) Encrypt(plaintext string) (string, error) {
	iv := make([]byte, ivSize)
	if _, err := rand.Read(iv); err != nil {
		return "", err
	}

	sealed := b.aead.Seal(nil, iv, []byte(plaintext), nil)
	ciphertext := sealed[:len(sealed)-tagSize]
	tag := sealed[len(sealed)-tagSize:]

	return envelopePrefix +
		hex.EncodeToString(iv) + ":" +
		hex.EncodeToString(tag) + ":" +
		hex.EncodeToString(ciphertext), nil
}

// Decrypt reverses Encrypt. It also accepts the legacy unprefixed
// "<iv>:<tag>:<ciphertext>" envelope still present in old rows. Any
// malformed envelope or authentication failure returns ErrDecryptFailed and
// never a partial plaintext.
func (b *SecretBox) Decrypt(envelope string) (string, error) {
	trimmed := strings.TrimPrefix(envelope, envelopePrefix)

	parts := strings.Split(trimmed, ":")
	if len(parts) != 3 {
		return "", ErrDecryptFailed
	}

	iv, err := hex.DecodeString(parts[0])
	if err != nil || len(iv) != ivSize {
		return "", ErrDecryptFailed
	}

	tag, err := hex.DecodeString(parts[1])
	if err != nil || len(tag) != tagSize {
		return "", ErrDecryptFailed
	}

	ciphertext, err := hex.DecodeString(parts[2])
	if err != nil {
		return "", ErrDecryptFailed
	}

	plaintext, err := b.aead.Open(nil, iv, append(ciphertext, tag...), nil)
	if err != nil {
		return "", ErrDecryptFailed
	}

	return string(plaintext), nil
}
