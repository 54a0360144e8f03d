// Package crypt provides AES-GCM authenticated encryption for values that
// leave the server, session cookies above all. Ciphertext is base64url with
// the random nonce prefixed, so one string fits in a cookie or DB column and
// any tampering fails authentication on open.
package crypt

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/spectraretail/spectra-pos/config"
)

// ErrDecrypt is returned when decryption or authentication fails.
var ErrDecrypt = errors.New("crypt: decryption failed")

// key derives a fixed-length AES-256 key from the session secret.
func key() ([]byte, error) {
	secret := config.SessionSecret()
	if secret == "" {
		return nil, errors.New("crypt: SESSION_SECRET not configured")
	}
	h := sha256.Sum256([]byte(secret))
	return h[:], nil
}

// Seal encrypts plaintext with AES-256-GCM and returns a base64url string
// of nonce || ciphertext || tag.
func Seal(plaintext string) (string, error) {
	return SealBytes([]byte(plaintext))
}

// SealBytes encrypts raw bytes and returns a base64url string.
func SealBytes(data []byte) (string, error) {
	k, err := key()
	if err != nil {
		return "", err
	}

	block, err := aes.NewCipher(k)
	if err != nil {
		return "", fmt.Errorf("crypt: new cipher: %w", err)
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", fmt.Errorf("crypt: new GCM: %w", err)
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("crypt: nonce: %w", err)
	}

	return base64.URLEncoding.EncodeToString(gcm.Seal(nonce, nonce, data, nil)), nil
}

// Open decrypts a base64url string produced by Seal.
func Open(encoded string) (string, error) {
	b, err := OpenBytes(encoded)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// OpenBytes decrypts a base64url string and returns the raw bytes.
func OpenBytes(encoded string) ([]byte, error) {
	k, err := key()
	if err != nil {
		return nil, err
	}

	data, err := base64.URLEncoding.DecodeString(encoded)
	if err != nil {
		return nil, ErrDecrypt
	}

	block, err := aes.NewCipher(k)
	if err != nil {
		return nil, fmt.Errorf("crypt: new cipher: %w", err)
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("crypt: new GCM: %w", err)
	}

	nonceSize := gcm.NonceSize()
	if len(data) < nonceSize {
		return nil, ErrDecrypt
	}

	nonce, ciphertext := data[:nonceSize], data[nonceSize:]
	plain, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, ErrDecrypt
	}
	return plain, nil
}

// SealJSON marshals v to JSON then seals it.
func SealJSON(v interface{}) (string, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("crypt: marshal: %w", err)
	}
	return SealBytes(raw)
}

// OpenJSON opens encoded and unmarshals the result into dest.
func OpenJSON(encoded string, dest interface{}) error {
	raw, err := OpenBytes(encoded)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return fmt.Errorf("crypt: unmarshal: %w", err)
	}
	return nil
}
