// Package crypt obscures notification bodies with a shared secret so they do
// not travel or rest in plaintext at the push provider. It is not a security
// boundary: there is no key management and the receiver holds the same
// secret.
package crypt

import (
	"errors"
	"fmt"
)

// ErrUnavailable means the selected scheme cannot be used with the given
// secret in this process. Callers send plaintext and say so.
var ErrUnavailable = errors.New("crypt: scheme unavailable")

// Kind selects an obfuscation scheme.
type Kind string

const (
	// Fernet tokens: AES-128-CBC + HMAC-SHA256 with a timestamp, URL-safe
	// base64. The secret must be a Fernet key.
	Fernet Kind = "fernet"
	// AES is OpenSSL "enc -aes-256-cbc -pbkdf2 -md sha256" output. The secret
	// is any passphrase.
	AES Kind = "aes"
)

// Tag is the encryptionType value sent alongside an encrypted body.
func (k Kind) Tag() string {
	switch k {
	case AES:
		return "aes-256-cbc"
	default:
		return string(k)
	}
}

// ParseKind maps a config value to a Kind.
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case Fernet, AES:
		return Kind(s), nil
	}
	return "", fmt.Errorf("crypt: unknown scheme %q", s)
}

// Cipher reversibly transforms message bodies.
type Cipher interface {
	Kind() Kind
	Encrypt(plaintext string) (string, error)
	Decrypt(ciphertext string) (string, error)
}

// New returns the Cipher for kind keyed by secret. An unusable secret yields
// an error wrapping ErrUnavailable.
func New(kind Kind, secret string) (Cipher, error) {
	if secret == "" {
		return nil, fmt.Errorf("%w: empty secret", ErrUnavailable)
	}
	switch kind {
	case Fernet:
		return newFernetCipher(secret)
	case AES:
		return newAESCipher(secret), nil
	}
	return nil, fmt.Errorf("%w: unknown scheme %q", ErrUnavailable, kind)
}

// Probe reports whether kind can be used with secret, without encrypting
// anything. It returns nil when the scheme is usable.
func Probe(kind Kind, secret string) error {
	_, err := New(kind, secret)
	return err
}
