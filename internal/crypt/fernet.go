package crypt

import (
	"errors"
	"fmt"
	"time"

	"github.com/fernet/fernet-go"
)

// fernetMaxAge disables token expiry for Decrypt; bodies are decoded long
// after they were sent.
const fernetMaxAge = 100 * 365 * 24 * time.Hour

type fernetCipher struct {
	key *fernet.Key
}

func newFernetCipher(secret string) (*fernetCipher, error) {
	key, err := fernet.DecodeKey(secret)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid fernet key: %v", ErrUnavailable, err)
	}
	return &fernetCipher{key: key}, nil
}

func (c *fernetCipher) Kind() Kind { return Fernet }

func (c *fernetCipher) Encrypt(plaintext string) (string, error) {
	tok, err := fernet.EncryptAndSign([]byte(plaintext), c.key)
	if err != nil {
		return "", fmt.Errorf("crypt: fernet encrypt: %w", err)
	}
	return string(tok), nil
}

func (c *fernetCipher) Decrypt(ciphertext string) (string, error) {
	msg := fernet.VerifyAndDecrypt([]byte(ciphertext), fernetMaxAge, []*fernet.Key{c.key})
	if msg == nil {
		return "", errors.New("crypt: fernet token is invalid or was signed with another key")
	}
	return string(msg), nil
}

// GenerateFernetKey returns a new random key in the encoding NZBClient and
// Python's cryptography package expect.
func GenerateFernetKey() (string, error) {
	var k fernet.Key
	if err := k.Generate(); err != nil {
		return "", fmt.Errorf("crypt: generate fernet key: %w", err)
	}
	return k.Encode(), nil
}
