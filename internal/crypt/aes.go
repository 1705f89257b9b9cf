package crypt

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"

	"golang.org/x/crypto/pbkdf2"
)

// Parameters shared with `openssl enc -aes-256-cbc -pbkdf2 -md sha256
// -iter 100000 -salt -a -A`, so bodies can be decoded with the openssl CLI.
const (
	aesIterations = 100000
	aesKeyLen     = 32
	aesSaltLen    = 8
	opensslMagic  = "Salted__"
)

type aesCipher struct {
	passphrase []byte
}

func newAESCipher(passphrase string) *aesCipher {
	return &aesCipher{passphrase: []byte(passphrase)}
}

func (c *aesCipher) Kind() Kind { return AES }

func (c *aesCipher) derive(salt []byte) (key, iv []byte) {
	dk := pbkdf2.Key(c.passphrase, salt, aesIterations, aesKeyLen+aes.BlockSize, sha256.New)
	return dk[:aesKeyLen], dk[aesKeyLen:]
}

func (c *aesCipher) Encrypt(plaintext string) (string, error) {
	salt := make([]byte, aesSaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("crypt: read salt: %w", err)
	}

	key, iv := c.derive(salt)
	block, err := aes.NewCipher(key)
	if err != nil {
		return "", fmt.Errorf("crypt: aes: %w", err)
	}

	padded := pkcs7Pad([]byte(plaintext), aes.BlockSize)
	out := make([]byte, len(opensslMagic)+aesSaltLen+len(padded))
	copy(out, opensslMagic)
	copy(out[len(opensslMagic):], salt)
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(out[len(opensslMagic)+aesSaltLen:], padded)

	return base64.StdEncoding.EncodeToString(out), nil
}

func (c *aesCipher) Decrypt(ciphertext string) (string, error) {
	blob, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		return "", fmt.Errorf("crypt: aes: decode base64: %w", err)
	}

	header := len(opensslMagic) + aesSaltLen
	if len(blob) < header+aes.BlockSize || !bytes.HasPrefix(blob, []byte(opensslMagic)) {
		return "", errors.New("crypt: aes: not an openssl salted blob")
	}
	body := blob[header:]
	if len(body)%aes.BlockSize != 0 {
		return "", errors.New("crypt: aes: ciphertext is not a whole number of blocks")
	}

	key, iv := c.derive(blob[len(opensslMagic):header])
	block, err := aes.NewCipher(key)
	if err != nil {
		return "", fmt.Errorf("crypt: aes: %w", err)
	}

	plain := make([]byte, len(body))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(plain, body)

	plain, err = pkcs7Unpad(plain, aes.BlockSize)
	if err != nil {
		return "", err
	}
	return string(plain), nil
}

func pkcs7Pad(b []byte, size int) []byte {
	n := size - len(b)%size
	return append(b, bytes.Repeat([]byte{byte(n)}, n)...)
}

// pkcs7Unpad fails on malformed padding, which is how a wrong passphrase
// usually shows up.
func pkcs7Unpad(b []byte, size int) ([]byte, error) {
	if len(b) == 0 || len(b)%size != 0 {
		return nil, errors.New("crypt: aes: bad padding")
	}
	n := int(b[len(b)-1])
	if n == 0 || n > size {
		return nil, errors.New("crypt: aes: bad padding (wrong passphrase?)")
	}
	for _, p := range b[len(b)-n:] {
		if int(p) != n {
			return nil, errors.New("crypt: aes: bad padding (wrong passphrase?)")
		}
	}
	return b[:len(b)-n], nil
}
