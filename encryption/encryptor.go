package encryption

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/chacha20poly1305"
)

// Encryptor seals and opens strings.
type Encryptor interface {
	Encrypt(plaintext string) (string, error)
	Decrypt(ciphertext string) (string, error)
}

// Algorithm names an AEAD construction.
type Algorithm string

const (
	AESGCM           Algorithm = "aes-256-gcm"
	ChaCha20Poly1305 Algorithm = "chacha20-poly1305"
)

var (
	// ErrEmptyKey is returned by New for a blank passphrase.
	ErrEmptyKey = errors.New("encryption: empty key")
	// ErrMalformed is returned when the input is not something Encrypt produced.
	ErrMalformed = errors.New("encryption: malformed ciphertext")
)

// ParseAlgorithm accepts an algorithm name case-insensitively. An empty name
// selects AESGCM.
func ParseAlgorithm(name string) (Algorithm, error) {
	switch Algorithm(strings.ToLower(strings.TrimSpace(name))) {
	case "", AESGCM:
		return AESGCM, nil
	case ChaCha20Poly1305:
		return ChaCha20Poly1305, nil
	}
	return "", fmt.Errorf("encryption: unknown algorithm %q", name)
}

// Option configures New.
type Option func(*options)

type options struct {
	algorithm Algorithm
	context   string
}

// WithAlgorithm selects the cipher. The default is AESGCM.
func WithAlgorithm(alg Algorithm) Option {
	return func(o *options) { o.algorithm = alg }
}

// WithContext binds ciphertexts to a label passed as additional data, so a
// value sealed for one purpose does not open under another.
func WithContext(label string) Option {
	return func(o *options) { o.context = label }
}

// Cipher is an Encryptor backed by a single AEAD.
type Cipher struct {
	alg  Algorithm
	aead cipher.AEAD
	ad   []byte
}

// New derives a 256-bit key from passphrase with SHA-256 and builds the
// selected AEAD.
func New(passphrase string, opts ...Option) (*Cipher, error) {
	if passphrase == "" {
		return nil, ErrEmptyKey
	}
	o := options{algorithm: AESGCM}
	for _, opt := range opts {
		opt(&o)
	}
	key := sha256.Sum256([]byte(passphrase))

	var (
		aead cipher.AEAD
		err  error
	)
	switch o.algorithm {
	case AESGCM:
		var block cipher.Block
		if block, err = aes.NewCipher(key[:]); err == nil {
			aead, err = cipher.NewGCM(block)
		}
	case ChaCha20Poly1305:
		aead, err = chacha20poly1305.New(key[:])
	default:
		return nil, fmt.Errorf("encryption: unknown algorithm %q", o.algorithm)
	}
	if err != nil {
		return nil, fmt.Errorf("encryption: %s: %w", o.algorithm, err)
	}

	c := &Cipher{alg: o.algorithm, aead: aead}
	if o.context != "" {
		c.ad = []byte(o.context)
	}
	return c, nil
}

// Algorithm reports the cipher in use.
func (c *Cipher) Algorithm() Algorithm { return c.alg }

func (c *Cipher) Encrypt(plaintext string) (string, error) {
	nonce := make([]byte, c.aead.NonceSize(), c.aead.NonceSize()+len(plaintext)+c.aead.Overhead())
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("encryption: nonce: %w", err)
	}
	sealed := c.aead.Seal(nonce, nonce, []byte(plaintext), c.ad)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

func (c *Cipher) Decrypt(ciphertext string) (string, error) {
	data, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	n := c.aead.NonceSize()
	if len(data) < n+c.aead.Overhead() {
		return "", ErrMalformed
	}
	plain, err := c.aead.Open(nil, data[:n], data[n:], c.ad)
	if err != nil {
		return "", fmt.Errorf("encryption: open: %w", err)
	}
	return string(plain), nil
}

var _ Encryptor = (*Cipher)(nil)
