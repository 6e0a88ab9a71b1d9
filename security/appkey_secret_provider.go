package security

import (
	"bytes"
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"

	"github.com/goliatone/go-clouds/core"
)

const (
	defaultKeyID   = "app-key"
	defaultVersion = 1
)

type Option func(*AppKeySecretProvider)

func WithKeyID(id string) Option {
	return func(p *AppKeySecretProvider) {
		if id = strings.TrimSpace(id); id != "" {
			p.keyID = id
		}
	}
}

func WithVersion(version int) Option {
	return func(p *AppKeySecretProvider) {
		if version > 0 {
			p.version = version
		}
	}
}

// AppKeySecretProvider seals node login secrets with AES-256-GCM under one
// application key. The key id and version are written to the envelope and
// bound to the ciphertext as additional data, so an envelope relabelled
// with another id or version fails to open.
type AppKeySecretProvider struct {
	aead    cipher.AEAD
	keyID   string
	version int
}

// NewAppKeySecretProvider derives a 32 byte key from keyMaterial with
// SHA-256 unless it already is a valid AES key length.
func NewAppKeySecretProvider(keyMaterial []byte, opts ...Option) (*AppKeySecretProvider, error) {
	material := bytes.TrimSpace(keyMaterial)
	if len(material) == 0 {
		return nil, fmt.Errorf("security: key material is required")
	}
	block, err := aes.NewCipher(deriveKey(material))
	if err != nil {
		return nil, fmt.Errorf("security: create cipher: %w", err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("security: create gcm: %w", err)
	}

	p := &AppKeySecretProvider{aead: aead, keyID: defaultKeyID, version: defaultVersion}
	for _, opt := range opts {
		if opt != nil {
			opt(p)
		}
	}
	return p, nil
}

func NewAppKeySecretProviderFromString(key string, opts ...Option) (*AppKeySecretProvider, error) {
	return NewAppKeySecretProvider([]byte(key), opts...)
}

func (p *AppKeySecretProvider) Encrypt(_ context.Context, plaintext []byte) ([]byte, error) {
	if p == nil || p.aead == nil {
		return nil, fmt.Errorf("security: secret provider is not configured")
	}
	if len(plaintext) == 0 {
		return nil, fmt.Errorf("security: plaintext is required")
	}
	nonce := make([]byte, p.aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("security: generate nonce: %w", err)
	}
	sealed := p.aead.Seal(nil, nonce, plaintext, additionalData(p.keyID, p.version))
	return encodeEnvelope(envelope{
		KeyID:      p.keyID,
		Version:    p.version,
		Algorithm:  envelopeAlgorithm,
		Nonce:      base64.StdEncoding.EncodeToString(nonce),
		Ciphertext: base64.StdEncoding.EncodeToString(sealed),
	})
}

func (p *AppKeySecretProvider) Decrypt(_ context.Context, ciphertext []byte) ([]byte, error) {
	if p == nil || p.aead == nil {
		return nil, fmt.Errorf("security: secret provider is not configured")
	}
	env, err := decodeEnvelope(ciphertext)
	if err != nil {
		return nil, err
	}
	switch {
	case env.Algorithm != "" && env.Algorithm != envelopeAlgorithm:
		return nil, fmt.Errorf("security: unsupported envelope algorithm %q", env.Algorithm)
	case env.KeyID != "" && env.KeyID != p.keyID:
		return nil, fmt.Errorf("security: sealed with key %q, provider holds %q", env.KeyID, p.keyID)
	case env.Version > 0 && env.Version != p.version:
		return nil, fmt.Errorf("security: sealed with key version %d, provider holds %d", env.Version, p.version)
	}

	nonce, err := decodeBase64(env.Nonce, "nonce")
	if err != nil {
		return nil, err
	}
	if len(nonce) != p.aead.NonceSize() {
		return nil, fmt.Errorf("security: nonce must be %d bytes", p.aead.NonceSize())
	}
	sealed, err := decodeBase64(env.Ciphertext, "ciphertext payload")
	if err != nil {
		return nil, err
	}
	plaintext, err := p.aead.Open(nil, nonce, sealed, additionalData(p.keyID, p.version))
	if err != nil {
		return nil, fmt.Errorf("security: open sealed secret: %w", err)
	}
	return plaintext, nil
}

// Metadata returns the key id and version written to new envelopes.
func (p *AppKeySecretProvider) Metadata() (string, int) {
	if p == nil {
		return "", 0
	}
	return p.keyID, p.version
}

func additionalData(keyID string, version int) []byte {
	return []byte(keyID + "/" + strconv.Itoa(version))
}

func deriveKey(material []byte) []byte {
	switch len(material) {
	case 16, 24, 32:
		return bytes.Clone(material)
	}
	sum := sha256.Sum256(material)
	return sum[:]
}

var _ core.SecretProvider = (*AppKeySecretProvider)(nil)
