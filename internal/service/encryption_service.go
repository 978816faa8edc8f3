package service

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"
)

const (
	balanceKeyInfo = "laundry-hub/wallet-balance/v1"
	tokenKeyInfo   = "laundry-hub/verification-token/v1"
)

// KeyRing holds purpose-bound sub-keys derived from the configured master key,
// so the balance cipher and token signer never share key material.
type KeyRing struct {
	balanceKey []byte
	tokenKey   []byte
}

// DeriveKeyRing expands a 64-character hex master key with HKDF-SHA256.
func DeriveKeyRing(hexKey string) (*KeyRing, error) {
	master, err := hex.DecodeString(hexKey)
	if err != nil {
		return nil, fmt.Errorf("decoding AES key: %w", err)
	}
	if len(master) != 32 {
		return nil, fmt.Errorf("AES key must be 32 bytes, got %d", len(master))
	}
	balanceKey, err := expand(master, balanceKeyInfo)
	if err != nil {
		return nil, err
	}
	tokenKey, err := expand(master, tokenKeyInfo)
	if err != nil {
		return nil, err
	}
	return &KeyRing{balanceKey: balanceKey, tokenKey: tokenKey}, nil
}

func expand(master []byte, info string) ([]byte, error) {
	out := make([]byte, 32)
	if _, err := io.ReadFull(hkdf.New(sha256.New, master, nil, []byte(info)), out); err != nil {
		return nil, fmt.Errorf("deriving %s key: %w", info, err)
	}
	return out, nil
}

// BalanceKey is the AES-256 key for wallet amounts.
func (k *KeyRing) BalanceKey() []byte { return k.balanceKey }

// TokenSigningKey is the HMAC secret for verification-token payloads.
func (k *KeyRing) TokenSigningKey() string { return hex.EncodeToString(k.tokenKey) }

// AESEncryptionService implements ports.EncryptionService using AES-256-GCM.
type AESEncryptionService struct {
	aead cipher.AEAD
}

// NewAESEncryptionService creates a new AES-256-GCM encryption service from a
// raw 32-byte key (see KeyRing.BalanceKey).
func NewAESEncryptionService(key []byte) (*AESEncryptionService, error) {
	if len(key) != 32 {
		return nil, fmt.Errorf("AES key must be 32 bytes, got %d", len(key))
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("creating cipher: %w", err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("creating GCM: %w", err)
	}
	return &AESEncryptionService{aead: aead}, nil
}

// Encrypt encrypts plaintext using AES-256-GCM.
// Returns hex-encoded string: nonce(12) + ciphertext.
func (s *AESEncryptionService) Encrypt(plaintext string) (string, error) {
	nonce := make([]byte, s.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("generating nonce: %w", err)
	}
	return hex.EncodeToString(s.aead.Seal(nonce, nonce, []byte(plaintext), nil)), nil
}

// Decrypt decrypts a hex-encoded AES-256-GCM ciphertext.
func (s *AESEncryptionService) Decrypt(ciphertextHex string) (string, error) {
	ciphertext, err := hex.DecodeString(ciphertextHex)
	if err != nil {
		return "", fmt.Errorf("decoding ciphertext: %w", err)
	}

	nonceSize := s.aead.NonceSize()
	if len(ciphertext) < nonceSize {
		return "", fmt.Errorf("ciphertext too short")
	}

	nonce, ciphertext := ciphertext[:nonceSize], ciphertext[nonceSize:]
	plaintext, err := s.aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", fmt.Errorf("decrypting: %w", err)
	}

	return string(plaintext), nil
}
