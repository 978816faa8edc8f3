package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"strings"
)

var errMalformedSigned = errors.New("malformed signed payload")

// HMACSignatureService implements ports.SignatureService using HMAC-SHA256.
type HMACSignatureService struct{}

// NewHMACSignatureService creates a new HMAC-SHA256 signature service.
func NewHMACSignatureService() *HMACSignatureService {
	return &HMACSignatureService{}
}

// Sign computes HMAC-SHA256 of payload using secretKey.
// Returns lowercase hex-encoded signature.
func (s *HMACSignatureService) Sign(secretKey string, payload string) string {
	mac := hmac.New(sha256.New, []byte(secretKey))
	mac.Write([]byte(payload))
	return hex.EncodeToString(mac.Sum(nil))
}

// Verify checks if signature matches HMAC-SHA256(secretKey, payload).
// Uses constant-time comparison to prevent timing attacks.
func (s *HMACSignatureService) Verify(secretKey string, payload string, signature string) bool {
	expected := s.Sign(secretKey, payload)
	return hmac.Equal([]byte(expected), []byte(signature))
}

// Seal encodes body as base64url(body) + "." + hex(HMAC) so it can travel
// inside a QR code.
func (s *HMACSignatureService) Seal(secretKey string, body []byte) string {
	encoded := base64.RawURLEncoding.EncodeToString(body)
	return encoded + "." + s.Sign(secretKey, encoded)
}

// Open verifies a sealed payload and returns its body.
func (s *HMACSignatureService) Open(secretKey string, sealed string) ([]byte, error) {
	encoded, sig, ok := strings.Cut(sealed, ".")
	if !ok || encoded == "" || sig == "" {
		return nil, errMalformedSigned
	}
	if !s.Verify(secretKey, encoded, sig) {
		return nil, errors.New("signature mismatch")
	}
	body, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		return nil, errMalformedSigned
	}
	return body, nil
}
