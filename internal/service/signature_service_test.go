package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHMACSignatureService_SignAndVerify(t *testing.T) {
	svc := NewHMACSignatureService()
	secretKey := "my-secret-key"
	payload := `{"order_id":"01J0ABCDEF","checkpoint":"delivery"}`

	signature := svc.Sign(secretKey, payload)

	// Should be lowercase hex
	assert.Regexp(t, `^[0-9a-f]{64}$`, signature, "signature should be 64-char lowercase hex (SHA-256)")
	assert.True(t, svc.Verify(secretKey, payload, signature))
}

func TestHMACSignatureService_VerifyFails(t *testing.T) {
	svc := NewHMACSignatureService()

	signature := svc.Sign("correct-key", "original payload")
	assert.False(t, svc.Verify("wrong-key", "original payload", signature))
	assert.False(t, svc.Verify("correct-key", "tampered payload", signature))
	assert.False(t, svc.Verify("key", "payload", "invalidsignature"))
}

func TestHMACSignatureService_DeterministicSign(t *testing.T) {
	svc := NewHMACSignatureService()
	assert.Equal(t, svc.Sign("key", "data"), svc.Sign("key", "data"))
}

func TestHMACSignatureService_SealOpen(t *testing.T) {
	svc := NewHMACSignatureService()
	body := []byte(`{"order_id":"01J0ABCDEF","checkpoint":"return","nonce":"n1"}`)

	sealed := svc.Seal("k", body)
	assert.NotContains(t, sealed, "{")

	got, err := svc.Open("k", sealed)
	require.NoError(t, err)
	assert.Equal(t, body, got)
}

func TestHMACSignatureService_OpenRejects(t *testing.T) {
	svc := NewHMACSignatureService()
	sealed := svc.Seal("k", []byte("hello"))

	_, err := svc.Open("other", sealed)
	assert.Error(t, err)

	_, err = svc.Open("k", "no-dot-here")
	assert.Error(t, err)

	_, err = svc.Open("k", "aGVsbG8."+svc.Sign("k", "d29ybGQ"))
	assert.Error(t, err, "signature over a different body")
}
