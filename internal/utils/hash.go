package utils

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"hash"
	"sync"
)

// HashHeader is the header carrying the hex HMAC-SHA256 of a request body.
const HashHeader = "HashSHA256"

// Signer computes keyed HMAC-SHA256 digests of request bodies.
//
// Hash instances are pooled to avoid an allocation per request. A Signer
// created with an empty key is disabled: [Signer.Enabled] reports false and
// [Signer.Verify] accepts everything.
type Signer struct {
	key  []byte
	pool sync.Pool
}

// NewSigner returns a Signer for hashKey.
//
// Example usage:
//
//	signer := utils.NewSigner("my-secret-key")
//	req.SetHeader(utils.HashHeader, signer.SignHex(body))
func NewSigner(hashKey string) *Signer {
	s := &Signer{key: []byte(hashKey)}
	s.pool.New = func() any {
		return hmac.New(sha256.New, s.key)
	}
	return s
}

// Enabled reports whether the signer has a key.
func (s *Signer) Enabled() bool {
	return s != nil && len(s.key) > 0
}

// Sign returns the raw HMAC-SHA256 digest of data.
//
// Behavior:
//   - Retrieves a hash.Hash instance from the pool
//   - Resets it, writes the data, computes the sum
//   - Returns it to the pool
func (s *Signer) Sign(data []byte) []byte {
	h := s.pool.Get().(hash.Hash)
	h.Reset()

	h.Write(data)
	sum := h.Sum(nil)

	s.pool.Put(h)

	return sum
}

// SignHex returns the hex-encoded digest of data.
func (s *Signer) SignHex(data []byte) string {
	return hex.EncodeToString(s.Sign(data))
}

// Verify reports whether signature is the hex digest of data. The comparison
// runs in constant time. A disabled signer accepts any signature.
func (s *Signer) Verify(data []byte, signature string) bool {
	if !s.Enabled() {
		return true
	}

	got, err := hex.DecodeString(signature)
	if err != nil {
		return false
	}
	return hmac.Equal(got, s.Sign(data))
}
