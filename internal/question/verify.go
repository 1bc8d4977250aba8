package question

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"hash"
)

// Verify reports whether submitted is exactly the canonical answer of q.
// No case, accent or whitespace normalization is applied.
func Verify(q Question, submitted string) bool {
	return q.CorrectAnswer == submitted
}

// Signer issues tokens binding every served field of a question (statement,
// image, category, options in order, answer), so a question echoed back by a
// client can be checked for tampering or reuse against another image.
type Signer struct {
	key []byte
}

func NewSigner(secret []byte) *Signer {
	return &Signer{key: secret}
}

// Enabled reports whether a secret is configured.
func (s *Signer) Enabled() bool {
	return s != nil && len(s.key) > 0
}

// Sign returns the hex HMAC of q, or "" when signing is disabled.
func (s *Signer) Sign(q Question) string {
	if !s.Enabled() {
		return ""
	}
	mac := hmac.New(sha256.New, s.key)
	writeField(mac, q.Statement)
	writeField(mac, q.Image)
	writeField(mac, string(q.Category))
	var n [4]byte
	binary.BigEndian.PutUint32(n[:], uint32(len(q.Options)))
	mac.Write(n[:])
	for _, opt := range q.Options {
		writeField(mac, opt)
	}
	writeField(mac, q.CorrectAnswer)
	return hex.EncodeToString(mac.Sum(nil))
}

// Valid accepts an empty token and any token when signing is disabled.
func (s *Signer) Valid(q Question, token string) bool {
	if !s.Enabled() || token == "" {
		return true
	}
	return hmac.Equal([]byte(s.Sign(q)), []byte(token))
}

// writeField length-prefixes v so adjacent fields cannot be shifted.
func writeField(h hash.Hash, v string) {
	var n [4]byte
	binary.BigEndian.PutUint32(n[:], uint32(len(v)))
	h.Write(n[:])
	h.Write([]byte(v))
}
