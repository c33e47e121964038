package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
)

// InvitationTokenBytes gives 256 bits of entropy per token.
const InvitationTokenBytes = 32

// TokenSource produces opaque, unguessable tokens.
type TokenSource interface {
	NewToken() (string, error)
}

type RandomTokenSource struct {
	Bytes int
}

func NewRandomTokenSource() *RandomTokenSource {
	return &RandomTokenSource{Bytes: InvitationTokenBytes}
}

func (s *RandomTokenSource) NewToken() (string, error) {
	n := s.Bytes
	if n < 16 {
		n = InvitationTokenBytes
	}
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// HashToken returns the hex SHA-256 digest stored in place of the raw token.
func HashToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}
