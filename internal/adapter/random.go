package adapter

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// TokenSource defines an interface for generating opaque capability tokens
// to enable mocking
//
//go:generate mockgen -source=random.go -destination=../mocks/random.go -package=mocks -mock_names=TokenSource=MockTokenSource
type TokenSource interface {
	// Token returns a hex-encoded token backed by n bytes of entropy
	Token(n int) (string, error)
}

// RealTokenSource implements TokenSource using crypto/rand
type RealTokenSource struct{}

// NewTokenSource creates a new cryptographically secure token source
func NewTokenSource() TokenSource {
	return &RealTokenSource{}
}

func (s *RealTokenSource) Token(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
