package auth

import "github.com/google/uuid"

// KeyGenerator produces unguessable single-use activation keys.
type KeyGenerator interface {
	Generate() string
}

// UUIDKeyGenerator backs activation keys with random v4 UUIDs.
type UUIDKeyGenerator struct{}

// Generate returns a fresh activation key.
func (UUIDKeyGenerator) Generate() string {
	return uuid.NewString()
}
