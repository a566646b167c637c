package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher(t *testing.T) {
	hasher := BcryptHasher{Cost: bcrypt.MinCost}

	t.Run("HashAndCompare", func(t *testing.T) {
		hash, err := hasher.Hash("secret123")
		assert.NoError(t, err)
		assert.NotEqual(t, "secret123", hash)
		assert.NoError(t, hasher.Compare(hash, "secret123"))
		assert.Error(t, hasher.Compare(hash, "wrong"))
	})

	t.Run("FreshSaltPerHash", func(t *testing.T) {
		first, err := hasher.Hash("secret123")
		assert.NoError(t, err)
		second, err := hasher.Hash("secret123")
		assert.NoError(t, err)
		assert.NotEqual(t, first, second)
	})
}
