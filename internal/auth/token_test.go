package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTokenManager(t *testing.T) {
	tm := NewTokenManager("test-secret", 60)

	t.Run("RoundTrip", func(t *testing.T) {
		token, expiresAt, err := tm.GenerateToken("alice")
		assert.NoError(t, err)
		assert.NotEmpty(t, token)
		assert.True(t, expiresAt.After(time.Now()))

		claims, err := tm.ParseToken(token)
		assert.NoError(t, err)
		assert.Equal(t, "alice", claims.Login)
	})

	t.Run("RejectsWrongSecret", func(t *testing.T) {
		token, _, err := tm.GenerateToken("alice")
		assert.NoError(t, err)

		other := NewTokenManager("other-secret", 60)
		claims, err := other.ParseToken(token)
		assert.Error(t, err)
		assert.Nil(t, claims)
	})

	t.Run("RejectsGarbage", func(t *testing.T) {
		claims, err := tm.ParseToken("not-a-token")
		assert.Error(t, err)
		assert.Nil(t, claims)
	})
}
