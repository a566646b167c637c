package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUUIDKeyGenerator(t *testing.T) {
	gen := UUIDKeyGenerator{}

	first := gen.Generate()
	second := gen.Generate()

	assert.NotEmpty(t, first)
	assert.NotEmpty(t, second)
	assert.NotEqual(t, first, second)
}
