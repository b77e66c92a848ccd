package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashAndCompare(t *testing.T) {
	h := NewBcryptPasswordHasherWithCost(bcrypt.MinCost)

	hash, err := h.Hash("correct horse battery staple")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse battery staple", hash)

	assert.NoError(t, h.Compare(hash, "correct horse battery staple"))
	assert.Error(t, h.Compare(hash, "wrong password"))
}

func TestHashIsSalted(t *testing.T) {
	h := NewBcryptPasswordHasherWithCost(bcrypt.MinCost)

	first, err := h.Hash("same password")
	require.NoError(t, err)
	second, err := h.Hash("same password")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}
