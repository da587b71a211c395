package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher_HashVerify(t *testing.T) {
	h, err := NewBcryptHasher(bcrypt.MinCost)
	require.NoError(t, err)

	for _, password := range []string{"p1", "correct horse battery staple", "пароль", " spaced "} {
		hash, err := h.Hash(password)
		require.NoError(t, err)
		assert.NotEqual(t, password, hash)

		ok, err := h.Verify(password, hash)
		require.NoError(t, err)
		assert.True(t, ok, "password %q", password)

		ok, err = h.Verify(password+"x", hash)
		require.NoError(t, err)
		assert.False(t, ok, "password %q", password)
	}
}

func TestBcryptHasher_RejectsBytesPastLimit(t *testing.T) {
	h, err := NewBcryptHasher(bcrypt.MinCost)
	require.NoError(t, err)

	password := strings.Repeat("a", MaxPasswordBytes)
	hash, err := h.Hash(password)
	require.NoError(t, err)

	ok, err := h.Verify(password, hash)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = h.Verify(password+"DIFFERENT", hash)
	require.NoError(t, err)
	assert.False(t, ok, "bytes past the bcrypt limit must not be ignored")
}

func TestBcryptHasher_SaltedPerCall(t *testing.T) {
	h, err := NewBcryptHasher(bcrypt.MinCost)
	require.NoError(t, err)

	a, err := h.Hash("same")
	require.NoError(t, err)
	b, err := h.Hash("same")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestBcryptHasher_UsesConfiguredCost(t *testing.T) {
	h, err := NewBcryptHasher(5)
	require.NoError(t, err)

	hash, err := h.Hash("pw")
	require.NoError(t, err)
	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, 5, cost)
}

func TestBcryptHasher_MalformedHashIsError(t *testing.T) {
	h, err := NewBcryptHasher(bcrypt.MinCost)
	require.NoError(t, err)

	ok, err := h.Verify("pw", "garbage")
	assert.False(t, ok)
	assert.Error(t, err)
}

func TestNewBcryptHasher_RejectsCostOutOfRange(t *testing.T) {
	_, err := NewBcryptHasher(bcrypt.MinCost - 1)
	assert.Error(t, err)
	_, err = NewBcryptHasher(bcrypt.MaxCost + 1)
	assert.Error(t, err)
}
