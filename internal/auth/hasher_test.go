package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHasherRoundTrip(t *testing.T) {
	h := NewHasher("unit-test-hashing-secret")

	encoded, err := h.Hash("GoodPass123!")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(encoded, "$argon2id$v=19$m=65536,t=3,p=4$"), encoded)

	ok, err := h.Verify(encoded, "GoodPass123!")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = h.Verify(encoded, "WrongPass123!")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHasherSaltIsFresh(t *testing.T) {
	h := NewHasher("unit-test-hashing-secret")

	first, err := h.Hash("GoodPass123!")
	require.NoError(t, err)
	second, err := h.Hash("GoodPass123!")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestHasherSecretIsKeyed(t *testing.T) {
	encoded, err := NewHasher("secret-one-at-least-16ch").Hash("GoodPass123!")
	require.NoError(t, err)

	// The right password under the wrong server secret must not verify.
	ok, err := NewHasher("secret-two-at-least-16ch").Verify(encoded, "GoodPass123!")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHasherVerifyMalformed(t *testing.T) {
	h := NewHasher("unit-test-hashing-secret")

	malformed := []string{
		"",
		"not-a-hash",
		"$argon2id$v=19$m=65536,t=3,p=4$onlyfiveparts",
		"$bcrypt$v=19$m=65536,t=3,p=4$c2FsdA$a2V5",
		"$argon2id$v=99$m=65536,t=3,p=4$c2FsdA$a2V5",
		"$argon2id$v=19$m=65536,t=3,p=4$!!bad!!$a2V5",
		"$argon2id$v=19$m=65536,t=3,p=4$c2FsdA$",
	}
	for _, encoded := range malformed {
		ok, err := h.Verify(encoded, "GoodPass123!")
		assert.False(t, ok, encoded)
		var hashErr *HashError
		assert.ErrorAs(t, err, &hashErr, encoded)
	}
}
