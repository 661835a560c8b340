package helpers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-that-is-long-enough-for-hs256-signing"

func TestJWTManager_GenerateAndValidate(t *testing.T) {
	t.Parallel()

	m := NewJWTManager(testSecret, time.Hour)

	token, exp, err := m.Generate("alice@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, 5*time.Second)

	assert.True(t, m.Validate(token))

	email, err := m.EmailFromToken(token)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", email)
}

func TestJWTManager_ExpiredToken(t *testing.T) {
	t.Parallel()

	// Negative lifetime yields an already-expired token.
	m := NewJWTManager(testSecret, -time.Minute)

	token, _, err := m.Generate("bob@example.com")
	require.NoError(t, err)

	assert.False(t, m.Validate(token))

	// Subject extraction skips expiry checks; only signature matters.
	email, err := m.EmailFromToken(token)
	require.NoError(t, err)
	assert.Equal(t, "bob@example.com", email)
}

func TestJWTManager_WrongSecret(t *testing.T) {
	t.Parallel()

	issuer := NewJWTManager(testSecret, time.Hour)
	verifier := NewJWTManager("a-completely-different-secret-value-here", time.Hour)

	token, _, err := issuer.Generate("carol@example.com")
	require.NoError(t, err)

	assert.False(t, verifier.Validate(token))

	_, err = verifier.EmailFromToken(token)
	assert.Error(t, err)
}

func TestJWTManager_MalformedToken(t *testing.T) {
	t.Parallel()

	m := NewJWTManager(testSecret, time.Hour)

	for _, tok := range []string{"", "not.a.jwt", "garbage"} {
		assert.False(t, m.Validate(tok), "token %q should not validate", tok)
	}
}

func TestJWTManager_Lifetime(t *testing.T) {
	t.Parallel()

	m := NewJWTManager(testSecret, 24*time.Hour)
	assert.Equal(t, 24*time.Hour, m.Lifetime())
}
