package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTRoundTrip(t *testing.T) {
	j := NewJWT("test-secret")

	token, err := j.Sign(42)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	uid, err := j.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), uid)
}

func TestJWTVerifyRejectsWrongSecret(t *testing.T) {
	token, err := NewJWT("secret-a").Sign(7)
	require.NoError(t, err)

	_, err = NewJWT("secret-b").Verify(token)
	assert.Error(t, err)
}

func TestJWTVerifyRejectsGarbage(t *testing.T) {
	_, err := NewJWT("secret").Verify("not.a.token")
	assert.Error(t, err)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("hunter2hunter2")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter2hunter2", hash)

	assert.True(t, ComparePassword(hash, "hunter2hunter2"))
	assert.False(t, ComparePassword(hash, "wrong password"))
}
