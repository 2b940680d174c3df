package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTRoundTrip(t *testing.T) {
	t.Setenv("ACCESS_TOKEN_SECRET", "secret-de-test")

	token, err := GenerateJWT("lea@plantnet.app")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	email, err := ParseJWT(token)
	require.NoError(t, err)
	assert.Equal(t, "lea@plantnet.app", email)
}

func TestParseJWTWrongSecret(t *testing.T) {
	t.Setenv("ACCESS_TOKEN_SECRET", "secret-de-test")
	token, err := GenerateJWT("lea@plantnet.app")
	require.NoError(t, err)

	t.Setenv("ACCESS_TOKEN_SECRET", "un-autre-secret")
	_, err = ParseJWT(token)
	assert.Error(t, err)
}

func TestParseJWTGarbage(t *testing.T) {
	t.Setenv("ACCESS_TOKEN_SECRET", "secret-de-test")
	_, err := ParseJWT("pas.un.jwt")
	assert.Error(t, err)
}
