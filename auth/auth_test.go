package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	token, err := IssueCustomerToken(42)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	id, err := ParseCustomerToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), id)
}

func TestParseCustomerToken_RejectsGarbage(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	_, err := ParseCustomerToken("not-a-token")
	assert.Error(t, err)
}

func TestParseCustomerToken_RejectsWrongSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "first-secret")
	token, err := IssueCustomerToken(42)
	require.NoError(t, err)

	t.Setenv("JWT_SECRET", "second-secret")
	_, err = ParseCustomerToken(token)
	assert.Error(t, err)
}
