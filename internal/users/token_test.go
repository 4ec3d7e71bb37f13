package users_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zibacafe/cafe-system/internal/users"
)

func TestTokenRoundTrip(t *testing.T) {
	issuer := &users.TokenIssuer{Secret: []byte("test-secret"), TTL: 30 * time.Minute}

	token, err := issuer.Issue("barista@ziba.cafe", time.Now().UTC())
	require.NoError(t, err)
	require.NotEmpty(t, token)

	email, err := issuer.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "barista@ziba.cafe", email)
}

func TestTokenExpired(t *testing.T) {
	issuer := &users.TokenIssuer{Secret: []byte("test-secret"), TTL: 30 * time.Minute}

	token, err := issuer.Issue("barista@ziba.cafe", time.Now().UTC().Add(-time.Hour))
	require.NoError(t, err)

	_, err = issuer.Verify(token)
	assert.ErrorIs(t, err, users.ErrInvalidToken)
}

func TestTokenWrongSecret(t *testing.T) {
	issuer := &users.TokenIssuer{Secret: []byte("test-secret"), TTL: 30 * time.Minute}
	other := &users.TokenIssuer{Secret: []byte("another-secret"), TTL: 30 * time.Minute}

	token, err := issuer.Issue("barista@ziba.cafe", time.Now().UTC())
	require.NoError(t, err)

	_, err = other.Verify(token)
	assert.ErrorIs(t, err, users.ErrInvalidToken)
}

func TestTokenGarbage(t *testing.T) {
	issuer := &users.TokenIssuer{Secret: []byte("test-secret"), TTL: 30 * time.Minute}
	_, err := issuer.Verify("not.a.token")
	assert.ErrorIs(t, err, users.ErrInvalidToken)
}
