package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dkrasnova/brandkit/internal/common"
)

var secret = []byte("test-secret")

func TestGenerateAndParse(t *testing.T) {
	signed, err := Generate("u1", "dasha@example.com", secret, time.Hour)
	require.NoError(t, err)

	claims, err := Parse(signed, secret)
	require.NoError(t, err)
	require.Equal(t, "u1", claims.UserID)
	require.Equal(t, "dasha@example.com", claims.Email)
}

func TestParse_Expired(t *testing.T) {
	signed, err := Generate("u1", "dasha@example.com", secret, -time.Minute)
	require.NoError(t, err)

	_, err = Parse(signed, secret)
	require.ErrorIs(t, err, common.ErrTokenExpired)
}

func TestParse_WrongSecret(t *testing.T) {
	signed, err := Generate("u1", "dasha@example.com", secret, time.Hour)
	require.NoError(t, err)

	_, err = Parse(signed, []byte("other"))
	require.ErrorIs(t, err, common.ErrInvalidToken)
}

func TestParse_Garbage(t *testing.T) {
	_, err := Parse("not-a-token", secret)
	require.ErrorIs(t, err, common.ErrInvalidToken)
}
