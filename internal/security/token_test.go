package security

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "unit-test-secret-0123456789abcdef"

func TestTokenManager_RoundTrip(t *testing.T) {
	tm := NewTokenManager(testSecret, 60)

	token, err := tm.GenerateAccessToken(7, "manager1", []string{"Менеджер"})
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := tm.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, int32(7), claims.StaffID)
	assert.Equal(t, "manager1", claims.Username)
	assert.Equal(t, []string{"Менеджер"}, claims.Groups)
	assert.Equal(t, "rentaldesk", claims.Issuer)
}

func TestTokenManager_WrongSecret(t *testing.T) {
	token, err := NewTokenManager(testSecret, 60).GenerateAccessToken(7, "manager1", nil)
	require.NoError(t, err)

	_, err = NewTokenManager("another-secret-0123456789abcdefgh", 60).ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenManager_Expired(t *testing.T) {
	tm := NewTokenManager(testSecret, -1)

	token, err := tm.GenerateAccessToken(7, "manager1", nil)
	require.NoError(t, err)

	_, err = tm.ValidateToken(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestTokenManager_Garbage(t *testing.T) {
	_, err := NewTokenManager(testSecret, 60).ValidateToken("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
