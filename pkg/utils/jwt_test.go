package utils

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	jwtKey = []byte("test-secret")

	userID := uuid.New()
	token, err := CreateToken(userID, "admin")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID.String(), claims.UserID)
	assert.Equal(t, "admin", claims.Role)
}

func TestValidateTokenRejectsTampering(t *testing.T) {
	jwtKey = []byte("test-secret")

	token, err := CreateToken(uuid.New(), "user")
	require.NoError(t, err)

	_, err = ValidateToken(token + "x")
	assert.Error(t, err)

	jwtKey = []byte("rotated-secret")
	_, err = ValidateToken(token)
	assert.Error(t, err)
}
