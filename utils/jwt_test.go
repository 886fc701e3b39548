package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndVerifyToken(t *testing.T) {
	token, err := GenerateToken(7, "Budi", "akunting", []string{"viewSavings", "approveSaving"}, time.Hour)
	require.NoError(t, err)

	claims, err := VerifyToken(token)
	require.NoError(t, err)

	assert.Equal(t, float64(7), claims["member_id"])
	assert.Equal(t, "Budi", claims["name"])
	assert.Equal(t, "akunting", claims["role"])

	perms, ok := claims["perms"].([]interface{})
	require.True(t, ok)
	assert.Len(t, perms, 2)
}

func TestVerifyTokenRejectsExpired(t *testing.T) {
	token, err := GenerateToken(7, "Budi", "member", nil, -time.Minute)
	require.NoError(t, err)

	_, err = VerifyToken(token)
	assert.Error(t, err)
}

func TestVerifyTokenRejectsGarbage(t *testing.T) {
	_, err := VerifyToken("bukan.token.jwt")
	assert.Error(t, err)
}
