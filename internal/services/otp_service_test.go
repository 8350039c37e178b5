package services

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestGenerateToken(t *testing.T) {
	secret := []byte("unit-test-secret")

	tokenString, err := GenerateToken("user-42", secret, time.Hour)
	require.NoError(t, err)

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return secret, nil
	})
	require.NoError(t, err)
	require.True(t, token.Valid)

	claims, ok := token.Claims.(jwt.MapClaims)
	require.True(t, ok)
	assert.Equal(t, "user-42", claims["sub"])

	exp, err := claims.GetExpirationTime()
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp.Time, time.Minute)
}

func TestGenerateOTPCode(t *testing.T) {
	for i := 0; i < 50; i++ {
		code, err := generateOTPCode()
		require.NoError(t, err)
		assert.Len(t, code, 6)
		for _, r := range code {
			assert.True(t, r >= '0' && r <= '9')
		}
	}
}

func TestOTPConsumedUpdate(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	update := otpConsumedUpdate(now)

	set, ok := update["$set"].(bson.M)
	require.True(t, ok)
	assert.Equal(t, true, set["is_verified"])
	assert.Equal(t, now, set["expires_at"])
}

func TestMaskPhone(t *testing.T) {
	assert.Equal(t, "******3210", maskPhone("+919876543210"))
	assert.Equal(t, "****", maskPhone("123"))
}
