package utils

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-for-unit-tests"

func TestGenerateAndParseJWT(t *testing.T) {
	token, err := GenerateJWT("user-123", testSecret, time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ParseJWT(token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, 5*time.Second)
}

func TestParseJWT_Expired(t *testing.T) {
	token, err := GenerateJWT("user-123", testSecret, -time.Minute)
	require.NoError(t, err)

	_, err = ParseJWT(token, testSecret)
	assert.True(t, errors.Is(err, jwt.ErrTokenExpired), "got %v", err)
}

func TestParseJWT_WrongSecret(t *testing.T) {
	token, err := GenerateJWT("user-123", testSecret, time.Hour)
	require.NoError(t, err)

	_, err = ParseJWT(token, "different-secret")
	assert.Error(t, err)
}

func TestParseJWT_Tampered(t *testing.T) {
	token, err := GenerateJWT("user-123", testSecret, time.Hour)
	require.NoError(t, err)

	tampered := token[:len(token)-5] + "XXXXX"
	_, err = ParseJWT(tampered, testSecret)
	assert.Error(t, err)
}

func TestParseJWT_RejectsNoneAlgorithm(t *testing.T) {
	claims := Claims{
		UserID: "user-123",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = ParseJWT(token, testSecret)
	assert.Error(t, err)
}

func TestParseJWT_MissingExpiry(t *testing.T) {
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{UserID: "user-123"}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = ParseJWT(token, testSecret)
	assert.Error(t, err)
}

func TestParseJWT_EmptyUserID(t *testing.T) {
	token, err := GenerateJWT("", testSecret, time.Hour)
	require.NoError(t, err)

	_, err = ParseJWT(token, testSecret)
	assert.ErrorIs(t, err, ErrEmptySubject)
}

func TestParseJWT_Garbage(t *testing.T) {
	_, err := ParseJWT("not-a-valid-jwt", testSecret)
	assert.Error(t, err)
}
