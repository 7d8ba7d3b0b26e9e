package services

import (
	"testing"
	"time"

	"luxestay/constants"
	"luxestay/errors"

	"github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	tokens := NewTokenManager("secret", time.Hour)
	token, err := tokens.GenerateToken(UserInfo{UserId: "u1", Role: constants.RoleHotel})
	require.NoError(t, err)

	actor, err := tokens.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "u1", actor.UserID)
	assert.Equal(t, constants.RoleHotel, actor.Role)
}

func TestTokenRejectsWrongSecret(t *testing.T) {
	token, err := NewTokenManager("secret", time.Hour).GenerateToken(UserInfo{UserId: "u1", Role: constants.RoleUser})
	require.NoError(t, err)

	_, err = NewTokenManager("other", time.Hour).ParseToken(token)
	assert.True(t, errors.HasCode(err, errors.ErrCodeInvalidToken))
}

func TestTokenRejectsExpired(t *testing.T) {
	tokens := NewTokenManager("secret", time.Minute)
	tokens.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	token, err := tokens.GenerateToken(UserInfo{UserId: "u1", Role: constants.RoleUser})
	require.NoError(t, err)

	_, err = tokens.ParseToken(token)
	assert.True(t, errors.HasCode(err, errors.ErrCodeInvalidToken))
}

func TestTokenRejectsOtherAlgorithms(t *testing.T) {
	claims := &Claims{UserInfo: UserInfo{UserId: "u1", Role: constants.RoleAdmin}}
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = NewTokenManager("secret", time.Hour).ParseToken(token)
	assert.True(t, errors.HasCode(err, errors.ErrCodeInvalidToken))
}

func TestTokenRequiresUserInfo(t *testing.T) {
	tokens := NewTokenManager("secret", time.Hour)
	token, err := tokens.GenerateToken(UserInfo{})
	require.NoError(t, err)

	_, err = tokens.ParseToken(token)
	assert.True(t, errors.HasCode(err, errors.ErrCodeInvalidToken))
}
