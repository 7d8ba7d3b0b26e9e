package services

import (
	"fmt"
	"time"

	"luxestay/errors"
	"luxestay/types"

	"github.com/dgrijalva/jwt-go"
)

type UserInfo struct {
	UserId string `json:"userid"`
	Role   string `json:"role"`
}

type Claims struct {
	UserInfo UserInfo `json:"userinfo"`
	jwt.StandardClaims
}

// TokenManager ký và kiểm tra access token HS256
type TokenManager struct {
	secret []byte
	expiry time.Duration
	now    func() time.Time
}

func NewTokenManager(secret string, expiry time.Duration) *TokenManager {
	return &TokenManager{secret: []byte(secret), expiry: expiry, now: time.Now}
}

func (m *TokenManager) GenerateToken(userInfo UserInfo) (string, error) {
	now := m.now()
	claims := &Claims{
		UserInfo: userInfo,
		StandardClaims: jwt.StandardClaims{
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(m.expiry).Unix(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// ParseToken kiểm tra chữ ký, hạn dùng và trả về actor trong token
func (m *TokenManager) ParseToken(tokenString string) (types.Actor, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return types.Actor{}, errors.NewAppError(errors.ErrCodeInvalidToken, "Token is not valid", err)
	}
	if claims.UserInfo.UserId == "" || claims.UserInfo.Role == "" {
		return types.Actor{}, errors.NewAppError(errors.ErrCodeInvalidToken, "Token is missing user info", nil)
	}
	return types.Actor{UserID: claims.UserInfo.UserId, Role: claims.UserInfo.Role}, nil
}
