package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/zvrva/transitline/internal/domain"
)

var ErrInvalidToken = errors.New("invalid token")

// TokenManager issues and verifies the bearer tokens the API trusts for
// user identity. The user id always comes from here, never from request
// bodies.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	return &TokenManager{secret: []byte(secret), ttl: ttl}
}

func (m *TokenManager) Generate(user *domain.User) (string, error) {
	claims := jwt.MapClaims{
		"id":       user.ID,
		"username": user.Username,
		"is_staff": user.IsStaff,
		"exp":      time.Now().Add(m.ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// Verify parses the token and returns the caller's identity.
func (m *TokenManager) Verify(tokenString string) (userID int64, isStaff bool, err error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return 0, false, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, false, ErrInvalidToken
	}
	id, ok := claims["id"].(float64)
	if !ok {
		return 0, false, ErrInvalidToken
	}
	staff, _ := claims["is_staff"].(bool)
	return int64(id), staff, nil
}
