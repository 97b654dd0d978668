package utilities

import (
	"errors"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"teamfeedback-backend/internal/model"
)

var (
	secretMu     sync.RWMutex
	accessSecret []byte
)

// AccessTokenExpiry is used when no session timeout is configured.
const AccessTokenExpiry = time.Hour * 12

// Claims struct
type Claims struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// SetAccessSecret installs the HMAC key for access tokens.
func SetAccessSecret(secret string) {
	secretMu.Lock()
	defer secretMu.Unlock()
	accessSecret = []byte(secret)
}

func currentSecret() ([]byte, error) {
	secretMu.RLock()
	defer secretMu.RUnlock()
	if len(accessSecret) == 0 {
		return nil, errors.New("access secret is not configured")
	}
	return accessSecret, nil
}

// GenerateAccessToken signs an access token for the given user.
func GenerateAccessToken(user *model.User, expiry time.Duration) (string, error) {
	secret, err := currentSecret()
	if err != nil {
		return "", err
	}
	if expiry <= 0 {
		expiry = AccessTokenExpiry
	}
	claims := &Claims{
		UserID: user.ID,
		Name:   user.Name,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiry)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Subject:   user.ID,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// ValidateToken verifies the token and extracts claims
func ValidateToken(tokenStr string) (*Claims, error) {
	secret, err := currentSecret()
	if err != nil {
		return nil, err
	}

	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	})
	if err != nil {
		return nil, errors.New("invalid or malformed token")
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}
