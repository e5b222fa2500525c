package authUtils

import (
	"fmt"
	"time"

	"github.com/dgrijalva/jwt-go"

	"urbanmind-be/config"
)

// TokenTTL is overridden from config at startup.
var TokenTTL = 72 * time.Hour

func secret() ([]byte, error) {
	if config.C.JWTSecret == "" {
		return nil, fmt.Errorf("JWT secret is not configured")
	}
	return []byte(config.C.JWTSecret), nil
}

// GenerateToken mints a signed JWT carrying the user's id and role.
func GenerateToken(userID, role string) (string, error) {
	jwtSecret, err := secret()
	if err != nil {
		return "", err
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"role":    role,
		"exp":     time.Now().Add(TokenTTL).Unix(),
	})

	tokenString, err := token.SignedString(jwtSecret)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// ParseToken verifies a bearer token and returns the user id and role claims.
func ParseToken(tokenString string) (userID, role string, err error) {
	jwtSecret, err := secret()
	if err != nil {
		return "", "", err
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return "", "", fmt.Errorf("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", "", fmt.Errorf("invalid token claims")
	}
	userID, _ = claims["user_id"].(string)
	role, _ = claims["role"].(string)
	if userID == "" {
		return "", "", fmt.Errorf("invalid token claims")
	}
	return userID, role, nil
}
