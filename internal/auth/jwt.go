package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"shrike/internal/support"
)

const tokenLifetime = 24 * time.Hour

func jwtSecret() []byte {
	return []byte(support.GetEnv("JWT_SECRET", "insecure-dev-secret"))
}

// GenerateJWT issues a signed token carrying the operator id and role.
func GenerateJWT(operatorID uint, role string) (string, error) {
	claims := jwt.MapClaims{
		"operator_id": float64(operatorID),
		"role":        role,
		"iat":         time.Now().Unix(),
		"exp":         time.Now().Add(tokenLifetime).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret())
}

func ValidateJWT(tokenString string) (map[string]interface{}, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return jwtSecret(), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}

	return claims, nil
}
