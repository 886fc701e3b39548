package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Dioverride dari main lewat env JWT_SECRET.
var Secret = []byte("rahasia-super-kuat")

func GenerateToken(memberID uint, name string, role string, perms []string, ttl time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"member_id": float64(memberID),
		"name":      name,
		"role":      role,
		"perms":     perms,
		"exp":       time.Now().Add(ttl).Unix(),
	})
	return token.SignedString(Secret)
}

func VerifyToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("metode tanda tangan tidak dikenal")
		}
		return Secret, nil
	})
	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, errors.New("token tidak valid")
}
