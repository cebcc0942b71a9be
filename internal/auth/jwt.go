package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// WatchTokenDuration is how long an unlocked protected video stays
// accessible before the viewer has to enter the password again.
const WatchTokenDuration = 24 * time.Hour

type Claims struct {
	VideoID string `json:"videoId"`
	jwt.RegisteredClaims
}

func GenerateWatchToken(secret string, videoID string) (string, error) {
	claims := &Claims{
		VideoID: videoID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   videoID,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(WatchTokenDuration)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func ValidateWatchToken(secret string, tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	return claims, nil
}
