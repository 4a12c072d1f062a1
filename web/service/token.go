package service

import (
	"time"

	"bookshelf/config"
	"bookshelf/util/common"

	"github.com/golang-jwt/jwt/v5"
)

const tokenLifetime = 24 * time.Hour

// TokenService issues and verifies the signed bearer tokens that gate
// every protected route.
type TokenService struct {
	secret []byte
}

func NewTokenService() *TokenService {
	return &TokenService{secret: config.GetJWTSecret()}
}

func (s *TokenService) Issue(userId int) (string, error) {
	claims := jwt.MapClaims{
		"userId": userId,
		"exp":    time.Now().Add(tokenLifetime).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Verify parses and validates a token and returns the userId claim.
// Any defect (bad signature, expiry, missing claim) collapses into
// ErrUnauthorized so callers cannot distinguish failure modes.
func (s *TokenService) Verify(tokenString string) (int, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, common.NewErrorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return 0, common.ErrUnauthorized
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, common.ErrUnauthorized
	}
	userId, ok := claims["userId"].(float64)
	if !ok || userId <= 0 {
		return 0, common.ErrUnauthorized
	}
	return int(userId), nil
}
