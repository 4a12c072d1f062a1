package service

import (
	"testing"
	"time"

	"bookshelf/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
)

func TestVerifyRejectsGarbage(t *testing.T) {
	tokenService := NewTokenService()

	_, err := tokenService.Verify("")
	assert.Error(t, err)

	_, err = tokenService.Verify("not.a.token")
	assert.Error(t, err)
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	claims := jwt.MapClaims{
		"userId": 7,
		"exp":    time.Now().Add(-time.Hour).Unix(),
	}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(config.GetJWTSecret())
	assert.NoError(t, err)

	_, err = NewTokenService().Verify(expired)
	assert.Error(t, err)
}

func TestVerifyRejectsForeignSignature(t *testing.T) {
	claims := jwt.MapClaims{
		"userId": 7,
		"exp":    time.Now().Add(time.Hour).Unix(),
	}
	forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("some-other-secret"))
	assert.NoError(t, err)

	_, err = NewTokenService().Verify(forged)
	assert.Error(t, err)
}

func TestVerifyRejectsMissingUserId(t *testing.T) {
	claims := jwt.MapClaims{
		"exp": time.Now().Add(time.Hour).Unix(),
	}
	anonymous, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(config.GetJWTSecret())
	assert.NoError(t, err)

	_, err = NewTokenService().Verify(anonymous)
	assert.Error(t, err)
}
