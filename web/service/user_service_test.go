package service

import (
	"errors"
	"testing"

	"bookshelf/util/common"

	"github.com/stretchr/testify/assert"
)

func TestSignUpAndLogin(t *testing.T) {
	setupTest(t)

	userService := NewUserService()

	userId, err := userService.SignUp("reader@example.com", "correct horse battery")
	assert.NoError(t, err)
	assert.Greater(t, userId, 0)

	loginId, token, err := userService.Login("reader@example.com", "correct horse battery")
	assert.NoError(t, err)
	assert.Equal(t, userId, loginId)
	assert.NotEmpty(t, token)

	// The token must decode back to the same user.
	verifiedId, err := NewTokenService().Verify(token)
	assert.NoError(t, err)
	assert.Equal(t, userId, verifiedId)
}

func TestSignUpRejectsDuplicateEmail(t *testing.T) {
	setupTest(t)

	userService := NewUserService()

	_, err := userService.SignUp("reader@example.com", "correct horse battery")
	assert.NoError(t, err)

	_, err = userService.SignUp("Reader@Example.com", "another password")
	assert.True(t, errors.Is(err, common.ErrValidation))
}

func TestSignUpRejectsWeakPassword(t *testing.T) {
	setupTest(t)

	_, err := NewUserService().SignUp("reader@example.com", "short")
	assert.True(t, errors.Is(err, common.ErrValidation))
}

func TestLoginFailures(t *testing.T) {
	setupTest(t)

	userService := NewUserService()
	_, err := userService.SignUp("reader@example.com", "correct horse battery")
	assert.NoError(t, err)

	_, _, err = userService.Login("nobody@example.com", "whatever")
	assert.True(t, errors.Is(err, common.ErrNotFound))

	_, _, err = userService.Login("reader@example.com", "wrong password")
	assert.True(t, errors.Is(err, common.ErrUnauthorized))
}
