package service

import (
	"fmt"
	"strings"

	"bookshelf/database"
	"bookshelf/database/model"
	"bookshelf/logger"
	"bookshelf/util/common"
	"bookshelf/util/crypto"
)

const minPasswordLength = 8

// UserService handles signup and login against the credential store.
type UserService struct {
	tokenService *TokenService
}

func NewUserService() *UserService {
	return &UserService{tokenService: NewTokenService()}
}

// SignUp persists a new user with a hashed password. The email must be
// unused and the password must meet the minimum length policy.
func (s *UserService) SignUp(email, password string) (int, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return 0, fmt.Errorf("email is required: %w", common.ErrValidation)
	}
	if len(password) < minPasswordLength {
		return 0, fmt.Errorf("password must be at least %d characters: %w", minPasswordLength, common.ErrValidation)
	}

	db := database.GetDB()

	var count int64
	if err := db.Model(&model.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return 0, err
	}
	if count > 0 {
		return 0, fmt.Errorf("email already registered: %w", common.ErrValidation)
	}

	hash, err := crypto.HashPasswordAsBcrypt(password)
	if err != nil {
		return 0, err
	}

	user := &model.User{
		Email:        email,
		PasswordHash: hash,
	}
	if err := db.Create(user).Error; err != nil {
		return 0, err
	}
	logger.Info("new user registered:", email)
	return user.Id, nil
}

// Login checks the credentials and issues a bearer token.
func (s *UserService) Login(email, password string) (int, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	db := database.GetDB()

	user := &model.User{}
	err := db.Model(&model.User{}).Where("email = ?", email).First(user).Error
	if database.IsNotFound(err) {
		return 0, "", fmt.Errorf("no user for %s: %w", email, common.ErrNotFound)
	} else if err != nil {
		return 0, "", err
	}

	if !crypto.CheckPasswordHash(user.PasswordHash, password) {
		return 0, "", fmt.Errorf("password mismatch: %w", common.ErrUnauthorized)
	}

	token, err := s.tokenService.Issue(user.Id)
	if err != nil {
		return 0, "", err
	}
	return user.Id, token, nil
}
