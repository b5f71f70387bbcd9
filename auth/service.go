package auth

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"unicode/utf8"

	"github.com/krishkalaria12/snap-studio/apperr"
	"github.com/krishkalaria12/snap-studio/models"
	"gorm.io/gorm"
)

const (
	minPasswordLength = 8
	maxPasswordBytes  = 72
	minUsernameLength = 3
	maxUsernameLength = 50
)

var (
	ErrInvalidCredentials = apperr.Authentication("invalid email or password")
	ErrEmailTaken         = apperr.Conflict("email already exists")
	ErrUsernameTaken      = apperr.Conflict("username already exists")
	ErrUserNotFound       = apperr.NotFound("user not found")
)

type RegisterInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Username string `json:"username"`
}

// AuthResult is returned by Register and Login.
type AuthResult struct {
	User  *models.User `json:"user"`
	Token string       `json:"token"`
}

type Service struct {
	db     *gorm.DB
	tokens *TokenService
}

func NewService(db *gorm.DB, tokens *TokenService) *Service {
	return &Service{db: db, tokens: tokens}
}

func (s *Service) Tokens() *TokenService {
	return s.tokens
}

func (s *Service) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	if err := validateRegistration(input); err != nil {
		return nil, err
	}

	var existing models.User
	err := s.db.WithContext(ctx).
		Where("email = ? OR username = ?", input.Email, input.Username).
		First(&existing).Error
	switch {
	case err == nil:
		if existing.Email == input.Email {
			return nil, ErrEmailTaken
		}
		return nil, ErrUsernameTaken
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	hash, err := hashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := models.User{
		Email:    input.Email,
		Username: input.Username,
		Password: hash,
	}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// lost a race with a concurrent registration
			return nil, apperr.Conflict("email or username already exists")
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	return s.issue(&user)
}

// Login compares email exactly as stored; it is not case-folded.
func (s *Service) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	if !checkPasswordHash(password, user.Password) {
		return nil, ErrInvalidCredentials
	}

	return s.issue(&user)
}

func (s *Service) Profile(ctx context.Context, userID uint) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &user, nil
}

func (s *Service) issue(user *models.User) (*AuthResult, error) {
	tokenStr, err := s.tokens.Issue(user)
	if err != nil {
		return nil, err
	}
	return &AuthResult{User: user, Token: tokenStr}, nil
}

func validateRegistration(input RegisterInput) error {
	addr, err := mail.ParseAddress(input.Email)
	if err != nil || addr.Address != input.Email {
		return apperr.Validation("invalid email address")
	}
	n := utf8.RuneCountInString(input.Username)
	if n < minUsernameLength || n > maxUsernameLength {
		return apperr.Validation(fmt.Sprintf("username must be between %d and %d characters", minUsernameLength, maxUsernameLength))
	}
	if utf8.RuneCountInString(input.Password) < minPasswordLength {
		return apperr.Validation(fmt.Sprintf("password must be at least %d characters", minPasswordLength))
	}
	if len(input.Password) > maxPasswordBytes {
		return apperr.Validation(fmt.Sprintf("password must be at most %d bytes", maxPasswordBytes))
	}
	return nil
}
