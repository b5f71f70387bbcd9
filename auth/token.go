package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/go-pkgz/auth/v2/token"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/krishkalaria12/snap-studio/models"
)

var ErrInvalidToken = errors.New("invalid or expired token")

// Identity is what a verified bearer token says about its holder.
type Identity struct {
	UserID uint
	Email  string
}

type TokenOptions struct {
	Secret   string
	Issuer   string
	Duration time.Duration
}

// TokenService mints and verifies signed, time-limited bearer tokens.
type TokenService struct {
	jwt      *token.Service
	issuer   string
	duration time.Duration
}

func NewTokenService(opts TokenOptions) *TokenService {
	secret := opts.Secret
	svc := token.NewService(token.Opts{
		SecretReader: token.SecretFunc(func(string) (string, error) {
			return secret, nil
		}),
		TokenDuration: opts.Duration,
		Issuer:        opts.Issuer,
	})

	return &TokenService{
		jwt:      svc,
		issuer:   opts.Issuer,
		duration: opts.Duration,
	}
}

// Issue returns a new token for user. Every call carries a fresh token id,
// so two tokens for the same user never collide.
func (s *TokenService) Issue(user *models.User) (string, error) {
	now := time.Now()
	id := strconv.FormatUint(uint64(user.ID), 10)

	claims := token.Claims{
		User: &token.User{
			ID:    id,
			Name:  user.Username,
			Email: user.Email,
		},
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   id,
			Issuer:    s.issuer,
			Audience:  []string{s.issuer},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.duration)),
		},
	}

	tokenStr, err := s.jwt.Token(claims)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return tokenStr, nil
}

func (s *TokenService) Parse(tokenStr string) (Identity, error) {
	claims, err := s.jwt.Parse(tokenStr)
	if err != nil {
		return Identity{}, ErrInvalidToken
	}
	if claims.User == nil || claims.ExpiresAt == nil || !claims.ExpiresAt.After(time.Now()) {
		return Identity{}, ErrInvalidToken
	}

	userID, err := strconv.ParseUint(claims.User.ID, 10, 32)
	if err != nil || userID == 0 {
		return Identity{}, ErrInvalidToken
	}

	return Identity{UserID: uint(userID), Email: claims.User.Email}, nil
}
