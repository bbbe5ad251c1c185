package auth

import (
	"context"
	"errors"
	"time"

	"bookreviews/internal/entity"
	"bookreviews/internal/platform/crypto"
	"bookreviews/internal/user"
)

var ErrUnauthorized = errors.New("unauthorized")

const tokenTTL = 30 * 24 * time.Hour

type Service struct {
	secret      string
	userService *user.Service
}

func NewService(secret string, userService *user.Service) *Service {
	return &Service{secret: secret, userService: userService}
}

func (s *Service) Register(ctx context.Context, name, email, password string) (entity.User, string, error) {
	hashedPassword, err := crypto.HashPassword(password)
	if err != nil {
		return entity.User{}, "", err
	}

	u, err := s.userService.Register(ctx, name, email, hashedPassword)
	if err != nil {
		return entity.User{}, "", err
	}

	token, err := crypto.GenerateToken(s.secret, u.ID.Hex(), tokenTTL)
	if err != nil {
		return entity.User{}, "", err
	}
	return u, token, nil
}

func (s *Service) Login(ctx context.Context, email, password string) (entity.User, string, error) {
	u, err := s.userService.GetByEmail(ctx, email)
	if err != nil || !crypto.VerifyPassword(u.Password, password) {
		return entity.User{}, "", ErrUnauthorized
	}

	token, err := crypto.GenerateToken(s.secret, u.ID.Hex(), tokenTTL)
	if err != nil {
		return entity.User{}, "", err
	}
	return u, token, nil
}

func (s *Service) Profile(ctx context.Context, userID string) (entity.User, error) {
	u, err := s.userService.GetByID(ctx, userID)
	if err != nil {
		// The token verified but its subject no longer resolves.
		return entity.User{}, ErrUnauthorized
	}
	return u, nil
}
