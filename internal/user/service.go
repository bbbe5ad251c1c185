package user

import (
	"context"
	"strings"

	"bookreviews/internal/entity"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Register(ctx context.Context, name, email, hashedPassword string) (entity.User, error) {
	newUser := &entity.User{
		Name:     strings.TrimSpace(name),
		Email:    strings.ToLower(strings.TrimSpace(email)),
		Password: hashedPassword,
	}

	if err := s.repo.Create(ctx, newUser); err != nil {
		return entity.User{}, err
	}

	return *newUser, nil
}

func (s *Service) GetByEmail(ctx context.Context, email string) (entity.User, error) {
	return s.repo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
}

func (s *Service) GetByID(ctx context.Context, id string) (entity.User, error) {
	return s.repo.GetByID(ctx, id)
}
