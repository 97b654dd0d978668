package service

import (
	"context"
	"errors"

	"teamfeedback-backend/internal/db"
	"teamfeedback-backend/internal/model"
	"teamfeedback-backend/internal/repository"
)

type UserService interface {
	GetUserByID(ctx context.Context, id string) (*model.User, error)
}

type userService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	user, err := s.userRepo.GetUserByID(ctx, id)
	if errors.Is(err, db.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	return user, err
}
