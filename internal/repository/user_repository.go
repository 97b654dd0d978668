package repository

import (
	"context"

	"teamfeedback-backend/internal/db"
	"teamfeedback-backend/internal/model"
)

type UserRepository interface {
	GetUserByID(ctx context.Context, id string) (*model.User, error)
}

type userRepository struct {
	gw db.Gateway
}

func NewUserRepository(gw db.Gateway) UserRepository {
	return &userRepository{gw: gw}
}

func (r *userRepository) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	var user model.User
	if err := r.gw.GetByID(ctx, model.TableUsers, id, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
