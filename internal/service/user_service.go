package service

import (
	"context"
	"fmt"

	"inkpost/internal/model"
	"inkpost/internal/query"
	"inkpost/internal/repository"
)

// UserService exposes the admin-facing user directory.
type UserService interface {
	List(ctx context.Context, p query.Params) ([]model.User, query.Pagination, error)
}

type userService struct {
	users repository.UserRepository
}

// NewUserService creates a user service.
func NewUserService(users repository.UserRepository) UserService {
	return &userService{users: users}
}

// List returns one page of users matching the search term, newest first.
func (s *userService) List(ctx context.Context, p query.Params) ([]model.User, query.Pagination, error) {
	p = p.Normalize()
	users, total, err := s.users.List(ctx, p)
	if err != nil {
		return nil, query.Pagination{}, fmt.Errorf("list users: %w", err)
	}
	if users == nil {
		users = []model.User{}
	}
	return users, query.NewPagination(p, total), nil
}
