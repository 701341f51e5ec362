package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"inkpost/internal/model"
	"inkpost/internal/query"
)

func TestUserService_List(t *testing.T) {
	repo := new(MockUserRepository)
	users := []model.User{{Name: "Ana"}, {Name: "Ben"}}
	repo.On("List", mock.Anything, query.Params{Page: 1, Limit: 10, Search: "a"}).
		Return(users, int64(12), nil)

	svc := NewUserService(repo)
	got, pagination, err := svc.List(context.Background(), query.Params{Search: " a "})

	assert.NoError(t, err)
	assert.Len(t, got, 2)
	assert.Equal(t, int64(12), pagination.Total)
	assert.Equal(t, 2, pagination.Pages)
	repo.AssertExpectations(t)
}

func TestUserService_List_EmptyResult(t *testing.T) {
	repo := new(MockUserRepository)
	repo.On("List", mock.Anything, query.Params{Page: 1, Limit: 10}).
		Return([]model.User(nil), int64(0), nil)

	svc := NewUserService(repo)
	got, pagination, err := svc.List(context.Background(), query.Params{})

	assert.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
	assert.Equal(t, 0, pagination.Pages)
}
