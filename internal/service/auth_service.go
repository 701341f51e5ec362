package service

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/semaphore"
	"gorm.io/gorm"

	"inkpost/internal/auth"
	apperrors "inkpost/internal/errors"
	"inkpost/internal/model"
	"inkpost/internal/repository"
)

// bcryptCost is the fixed work factor for password hashing.
const bcryptCost = 12

// AuthService handles registration and credential verification.
type AuthService interface {
	Register(ctx context.Context, name, email, password string) (*model.User, string, error)
	Login(ctx context.Context, email, password string) (*model.User, string, error)
}

type authService struct {
	users  repository.UserRepository
	tokens *auth.JWTService
	// hashSem bounds concurrent bcrypt work so hashing bursts cannot starve
	// request dispatch.
	hashSem *semaphore.Weighted
}

// NewAuthService creates a new authentication service.
func NewAuthService(users repository.UserRepository, tokens *auth.JWTService) AuthService {
	return &authService{
		users:   users,
		tokens:  tokens,
		hashSem: semaphore.NewWeighted(int64(runtime.GOMAXPROCS(0))),
	}
}

// NormalizeEmail lowercases and trims an email so uniqueness and lookups are
// case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a new account with a hashed password and issues a token
// for immediate login. The email must not belong to any existing account,
// active or not.
func (s *authService) Register(ctx context.Context, name, email, password string) (*model.User, string, error) {
	name = strings.TrimSpace(name)
	email = NormalizeEmail(email)

	existing, err := s.users.FindByEmail(ctx, email)
	if err == nil && existing != nil {
		return nil, "", apperrors.ErrDuplicateEmail
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", fmt.Errorf("check email: %w", err)
	}

	hash, err := s.hashPassword(ctx, password)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         model.RoleUser,
		IsActive:     true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, "", fmt.Errorf("create user: %w", err)
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, "", fmt.Errorf("issue token: %w", err)
	}
	return user, token, nil
}

// Login verifies credentials and issues a token. Unknown emails, wrong
// passwords and deactivated accounts all fail with the same error.
func (s *authService) Login(ctx context.Context, email, password string) (*model.User, string, error) {
	user, err := s.users.FindByEmail(ctx, NormalizeEmail(email))
	if err != nil || user == nil || !user.IsActive {
		return nil, "", apperrors.ErrInvalidCredentials
	}

	if err := s.verifyPassword(ctx, password, user.PasswordHash); err != nil {
		return nil, "", apperrors.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, "", fmt.Errorf("issue token: %w", err)
	}
	return user, token, nil
}

func (s *authService) hashPassword(ctx context.Context, password string) (string, error) {
	if err := s.hashSem.Acquire(ctx, 1); err != nil {
		return "", err
	}
	defer s.hashSem.Release(1)

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// verifyPassword compares in constant time; an invalid or missing hash fails
// the comparison rather than erroring out.
func (s *authService) verifyPassword(ctx context.Context, password, hash string) error {
	if err := s.hashSem.Acquire(ctx, 1); err != nil {
		return err
	}
	defer s.hashSem.Release(1)

	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}
