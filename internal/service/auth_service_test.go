package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"inkpost/internal/auth"
	apperrors "inkpost/internal/errors"
	"inkpost/internal/model"
	"inkpost/internal/query"
)

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) List(ctx context.Context, p query.Params) ([]model.User, int64, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]model.User), args.Get(1).(int64), args.Error(2)
}

func newTestAuthService(repo *MockUserRepository) (AuthService, *auth.JWTService) {
	tokens := auth.NewJWTService("test-secret", time.Hour)
	return NewAuthService(repo, tokens), tokens
}

func TestAuthService_Register(t *testing.T) {
	tests := []struct {
		name      string
		userName  string
		email     string
		password  string
		setupMock func(*MockUserRepository)
		wantErr   error
		wantEmail string
	}{
		{
			name:     "successful registration normalizes email",
			userName: "Ana",
			email:    "A@X.com",
			password: "secret1",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "a@x.com").Return(nil, gorm.ErrRecordNotFound)
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).
					Run(func(args mock.Arguments) {
						args.Get(1).(*model.User).ID = uuid.New()
					}).Return(nil)
			},
			wantEmail: "a@x.com",
		},
		{
			name:     "duplicate email rejected for any case variant",
			userName: "Ana",
			email:    "a@X.COM",
			password: "secret1",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "a@x.com").
					Return(&model.User{Email: "a@x.com"}, nil)
			},
			wantErr: apperrors.ErrDuplicateEmail,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockUserRepository)
			tt.setupMock(repo)
			svc, tokens := newTestAuthService(repo)

			user, token, err := svc.Register(context.Background(), tt.userName, tt.email, tt.password)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, user)
				assert.Empty(t, token)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, user)
				assert.Equal(t, tt.wantEmail, user.Email)
				assert.Equal(t, model.RoleUser, user.Role)
				assert.True(t, user.IsActive)

				// hash must not equal the plaintext and must verify against it
				assert.NotEqual(t, tt.password, user.PasswordHash)
				assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(tt.password)))

				// the issued token identifies the new user
				got, err := tokens.Verify(token)
				assert.NoError(t, err)
				assert.Equal(t, user.ID, got)
			}
			repo.AssertExpectations(t)
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("secret1"), bcrypt.MinCost)
	assert.NoError(t, err)
	userID := uuid.New()

	activeUser := func() *model.User {
		return &model.User{
			ID:           userID,
			Email:        "ana@x.com",
			PasswordHash: string(hash),
			Role:         model.RoleUser,
			IsActive:     true,
		}
	}

	tests := []struct {
		name      string
		email     string
		password  string
		setupMock func(*MockUserRepository)
		wantErr   error
	}{
		{
			name:     "successful login",
			email:    "Ana@X.com",
			password: "secret1",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "ana@x.com").Return(activeUser(), nil)
			},
		},
		{
			name:     "wrong password",
			email:    "ana@x.com",
			password: "not-the-password",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "ana@x.com").Return(activeUser(), nil)
			},
			wantErr: apperrors.ErrInvalidCredentials,
		},
		{
			name:     "unknown email",
			email:    "nobody@x.com",
			password: "secret1",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "nobody@x.com").Return(nil, gorm.ErrRecordNotFound)
			},
			wantErr: apperrors.ErrInvalidCredentials,
		},
		{
			name:     "deactivated account",
			email:    "ana@x.com",
			password: "secret1",
			setupMock: func(m *MockUserRepository) {
				user := activeUser()
				user.IsActive = false
				m.On("FindByEmail", mock.Anything, "ana@x.com").Return(user, nil)
			},
			wantErr: apperrors.ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockUserRepository)
			tt.setupMock(repo)
			svc, tokens := newTestAuthService(repo)

			user, token, err := svc.Login(context.Background(), tt.email, tt.password)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, user)
				assert.Empty(t, token)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, user)
				got, err := tokens.Verify(token)
				assert.NoError(t, err)
				assert.Equal(t, userID, got)
			}
			repo.AssertExpectations(t)
		})
	}
}

func TestAuthService_RegisterThenLogin(t *testing.T) {
	repo := new(MockUserRepository)
	svc, tokens := newTestAuthService(repo)

	repo.On("FindByEmail", mock.Anything, "fresh@x.com").Return(nil, gorm.ErrRecordNotFound).Once()
	var created *model.User
	repo.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).
		Run(func(args mock.Arguments) {
			created = args.Get(1).(*model.User)
			created.ID = uuid.New()
		}).Return(nil)

	_, _, err := svc.Register(context.Background(), "Fresh", "fresh@x.com", "secret1")
	assert.NoError(t, err)

	repo.On("FindByEmail", mock.Anything, "fresh@x.com").Return(created, nil)

	user, token, err := svc.Login(context.Background(), "fresh@x.com", "secret1")
	assert.NoError(t, err)
	assert.Equal(t, created.ID, user.ID)

	got, err := tokens.Verify(token)
	assert.NoError(t, err)
	assert.Equal(t, created.ID, got)
}
