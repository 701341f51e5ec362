package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	apperrors "inkpost/internal/errors"
	"inkpost/internal/model"
)

// MockUserFinder is a mock implementation of UserFinder.
type MockUserFinder struct {
	mock.Mock
}

func (m *MockUserFinder) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func TestGate_Authenticate(t *testing.T) {
	userID := uuid.New()

	tests := []struct {
		name      string
		ttl       time.Duration
		setupMock func(*MockUserFinder)
		wantErr   error
	}{
		{
			name: "valid token and active user",
			ttl:  time.Hour,
			setupMock: func(m *MockUserFinder) {
				m.On("FindByID", mock.Anything, userID).Return(&model.User{
					ID:       userID,
					Role:     model.RoleUser,
					IsActive: true,
				}, nil)
			},
		},
		{
			name: "deactivated user rejected despite valid token",
			ttl:  time.Hour,
			setupMock: func(m *MockUserFinder) {
				m.On("FindByID", mock.Anything, userID).Return(&model.User{
					ID:       userID,
					Role:     model.RoleUser,
					IsActive: false,
				}, nil)
			},
			wantErr: apperrors.ErrUnauthenticated,
		},
		{
			name: "unknown user rejected",
			ttl:  time.Hour,
			setupMock: func(m *MockUserFinder) {
				m.On("FindByID", mock.Anything, userID).Return(nil, gorm.ErrRecordNotFound)
			},
			wantErr: apperrors.ErrUnauthenticated,
		},
		{
			name:      "expired token rejected without user lookup",
			ttl:       -time.Minute,
			setupMock: func(m *MockUserFinder) {},
			wantErr:   apperrors.ErrUnauthenticated,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens := NewJWTService("test-secret", tt.ttl)
			finder := new(MockUserFinder)
			tt.setupMock(finder)
			gate := NewGate(tokens, finder)

			token, err := tokens.Issue(userID)
			assert.NoError(t, err)

			user, err := gate.Authenticate(context.Background(), token)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, user)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, userID, user.ID)
			}
			finder.AssertExpectations(t)
		})
	}
}

func TestGate_Authenticate_GarbageToken(t *testing.T) {
	tokens := NewJWTService("test-secret", time.Hour)
	finder := new(MockUserFinder)
	gate := NewGate(tokens, finder)

	user, err := gate.Authenticate(context.Background(), "definitely-not-a-jwt")
	assert.ErrorIs(t, err, apperrors.ErrUnauthenticated)
	assert.Nil(t, user)
	finder.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}

func TestGate_AuthorizeRole(t *testing.T) {
	gate := NewGate(NewJWTService("test-secret", time.Hour), new(MockUserFinder))

	admin := &model.User{Role: model.RoleAdmin}
	regular := &model.User{Role: model.RoleUser}

	assert.NoError(t, gate.AuthorizeRole(admin, model.RoleAdmin))
	assert.ErrorIs(t, gate.AuthorizeRole(regular, model.RoleAdmin), apperrors.ErrForbidden)
	assert.ErrorIs(t, gate.AuthorizeRole(nil, model.RoleAdmin), apperrors.ErrForbidden)
}

func TestGate_AuthorizeOwnership(t *testing.T) {
	gate := NewGate(NewJWTService("test-secret", time.Hour), new(MockUserFinder))

	ownerID := uuid.New()
	otherID := uuid.New()

	tests := []struct {
		name    string
		user    *model.User
		wantErr error
	}{
		{"owner allowed", &model.User{ID: ownerID, Role: model.RoleUser}, nil},
		{"admin allowed", &model.User{ID: otherID, Role: model.RoleAdmin}, nil},
		{"other user forbidden", &model.User{ID: otherID, Role: model.RoleUser}, apperrors.ErrForbidden},
		{"nil user forbidden", nil, apperrors.ErrForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := gate.AuthorizeOwnership(tt.user, ownerID)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
