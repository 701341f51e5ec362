package auth

import (
	"context"

	"github.com/google/uuid"

	apperrors "inkpost/internal/errors"
	"inkpost/internal/model"
)

// UserFinder is the slice of the user repository the gate needs.
type UserFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (*model.User, error)
}

// Gate authenticates bearer tokens against live user records and authorizes
// role- and ownership-based actions.
//
// Checks compose in a fixed order: Authenticate first, then AuthorizeRole
// where a role is required, then AuthorizeOwnership where ownership matters.
type Gate struct {
	tokens *JWTService
	users  UserFinder
}

// NewGate creates an access-control gate.
func NewGate(tokens *JWTService, users UserFinder) *Gate {
	return &Gate{tokens: tokens, users: users}
}

// Authenticate verifies the token and loads the user it identifies. Every
// failure mode collapses to ErrUnauthenticated: an invalid or expired token,
// an unknown user id, or a deactivated account. Deactivation therefore
// invalidates previously issued tokens even though the tokens themselves
// still verify.
func (g *Gate) Authenticate(ctx context.Context, token string) (*model.User, error) {
	userID, err := g.tokens.Verify(token)
	if err != nil {
		return nil, apperrors.ErrUnauthenticated
	}

	user, err := g.users.FindByID(ctx, userID)
	if err != nil || user == nil || !user.IsActive {
		return nil, apperrors.ErrUnauthenticated
	}
	return user, nil
}

// AuthorizeRole fails with ErrForbidden unless the user holds the required
// role.
func (g *Gate) AuthorizeRole(user *model.User, required model.Role) error {
	if user == nil || user.Role != required {
		return apperrors.ErrForbidden
	}
	return nil
}

// AuthorizeOwnership fails with ErrForbidden unless the user is an admin or
// the recorded author of the resource.
func (g *Gate) AuthorizeOwnership(user *model.User, resourceAuthorID uuid.UUID) error {
	if user == nil {
		return apperrors.ErrForbidden
	}
	if user.IsAdmin() || user.ID == resourceAuthorID {
		return nil
	}
	return apperrors.ErrForbidden
}
