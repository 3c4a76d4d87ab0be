package service

import (
	"context"
	"errors"

	"github.com/unihub/unihub-api/internal/domain/entity"
	"github.com/unihub/unihub-api/internal/ports/secondary"
)

// Actor is the authorization context for one operation: the resolved user and
// their membership in the club under action. It is computed fresh per
// operation and must be reused only inside the transaction that produced it -
// role and status can change between calls.
type Actor struct {
	User       *entity.User
	Membership *entity.Membership
}

// AuthService resolves actors and gates privileged actions on their club
// membership. It performs reads only; callers run it inside the same
// transaction as the mutation it guards.
type AuthService struct {
	userRepo   secondary.UserRepository
	memberRepo secondary.MembershipRepository
}

func NewAuthService(userStorage secondary.UserRepository, memberStorage secondary.MembershipRepository) *AuthService {
	return &AuthService{
		userRepo:   userStorage,
		memberRepo: memberStorage,
	}
}

// ResolveUser maps an external identity handle to the local user record.
func (s *AuthService) ResolveUser(ctx context.Context, actorUID string) (*entity.User, error) {
	user, err := s.userRepo.GetByExternalUID(ctx, actorUID)
	if err != nil {
		if errors.Is(err, secondary.ErrNotFound) {
			return nil, ErrIdentityNotFound
		}
		return nil, err
	}
	return user, nil
}

// RequireMembership resolves the actor and verifies an APPROVED membership in
// the club. With no allowedRoles any approved membership passes; otherwise the
// membership's role must be in the set. A PENDING row never satisfies the
// guard.
func (s *AuthService) RequireMembership(ctx context.Context, actorUID, clubID string, allowedRoles ...entity.Role) (*Actor, error) {
	user, err := s.ResolveUser(ctx, actorUID)
	if err != nil {
		return nil, err
	}

	membership, err := s.memberRepo.Get(ctx, clubID, user.ID)
	if err != nil {
		if errors.Is(err, secondary.ErrNotFound) {
			return nil, ErrNotAMember
		}
		return nil, err
	}
	if !membership.Approved() {
		return nil, ErrNotAMember
	}

	if len(allowedRoles) == 0 {
		return &Actor{User: user, Membership: membership}, nil
	}
	for _, role := range allowedRoles {
		if membership.Role == role {
			return &Actor{User: user, Membership: membership}, nil
		}
	}
	return nil, ErrForbidden
}
