package secondary

import (
	"context"

	"github.com/unihub/unihub-api/internal/domain/dto"
	"github.com/unihub/unihub-api/internal/domain/entity"
)

// MembershipRepository defines data access for membership rows. Only the two
// access patterns the engine needs exist: by (club, user) and by
// (club, status).
type MembershipRepository interface {
	Create(ctx context.Context, m *entity.Membership) error
	Get(ctx context.Context, clubID, userID string) (*entity.Membership, error)
	// GetForUpdate locks the row until the surrounding transaction ends.
	GetForUpdate(ctx context.Context, clubID, userID string) (*entity.Membership, error)
	Update(ctx context.Context, m *entity.Membership) error
	Delete(ctx context.Context, clubID, userID string) error
	GetByClubAndStatus(ctx context.Context, clubID string, status entity.MembershipStatus) ([]dto.ClubMember, error)
	DeleteByClub(ctx context.Context, clubID string) error
}
