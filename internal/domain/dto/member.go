package dto

import (
	"time"

	"github.com/unihub/unihub-api/internal/domain/entity"
)

// ClubMember is a membership row joined with the member's user profile, as
// shown in rosters and pending-request lists.
type ClubMember struct {
	UserID    string
	ClubID    string
	Name      string
	Email     string
	AvatarURL string
	Role      entity.Role
	Status    entity.MembershipStatus
	JoinedAt  time.Time
}
