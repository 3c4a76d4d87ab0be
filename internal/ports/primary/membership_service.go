package primary

import (
	"context"

	"github.com/unihub/unihub-api/internal/domain/dto"
)

// MembershipService defines the membership lifecycle use cases.
type MembershipService interface {
	RequestToJoin(ctx context.Context, actorUID, clubID string) error
	WithdrawJoinRequest(ctx context.Context, actorUID, clubID string) error
	ApproveJoinRequest(ctx context.Context, actorUID, clubID, targetUserID string) error
	RejectJoinRequest(ctx context.Context, actorUID, clubID, targetUserID string) error
	PromoteMember(ctx context.Context, actorUID, clubID, targetUserID string) error
	DemoteMember(ctx context.Context, actorUID, clubID, targetUserID string) error
	RemoveMember(ctx context.Context, actorUID, clubID, targetUserID string) error
	LeaveClub(ctx context.Context, actorUID, clubID string) error
	TransferOwnership(ctx context.Context, actorUID, clubID, newOwnerUserID string) error
	PendingMembers(ctx context.Context, actorUID, clubID string) ([]dto.ClubMember, error)
	Members(ctx context.Context, actorUID, clubID string) ([]dto.ClubMember, error)
	UpdateNotificationSettings(ctx context.Context, actorUID, clubID string, settings dto.NotificationSettings) error
}
