package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/unihub/unihub-api/internal/domain/dto"
	"github.com/unihub/unihub-api/internal/domain/entity"
	"github.com/unihub/unihub-api/internal/ports/secondary"
)

// Dispatcher decouples lifecycle operations from the notification fan-out.
// Dispatch must never block and never report delivery failures back.
type Dispatcher interface {
	Dispatch(n secondary.Notification)
}

// MembershipService is the club membership lifecycle engine. Every operation
// is a guarded state transition executed inside a single transaction that
// spans the authorization read, the mutation, the cascading deletes and the
// audit-log write.
type MembershipService struct {
	tx   secondary.TxManager
	auth *AuthService
	logs *ClubLogService

	userRepo   secondary.UserRepository
	clubRepo   secondary.ClubRepository
	memberRepo secondary.MembershipRepository
	eventRepo  secondary.EventRepository

	notify Dispatcher
}

func NewMembershipService(
	tx secondary.TxManager,
	auth *AuthService,
	logs *ClubLogService,
	userStorage secondary.UserRepository,
	clubStorage secondary.ClubRepository,
	memberStorage secondary.MembershipRepository,
	eventStorage secondary.EventRepository,
	notify Dispatcher,
) *MembershipService {
	return &MembershipService{
		tx:         tx,
		auth:       auth,
		logs:       logs,
		userRepo:   userStorage,
		clubRepo:   clubStorage,
		memberRepo: memberStorage,
		eventRepo:  eventStorage,
		notify:     notify,
	}
}

// RequestToJoin creates a PENDING membership request. Uniqueness is enforced
// by the composite primary key, so two concurrent requests from the same user
// cannot both succeed.
func (s *MembershipService) RequestToJoin(ctx context.Context, actorUID, clubID string) error {
	return runTx(ctx, s.tx, func(ctx context.Context) error {
		user, err := s.auth.ResolveUser(ctx, actorUID)
		if err != nil {
			return err
		}
		if _, err := s.clubRepo.Get(ctx, clubID); err != nil {
			if errors.Is(err, secondary.ErrNotFound) {
				return ErrClubNotFound
			}
			return err
		}

		err = s.memberRepo.Create(ctx, &entity.Membership{
			UserID: user.ID,
			ClubID: clubID,
			Role:   entity.RoleMember,
			Status: entity.MembershipStatusPending,
		})
		if errors.Is(err, secondary.ErrDuplicate) {
			return ErrAlreadyMemberOrPending
		}
		return err
	})
}

// WithdrawJoinRequest deletes the caller's own PENDING request.
func (s *MembershipService) WithdrawJoinRequest(ctx context.Context, actorUID, clubID string) error {
	return runTx(ctx, s.tx, func(ctx context.Context) error {
		user, err := s.auth.ResolveUser(ctx, actorUID)
		if err != nil {
			return err
		}

		m, err := s.memberRepo.GetForUpdate(ctx, clubID, user.ID)
		if err != nil {
			if errors.Is(err, secondary.ErrNotFound) {
				return ErrNoPendingRequest
			}
			return err
		}
		if m.Status != entity.MembershipStatusPending {
			return ErrNoPendingRequest
		}

		return s.memberRepo.Delete(ctx, clubID, user.ID)
	})
}

// ApproveJoinRequest flips a PENDING request to APPROVED. Managers and the
// owner may approve. The approved member is notified after commit.
func (s *MembershipService) ApproveJoinRequest(ctx context.Context, actorUID, clubID, targetUserID string) error {
	var (
		target *entity.User
		club   *entity.Club
	)
	err := runTx(ctx, s.tx, func(ctx context.Context) error {
		actor, err := s.auth.RequireMembership(ctx, actorUID, clubID, entity.RoleOwner, entity.RoleManager)
		if err != nil {
			return err
		}

		request, err := s.memberRepo.GetForUpdate(ctx, clubID, targetUserID)
		if err != nil {
			if errors.Is(err, secondary.ErrNotFound) {
				return ErrRequestNotFound
			}
			return err
		}
		if request.Status != entity.MembershipStatusPending {
			return ErrRequestNotFound
		}

		request.Status = entity.MembershipStatusApproved
		if err := s.memberRepo.Update(ctx, request); err != nil {
			return err
		}

		if target, err = s.userRepo.Get(ctx, targetUserID); err != nil {
			return err
		}
		if club, err = s.clubRepo.Get(ctx, clubID); err != nil {
			return err
		}

		action := fmt.Sprintf("'%s' approved the membership request of '%s'.", actor.User.Name, target.Name)
		return s.logs.Append(ctx, clubID, actor.User.ID, action)
	})
	if err != nil {
		return err
	}

	s.notify.Dispatch(secondary.Notification{
		Kind:   secondary.NotificationMembershipApproved,
		ClubID: clubID,
		Payload: map[string]string{
			"user_id":   target.ID,
			"email":     target.Email,
			"club_name": club.Name,
		},
	})
	return nil
}

// RejectJoinRequest deletes a PENDING request outright. The audit log is the
// only remaining trace; the user may request again immediately.
func (s *MembershipService) RejectJoinRequest(ctx context.Context, actorUID, clubID, targetUserID string) error {
	return runTx(ctx, s.tx, func(ctx context.Context) error {
		actor, err := s.auth.RequireMembership(ctx, actorUID, clubID, entity.RoleOwner, entity.RoleManager)
		if err != nil {
			return err
		}

		request, err := s.memberRepo.GetForUpdate(ctx, clubID, targetUserID)
		if err != nil {
			if errors.Is(err, secondary.ErrNotFound) {
				return ErrRequestNotFound
			}
			return err
		}
		if request.Status != entity.MembershipStatusPending {
			return ErrRequestNotFound
		}

		target, err := s.userRepo.Get(ctx, targetUserID)
		if err != nil {
			return err
		}
		if err := s.memberRepo.Delete(ctx, clubID, targetUserID); err != nil {
			return err
		}

		action := fmt.Sprintf("'%s' rejected the membership request of '%s'.", actor.User.Name, target.Name)
		return s.logs.Append(ctx, clubID, actor.User.ID, action)
	})
}

// PromoteMember raises an approved plain member to manager. Owner only.
func (s *MembershipService) PromoteMember(ctx context.Context, actorUID, clubID, targetUserID string) error {
	return runTx(ctx, s.tx, func(ctx context.Context) error {
		actor, err := s.auth.RequireMembership(ctx, actorUID, clubID, entity.RoleOwner)
		if err != nil {
			return err
		}

		m, err := s.memberRepo.GetForUpdate(ctx, clubID, targetUserID)
		if err != nil {
			if errors.Is(err, secondary.ErrNotFound) {
				return ErrTargetNotAMember
			}
			return err
		}
		if !m.Approved() || m.Role != entity.RoleMember {
			return ErrNotEligibleForPromotion
		}

		m.Role = entity.RoleManager
		if err := s.memberRepo.Update(ctx, m); err != nil {
			return err
		}

		target, err := s.userRepo.Get(ctx, targetUserID)
		if err != nil {
			return err
		}
		action := fmt.Sprintf("'%s' promoted '%s' to manager.", actor.User.Name, target.Name)
		return s.logs.Append(ctx, clubID, actor.User.ID, action)
	})
}

// DemoteMember lowers a manager back to plain member. Owner only.
func (s *MembershipService) DemoteMember(ctx context.Context, actorUID, clubID, targetUserID string) error {
	return runTx(ctx, s.tx, func(ctx context.Context) error {
		actor, err := s.auth.RequireMembership(ctx, actorUID, clubID, entity.RoleOwner)
		if err != nil {
			return err
		}

		m, err := s.memberRepo.GetForUpdate(ctx, clubID, targetUserID)
		if err != nil {
			if errors.Is(err, secondary.ErrNotFound) {
				return ErrTargetNotAMember
			}
			return err
		}
		if !m.Approved() || m.Role != entity.RoleManager {
			return ErrNotEligibleForDemotion
		}

		m.Role = entity.RoleMember
		if err := s.memberRepo.Update(ctx, m); err != nil {
			return err
		}

		target, err := s.userRepo.Get(ctx, targetUserID)
		if err != nil {
			return err
		}
		action := fmt.Sprintf("'%s' demoted '%s' to member.", actor.User.Name, target.Name)
		return s.logs.Append(ctx, clubID, actor.User.ID, action)
	})
}

// RemoveMember deletes another user's membership together with their
// attendance rows for this club's events. The actor must strictly outrank the
// target: a manager cannot remove a fellow manager or the owner.
func (s *MembershipService) RemoveMember(ctx context.Context, actorUID, clubID, targetUserID string) error {
	return runTx(ctx, s.tx, func(ctx context.Context) error {
		actor, err := s.auth.RequireMembership(ctx, actorUID, clubID, entity.RoleOwner, entity.RoleManager)
		if err != nil {
			return err
		}

		m, err := s.memberRepo.GetForUpdate(ctx, clubID, targetUserID)
		if err != nil {
			if errors.Is(err, secondary.ErrNotFound) {
				return ErrTargetNotAMember
			}
			return err
		}
		if !actor.Membership.Role.Outranks(m.Role) {
			return ErrForbidden
		}

		target, err := s.userRepo.Get(ctx, targetUserID)
		if err != nil {
			return err
		}

		if err := s.eventRepo.DeleteAnswersByClubUser(ctx, clubID, targetUserID); err != nil {
			return err
		}
		if err := s.eventRepo.DeleteParticipantsByClubUser(ctx, clubID, targetUserID); err != nil {
			return err
		}
		if err := s.memberRepo.Delete(ctx, clubID, targetUserID); err != nil {
			return err
		}

		action := fmt.Sprintf("'%s' removed '%s' from the club.", actor.User.Name, target.Name)
		return s.logs.Append(ctx, clubID, actor.User.ID, action)
	})
}

// LeaveClub deletes the caller's own membership and their attendance for the
// club's events. The owner cannot leave.
func (s *MembershipService) LeaveClub(ctx context.Context, actorUID, clubID string) error {
	return runTx(ctx, s.tx, func(ctx context.Context) error {
		user, err := s.auth.ResolveUser(ctx, actorUID)
		if err != nil {
			return err
		}

		m, err := s.memberRepo.GetForUpdate(ctx, clubID, user.ID)
		if err != nil {
			if errors.Is(err, secondary.ErrNotFound) {
				return ErrNotAMember
			}
			return err
		}
		if m.Role == entity.RoleOwner {
			return ErrOwnerCannotLeave
		}

		if err := s.eventRepo.DeleteAnswersByClubUser(ctx, clubID, user.ID); err != nil {
			return err
		}
		if err := s.eventRepo.DeleteParticipantsByClubUser(ctx, clubID, user.ID); err != nil {
			return err
		}
		if err := s.memberRepo.Delete(ctx, clubID, user.ID); err != nil {
			return err
		}

		action := fmt.Sprintf("'%s' left the club.", user.Name)
		return s.logs.Append(ctx, clubID, user.ID, action)
	})
}

// TransferOwnership atomically swaps roles: the current owner becomes a
// manager and the target (any approved member) becomes the owner. Both rows
// change in one transaction so there is never a window with zero or two
// owners.
func (s *MembershipService) TransferOwnership(ctx context.Context, actorUID, clubID, newOwnerUserID string) error {
	return runTx(ctx, s.tx, func(ctx context.Context) error {
		actor, err := s.auth.RequireMembership(ctx, actorUID, clubID, entity.RoleOwner)
		if err != nil {
			return err
		}
		if actor.User.ID == newOwnerUserID {
			return nil
		}

		current, err := s.memberRepo.GetForUpdate(ctx, clubID, actor.User.ID)
		if err != nil {
			return err
		}
		target, err := s.memberRepo.GetForUpdate(ctx, clubID, newOwnerUserID)
		if err != nil {
			if errors.Is(err, secondary.ErrNotFound) {
				return ErrTargetNotAMember
			}
			return err
		}
		if !target.Approved() {
			return ErrTargetNotAMember
		}

		current.Role = entity.RoleManager
		target.Role = entity.RoleOwner
		if err := s.memberRepo.Update(ctx, current); err != nil {
			return err
		}
		if err := s.memberRepo.Update(ctx, target); err != nil {
			return err
		}

		newOwner, err := s.userRepo.Get(ctx, newOwnerUserID)
		if err != nil {
			return err
		}
		action := fmt.Sprintf("'%s' transferred club ownership to '%s'.", actor.User.Name, newOwner.Name)
		return s.logs.Append(ctx, clubID, actor.User.ID, action)
	})
}

// PendingMembers lists the club's open join requests. Managers and the owner
// may see them.
func (s *MembershipService) PendingMembers(ctx context.Context, actorUID, clubID string) ([]dto.ClubMember, error) {
	var pending []dto.ClubMember
	err := runTx(ctx, s.tx, func(ctx context.Context) error {
		if _, err := s.auth.RequireMembership(ctx, actorUID, clubID, entity.RoleOwner, entity.RoleManager); err != nil {
			return err
		}
		var err error
		pending, err = s.memberRepo.GetByClubAndStatus(ctx, clubID, entity.MembershipStatusPending)
		return err
	})
	return pending, err
}

// Members lists the club's approved members. Any approved member may see the
// roster.
func (s *MembershipService) Members(ctx context.Context, actorUID, clubID string) ([]dto.ClubMember, error) {
	var members []dto.ClubMember
	err := runTx(ctx, s.tx, func(ctx context.Context) error {
		if _, err := s.auth.RequireMembership(ctx, actorUID, clubID); err != nil {
			return err
		}
		var err error
		members, err = s.memberRepo.GetByClubAndStatus(ctx, clubID, entity.MembershipStatusApproved)
		return err
	})
	return members, err
}

// UpdateNotificationSettings toggles the caller's own per-club notification
// flags. Requires approved membership, no particular role.
func (s *MembershipService) UpdateNotificationSettings(ctx context.Context, actorUID, clubID string, settings dto.NotificationSettings) error {
	return runTx(ctx, s.tx, func(ctx context.Context) error {
		actor, err := s.auth.RequireMembership(ctx, actorUID, clubID)
		if err != nil {
			return err
		}

		m, err := s.memberRepo.GetForUpdate(ctx, clubID, actor.User.ID)
		if err != nil {
			return err
		}
		if settings.EventNotificationsEnabled != nil {
			m.EventNotificationsEnabled = *settings.EventNotificationsEnabled
		}
		if settings.PostNotificationsEnabled != nil {
			m.PostNotificationsEnabled = *settings.PostNotificationsEnabled
		}
		return s.memberRepo.Update(ctx, m)
	})
}
