package service

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unihub/unihub-api/internal/domain/dto"
	"github.com/unihub/unihub-api/internal/domain/entity"
	"github.com/unihub/unihub-api/internal/ports/secondary"
)

// seedClub creates a club with an owner, a manager, a plain member and a user
// with a pending request, all resolvable by their external UIDs "owner",
// "manager", "member" and "pending".
func seedClub(e *testEnv) *entity.Club {
	club := e.addClub("Chess Club", "chess")
	owner := e.addUser("owner", "Olivia")
	manager := e.addUser("manager", "Marcus")
	member := e.addUser("member", "Mia")
	pending := e.addUser("pending", "Pat")

	e.addMembership(club.ID, owner.ID, entity.RoleOwner, entity.MembershipStatusApproved)
	e.addMembership(club.ID, manager.ID, entity.RoleManager, entity.MembershipStatusApproved)
	e.addMembership(club.ID, member.ID, entity.RoleMember, entity.MembershipStatusApproved)
	e.addMembership(club.ID, pending.ID, entity.RoleMember, entity.MembershipStatusPending)
	return club
}

func userID(e *testEnv, uid string) string {
	u, err := e.userRepo.GetByExternalUID(context.Background(), uid)
	if err != nil {
		panic(err)
	}
	return u.ID
}

func TestRequestToJoin(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a pending member-role row", func(t *testing.T) {
		env := newTestEnv()
		club := seedClub(env)
		env.addUser("newcomer", "Nina")

		require.NoError(t, env.memberships.RequestToJoin(ctx, "newcomer", club.ID))

		m := env.membership(club.ID, userID(env, "newcomer"))
		require.NotNil(t, m)
		assert.Equal(t, entity.MembershipStatusPending, m.Status)
		assert.Equal(t, entity.RoleMember, m.Role)
	})

	t.Run("rejects duplicates for pending and approved alike", func(t *testing.T) {
		env := newTestEnv()
		club := seedClub(env)

		assert.ErrorIs(t, env.memberships.RequestToJoin(ctx, "pending", club.ID), ErrAlreadyMemberOrPending)
		assert.ErrorIs(t, env.memberships.RequestToJoin(ctx, "member", club.ID), ErrAlreadyMemberOrPending)
	})

	t.Run("only one of two concurrent requests wins", func(t *testing.T) {
		env := newTestEnv()
		club := seedClub(env)
		env.addUser("newcomer", "Nina")

		var wg sync.WaitGroup
		errs := make([]error, 2)
		for i := 0; i < 2; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				errs[i] = env.memberships.RequestToJoin(ctx, "newcomer", club.ID)
			}(i)
		}
		wg.Wait()

		succeeded := 0
		for _, err := range errs {
			if err == nil {
				succeeded++
			} else {
				assert.ErrorIs(t, err, ErrAlreadyMemberOrPending)
			}
		}
		assert.Equal(t, 1, succeeded)
	})

	t.Run("unknown club", func(t *testing.T) {
		env := newTestEnv()
		seedClub(env)
		assert.ErrorIs(t, env.memberships.RequestToJoin(ctx, "member", "missing"), ErrClubNotFound)
	})

	t.Run("unknown identity", func(t *testing.T) {
		env := newTestEnv()
		club := seedClub(env)
		assert.ErrorIs(t, env.memberships.RequestToJoin(ctx, "ghost", club.ID), ErrIdentityNotFound)
	})
}

func TestWithdrawJoinRequest(t *testing.T) {
	ctx := context.Background()

	t.Run("removes own pending request", func(t *testing.T) {
		env := newTestEnv()
		club := seedClub(env)

		require.NoError(t, env.memberships.WithdrawJoinRequest(ctx, "pending", club.ID))
		assert.Nil(t, env.membership(club.ID, userID(env, "pending")))
	})

	t.Run("approved members cannot withdraw", func(t *testing.T) {
		env := newTestEnv()
		club := seedClub(env)

		assert.ErrorIs(t, env.memberships.WithdrawJoinRequest(ctx, "member", club.ID), ErrNoPendingRequest)
		assert.NotNil(t, env.membership(club.ID, userID(env, "member")))
	})

	t.Run("no request at all", func(t *testing.T) {
		env := newTestEnv()
		club := seedClub(env)
		env.addUser("outsider", "Oscar")
		assert.ErrorIs(t, env.memberships.WithdrawJoinRequest(ctx, "outsider", club.ID), ErrNoPendingRequest)
	})
}

func TestApproveJoinRequest(t *testing.T) {
	ctx := context.Background()

	t.Run("manager approves, log references both names, member is notified", func(t *testing.T) {
		env := newTestEnv()
		club := seedClub(env)

		require.NoError(t, env.memberships.ApproveJoinRequest(ctx, "manager", club.ID, userID(env, "pending")))

		m := env.membership(club.ID, userID(env, "pending"))
		require.NotNil(t, m)
		assert.Equal(t, entity.MembershipStatusApproved, m.Status)
		assert.Equal(t, entity.RoleMember, m.Role)

		action := env.lastLog(club.ID)
		assert.Contains(t, action, "Marcus")
		assert.Contains(t, action, "Pat")

		require.Len(t, env.dispatcher.sent, 1)
		n := env.dispatcher.sent[0]
		assert.Equal(t, secondary.NotificationMembershipApproved, n.Kind)
		assert.Equal(t, "Chess Club", n.Payload["club_name"])
		assert.Equal(t, "pat@example.edu", n.Payload["email"])
	})

	t.Run("plain members cannot approve", func(t *testing.T) {
		env := newTestEnv()
		club := seedClub(env)
		err := env.memberships.ApproveJoinRequest(ctx, "member", club.ID, userID(env, "pending"))
		assert.ErrorIs(t, err, ErrForbidden)
		assert.Empty(t, env.dispatcher.sent)
	})

	t.Run("a pending requester cannot approve anyone", func(t *testing.T) {
		env := newTestEnv()
		club := seedClub(env)
		err := env.memberships.ApproveJoinRequest(ctx, "pending", club.ID, userID(env, "pending"))
		assert.ErrorIs(t, err, ErrNotAMember)
	})

	t.Run("approving twice fails the second time", func(t *testing.T) {
		env := newTestEnv()
		club := seedClub(env)
		target := userID(env, "pending")

		require.NoError(t, env.memberships.ApproveJoinRequest(ctx, "owner", club.ID, target))
		err := env.memberships.ApproveJoinRequest(ctx, "owner", club.ID, target)
		assert.ErrorIs(t, err, ErrRequestNotFound)
	})

	t.Run("no request for target", func(t *testing.T) {
		env := newTestEnv()
		club := seedClub(env)
		outsider := env.addUser("outsider", "Oscar")
		err := env.memberships.ApproveJoinRequest(ctx, "owner", club.ID, outsider.ID)
		assert.ErrorIs(t, err, ErrRequestNotFound)
	})
}

func TestRejectJoinRequest(t *testing.T) {
	ctx := context.Background()

	t.Run("deletes the request and allows an immediate re-request", func(t *testing.T) {
		env := newTestEnv()
		club := seedClub(env)
		target := userID(env, "pending")

		require.NoError(t, env.memberships.RejectJoinRequest(ctx, "manager", club.ID, target))
		assert.Nil(t, env.membership(club.ID, target))

		action := env.lastLog(club.ID)
		assert.Contains(t, action, "rejected")
		assert.Contains(t, action, "Pat")

		require.NoError(t, env.memberships.RequestToJoin(ctx, "pending", club.ID))
	})

	t.Run("rejecting an approved member is not possible", func(t *testing.T) {
		env := newTestEnv()
		club := seedClub(env)
		err := env.memberships.RejectJoinRequest(ctx, "owner", club.ID, userID(env, "member"))
		assert.ErrorIs(t, err, ErrRequestNotFound)
	})
}

func TestPromoteMember(t *testing.T) {
	ctx := context.Background()

	t.Run("owner promotes an approved member", func(t *testing.T) {
		env := newTestEnv()
		club := seedClub(env)
		target := userID(env, "member")

		require.NoError(t, env.memberships.PromoteMember(ctx, "owner", club.ID, target))
		assert.Equal(t, entity.RoleManager, env.membership(club.ID, target).Role)
		assert.Contains(t, env.lastLog(club.ID), "promoted")
	})

	t.Run("promoting a manager again fails", func(t *testing.T) {
		env := newTestEnv()
		club := seedClub(env)
		target := userID(env, "member")

		require.NoError(t, env.memberships.PromoteMember(ctx, "owner", club.ID, target))
		err := env.memberships.PromoteMember(ctx, "owner", club.ID, target)
		assert.ErrorIs(t, err, ErrNotEligibleForPromotion)
	})

	t.Run("managers cannot promote", func(t *testing.T) {
		env := newTestEnv()
		club := seedClub(env)
		err := env.memberships.PromoteMember(ctx, "manager", club.ID, userID(env, "member"))
		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("pending requesters are not eligible", func(t *testing.T) {
		env := newTestEnv()
		club := seedClub(env)
		err := env.memberships.PromoteMember(ctx, "owner", club.ID, userID(env, "pending"))
		assert.ErrorIs(t, err, ErrNotEligibleForPromotion)
	})

	t.Run("unknown target", func(t *testing.T) {
		env := newTestEnv()
		club := seedClub(env)
		outsider := env.addUser("outsider", "Oscar")
		err := env.memberships.PromoteMember(ctx, "owner", club.ID, outsider.ID)
		assert.ErrorIs(t, err, ErrTargetNotAMember)
	})
}

func TestDemoteMember(t *testing.T) {
	ctx := context.Background()

	t.Run("owner demotes a manager", func(t *testing.T) {
		env := newTestEnv()
		club := seedClub(env)
		target := userID(env, "manager")

		require.NoError(t, env.memberships.DemoteMember(ctx, "owner", club.ID, target))
		assert.Equal(t, entity.RoleMember, env.membership(club.ID, target).Role)
	})

	t.Run("plain members are not eligible", func(t *testing.T) {
		env := newTestEnv()
		club := seedClub(env)
		err := env.memberships.DemoteMember(ctx, "owner", club.ID, userID(env, "member"))
		assert.ErrorIs(t, err, ErrNotEligibleForDemotion)
	})
}

func TestRemoveMember(t *testing.T) {
	ctx := context.Background()

	t.Run("manager removes a plain member and their attendance", func(t *testing.T) {
		env := newTestEnv()
		club := seedClub(env)
		target := userID(env, "member")

		event, err := env.eventRepo.Create(ctx, &entity.Event{ClubID: club.ID, Name: "Blitz Night"})
		require.NoError(t, err)
		require.NoError(t, env.eventRepo.AddParticipant(ctx, &entity.EventParticipant{EventID: event.ID, UserID: target}))
		require.NoError(t, env.eventRepo.CreateFormQuestions(ctx, []entity.EventFormQuestion{{ID: "q1", EventID: event.ID, Text: "Board?"}}))
		require.NoError(t, env.eventRepo.CreateFormAnswers(ctx, []entity.EventFormAnswer{{QuestionID: "q1", UserID: target, EventID: event.ID, Text: "yes"}}))

		require.NoError(t, env.memberships.RemoveMember(ctx, "manager", club.ID, target))
		assert.Nil(t, env.membership(club.ID, target))

		participants, err := env.eventRepo.Participants(ctx, event.ID)
		require.NoError(t, err)
		assert.Empty(t, participants)
		answers, err := env.eventRepo.GetFormAnswers(ctx, event.ID)
		require.NoError(t, err)
		assert.Empty(t, answers)
		assert.Contains(t, env.lastLog(club.ID), "removed")
	})

	t.Run("a manager cannot remove a fellow manager", func(t *testing.T) {
		env := newTestEnv()
		club := seedClub(env)
		other := env.addUser("manager2", "Molly")
		env.addMembership(club.ID, other.ID, entity.RoleManager, entity.MembershipStatusApproved)

		err := env.memberships.RemoveMember(ctx, "manager", club.ID, other.ID)
		assert.ErrorIs(t, err, ErrForbidden)
		assert.NotNil(t, env.membership(club.ID, other.ID))
	})

	t.Run("a manager cannot remove the owner", func(t *testing.T) {
		env := newTestEnv()
		club := seedClub(env)
		err := env.memberships.RemoveMember(ctx, "manager", club.ID, userID(env, "owner"))
		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("the owner can remove a manager", func(t *testing.T) {
		env := newTestEnv()
		club := seedClub(env)
		require.NoError(t, env.memberships.RemoveMember(ctx, "owner", club.ID, userID(env, "manager")))
	})
}

func TestLeaveClub(t *testing.T) {
	ctx := context.Background()

	t.Run("the owner cannot leave", func(t *testing.T) {
		env := newTestEnv()
		club := seedClub(env)
		assert.ErrorIs(t, env.memberships.LeaveClub(ctx, "owner", club.ID), ErrOwnerCannotLeave)
		assert.Equal(t, 1, env.ownerCount(club.ID))
	})

	t.Run("a manager leaves and their attendance is removed", func(t *testing.T) {
		env := newTestEnv()
		club := seedClub(env)
		target := userID(env, "manager")

		event, err := env.eventRepo.Create(ctx, &entity.Event{ClubID: club.ID, Name: "Planning"})
		require.NoError(t, err)
		require.NoError(t, env.eventRepo.AddParticipant(ctx, &entity.EventParticipant{EventID: event.ID, UserID: target}))

		require.NoError(t, env.memberships.LeaveClub(ctx, "manager", club.ID))
		assert.Nil(t, env.membership(club.ID, target))

		participants, err := env.eventRepo.Participants(ctx, event.ID)
		require.NoError(t, err)
		assert.Empty(t, participants)
		assert.Equal(t, "'Marcus' left the club.", env.lastLog(club.ID))
	})

	t.Run("non-members cannot leave", func(t *testing.T) {
		env := newTestEnv()
		club := seedClub(env)
		env.addUser("outsider", "Oscar")
		assert.ErrorIs(t, env.memberships.LeaveClub(ctx, "outsider", club.ID), ErrNotAMember)
	})
}

func TestTransferOwnership(t *testing.T) {
	ctx := context.Background()

	t.Run("swaps roles atomically, exactly one owner remains", func(t *testing.T) {
		env := newTestEnv()
		club := seedClub(env)
		target := userID(env, "member")

		require.NoError(t, env.memberships.TransferOwnership(ctx, "owner", club.ID, target))

		assert.Equal(t, entity.RoleOwner, env.membership(club.ID, target).Role)
		assert.Equal(t, entity.RoleManager, env.membership(club.ID, userID(env, "owner")).Role)
		assert.Equal(t, 1, env.ownerCount(club.ID))
		assert.Contains(t, env.lastLog(club.ID), "transferred club ownership")
	})

	t.Run("transfer back restores the original state", func(t *testing.T) {
		env := newTestEnv()
		club := seedClub(env)
		original := userID(env, "owner")
		target := userID(env, "member")

		require.NoError(t, env.memberships.TransferOwnership(ctx, "owner", club.ID, target))
		require.NoError(t, env.memberships.TransferOwnership(ctx, "member", club.ID, original))

		assert.Equal(t, entity.RoleOwner, env.membership(club.ID, original).Role)
		assert.Equal(t, entity.RoleManager, env.membership(club.ID, target).Role)
		assert.Equal(t, 1, env.ownerCount(club.ID))
	})

	t.Run("transfer to self is a no-op", func(t *testing.T) {
		env := newTestEnv()
		club := seedClub(env)
		require.NoError(t, env.memberships.TransferOwnership(ctx, "owner", club.ID, userID(env, "owner")))
		assert.Equal(t, entity.RoleOwner, env.membership(club.ID, userID(env, "owner")).Role)
	})

	t.Run("pending requesters cannot receive ownership", func(t *testing.T) {
		env := newTestEnv()
		club := seedClub(env)
		err := env.memberships.TransferOwnership(ctx, "owner", club.ID, userID(env, "pending"))
		assert.ErrorIs(t, err, ErrTargetNotAMember)
		assert.Equal(t, 1, env.ownerCount(club.ID))
	})

	t.Run("only the owner may transfer", func(t *testing.T) {
		env := newTestEnv()
		club := seedClub(env)
		err := env.memberships.TransferOwnership(ctx, "manager", club.ID, userID(env, "member"))
		assert.ErrorIs(t, err, ErrForbidden)
	})
}

func TestMemberListings(t *testing.T) {
	ctx := context.Background()

	t.Run("any approved member sees the roster, pending rows excluded", func(t *testing.T) {
		env := newTestEnv()
		club := seedClub(env)

		members, err := env.memberships.Members(ctx, "member", club.ID)
		require.NoError(t, err)
		assert.Len(t, members, 3)
		for _, m := range members {
			assert.Equal(t, entity.MembershipStatusApproved, m.Status)
		}
	})

	t.Run("pending list is manager-gated", func(t *testing.T) {
		env := newTestEnv()
		club := seedClub(env)

		pending, err := env.memberships.PendingMembers(ctx, "manager", club.ID)
		require.NoError(t, err)
		require.Len(t, pending, 1)
		assert.Equal(t, "Pat", pending[0].Name)

		_, err = env.memberships.PendingMembers(ctx, "member", club.ID)
		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("outsiders see nothing", func(t *testing.T) {
		env := newTestEnv()
		club := seedClub(env)
		env.addUser("outsider", "Oscar")

		_, err := env.memberships.Members(ctx, "outsider", club.ID)
		assert.ErrorIs(t, err, ErrNotAMember)

		_, err = env.memberships.Members(ctx, "pending", club.ID)
		assert.ErrorIs(t, err, ErrNotAMember)
	})
}

func TestUpdateNotificationSettings(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()
	club := seedClub(env)

	off := false
	err := env.memberships.UpdateNotificationSettings(ctx, "member", club.ID, dto.NotificationSettings{
		EventNotificationsEnabled: &off,
	})
	require.NoError(t, err)

	m := env.membership(club.ID, userID(env, "member"))
	assert.False(t, m.EventNotificationsEnabled)
	assert.True(t, m.PostNotificationsEnabled)
}

func TestRunTxRetriesSerializationConflicts(t *testing.T) {
	ctx := context.Background()

	t.Run("one conflict is retried", func(t *testing.T) {
		env := newTestEnv()
		club := seedClub(env)
		env.addUser("newcomer", "Nina")
		env.tx.errs = []error{secondary.ErrSerialization}

		require.NoError(t, env.memberships.RequestToJoin(ctx, "newcomer", club.ID))
		assert.NotNil(t, env.membership(club.ID, userID(env, "newcomer")))
	})

	t.Run("two conflicts surface as ErrTxConflict", func(t *testing.T) {
		env := newTestEnv()
		club := seedClub(env)
		env.addUser("newcomer", "Nina")
		env.tx.errs = []error{secondary.ErrSerialization, secondary.ErrSerialization}

		err := env.memberships.RequestToJoin(ctx, "newcomer", club.ID)
		assert.ErrorIs(t, err, ErrTxConflict)
	})
}
