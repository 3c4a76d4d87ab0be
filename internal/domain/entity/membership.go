package entity

import (
	"time"
)

// Membership is one user's relationship to one club. The composite primary
// key is the uniqueness constraint requestToJoin relies on under concurrent
// inserts.
//
// Invariants kept by the membership service:
//   - exactly one APPROVED/OWNER row per club at all times
//   - a PENDING row always carries RoleMember
type Membership struct {
	UserID    string           `gorm:"primaryKey;type:uuid"`
	ClubID    string           `gorm:"primaryKey;type:uuid;index:idx_memberships_club_status"`
	Role      Role             `gorm:"not null;default:MEMBER"`
	Status    MembershipStatus `gorm:"not null;default:PENDING;index:idx_memberships_club_status"`
	CreatedAt time.Time
	UpdatedAt time.Time

	EventNotificationsEnabled bool `gorm:"not null;default:true"`
	PostNotificationsEnabled  bool `gorm:"not null;default:true"`
}

// Approved reports whether the membership satisfies "is a member" for guarded
// actions. A PENDING row never does.
func (m *Membership) Approved() bool {
	return m.Status == MembershipStatusApproved
}
