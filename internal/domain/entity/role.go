package entity

// Role is a club member's privilege level. Comparisons always go through the
// explicit rank table, never through declaration order.
type Role string

const (
	RoleMember  Role = "MEMBER"
	RoleManager Role = "MANAGER"
	RoleOwner   Role = "OWNER"
)

var roleRanks = map[Role]int{
	RoleMember:  1,
	RoleManager: 2,
	RoleOwner:   3,
}

// Rank returns the role's position in the hierarchy. Unknown roles rank below
// MEMBER.
func (r Role) Rank() int {
	return roleRanks[r]
}

// Outranks reports whether r is strictly higher than other. Equal roles never
// outrank each other.
func (r Role) Outranks(other Role) bool {
	return r.Rank() > other.Rank()
}

func (r Role) Valid() bool {
	_, ok := roleRanks[r]
	return ok
}

// MembershipStatus - state of a user's relationship to a club. There is no
// REJECTED or REMOVED status: rejection and removal delete the membership row,
// history lives in club_logs only.
type MembershipStatus string

const (
	MembershipStatusPending  MembershipStatus = "PENDING"
	MembershipStatusApproved MembershipStatus = "APPROVED"
)
