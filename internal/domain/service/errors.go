package service

import "errors"

// Business-rule errors surfaced by the services. All of them are detected
// before any write; once a write begins the only remaining failure mode is a
// storage fault, which rolls the whole transaction back.
var (
	// ErrIdentityNotFound - the actor token or handle does not resolve to a
	// known user. An authentication failure, never retried.
	ErrIdentityNotFound = errors.New("identity not found")

	// ErrNotAMember - the actor has no approved membership in the club where
	// one is required. A pending request does not count.
	ErrNotAMember = errors.New("not a member of this club")

	// ErrForbidden - the actor's role does not satisfy the required role set
	// or rank comparison.
	ErrForbidden = errors.New("insufficient role for this action")

	ErrAlreadyMemberOrPending  = errors.New("user is already a member or has a pending request")
	ErrNoPendingRequest        = errors.New("no pending join request for this club")
	ErrRequestNotFound         = errors.New("membership request not found")
	ErrTargetNotAMember        = errors.New("target user is not a member of this club")
	ErrNotEligibleForPromotion = errors.New("only plain members can be promoted to manager")
	ErrNotEligibleForDemotion  = errors.New("only managers can be demoted to member")

	// ErrOwnerCannotLeave protects the one-owner invariant: transfer
	// ownership or delete the club first.
	ErrOwnerCannotLeave = errors.New("club owner cannot leave the club: transfer ownership or delete the club first")

	ErrClubNotFound   = errors.New("club not found")
	ErrUserNotFound   = errors.New("user not found")
	ErrEventNotFound  = errors.New("event not found")
	ErrPostNotFound   = errors.New("post not found")
	ErrLogNotFound    = errors.New("log entry not found")
	ErrShortNameTaken = errors.New("club short name is already in use")

	ErrAlreadyAttending = errors.New("already attending this event")
	ErrNotAttending     = errors.New("not attending this event")

	ErrQuestionNotFound    = errors.New("form question does not belong to this event")
	ErrInvalidQuestionType = errors.New("invalid form question type")

	// ErrTxConflict - the transaction lost a write conflict twice in a row.
	// Transient: the caller may retry the whole request.
	ErrTxConflict = errors.New("storage conflict, please retry")
)
