package secondary

import "context"

// Notification is the payload handed to notification channels after a commit.
type Notification struct {
	Kind    string
	ClubID  string
	Payload map[string]string
}

// Notification kinds fired by the services.
const (
	NotificationPostCreated        = "club.post.created"
	NotificationEventCreated       = "club.event.created"
	NotificationMembershipApproved = "club.membership.approved"
	NotificationEventReminder      = "club.event.reminder"
)

// Notifier is a single delivery channel. Delivery is best-effort: the notify
// service logs and swallows errors, callers of lifecycle operations never see
// them.
type Notifier interface {
	Notify(ctx context.Context, n Notification) error
}
