package smtp

import (
	"context"
	"fmt"

	"github.com/unihub/unihub-api/internal/ports/secondary"
)

// Notifier mails the affected user on membership approval. Other notification
// kinds fan out to the club at large and go through the queue instead.
type Notifier struct {
	client secondary.SMTPClient
}

func NewNotifier(client secondary.SMTPClient) *Notifier {
	return &Notifier{
		client: client,
	}
}

func (n *Notifier) Notify(_ context.Context, notification secondary.Notification) error {
	if notification.Kind != secondary.NotificationMembershipApproved {
		return nil
	}
	email := notification.Payload["email"]
	if email == "" {
		return nil
	}

	clubName := notification.Payload["club_name"]
	subject := fmt.Sprintf("Welcome to %s", clubName)
	body := fmt.Sprintf(
		"<p>Your request to join <b>%s</b> has been approved. You are now a member.</p>",
		clubName,
	)
	return n.client.Send(email, subject, body)
}
