package primary

import (
	"github.com/unihub/unihub-api/internal/ports/secondary"
)

// NotifyService defines the notification fan-out use cases.
type NotifyService interface {
	Dispatch(n secondary.Notification)
	StartReminderScheduler() error
	StopReminderScheduler()
}
