package service

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/unihub/unihub-api/internal/ports/secondary"
	"github.com/unihub/unihub-api/pkg/logger/types"
)

const dispatchTimeout = 10 * time.Second

// NotifyService fans notifications out to the configured channels. Dispatch
// is fire-and-forget: it runs after the originating transaction committed,
// never blocks the caller and never surfaces delivery errors to it.
type NotifyService struct {
	logger *types.Logger

	channels  []secondary.Notifier
	eventRepo secondary.EventRepository
	clubRepo  secondary.ClubRepository

	cron *cron.Cron
}

func NewNotifyService(
	logger *types.Logger,
	eventRepo secondary.EventRepository,
	clubRepo secondary.ClubRepository,
	channels ...secondary.Notifier,
) *NotifyService {
	return &NotifyService{
		logger:    logger,
		channels:  channels,
		eventRepo: eventRepo,
		clubRepo:  clubRepo,
		cron:      cron.New(),
	}
}

// Dispatch hands the notification to every channel in the background.
// Failures are logged and swallowed.
func (s *NotifyService) Dispatch(n secondary.Notification) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), dispatchTimeout)
		defer cancel()

		for _, ch := range s.channels {
			if err := ch.Notify(ctx, n); err != nil {
				s.logger.Errorf("failed to deliver %s notification for club %s: %v", n.Kind, n.ClubID, err)
			}
		}
	}()
}

// StartReminderScheduler schedules an hourly scan for events starting within
// the next hour and fires a reminder notification for each.
func (s *NotifyService) StartReminderScheduler() error {
	_, err := s.cron.AddFunc("@hourly", func() {
		s.remindUpcoming(context.Background())
	})
	if err != nil {
		return err
	}
	s.cron.Start()
	s.logger.Info("Event reminder scheduler started")
	return nil
}

// StopReminderScheduler stops the reminder scheduler.
func (s *NotifyService) StopReminderScheduler() {
	if s.cron != nil {
		s.cron.Stop()
		s.logger.Info("Event reminder scheduler stopped")
	}
}

func (s *NotifyService) remindUpcoming(ctx context.Context) {
	events, err := s.eventRepo.GetUpcoming(ctx, time.Now().Add(time.Hour))
	if err != nil {
		s.logger.Errorf("failed to get upcoming events: %v", err)
		return
	}

	for _, event := range events {
		club, err := s.clubRepo.Get(ctx, event.ClubID)
		if err != nil {
			s.logger.Errorf("failed to get club %s for event reminder: %v", event.ClubID, err)
			continue
		}

		s.logger.Infof("Sending reminder for event (event_id=%s, club_id=%s)", event.ID, event.ClubID)
		s.Dispatch(secondary.Notification{
			Kind:   secondary.NotificationEventReminder,
			ClubID: event.ClubID,
			Payload: map[string]string{
				"event_id":   event.ID,
				"event_name": event.Name,
				"club_name":  club.Name,
				"starts_at":  event.StartTime.Format(time.RFC3339),
			},
		})
	}
}
