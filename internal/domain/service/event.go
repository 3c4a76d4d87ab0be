package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"

	"github.com/unihub/unihub-api/internal/domain/dto"
	"github.com/unihub/unihub-api/internal/domain/entity"
	"github.com/unihub/unihub-api/internal/ports/secondary"
	"github.com/unihub/unihub-api/pkg/qrcode"
)

// EventService manages club events and attendance. Creating an event is a
// manager-level action and fires a "new event" notification after commit.
type EventService struct {
	tx   secondary.TxManager
	auth *AuthService
	logs *ClubLogService

	eventRepo secondary.EventRepository
	clubRepo  secondary.ClubRepository

	notify Dispatcher

	// publicBaseURL is the address encoded into check-in QR codes.
	publicBaseURL string
}

func NewEventService(
	tx secondary.TxManager,
	auth *AuthService,
	logs *ClubLogService,
	eventStorage secondary.EventRepository,
	clubStorage secondary.ClubRepository,
	notify Dispatcher,
	publicBaseURL string,
) *EventService {
	return &EventService{
		tx:            tx,
		auth:          auth,
		logs:          logs,
		eventRepo:     eventStorage,
		clubRepo:      clubStorage,
		notify:        notify,
		publicBaseURL: publicBaseURL,
	}
}

// Create adds an event to the club, together with its registration form
// questions if any. Managers and the owner may create events.
func (s *EventService) Create(ctx context.Context, actorUID, clubID string, in dto.EventCreate) (*entity.Event, error) {
	var (
		event *entity.Event
		club  *entity.Club
	)
	err := runTx(ctx, s.tx, func(ctx context.Context) error {
		actor, err := s.auth.RequireMembership(ctx, actorUID, clubID, entity.RoleOwner, entity.RoleManager)
		if err != nil {
			return err
		}

		event, err = s.eventRepo.Create(ctx, &entity.Event{
			ClubID:      clubID,
			CreatorID:   actor.User.ID,
			Name:        in.Name,
			Description: in.Description,
			Location:    in.Location,
			StartTime:   in.StartTime,
			EndTime:     in.EndTime,
		})
		if err != nil {
			return err
		}

		if len(in.Questions) > 0 {
			questions := make([]entity.EventFormQuestion, 0, len(in.Questions))
			for i, q := range in.Questions {
				qType := q.Type
				if qType == "" {
					qType = entity.QuestionTypeText
				}
				if !qType.Valid() {
					return ErrInvalidQuestionType
				}
				questions = append(questions, entity.EventFormQuestion{
					EventID:  event.ID,
					Text:     q.Text,
					Type:     qType,
					Position: i,
				})
			}
			if err := s.eventRepo.CreateFormQuestions(ctx, questions); err != nil {
				return err
			}
		}

		if club, err = s.clubRepo.Get(ctx, clubID); err != nil {
			return err
		}

		action := fmt.Sprintf("'%s' created the event '%s'.", actor.User.Name, event.Name)
		return s.logs.Append(ctx, clubID, actor.User.ID, action)
	})
	if err != nil {
		return nil, err
	}

	s.notify.Dispatch(secondary.Notification{
		Kind:   secondary.NotificationEventCreated,
		ClubID: clubID,
		Payload: map[string]string{
			"event_id":   event.ID,
			"event_name": event.Name,
			"club_name":  club.Name,
			"starts_at":  event.StartTime.Format(time.RFC3339),
		},
	})
	return event, nil
}

func (s *EventService) Get(ctx context.Context, id string) (*entity.Event, error) {
	event, err := s.eventRepo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, secondary.ErrNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	return event, nil
}

func (s *EventService) GetByClub(ctx context.Context, clubID string) ([]entity.Event, error) {
	return s.eventRepo.GetByClub(ctx, clubID)
}

func (s *EventService) GetUpcoming(ctx context.Context, until time.Time) ([]entity.Event, error) {
	return s.eventRepo.GetUpcoming(ctx, until)
}

func (s *EventService) GetPast(ctx context.Context) ([]entity.Event, error) {
	return s.eventRepo.GetPast(ctx)
}

// Delete removes the event and its attendance rows. Allowed for the event's
// creator and for the club's managers and owner.
func (s *EventService) Delete(ctx context.Context, actorUID, eventID string) error {
	return runTx(ctx, s.tx, func(ctx context.Context) error {
		event, err := s.eventRepo.Get(ctx, eventID)
		if err != nil {
			if errors.Is(err, secondary.ErrNotFound) {
				return ErrEventNotFound
			}
			return err
		}

		actor, err := s.auth.RequireMembership(ctx, actorUID, event.ClubID)
		if err != nil {
			return err
		}
		isManager := actor.Membership.Role == entity.RoleOwner || actor.Membership.Role == entity.RoleManager
		if actor.User.ID != event.CreatorID && !isManager {
			return ErrForbidden
		}

		if err := s.eventRepo.DeleteAnswersByEvent(ctx, eventID); err != nil {
			return err
		}
		if err := s.eventRepo.DeleteQuestionsByEvent(ctx, eventID); err != nil {
			return err
		}
		if err := s.eventRepo.DeleteParticipantsByEvent(ctx, eventID); err != nil {
			return err
		}
		if err := s.eventRepo.Delete(ctx, eventID); err != nil {
			return err
		}

		action := fmt.Sprintf("'%s' deleted the event '%s'.", actor.User.Name, event.Name)
		return s.logs.Append(ctx, event.ClubID, actor.User.ID, action)
	})
}

// Attend registers the caller for the event, storing their registration form
// answers in the same transaction. Only approved members of the event's club
// may attend. Every answer must reference one of the event's own questions.
func (s *EventService) Attend(ctx context.Context, actorUID, eventID string, answers []dto.FormAnswerInput) error {
	return runTx(ctx, s.tx, func(ctx context.Context) error {
		event, err := s.eventRepo.Get(ctx, eventID)
		if err != nil {
			if errors.Is(err, secondary.ErrNotFound) {
				return ErrEventNotFound
			}
			return err
		}

		actor, err := s.auth.RequireMembership(ctx, actorUID, event.ClubID)
		if err != nil {
			return err
		}

		err = s.eventRepo.AddParticipant(ctx, &entity.EventParticipant{
			EventID: eventID,
			UserID:  actor.User.ID,
		})
		if errors.Is(err, secondary.ErrDuplicate) {
			return ErrAlreadyAttending
		}
		if err != nil {
			return err
		}
		if len(answers) == 0 {
			return nil
		}

		questions, err := s.eventRepo.GetFormQuestions(ctx, eventID)
		if err != nil {
			return err
		}
		known := make(map[string]bool, len(questions))
		for _, q := range questions {
			known[q.ID] = true
		}

		rows := make([]entity.EventFormAnswer, 0, len(answers))
		for _, a := range answers {
			if !known[a.QuestionID] {
				return ErrQuestionNotFound
			}
			rows = append(rows, entity.EventFormAnswer{
				QuestionID: a.QuestionID,
				UserID:     actor.User.ID,
				EventID:    eventID,
				Text:       a.Text,
			})
		}
		return s.eventRepo.CreateFormAnswers(ctx, rows)
	})
}

// CheckIn marks the caller as attending via the event's check-in QR code.
// Idempotent: scanning the code twice is not an error.
func (s *EventService) CheckIn(ctx context.Context, actorUID, eventID string) error {
	return runTx(ctx, s.tx, func(ctx context.Context) error {
		event, err := s.eventRepo.Get(ctx, eventID)
		if err != nil {
			if errors.Is(err, secondary.ErrNotFound) {
				return ErrEventNotFound
			}
			return err
		}

		actor, err := s.auth.RequireMembership(ctx, actorUID, event.ClubID)
		if err != nil {
			return err
		}

		err = s.eventRepo.AddParticipant(ctx, &entity.EventParticipant{
			EventID: eventID,
			UserID:  actor.User.ID,
		})
		if errors.Is(err, secondary.ErrDuplicate) {
			return nil
		}
		return err
	})
}

// FormQuestions lists the event's registration form, in form order.
func (s *EventService) FormQuestions(ctx context.Context, eventID string) ([]entity.EventFormQuestion, error) {
	if _, err := s.Get(ctx, eventID); err != nil {
		return nil, err
	}
	return s.eventRepo.GetFormQuestions(ctx, eventID)
}

// Submissions returns every attendee's form answers grouped by question.
// Managers and the owner may read them.
func (s *EventService) Submissions(ctx context.Context, actorUID, eventID string) ([]dto.EventSubmission, error) {
	var submissions []dto.EventSubmission
	err := runTx(ctx, s.tx, func(ctx context.Context) error {
		event, err := s.eventRepo.Get(ctx, eventID)
		if err != nil {
			if errors.Is(err, secondary.ErrNotFound) {
				return ErrEventNotFound
			}
			return err
		}

		if _, err := s.auth.RequireMembership(ctx, actorUID, event.ClubID, entity.RoleOwner, entity.RoleManager); err != nil {
			return err
		}

		questions, err := s.eventRepo.GetFormQuestions(ctx, eventID)
		if err != nil {
			return err
		}
		rows, err := s.eventRepo.GetFormAnswers(ctx, eventID)
		if err != nil {
			return err
		}

		byQuestion := make(map[string][]dto.SubmissionAnswer, len(questions))
		for _, row := range rows {
			byQuestion[row.QuestionID] = append(byQuestion[row.QuestionID], dto.SubmissionAnswer{
				UserName: row.UserName,
				Text:     row.Text,
			})
		}

		submissions = make([]dto.EventSubmission, 0, len(questions))
		for _, q := range questions {
			submissions = append(submissions, dto.EventSubmission{
				QuestionID:   q.ID,
				QuestionText: q.Text,
				Answers:      byQuestion[q.ID],
			})
		}
		return nil
	})
	return submissions, err
}

// Leave drops the caller's attendance.
func (s *EventService) Leave(ctx context.Context, actorUID, eventID string) error {
	return runTx(ctx, s.tx, func(ctx context.Context) error {
		user, err := s.auth.ResolveUser(ctx, actorUID)
		if err != nil {
			return err
		}

		err = s.eventRepo.RemoveParticipant(ctx, eventID, user.ID)
		if errors.Is(err, secondary.ErrNotFound) {
			return ErrNotAttending
		}
		return err
	})
}

// RemoveAttendee drops another user's attendance. Managers and the owner may
// do this.
func (s *EventService) RemoveAttendee(ctx context.Context, actorUID, eventID, targetUserID string) error {
	return runTx(ctx, s.tx, func(ctx context.Context) error {
		event, err := s.eventRepo.Get(ctx, eventID)
		if err != nil {
			if errors.Is(err, secondary.ErrNotFound) {
				return ErrEventNotFound
			}
			return err
		}

		if _, err := s.auth.RequireMembership(ctx, actorUID, event.ClubID, entity.RoleOwner, entity.RoleManager); err != nil {
			return err
		}

		err = s.eventRepo.RemoveParticipant(ctx, eventID, targetUserID)
		if errors.Is(err, secondary.ErrNotFound) {
			return ErrNotAttending
		}
		return err
	})
}

// Calendar renders the club's events as an iCalendar feed.
func (s *EventService) Calendar(ctx context.Context, clubID string) (string, error) {
	club, err := s.clubRepo.Get(ctx, clubID)
	if err != nil {
		if errors.Is(err, secondary.ErrNotFound) {
			return "", ErrClubNotFound
		}
		return "", err
	}
	events, err := s.eventRepo.GetByClub(ctx, clubID)
	if err != nil {
		return "", err
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetName(club.Name)
	for _, event := range events {
		e := cal.AddEvent(event.ID)
		e.SetSummary(event.Name)
		e.SetDescription(event.Description)
		e.SetLocation(event.Location)
		e.SetStartAt(event.StartTime)
		if !event.EndTime.IsZero() {
			e.SetEndAt(event.EndTime)
		}
		e.SetDtStampTime(event.CreatedAt)
	}
	return cal.Serialize(), nil
}

// CheckInQR renders a PNG QR code pointing at the event's check-in URL.
// Managers and the owner may generate it.
func (s *EventService) CheckInQR(ctx context.Context, actorUID, eventID string) ([]byte, error) {
	var png []byte
	err := runTx(ctx, s.tx, func(ctx context.Context) error {
		event, err := s.eventRepo.Get(ctx, eventID)
		if err != nil {
			if errors.Is(err, secondary.ErrNotFound) {
				return ErrEventNotFound
			}
			return err
		}

		if _, err := s.auth.RequireMembership(ctx, actorUID, event.ClubID, entity.RoleOwner, entity.RoleManager); err != nil {
			return err
		}

		// The URL matches the check-in route the HTTP server mounts.
		png, err = qrcode.Generate(fmt.Sprintf("%s/api/v1/events/%s/check-in", s.publicBaseURL, event.ID))
		return err
	})
	if err != nil {
		return nil, err
	}
	return png, nil
}
