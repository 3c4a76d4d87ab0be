package secondary

import (
	"context"
	"time"

	"github.com/unihub/unihub-api/internal/domain/dto"
	"github.com/unihub/unihub-api/internal/domain/entity"
)

// EventRepository defines data access for events and attendance rows. Cascade
// deletes are explicit repository calls issued by the services in dependency
// order, never implicit.
type EventRepository interface {
	Create(ctx context.Context, event *entity.Event) (*entity.Event, error)
	Get(ctx context.Context, id string) (*entity.Event, error)
	GetByClub(ctx context.Context, clubID string) ([]entity.Event, error)
	GetUpcoming(ctx context.Context, until time.Time) ([]entity.Event, error)
	GetPast(ctx context.Context) ([]entity.Event, error)
	Delete(ctx context.Context, id string) error
	DeleteByClub(ctx context.Context, clubID string) error

	AddParticipant(ctx context.Context, p *entity.EventParticipant) error
	RemoveParticipant(ctx context.Context, eventID, userID string) error
	Participants(ctx context.Context, eventID string) ([]entity.EventParticipant, error)
	// DeleteParticipantsByClubUser removes one user's attendance rows across
	// all of a club's events.
	DeleteParticipantsByClubUser(ctx context.Context, clubID, userID string) error
	DeleteParticipantsByClub(ctx context.Context, clubID string) error
	DeleteParticipantsByEvent(ctx context.Context, eventID string) error

	CreateFormQuestions(ctx context.Context, questions []entity.EventFormQuestion) error
	GetFormQuestions(ctx context.Context, eventID string) ([]entity.EventFormQuestion, error)
	CreateFormAnswers(ctx context.Context, answers []entity.EventFormAnswer) error
	// GetFormAnswers returns every stored answer for the event joined with the
	// attendee's name, oldest first.
	GetFormAnswers(ctx context.Context, eventID string) ([]dto.FormAnswerRow, error)
	DeleteAnswersByClubUser(ctx context.Context, clubID, userID string) error
	DeleteAnswersByEvent(ctx context.Context, eventID string) error
	DeleteAnswersByClub(ctx context.Context, clubID string) error
	DeleteQuestionsByEvent(ctx context.Context, eventID string) error
	DeleteQuestionsByClub(ctx context.Context, clubID string) error
}
