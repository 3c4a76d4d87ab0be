package primary

import (
	"context"
	"time"

	"github.com/unihub/unihub-api/internal/domain/dto"
	"github.com/unihub/unihub-api/internal/domain/entity"
)

// EventService defines the event and attendance use cases.
type EventService interface {
	Create(ctx context.Context, actorUID, clubID string, in dto.EventCreate) (*entity.Event, error)
	Get(ctx context.Context, id string) (*entity.Event, error)
	GetByClub(ctx context.Context, clubID string) ([]entity.Event, error)
	GetUpcoming(ctx context.Context, until time.Time) ([]entity.Event, error)
	GetPast(ctx context.Context) ([]entity.Event, error)
	Delete(ctx context.Context, actorUID, eventID string) error
	Attend(ctx context.Context, actorUID, eventID string, answers []dto.FormAnswerInput) error
	Leave(ctx context.Context, actorUID, eventID string) error
	RemoveAttendee(ctx context.Context, actorUID, eventID, targetUserID string) error
	CheckIn(ctx context.Context, actorUID, eventID string) error
	FormQuestions(ctx context.Context, eventID string) ([]entity.EventFormQuestion, error)
	Submissions(ctx context.Context, actorUID, eventID string) ([]dto.EventSubmission, error)
	Calendar(ctx context.Context, clubID string) (string, error)
	CheckInQR(ctx context.Context, actorUID, eventID string) ([]byte, error)
}
