package postgres

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/unihub/unihub-api/internal/domain/dto"
	"github.com/unihub/unihub-api/internal/domain/entity"
	"github.com/unihub/unihub-api/internal/ports/secondary"
)

type EventRepository struct {
	db *gorm.DB
}

func NewEventRepository(db *gorm.DB) *EventRepository {
	return &EventRepository{
		db: db,
	}
}

func (s *EventRepository) Create(ctx context.Context, event *entity.Event) (*entity.Event, error) {
	if err := dbFrom(ctx, s.db).Create(event).Error; err != nil {
		return nil, translate(err)
	}
	return event, nil
}

func (s *EventRepository) Get(ctx context.Context, id string) (*entity.Event, error) {
	var event entity.Event
	if err := dbFrom(ctx, s.db).Where("id = ?", id).First(&event).Error; err != nil {
		return nil, translate(err)
	}
	return &event, nil
}

func (s *EventRepository) GetByClub(ctx context.Context, clubID string) ([]entity.Event, error) {
	var events []entity.Event
	err := dbFrom(ctx, s.db).
		Where("club_id = ?", clubID).
		Order("start_time ASC").
		Find(&events).Error
	if err != nil {
		return nil, translate(err)
	}
	return events, nil
}

func (s *EventRepository) GetUpcoming(ctx context.Context, until time.Time) ([]entity.Event, error) {
	var events []entity.Event
	err := dbFrom(ctx, s.db).
		Where("start_time > ? AND start_time <= ?", time.Now(), until).
		Order("start_time ASC").
		Find(&events).Error
	if err != nil {
		return nil, translate(err)
	}
	return events, nil
}

func (s *EventRepository) GetPast(ctx context.Context) ([]entity.Event, error) {
	var events []entity.Event
	err := dbFrom(ctx, s.db).
		Where("start_time <= ?", time.Now()).
		Order("start_time DESC").
		Find(&events).Error
	if err != nil {
		return nil, translate(err)
	}
	return events, nil
}

func (s *EventRepository) Delete(ctx context.Context, id string) error {
	return translate(dbFrom(ctx, s.db).Where("id = ?", id).Delete(&entity.Event{}).Error)
}

func (s *EventRepository) DeleteByClub(ctx context.Context, clubID string) error {
	return translate(dbFrom(ctx, s.db).Where("club_id = ?", clubID).Delete(&entity.Event{}).Error)
}

func (s *EventRepository) AddParticipant(ctx context.Context, p *entity.EventParticipant) error {
	return translate(dbFrom(ctx, s.db).Create(p).Error)
}

func (s *EventRepository) RemoveParticipant(ctx context.Context, eventID, userID string) error {
	res := dbFrom(ctx, s.db).
		Where("event_id = ? AND user_id = ?", eventID, userID).
		Delete(&entity.EventParticipant{})
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return secondary.ErrNotFound
	}
	return nil
}

func (s *EventRepository) Participants(ctx context.Context, eventID string) ([]entity.EventParticipant, error) {
	var participants []entity.EventParticipant
	err := dbFrom(ctx, s.db).
		Where("event_id = ?", eventID).
		Order("created_at ASC").
		Find(&participants).Error
	if err != nil {
		return nil, translate(err)
	}
	return participants, nil
}

func (s *EventRepository) DeleteParticipantsByClubUser(ctx context.Context, clubID, userID string) error {
	return translate(dbFrom(ctx, s.db).
		Where("user_id = ? AND event_id IN (?)",
			userID,
			dbFrom(ctx, s.db).Model(&entity.Event{}).Select("id").Where("club_id = ?", clubID),
		).
		Delete(&entity.EventParticipant{}).Error)
}

func (s *EventRepository) DeleteParticipantsByClub(ctx context.Context, clubID string) error {
	return translate(dbFrom(ctx, s.db).
		Where("event_id IN (?)",
			dbFrom(ctx, s.db).Model(&entity.Event{}).Select("id").Where("club_id = ?", clubID),
		).
		Delete(&entity.EventParticipant{}).Error)
}

func (s *EventRepository) DeleteParticipantsByEvent(ctx context.Context, eventID string) error {
	return translate(dbFrom(ctx, s.db).
		Where("event_id = ?", eventID).
		Delete(&entity.EventParticipant{}).Error)
}

func (s *EventRepository) CreateFormQuestions(ctx context.Context, questions []entity.EventFormQuestion) error {
	if len(questions) == 0 {
		return nil
	}
	return translate(dbFrom(ctx, s.db).Create(&questions).Error)
}

func (s *EventRepository) GetFormQuestions(ctx context.Context, eventID string) ([]entity.EventFormQuestion, error) {
	var questions []entity.EventFormQuestion
	err := dbFrom(ctx, s.db).
		Where("event_id = ?", eventID).
		Order("position ASC").
		Find(&questions).Error
	if err != nil {
		return nil, translate(err)
	}
	return questions, nil
}

func (s *EventRepository) CreateFormAnswers(ctx context.Context, answers []entity.EventFormAnswer) error {
	if len(answers) == 0 {
		return nil
	}
	return translate(dbFrom(ctx, s.db).Create(&answers).Error)
}

func (s *EventRepository) GetFormAnswers(ctx context.Context, eventID string) ([]dto.FormAnswerRow, error) {
	var rows []dto.FormAnswerRow
	err := dbFrom(ctx, s.db).
		Model(&entity.EventFormAnswer{}).
		Select("event_form_answers.question_id, users.name AS user_name, event_form_answers.text").
		Joins("JOIN users ON users.id = event_form_answers.user_id").
		Where("event_form_answers.event_id = ?", eventID).
		Order("event_form_answers.created_at ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, translate(err)
	}
	return rows, nil
}

func (s *EventRepository) DeleteAnswersByClubUser(ctx context.Context, clubID, userID string) error {
	return translate(dbFrom(ctx, s.db).
		Where("user_id = ? AND event_id IN (?)",
			userID,
			dbFrom(ctx, s.db).Model(&entity.Event{}).Select("id").Where("club_id = ?", clubID),
		).
		Delete(&entity.EventFormAnswer{}).Error)
}

func (s *EventRepository) DeleteAnswersByEvent(ctx context.Context, eventID string) error {
	return translate(dbFrom(ctx, s.db).
		Where("event_id = ?", eventID).
		Delete(&entity.EventFormAnswer{}).Error)
}

func (s *EventRepository) DeleteAnswersByClub(ctx context.Context, clubID string) error {
	return translate(dbFrom(ctx, s.db).
		Where("event_id IN (?)",
			dbFrom(ctx, s.db).Model(&entity.Event{}).Select("id").Where("club_id = ?", clubID),
		).
		Delete(&entity.EventFormAnswer{}).Error)
}

func (s *EventRepository) DeleteQuestionsByEvent(ctx context.Context, eventID string) error {
	return translate(dbFrom(ctx, s.db).
		Where("event_id = ?", eventID).
		Delete(&entity.EventFormQuestion{}).Error)
}

func (s *EventRepository) DeleteQuestionsByClub(ctx context.Context, clubID string) error {
	return translate(dbFrom(ctx, s.db).
		Where("event_id IN (?)",
			dbFrom(ctx, s.db).Model(&entity.Event{}).Select("id").Where("club_id = ?", clubID),
		).
		Delete(&entity.EventFormQuestion{}).Error)
}
