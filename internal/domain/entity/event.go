package entity

import (
	"time"
)

type Event struct {
	ID          string `gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	ClubID      string `gorm:"type:uuid;not null;index"`
	CreatorID   string `gorm:"type:uuid;not null"`
	Name        string `gorm:"not null"`
	Description string
	Location    string
	StartTime   time.Time `gorm:"not null"`
	EndTime     time.Time
}

// EventParticipant is an attendance row. Removed in cascade when the
// participant loses club membership or when the event or club is deleted.
type EventParticipant struct {
	EventID   string `gorm:"primaryKey;type:uuid"`
	UserID    string `gorm:"primaryKey;type:uuid"`
	CreatedAt time.Time
}

// QuestionType tells clients which input widget a registration form question
// expects. Answers are stored as text regardless of type.
type QuestionType string

const (
	QuestionTypeText    QuestionType = "TEXT"
	QuestionTypeBoolean QuestionType = "BOOLEAN"
	QuestionTypePhone   QuestionType = "PHONE"
	QuestionTypeEmail   QuestionType = "EMAIL"
)

func (t QuestionType) Valid() bool {
	switch t {
	case QuestionTypeText, QuestionTypeBoolean, QuestionTypePhone, QuestionTypeEmail:
		return true
	}
	return false
}

// EventFormQuestion is one question of an event's registration form, defined
// at event creation and immutable afterwards.
type EventFormQuestion struct {
	ID        string       `gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	EventID   string       `gorm:"type:uuid;not null;index"`
	Text      string       `gorm:"size:255;not null"`
	Type      QuestionType `gorm:"not null;default:TEXT"`
	Position  int          `gorm:"not null"`
	CreatedAt time.Time
}

// EventFormAnswer is one attendee's answer to one form question. The composite
// primary key keeps answers unique per question and attendee; EventID is
// carried so cascades need no join through questions.
type EventFormAnswer struct {
	QuestionID string `gorm:"primaryKey;type:uuid"`
	UserID     string `gorm:"primaryKey;type:uuid"`
	EventID    string `gorm:"type:uuid;not null;index"`
	Text       string `gorm:"size:1024;not null"`
	CreatedAt  time.Time
}
