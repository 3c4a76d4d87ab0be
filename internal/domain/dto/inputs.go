package dto

import (
	"time"

	"github.com/unihub/unihub-api/internal/domain/entity"
)

// ClubCreate carries the caller-supplied fields for club creation.
type ClubCreate struct {
	Name        string
	ShortName   string
	Description string
	University  string
	Faculty     string
	Department  string
	Tags        []string
}

// ClubUpdate carries a partial club update. Nil fields are left untouched.
type ClubUpdate struct {
	Name        *string
	ShortName   *string
	Description *string
	Tags        *[]string
}

type EventCreate struct {
	Name        string
	Description string
	Location    string
	StartTime   time.Time
	EndTime     time.Time
	Questions   []EventFormQuestionCreate
}

// EventFormQuestionCreate defines one registration form question at event
// creation. An empty Type defaults to TEXT.
type EventFormQuestionCreate struct {
	Text string
	Type entity.QuestionType
}

// FormAnswerInput is one answer supplied when registering for an event.
type FormAnswerInput struct {
	QuestionID string
	Text       string
}

// UserSync mirrors the identity provider's view of a user and is upserted on
// every login.
type UserSync struct {
	ExternalUID string
	Name        string
	Email       string
	University  string
	Faculty     string
	Department  string
	AvatarURL   string
}

// NotificationSettings toggles a member's per-club notification flags. Nil
// fields are left untouched.
type NotificationSettings struct {
	EventNotificationsEnabled *bool
	PostNotificationsEnabled  *bool
}
