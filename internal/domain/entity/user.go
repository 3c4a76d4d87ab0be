package entity

import (
	"time"
)

type User struct {
	ID        string `gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	CreatedAt time.Time
	UpdatedAt time.Time
	// ExternalUID is the stable handle issued by the identity provider.
	ExternalUID string `gorm:"not null;uniqueIndex"`
	Name        string `gorm:"not null"`
	Email       string
	University  string
	Faculty     string
	Department  string
	AvatarURL   string
}
