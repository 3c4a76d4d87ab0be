package entity

import (
	"time"
)

type Post struct {
	ID          string `gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	ClubID      string `gorm:"type:uuid;not null;index"`
	CreatorID   string `gorm:"type:uuid;not null"`
	Description string `gorm:"not null"`
}

type PostLike struct {
	PostID    string `gorm:"primaryKey;type:uuid"`
	UserID    string `gorm:"primaryKey;type:uuid"`
	CreatedAt time.Time
}
