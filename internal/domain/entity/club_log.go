package entity

import (
	"time"
)

// ClubLog is an append-only fact about a privileged club action. The action
// text snapshots display names at the time of the action; later renames do not
// rewrite history. Rows are never updated, only the club's OWNER may delete
// one.
type ClubLog struct {
	ID        string `gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	ClubID    string `gorm:"type:uuid;not null;index"`
	ActorID   string `gorm:"type:uuid;not null"`
	Action    string `gorm:"size:255;not null"`
	CreatedAt time.Time
}
