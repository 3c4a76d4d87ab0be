package dto

import (
	"time"
)

type ClubLogEntry struct {
	ID        string
	ActorName string
	Action    string
	CreatedAt time.Time
}
