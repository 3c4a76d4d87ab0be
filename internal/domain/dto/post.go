package dto

import (
	"time"
)

type PostSummary struct {
	ID                 string
	ClubID             string
	ClubName           string
	CreatorName        string
	Description        string
	CreatedAt          time.Time
	LikeCount          int64
	LikedByCurrentUser bool
}
