package entity

import (
	"time"

	"github.com/lib/pq"
)

type Club struct {
	ID          string `gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	Name        string `gorm:"not null"`
	ShortName   string `gorm:"not null;uniqueIndex"`
	Description string
	University  string
	Faculty     string
	Department  string
	// Color is a random hex accent assigned at creation.
	Color string
	Tags  pq.StringArray `gorm:"type:text[]"`
}
