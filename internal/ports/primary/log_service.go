package primary

import (
	"context"

	"github.com/unihub/unihub-api/internal/domain/dto"
)

// ClubLogService defines the audit log use cases.
type ClubLogService interface {
	Append(ctx context.Context, clubID, actorID, action string) error
	GetByClub(ctx context.Context, actorUID, clubID string) ([]dto.ClubLogEntry, error)
	Delete(ctx context.Context, actorUID, clubID, logID string) error
}
