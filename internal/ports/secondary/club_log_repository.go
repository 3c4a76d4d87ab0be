package secondary

import (
	"context"

	"github.com/unihub/unihub-api/internal/domain/dto"
	"github.com/unihub/unihub-api/internal/domain/entity"
)

// ClubLogRepository defines data access for the append-only club audit log.
type ClubLogRepository interface {
	Create(ctx context.Context, log *entity.ClubLog) error
	Get(ctx context.Context, id string) (*entity.ClubLog, error)
	Delete(ctx context.Context, id string) error
	GetByClub(ctx context.Context, clubID string) ([]dto.ClubLogEntry, error)
	DeleteByClub(ctx context.Context, clubID string) error
}
