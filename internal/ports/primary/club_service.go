package primary

import (
	"context"

	"github.com/unihub/unihub-api/internal/domain/dto"
	"github.com/unihub/unihub-api/internal/domain/entity"
)

// ClubService defines the club CRUD use cases.
type ClubService interface {
	Create(ctx context.Context, actorUID string, in dto.ClubCreate) (*entity.Club, error)
	Get(ctx context.Context, id string) (*entity.Club, error)
	GetAll(ctx context.Context) ([]entity.Club, error)
	Discovery(ctx context.Context, filter dto.ClubFilter) (*dto.ClubDiscovery, error)
	Update(ctx context.Context, actorUID, clubID string, in dto.ClubUpdate) (*entity.Club, error)
	Delete(ctx context.Context, actorUID, clubID string) error
}
