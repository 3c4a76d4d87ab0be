package secondary

import (
	"context"

	"github.com/unihub/unihub-api/internal/domain/dto"
	"github.com/unihub/unihub-api/internal/domain/entity"
)

// ClubSort orders discovery listings.
type ClubSort string

const (
	ClubSortMembers ClubSort = "members"
	ClubSortEvents  ClubSort = "events"
	ClubSortRandom  ClubSort = "random"
)

// ClubRepository defines the interface for club data access
type ClubRepository interface {
	Create(ctx context.Context, club *entity.Club) (*entity.Club, error)
	Get(ctx context.Context, id string) (*entity.Club, error)
	GetAll(ctx context.Context) ([]entity.Club, error)
	Update(ctx context.Context, club *entity.Club) (*entity.Club, error)
	Delete(ctx context.Context, id string) error
	ShortNameExists(ctx context.Context, shortName string) (bool, error)
	// FindFiltered lists clubs matching the filter with member and event
	// counts, ordered by the given sort, at most limit rows.
	FindFiltered(ctx context.Context, filter dto.ClubFilter, sort ClubSort, limit int) ([]dto.ClubSummary, error)
}
