package primary

import (
	"context"

	"github.com/unihub/unihub-api/internal/domain/dto"
	"github.com/unihub/unihub-api/internal/domain/entity"
)

// UserService defines the user profile use cases.
type UserService interface {
	Sync(ctx context.Context, in dto.UserSync) (*entity.User, error)
	Get(ctx context.Context, id string) (*entity.User, error)
	GetByExternalUID(ctx context.Context, externalUID string) (*entity.User, error)
}
