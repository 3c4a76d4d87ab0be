package secondary

import (
	"context"

	"github.com/unihub/unihub-api/internal/domain/entity"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) (*entity.User, error)
	Get(ctx context.Context, id string) (*entity.User, error)
	GetByExternalUID(ctx context.Context, externalUID string) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) (*entity.User, error)
}
