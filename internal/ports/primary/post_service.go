package primary

import (
	"context"

	"github.com/unihub/unihub-api/internal/domain/dto"
	"github.com/unihub/unihub-api/internal/domain/entity"
)

// PostService defines the post and like use cases.
type PostService interface {
	Create(ctx context.Context, actorUID, clubID, description string) (*entity.Post, error)
	Delete(ctx context.Context, actorUID, postID string) error
	ToggleLike(ctx context.Context, actorUID, postID string) (liked bool, count int64, err error)
	GetByClub(ctx context.Context, actorUID, clubID string) ([]dto.PostSummary, error)
	Feed(ctx context.Context, actorUID string) ([]dto.PostSummary, error)
}
