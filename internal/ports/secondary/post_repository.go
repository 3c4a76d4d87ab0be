package secondary

import (
	"context"

	"github.com/unihub/unihub-api/internal/domain/dto"
	"github.com/unihub/unihub-api/internal/domain/entity"
)

// PostRepository defines data access for posts and likes.
type PostRepository interface {
	Create(ctx context.Context, post *entity.Post) (*entity.Post, error)
	Get(ctx context.Context, id string) (*entity.Post, error)
	Delete(ctx context.Context, id string) error
	DeleteByClub(ctx context.Context, clubID string) error

	GetSummariesByClub(ctx context.Context, clubID, currentUserID string) ([]dto.PostSummary, error)
	// GetFeed returns summaries of posts from every club the user is an
	// approved member of, newest first.
	GetFeed(ctx context.Context, userID string) ([]dto.PostSummary, error)

	LikeExists(ctx context.Context, postID, userID string) (bool, error)
	AddLike(ctx context.Context, like *entity.PostLike) error
	RemoveLike(ctx context.Context, postID, userID string) error
	CountLikes(ctx context.Context, postID string) (int64, error)
	DeleteLikesByPost(ctx context.Context, postID string) error
	DeleteLikesByClub(ctx context.Context, clubID string) error
}
