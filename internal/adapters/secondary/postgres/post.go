package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/unihub/unihub-api/internal/domain/dto"
	"github.com/unihub/unihub-api/internal/domain/entity"
)

type PostRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) *PostRepository {
	return &PostRepository{
		db: db,
	}
}

func (s *PostRepository) Create(ctx context.Context, post *entity.Post) (*entity.Post, error) {
	if err := dbFrom(ctx, s.db).Create(post).Error; err != nil {
		return nil, translate(err)
	}
	return post, nil
}

func (s *PostRepository) Get(ctx context.Context, id string) (*entity.Post, error) {
	var post entity.Post
	if err := dbFrom(ctx, s.db).Where("id = ?", id).First(&post).Error; err != nil {
		return nil, translate(err)
	}
	return &post, nil
}

func (s *PostRepository) Delete(ctx context.Context, id string) error {
	return translate(dbFrom(ctx, s.db).Where("id = ?", id).Delete(&entity.Post{}).Error)
}

func (s *PostRepository) DeleteByClub(ctx context.Context, clubID string) error {
	return translate(dbFrom(ctx, s.db).Where("club_id = ?", clubID).Delete(&entity.Post{}).Error)
}

const postSummarySelect = `posts.id,
	posts.club_id,
	clubs.name AS club_name,
	users.name AS creator_name,
	posts.description,
	posts.created_at,
	COUNT(post_likes.user_id) AS like_count,
	COALESCE(BOOL_OR(post_likes.user_id = @current_user), FALSE) AS liked_by_current_user`

func (s *PostRepository) GetSummariesByClub(ctx context.Context, clubID, currentUserID string) ([]dto.PostSummary, error) {
	var posts []dto.PostSummary
	err := dbFrom(ctx, s.db).
		Table("posts").
		Select(postSummarySelect, map[string]any{"current_user": currentUserID}).
		Joins("JOIN clubs ON clubs.id = posts.club_id").
		Joins("JOIN users ON users.id = posts.creator_id").
		Joins("LEFT JOIN post_likes ON post_likes.post_id = posts.id").
		Where("posts.club_id = ?", clubID).
		Group("posts.id, clubs.name, users.name").
		Order("posts.created_at DESC").
		Scan(&posts).Error
	if err != nil {
		return nil, translate(err)
	}
	return posts, nil
}

func (s *PostRepository) GetFeed(ctx context.Context, userID string) ([]dto.PostSummary, error) {
	var posts []dto.PostSummary
	err := dbFrom(ctx, s.db).
		Table("posts").
		Select(postSummarySelect, map[string]any{"current_user": userID}).
		Joins("JOIN clubs ON clubs.id = posts.club_id").
		Joins("JOIN users ON users.id = posts.creator_id").
		Joins("LEFT JOIN post_likes ON post_likes.post_id = posts.id").
		Where(`posts.club_id IN (?)`,
			dbFrom(ctx, s.db).Model(&entity.Membership{}).Select("club_id").
				Where("user_id = ? AND status = ?", userID, entity.MembershipStatusApproved),
		).
		Group("posts.id, clubs.name, users.name").
		Order("posts.created_at DESC").
		Scan(&posts).Error
	if err != nil {
		return nil, translate(err)
	}
	return posts, nil
}

func (s *PostRepository) LikeExists(ctx context.Context, postID, userID string) (bool, error) {
	var count int64
	err := dbFrom(ctx, s.db).Model(&entity.PostLike{}).
		Where("post_id = ? AND user_id = ?", postID, userID).
		Count(&count).Error
	if err != nil {
		return false, translate(err)
	}
	return count > 0, nil
}

func (s *PostRepository) AddLike(ctx context.Context, like *entity.PostLike) error {
	return translate(dbFrom(ctx, s.db).Create(like).Error)
}

func (s *PostRepository) RemoveLike(ctx context.Context, postID, userID string) error {
	return translate(dbFrom(ctx, s.db).
		Where("post_id = ? AND user_id = ?", postID, userID).
		Delete(&entity.PostLike{}).Error)
}

func (s *PostRepository) CountLikes(ctx context.Context, postID string) (int64, error) {
	var count int64
	err := dbFrom(ctx, s.db).Model(&entity.PostLike{}).
		Where("post_id = ?", postID).
		Count(&count).Error
	if err != nil {
		return 0, translate(err)
	}
	return count, nil
}

func (s *PostRepository) DeleteLikesByPost(ctx context.Context, postID string) error {
	return translate(dbFrom(ctx, s.db).
		Where("post_id = ?", postID).
		Delete(&entity.PostLike{}).Error)
}

func (s *PostRepository) DeleteLikesByClub(ctx context.Context, clubID string) error {
	return translate(dbFrom(ctx, s.db).
		Where("post_id IN (?)",
			dbFrom(ctx, s.db).Model(&entity.Post{}).Select("id").Where("club_id = ?", clubID),
		).
		Delete(&entity.PostLike{}).Error)
}
