package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/unihub/unihub-api/internal/domain/dto"
	"github.com/unihub/unihub-api/internal/domain/entity"
	"github.com/unihub/unihub-api/internal/ports/secondary"
)

// PostService manages club posts and likes. Creating a post is a
// manager-level action and fires a "new post" notification after commit.
type PostService struct {
	tx   secondary.TxManager
	auth *AuthService
	logs *ClubLogService

	postRepo secondary.PostRepository
	clubRepo secondary.ClubRepository

	notify Dispatcher
}

func NewPostService(
	tx secondary.TxManager,
	auth *AuthService,
	logs *ClubLogService,
	postStorage secondary.PostRepository,
	clubStorage secondary.ClubRepository,
	notify Dispatcher,
) *PostService {
	return &PostService{
		tx:       tx,
		auth:     auth,
		logs:     logs,
		postRepo: postStorage,
		clubRepo: clubStorage,
		notify:   notify,
	}
}

// Create publishes a post in the club. Managers and the owner may post.
func (s *PostService) Create(ctx context.Context, actorUID, clubID, description string) (*entity.Post, error) {
	var (
		post *entity.Post
		club *entity.Club
	)
	err := runTx(ctx, s.tx, func(ctx context.Context) error {
		actor, err := s.auth.RequireMembership(ctx, actorUID, clubID, entity.RoleOwner, entity.RoleManager)
		if err != nil {
			return err
		}

		post, err = s.postRepo.Create(ctx, &entity.Post{
			ClubID:      clubID,
			CreatorID:   actor.User.ID,
			Description: description,
		})
		if err != nil {
			return err
		}

		if club, err = s.clubRepo.Get(ctx, clubID); err != nil {
			return err
		}

		action := fmt.Sprintf("'%s' published a post.", actor.User.Name)
		return s.logs.Append(ctx, clubID, actor.User.ID, action)
	})
	if err != nil {
		return nil, err
	}

	s.notify.Dispatch(secondary.Notification{
		Kind:   secondary.NotificationPostCreated,
		ClubID: clubID,
		Payload: map[string]string{
			"post_id":   post.ID,
			"club_name": club.Name,
		},
	})
	return post, nil
}

// Delete removes the post and its likes. Allowed for the post's creator and
// for the club's managers and owner.
func (s *PostService) Delete(ctx context.Context, actorUID, postID string) error {
	return runTx(ctx, s.tx, func(ctx context.Context) error {
		post, err := s.postRepo.Get(ctx, postID)
		if err != nil {
			if errors.Is(err, secondary.ErrNotFound) {
				return ErrPostNotFound
			}
			return err
		}

		actor, err := s.auth.RequireMembership(ctx, actorUID, post.ClubID)
		if err != nil {
			return err
		}
		isManager := actor.Membership.Role == entity.RoleOwner || actor.Membership.Role == entity.RoleManager
		if actor.User.ID != post.CreatorID && !isManager {
			return ErrForbidden
		}

		if err := s.postRepo.DeleteLikesByPost(ctx, postID); err != nil {
			return err
		}
		if err := s.postRepo.Delete(ctx, postID); err != nil {
			return err
		}

		action := fmt.Sprintf("'%s' deleted a post.", actor.User.Name)
		return s.logs.Append(ctx, post.ClubID, actor.User.ID, action)
	})
}

// ToggleLike flips the caller's like on the post and returns the resulting
// like count. Any approved member of the post's club may like it.
func (s *PostService) ToggleLike(ctx context.Context, actorUID, postID string) (liked bool, count int64, err error) {
	err = runTx(ctx, s.tx, func(ctx context.Context) error {
		post, err := s.postRepo.Get(ctx, postID)
		if err != nil {
			if errors.Is(err, secondary.ErrNotFound) {
				return ErrPostNotFound
			}
			return err
		}

		actor, err := s.auth.RequireMembership(ctx, actorUID, post.ClubID)
		if err != nil {
			return err
		}

		exists, err := s.postRepo.LikeExists(ctx, postID, actor.User.ID)
		if err != nil {
			return err
		}
		if exists {
			if err := s.postRepo.RemoveLike(ctx, postID, actor.User.ID); err != nil {
				return err
			}
			liked = false
		} else {
			err := s.postRepo.AddLike(ctx, &entity.PostLike{PostID: postID, UserID: actor.User.ID})
			// A concurrent like of the same post lands here; the like is
			// in place either way.
			if err != nil && !errors.Is(err, secondary.ErrDuplicate) {
				return err
			}
			liked = true
		}

		count, err = s.postRepo.CountLikes(ctx, postID)
		return err
	})
	if err != nil {
		return false, 0, err
	}
	return liked, count, nil
}

// GetByClub lists the club's posts, newest first. Any approved member may
// read them.
func (s *PostService) GetByClub(ctx context.Context, actorUID, clubID string) ([]dto.PostSummary, error) {
	var posts []dto.PostSummary
	err := runTx(ctx, s.tx, func(ctx context.Context) error {
		actor, err := s.auth.RequireMembership(ctx, actorUID, clubID)
		if err != nil {
			return err
		}
		posts, err = s.postRepo.GetSummariesByClub(ctx, clubID, actor.User.ID)
		return err
	})
	return posts, err
}

// Feed lists posts from every club the caller is an approved member of,
// newest first.
func (s *PostService) Feed(ctx context.Context, actorUID string) ([]dto.PostSummary, error) {
	user, err := s.auth.ResolveUser(ctx, actorUID)
	if err != nil {
		return nil, err
	}
	return s.postRepo.GetFeed(ctx, user.ID)
}
