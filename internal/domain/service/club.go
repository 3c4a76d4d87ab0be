package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"

	"github.com/unihub/unihub-api/internal/domain/dto"
	"github.com/unihub/unihub-api/internal/domain/entity"
	"github.com/unihub/unihub-api/internal/ports/secondary"
)

// ClubService owns club records and the two lifecycle edges that touch them:
// creation (which atomically seeds the OWNER membership) and deletion (which
// cascades over everything the club owns).
type ClubService struct {
	tx   secondary.TxManager
	auth *AuthService
	logs *ClubLogService

	clubRepo   secondary.ClubRepository
	memberRepo secondary.MembershipRepository
	eventRepo  secondary.EventRepository
	postRepo   secondary.PostRepository
	logRepo    secondary.ClubLogRepository
}

func NewClubService(
	tx secondary.TxManager,
	auth *AuthService,
	logs *ClubLogService,
	clubStorage secondary.ClubRepository,
	memberStorage secondary.MembershipRepository,
	eventStorage secondary.EventRepository,
	postStorage secondary.PostRepository,
	logStorage secondary.ClubLogRepository,
) *ClubService {
	return &ClubService{
		tx:         tx,
		auth:       auth,
		logs:       logs,
		clubRepo:   clubStorage,
		memberRepo: memberStorage,
		eventRepo:  eventStorage,
		postRepo:   postStorage,
		logRepo:    logStorage,
	}
}

// Create makes a new club and, in the same transaction, its OWNER membership
// and the first log line. A club never exists without exactly one owner.
func (s *ClubService) Create(ctx context.Context, actorUID string, in dto.ClubCreate) (*entity.Club, error) {
	var club *entity.Club
	err := runTx(ctx, s.tx, func(ctx context.Context) error {
		creator, err := s.auth.ResolveUser(ctx, actorUID)
		if err != nil {
			return err
		}

		taken, err := s.clubRepo.ShortNameExists(ctx, in.ShortName)
		if err != nil {
			return err
		}
		if taken {
			return ErrShortNameTaken
		}

		club, err = s.clubRepo.Create(ctx, &entity.Club{
			Name:        in.Name,
			ShortName:   in.ShortName,
			Description: in.Description,
			University:  in.University,
			Faculty:     in.Faculty,
			Department:  in.Department,
			Color:       randomHexColor(),
			Tags:        in.Tags,
		})
		if err != nil {
			if errors.Is(err, secondary.ErrDuplicate) {
				return ErrShortNameTaken
			}
			return err
		}

		err = s.memberRepo.Create(ctx, &entity.Membership{
			UserID: creator.ID,
			ClubID: club.ID,
			Role:   entity.RoleOwner,
			Status: entity.MembershipStatusApproved,
		})
		if err != nil {
			return err
		}

		action := fmt.Sprintf("'%s' created the club.", creator.Name)
		return s.logs.Append(ctx, club.ID, creator.ID, action)
	})
	if err != nil {
		return nil, err
	}
	return club, nil
}

func (s *ClubService) Get(ctx context.Context, id string) (*entity.Club, error) {
	club, err := s.clubRepo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, secondary.ErrNotFound) {
			return nil, ErrClubNotFound
		}
		return nil, err
	}
	return club, nil
}

func (s *ClubService) GetAll(ctx context.Context) ([]entity.Club, error) {
	return s.clubRepo.GetAll(ctx)
}

const discoveryGroupSize = 5

// Discovery returns the grouped discovery view for an organizational unit:
// the clubs with the most members, the most events, and a random sample.
func (s *ClubService) Discovery(ctx context.Context, filter dto.ClubFilter) (*dto.ClubDiscovery, error) {
	topByMembers, err := s.clubRepo.FindFiltered(ctx, filter, secondary.ClubSortMembers, discoveryGroupSize)
	if err != nil {
		return nil, err
	}
	topByEvents, err := s.clubRepo.FindFiltered(ctx, filter, secondary.ClubSortEvents, discoveryGroupSize)
	if err != nil {
		return nil, err
	}
	random, err := s.clubRepo.FindFiltered(ctx, filter, secondary.ClubSortRandom, discoveryGroupSize)
	if err != nil {
		return nil, err
	}

	return &dto.ClubDiscovery{
		TopByMembers: topByMembers,
		TopByEvents:  topByEvents,
		Random:       random,
	}, nil
}

// Update applies a partial update to the club's details. Owner only, logged.
func (s *ClubService) Update(ctx context.Context, actorUID, clubID string, in dto.ClubUpdate) (*entity.Club, error) {
	var club *entity.Club
	err := runTx(ctx, s.tx, func(ctx context.Context) error {
		actor, err := s.auth.RequireMembership(ctx, actorUID, clubID, entity.RoleOwner)
		if err != nil {
			return err
		}

		club, err = s.clubRepo.Get(ctx, clubID)
		if err != nil {
			if errors.Is(err, secondary.ErrNotFound) {
				return ErrClubNotFound
			}
			return err
		}

		if in.ShortName != nil && *in.ShortName != club.ShortName {
			taken, err := s.clubRepo.ShortNameExists(ctx, *in.ShortName)
			if err != nil {
				return err
			}
			if taken {
				return ErrShortNameTaken
			}
			club.ShortName = *in.ShortName
		}
		if in.Name != nil {
			club.Name = *in.Name
		}
		if in.Description != nil {
			club.Description = *in.Description
		}
		if in.Tags != nil {
			club.Tags = *in.Tags
		}

		if club, err = s.clubRepo.Update(ctx, club); err != nil {
			return err
		}

		action := fmt.Sprintf("'%s' updated the club details.", actor.User.Name)
		return s.logs.Append(ctx, clubID, actor.User.ID, action)
	})
	if err != nil {
		return nil, err
	}
	return club, nil
}

// Delete removes the club and everything it owns. The cascade is explicit and
// runs in dependency order inside one transaction: likes and posts, form
// answers and questions, attendance and events, logs, memberships, then the
// club itself.
func (s *ClubService) Delete(ctx context.Context, actorUID, clubID string) error {
	return runTx(ctx, s.tx, func(ctx context.Context) error {
		if _, err := s.auth.RequireMembership(ctx, actorUID, clubID, entity.RoleOwner); err != nil {
			return err
		}

		if err := s.postRepo.DeleteLikesByClub(ctx, clubID); err != nil {
			return err
		}
		if err := s.postRepo.DeleteByClub(ctx, clubID); err != nil {
			return err
		}
		if err := s.eventRepo.DeleteAnswersByClub(ctx, clubID); err != nil {
			return err
		}
		if err := s.eventRepo.DeleteQuestionsByClub(ctx, clubID); err != nil {
			return err
		}
		if err := s.eventRepo.DeleteParticipantsByClub(ctx, clubID); err != nil {
			return err
		}
		if err := s.eventRepo.DeleteByClub(ctx, clubID); err != nil {
			return err
		}
		if err := s.logRepo.DeleteByClub(ctx, clubID); err != nil {
			return err
		}
		if err := s.memberRepo.DeleteByClub(ctx, clubID); err != nil {
			return err
		}
		return s.clubRepo.Delete(ctx, clubID)
	})
}

func randomHexColor() string {
	// Capped below 200 per channel so white text stays readable.
	return fmt.Sprintf("#%02x%02x%02x", rand.Intn(200), rand.Intn(200), rand.Intn(200))
}
