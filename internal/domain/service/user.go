package service

import (
	"context"
	"errors"

	"github.com/unihub/unihub-api/internal/domain/dto"
	"github.com/unihub/unihub-api/internal/domain/entity"
	"github.com/unihub/unihub-api/internal/ports/secondary"
)

// UserService keeps the local user table in step with the identity provider.
type UserService struct {
	tx       secondary.TxManager
	userRepo secondary.UserRepository
}

func NewUserService(tx secondary.TxManager, userStorage secondary.UserRepository) *UserService {
	return &UserService{
		tx:       tx,
		userRepo: userStorage,
	}
}

// Sync upserts the user by external UID. Called on every authenticated
// request so profile fields track the identity provider.
func (s *UserService) Sync(ctx context.Context, in dto.UserSync) (*entity.User, error) {
	var user *entity.User
	err := runTx(ctx, s.tx, func(ctx context.Context) error {
		existing, err := s.userRepo.GetByExternalUID(ctx, in.ExternalUID)
		switch {
		case err == nil:
			existing.Name = in.Name
			existing.Email = in.Email
			existing.University = in.University
			existing.Faculty = in.Faculty
			existing.Department = in.Department
			existing.AvatarURL = in.AvatarURL
			user, err = s.userRepo.Update(ctx, existing)
			return err
		case errors.Is(err, secondary.ErrNotFound):
			user, err = s.userRepo.Create(ctx, &entity.User{
				ExternalUID: in.ExternalUID,
				Name:        in.Name,
				Email:       in.Email,
				University:  in.University,
				Faculty:     in.Faculty,
				Department:  in.Department,
				AvatarURL:   in.AvatarURL,
			})
			return err
		default:
			return err
		}
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) Get(ctx context.Context, id string) (*entity.User, error) {
	user, err := s.userRepo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, secondary.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *UserService) GetByExternalUID(ctx context.Context, externalUID string) (*entity.User, error) {
	user, err := s.userRepo.GetByExternalUID(ctx, externalUID)
	if err != nil {
		if errors.Is(err, secondary.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}
