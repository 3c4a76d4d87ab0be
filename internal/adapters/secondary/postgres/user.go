package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/unihub/unihub-api/internal/domain/entity"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{
		db: db,
	}
}

func (s *UserRepository) Create(ctx context.Context, user *entity.User) (*entity.User, error) {
	if err := dbFrom(ctx, s.db).Create(user).Error; err != nil {
		return nil, translate(err)
	}
	return user, nil
}

func (s *UserRepository) Get(ctx context.Context, id string) (*entity.User, error) {
	var user entity.User
	if err := dbFrom(ctx, s.db).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (s *UserRepository) GetByExternalUID(ctx context.Context, externalUID string) (*entity.User, error) {
	var user entity.User
	if err := dbFrom(ctx, s.db).Where("external_uid = ?", externalUID).First(&user).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (s *UserRepository) Update(ctx context.Context, user *entity.User) (*entity.User, error) {
	if err := dbFrom(ctx, s.db).Save(user).Error; err != nil {
		return nil, translate(err)
	}
	return user, nil
}
