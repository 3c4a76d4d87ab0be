package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/unihub/unihub-api/internal/domain/dto"
	"github.com/unihub/unihub-api/internal/domain/entity"
)

type ClubLogRepository struct {
	db *gorm.DB
}

func NewClubLogRepository(db *gorm.DB) *ClubLogRepository {
	return &ClubLogRepository{
		db: db,
	}
}

func (s *ClubLogRepository) Create(ctx context.Context, log *entity.ClubLog) error {
	return translate(dbFrom(ctx, s.db).Create(log).Error)
}

func (s *ClubLogRepository) Get(ctx context.Context, id string) (*entity.ClubLog, error) {
	var log entity.ClubLog
	if err := dbFrom(ctx, s.db).Where("id = ?", id).First(&log).Error; err != nil {
		return nil, translate(err)
	}
	return &log, nil
}

func (s *ClubLogRepository) Delete(ctx context.Context, id string) error {
	return translate(dbFrom(ctx, s.db).Where("id = ?", id).Delete(&entity.ClubLog{}).Error)
}

func (s *ClubLogRepository) GetByClub(ctx context.Context, clubID string) ([]dto.ClubLogEntry, error) {
	var entries []dto.ClubLogEntry
	err := dbFrom(ctx, s.db).
		Table("club_logs").
		Select(`club_logs.id,
			users.name AS actor_name,
			club_logs.action,
			club_logs.created_at`).
		Joins("JOIN users ON users.id = club_logs.actor_id").
		Where("club_logs.club_id = ?", clubID).
		Order("club_logs.created_at DESC").
		Scan(&entries).Error
	if err != nil {
		return nil, translate(err)
	}
	return entries, nil
}

func (s *ClubLogRepository) DeleteByClub(ctx context.Context, clubID string) error {
	return translate(dbFrom(ctx, s.db).Where("club_id = ?", clubID).Delete(&entity.ClubLog{}).Error)
}
