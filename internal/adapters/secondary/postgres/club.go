package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/unihub/unihub-api/internal/domain/dto"
	"github.com/unihub/unihub-api/internal/domain/entity"
	"github.com/unihub/unihub-api/internal/ports/secondary"
)

type ClubRepository struct {
	db *gorm.DB
}

func NewClubRepository(db *gorm.DB) *ClubRepository {
	return &ClubRepository{
		db: db,
	}
}

func (s *ClubRepository) Create(ctx context.Context, club *entity.Club) (*entity.Club, error) {
	if err := dbFrom(ctx, s.db).Create(club).Error; err != nil {
		return nil, translate(err)
	}
	return club, nil
}

func (s *ClubRepository) Get(ctx context.Context, id string) (*entity.Club, error) {
	var club entity.Club
	if err := dbFrom(ctx, s.db).Where("id = ?", id).First(&club).Error; err != nil {
		return nil, translate(err)
	}
	return &club, nil
}

func (s *ClubRepository) GetAll(ctx context.Context) ([]entity.Club, error) {
	var clubs []entity.Club
	if err := dbFrom(ctx, s.db).Order("name ASC").Find(&clubs).Error; err != nil {
		return nil, translate(err)
	}
	return clubs, nil
}

func (s *ClubRepository) Update(ctx context.Context, club *entity.Club) (*entity.Club, error) {
	if err := dbFrom(ctx, s.db).Save(club).Error; err != nil {
		return nil, translate(err)
	}
	return club, nil
}

func (s *ClubRepository) Delete(ctx context.Context, id string) error {
	return translate(dbFrom(ctx, s.db).Where("id = ?", id).Delete(&entity.Club{}).Error)
}

func (s *ClubRepository) ShortNameExists(ctx context.Context, shortName string) (bool, error) {
	var count int64
	err := dbFrom(ctx, s.db).Model(&entity.Club{}).Where("short_name = ?", shortName).Count(&count).Error
	if err != nil {
		return false, translate(err)
	}
	return count > 0, nil
}

const clubSummarySelect = `clubs.id, clubs.name, clubs.short_name, clubs.university, clubs.faculty, clubs.department, clubs.color,
(SELECT COUNT(*) FROM memberships WHERE memberships.club_id = clubs.id AND memberships.status = 'APPROVED') AS member_count,
(SELECT COUNT(*) FROM events WHERE events.club_id = clubs.id) AS event_count`

func (s *ClubRepository) FindFiltered(ctx context.Context, filter dto.ClubFilter, sort secondary.ClubSort, limit int) ([]dto.ClubSummary, error) {
	q := dbFrom(ctx, s.db).Model(&entity.Club{}).Select(clubSummarySelect)
	if filter.University != "" {
		q = q.Where("university = ?", filter.University)
	}
	if filter.Faculty != "" {
		q = q.Where("faculty = ?", filter.Faculty)
	}
	if filter.Department != "" {
		q = q.Where("department = ?", filter.Department)
	}

	switch sort {
	case secondary.ClubSortMembers:
		q = q.Order("member_count DESC")
	case secondary.ClubSortEvents:
		q = q.Order("event_count DESC")
	default:
		q = q.Order("RANDOM()")
	}

	var summaries []dto.ClubSummary
	if err := q.Limit(limit).Scan(&summaries).Error; err != nil {
		return nil, translate(err)
	}
	return summaries, nil
}
