package postgres

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/unihub/unihub-api/internal/domain/dto"
	"github.com/unihub/unihub-api/internal/domain/entity"
)

type MembershipRepository struct {
	db *gorm.DB
}

func NewMembershipRepository(db *gorm.DB) *MembershipRepository {
	return &MembershipRepository{
		db: db,
	}
}

func (s *MembershipRepository) Create(ctx context.Context, m *entity.Membership) error {
	return translate(dbFrom(ctx, s.db).Create(m).Error)
}

func (s *MembershipRepository) Get(ctx context.Context, clubID, userID string) (*entity.Membership, error) {
	var m entity.Membership
	err := dbFrom(ctx, s.db).Where("club_id = ? AND user_id = ?", clubID, userID).First(&m).Error
	if err != nil {
		return nil, translate(err)
	}
	return &m, nil
}

func (s *MembershipRepository) GetForUpdate(ctx context.Context, clubID, userID string) (*entity.Membership, error) {
	var m entity.Membership
	err := dbFrom(ctx, s.db).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("club_id = ? AND user_id = ?", clubID, userID).
		First(&m).Error
	if err != nil {
		return nil, translate(err)
	}
	return &m, nil
}

func (s *MembershipRepository) Update(ctx context.Context, m *entity.Membership) error {
	return translate(dbFrom(ctx, s.db).Save(m).Error)
}

func (s *MembershipRepository) Delete(ctx context.Context, clubID, userID string) error {
	return translate(dbFrom(ctx, s.db).
		Where("club_id = ? AND user_id = ?", clubID, userID).
		Delete(&entity.Membership{}).Error)
}

func (s *MembershipRepository) GetByClubAndStatus(ctx context.Context, clubID string, status entity.MembershipStatus) ([]dto.ClubMember, error) {
	var members []dto.ClubMember
	err := dbFrom(ctx, s.db).
		Table("memberships").
		Select(`memberships.user_id,
			memberships.club_id,
			users.name,
			users.email,
			users.avatar_url,
			memberships.role,
			memberships.status,
			memberships.created_at AS joined_at`).
		Joins("JOIN users ON users.id = memberships.user_id").
		Where("memberships.club_id = ? AND memberships.status = ?", clubID, status).
		Order("memberships.created_at ASC").
		Scan(&members).Error
	if err != nil {
		return nil, translate(err)
	}
	return members, nil
}

func (s *MembershipRepository) DeleteByClub(ctx context.Context, clubID string) error {
	return translate(dbFrom(ctx, s.db).
		Where("club_id = ?", clubID).
		Delete(&entity.Membership{}).Error)
}
