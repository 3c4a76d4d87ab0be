package service

import (
	"bytes"
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/unihub/unihub-api/internal/domain/dto"
	"github.com/unihub/unihub-api/internal/domain/entity"
	"github.com/unihub/unihub-api/internal/ports/secondary"
	"github.com/unihub/unihub-api/pkg/logger/types"
)

// ExportService renders club data as downloadable files.
type ExportService struct {
	logger *types.Logger

	tx   secondary.TxManager
	auth *AuthService

	memberRepo secondary.MembershipRepository
	clubRepo   secondary.ClubRepository
}

func NewExportService(
	logger *types.Logger,
	tx secondary.TxManager,
	auth *AuthService,
	memberStorage secondary.MembershipRepository,
	clubStorage secondary.ClubRepository,
) *ExportService {
	return &ExportService{
		logger:     logger,
		tx:         tx,
		auth:       auth,
		memberRepo: memberStorage,
		clubRepo:   clubStorage,
	}
}

// MembersXLSX renders the club's approved roster as an Excel workbook.
// Managers and the owner may export it.
func (s *ExportService) MembersXLSX(ctx context.Context, actorUID, clubID string) (*bytes.Buffer, string, error) {
	var (
		buf      *bytes.Buffer
		filename string
	)
	err := runTx(ctx, s.tx, func(ctx context.Context) error {
		if _, err := s.auth.RequireMembership(ctx, actorUID, clubID, entity.RoleOwner, entity.RoleManager); err != nil {
			return err
		}

		club, err := s.clubRepo.Get(ctx, clubID)
		if err != nil {
			return err
		}
		members, err := s.memberRepo.GetByClubAndStatus(ctx, clubID, entity.MembershipStatusApproved)
		if err != nil {
			return err
		}

		if buf, err = s.renderMembersExcel(members); err != nil {
			return err
		}
		filename = fmt.Sprintf("%s_members.xlsx", club.ShortName)
		return nil
	})
	if err != nil {
		return nil, "", err
	}
	return buf, filename, nil
}

func (s *ExportService) renderMembersExcel(members []dto.ClubMember) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			s.logger.Errorf("Failed to close Excel file: %v", err)
		}
	}()

	sheetName := "Members"
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, fmt.Errorf("failed to set sheet name: %w", err)
	}

	headers := []string{"Name", "Email", "Role", "Joined"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheetName, cell, header); err != nil {
			return nil, fmt.Errorf("failed to set header cell: %w", err)
		}
	}

	for row, member := range members {
		data := []any{
			member.Name,
			member.Email,
			string(member.Role),
			member.JoinedAt.Format("02.01.2006"),
		}
		for i, value := range data {
			cell, _ := excelize.CoordinatesToCellName(i+1, row+2)
			if err := f.SetCellValue(sheetName, cell, value); err != nil {
				s.logger.Errorf("Failed to set cell value: %v", err)
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return &buf, nil
}
