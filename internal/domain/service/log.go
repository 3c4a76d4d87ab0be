package service

import (
	"context"
	"errors"

	"github.com/unihub/unihub-api/internal/domain/dto"
	"github.com/unihub/unihub-api/internal/domain/entity"
	"github.com/unihub/unihub-api/internal/ports/secondary"
)

// ClubLogService appends and serves the club audit log. Append runs inside
// the caller's transaction; an append failure aborts the whole operation.
type ClubLogService struct {
	tx      secondary.TxManager
	auth    *AuthService
	logRepo secondary.ClubLogRepository
}

func NewClubLogService(tx secondary.TxManager, auth *AuthService, logStorage secondary.ClubLogRepository) *ClubLogService {
	return &ClubLogService{
		tx:      tx,
		auth:    auth,
		logRepo: logStorage,
	}
}

// Append writes one audit fact. The action text is built by the caller from
// display names resolved at the time of the action, so it stays a
// point-in-time snapshot.
func (s *ClubLogService) Append(ctx context.Context, clubID, actorID, action string) error {
	return s.logRepo.Create(ctx, &entity.ClubLog{
		ClubID:  clubID,
		ActorID: actorID,
		Action:  action,
	})
}

// GetByClub lists a club's log, newest first. Managers and the owner may
// read it.
func (s *ClubLogService) GetByClub(ctx context.Context, actorUID, clubID string) ([]dto.ClubLogEntry, error) {
	var entries []dto.ClubLogEntry
	err := runTx(ctx, s.tx, func(ctx context.Context) error {
		if _, err := s.auth.RequireMembership(ctx, actorUID, clubID, entity.RoleOwner, entity.RoleManager); err != nil {
			return err
		}
		var err error
		entries, err = s.logRepo.GetByClub(ctx, clubID)
		return err
	})
	return entries, err
}

// Delete removes a single log entry. Only the club's owner may do this, and
// the entry must belong to the club.
func (s *ClubLogService) Delete(ctx context.Context, actorUID, clubID, logID string) error {
	return runTx(ctx, s.tx, func(ctx context.Context) error {
		if _, err := s.auth.RequireMembership(ctx, actorUID, clubID, entity.RoleOwner); err != nil {
			return err
		}

		log, err := s.logRepo.Get(ctx, logID)
		if err != nil {
			if errors.Is(err, secondary.ErrNotFound) {
				return ErrLogNotFound
			}
			return err
		}
		if log.ClubID != clubID {
			return ErrLogNotFound
		}

		return s.logRepo.Delete(ctx, logID)
	})
}
