package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/unihub/unihub-api/internal/domain/dto"
)

func (s *Server) handleRequestToJoin(w http.ResponseWriter, r *http.Request) {
	err := s.memberships.RequestToJoin(r.Context(), actorUID(r), chi.URLParam(r, "clubID"))
	if err != nil {
		writeError(w, s.logger, err)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

func (s *Server) handleWithdrawJoinRequest(w http.ResponseWriter, r *http.Request) {
	err := s.memberships.WithdrawJoinRequest(r.Context(), actorUID(r), chi.URLParam(r, "clubID"))
	if err != nil {
		writeError(w, s.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleApproveJoinRequest(w http.ResponseWriter, r *http.Request) {
	err := s.memberships.ApproveJoinRequest(r.Context(), actorUID(r), chi.URLParam(r, "clubID"), chi.URLParam(r, "userID"))
	if err != nil {
		writeError(w, s.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleRejectJoinRequest(w http.ResponseWriter, r *http.Request) {
	err := s.memberships.RejectJoinRequest(r.Context(), actorUID(r), chi.URLParam(r, "clubID"), chi.URLParam(r, "userID"))
	if err != nil {
		writeError(w, s.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handlePromoteMember(w http.ResponseWriter, r *http.Request) {
	err := s.memberships.PromoteMember(r.Context(), actorUID(r), chi.URLParam(r, "clubID"), chi.URLParam(r, "userID"))
	if err != nil {
		writeError(w, s.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDemoteMember(w http.ResponseWriter, r *http.Request) {
	err := s.memberships.DemoteMember(r.Context(), actorUID(r), chi.URLParam(r, "clubID"), chi.URLParam(r, "userID"))
	if err != nil {
		writeError(w, s.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleRemoveMember(w http.ResponseWriter, r *http.Request) {
	err := s.memberships.RemoveMember(r.Context(), actorUID(r), chi.URLParam(r, "clubID"), chi.URLParam(r, "userID"))
	if err != nil {
		writeError(w, s.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleLeaveClub(w http.ResponseWriter, r *http.Request) {
	err := s.memberships.LeaveClub(r.Context(), actorUID(r), chi.URLParam(r, "clubID"))
	if err != nil {
		writeError(w, s.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type transferOwnershipRequest struct {
	NewOwnerUserID string `json:"new_owner_user_id"`
}

func (s *Server) handleTransferOwnership(w http.ResponseWriter, r *http.Request) {
	var req transferOwnershipRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.NewOwnerUserID == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "new_owner_user_id is required"})
		return
	}

	err := s.memberships.TransferOwnership(r.Context(), actorUID(r), chi.URLParam(r, "clubID"), req.NewOwnerUserID)
	if err != nil {
		writeError(w, s.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleMembers(w http.ResponseWriter, r *http.Request) {
	members, err := s.memberships.Members(r.Context(), actorUID(r), chi.URLParam(r, "clubID"))
	if err != nil {
		writeError(w, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, members)
}

func (s *Server) handlePendingMembers(w http.ResponseWriter, r *http.Request) {
	members, err := s.memberships.PendingMembers(r.Context(), actorUID(r), chi.URLParam(r, "clubID"))
	if err != nil {
		writeError(w, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, members)
}

type notificationSettingsRequest struct {
	EventNotificationsEnabled *bool `json:"event_notifications_enabled"`
	PostNotificationsEnabled  *bool `json:"post_notifications_enabled"`
}

func (s *Server) handleNotificationSettings(w http.ResponseWriter, r *http.Request) {
	var req notificationSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid body"})
		return
	}

	err := s.memberships.UpdateNotificationSettings(r.Context(), actorUID(r), chi.URLParam(r, "clubID"), dto.NotificationSettings{
		EventNotificationsEnabled: req.EventNotificationsEnabled,
		PostNotificationsEnabled:  req.PostNotificationsEnabled,
	})
	if err != nil {
		writeError(w, s.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
