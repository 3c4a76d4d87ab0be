package http

import (
	"encoding/json"
	"net/http"

	"github.com/unihub/unihub-api/internal/domain/dto"
)

type syncProfileRequest struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	University string `json:"university"`
	Faculty    string `json:"faculty"`
	Department string `json:"department"`
	AvatarURL  string `json:"avatar_url"`
}

// handleMe returns the caller's profile, creating or refreshing it when a
// body is supplied.
func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	user, err := s.users.GetByExternalUID(r.Context(), actorUID(r))
	if err != nil {
		writeError(w, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (s *Server) handleSyncMe(w http.ResponseWriter, r *http.Request) {
	var req syncProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid body"})
		return
	}

	user, err := s.users.Sync(r.Context(), dto.UserSync{
		ExternalUID: actorUID(r),
		Name:        req.Name,
		Email:       req.Email,
		University:  req.University,
		Faculty:     req.Faculty,
		Department:  req.Department,
		AvatarURL:   req.AvatarURL,
	})
	if err != nil {
		writeError(w, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (s *Server) handleFeed(w http.ResponseWriter, r *http.Request) {
	feed, err := s.posts.Feed(r.Context(), actorUID(r))
	if err != nil {
		writeError(w, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, feed)
}
