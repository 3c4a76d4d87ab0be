package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/unihub/unihub-api/internal/domain/dto"
	"github.com/unihub/unihub-api/internal/domain/utils/validator"
)

type createClubRequest struct {
	Name        string   `json:"name"`
	ShortName   string   `json:"short_name"`
	Description string   `json:"description"`
	University  string   `json:"university"`
	Faculty     string   `json:"faculty"`
	Department  string   `json:"department"`
	Tags        []string `json:"tags"`
}

type updateClubRequest struct {
	Name        *string   `json:"name"`
	ShortName   *string   `json:"short_name"`
	Description *string   `json:"description"`
	Tags        *[]string `json:"tags"`
}

func (s *Server) handleDiscovery(w http.ResponseWriter, r *http.Request) {
	discovery, err := s.clubs.Discovery(r.Context(), dto.ClubFilter{
		University: r.URL.Query().Get("university"),
		Faculty:    r.URL.Query().Get("faculty"),
		Department: r.URL.Query().Get("department"),
	})
	if err != nil {
		writeError(w, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, discovery)
}

func (s *Server) handleListClubs(w http.ResponseWriter, r *http.Request) {
	clubs, err := s.clubs.GetAll(r.Context())
	if err != nil {
		writeError(w, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, clubs)
}

func (s *Server) handleCreateClub(w http.ResponseWriter, r *http.Request) {
	var req createClubRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid body"})
		return
	}
	if !validator.ClubName(req.Name) || !validator.ClubShortName(req.ShortName) || !validator.ClubDescription(req.Description) {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid club fields"})
		return
	}

	club, err := s.clubs.Create(r.Context(), actorUID(r), dto.ClubCreate{
		Name:        req.Name,
		ShortName:   req.ShortName,
		Description: req.Description,
		University:  req.University,
		Faculty:     req.Faculty,
		Department:  req.Department,
		Tags:        req.Tags,
	})
	if err != nil {
		writeError(w, s.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, club)
}

func (s *Server) handleGetClub(w http.ResponseWriter, r *http.Request) {
	club, err := s.clubs.Get(r.Context(), chi.URLParam(r, "clubID"))
	if err != nil {
		writeError(w, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, club)
}

func (s *Server) handleUpdateClub(w http.ResponseWriter, r *http.Request) {
	var req updateClubRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid body"})
		return
	}

	if (req.Name != nil && !validator.ClubName(*req.Name)) ||
		(req.ShortName != nil && !validator.ClubShortName(*req.ShortName)) ||
		(req.Description != nil && !validator.ClubDescription(*req.Description)) {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid club fields"})
		return
	}

	club, err := s.clubs.Update(r.Context(), actorUID(r), chi.URLParam(r, "clubID"), dto.ClubUpdate{
		Name:        req.Name,
		ShortName:   req.ShortName,
		Description: req.Description,
		Tags:        req.Tags,
	})
	if err != nil {
		writeError(w, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, club)
}

func (s *Server) handleDeleteClub(w http.ResponseWriter, r *http.Request) {
	if err := s.clubs.Delete(r.Context(), actorUID(r), chi.URLParam(r, "clubID")); err != nil {
		writeError(w, s.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleClubLogs(w http.ResponseWriter, r *http.Request) {
	entries, err := s.logs.GetByClub(r.Context(), actorUID(r), chi.URLParam(r, "clubID"))
	if err != nil {
		writeError(w, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

func (s *Server) handleDeleteClubLog(w http.ResponseWriter, r *http.Request) {
	err := s.logs.Delete(r.Context(), actorUID(r), chi.URLParam(r, "clubID"), chi.URLParam(r, "logID"))
	if err != nil {
		writeError(w, s.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleExportMembers(w http.ResponseWriter, r *http.Request) {
	buf, filename, err := s.exports.MembersXLSX(r.Context(), actorUID(r), chi.URLParam(r, "clubID"))
	if err != nil {
		writeError(w, s.logger, err)
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	_, _ = buf.WriteTo(w)
}
