package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/unihub/unihub-api/internal/domain/utils/validator"
)

type createPostRequest struct {
	Description string `json:"description"`
}

type toggleLikeResponse struct {
	Liked     bool  `json:"liked"`
	LikeCount int64 `json:"like_count"`
}

func (s *Server) handleClubPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := s.posts.GetByClub(r.Context(), actorUID(r), chi.URLParam(r, "clubID"))
	if err != nil {
		writeError(w, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, posts)
}

func (s *Server) handleCreatePost(w http.ResponseWriter, r *http.Request) {
	var req createPostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || !validator.PostDescription(req.Description) {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "description is required"})
		return
	}

	post, err := s.posts.Create(r.Context(), actorUID(r), chi.URLParam(r, "clubID"), req.Description)
	if err != nil {
		writeError(w, s.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, post)
}

func (s *Server) handleDeletePost(w http.ResponseWriter, r *http.Request) {
	if err := s.posts.Delete(r.Context(), actorUID(r), chi.URLParam(r, "postID")); err != nil {
		writeError(w, s.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleToggleLike(w http.ResponseWriter, r *http.Request) {
	liked, count, err := s.posts.ToggleLike(r.Context(), actorUID(r), chi.URLParam(r, "postID"))
	if err != nil {
		writeError(w, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, toggleLikeResponse{Liked: liked, LikeCount: count})
}
