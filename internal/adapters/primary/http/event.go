package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/unihub/unihub-api/internal/domain/dto"
	"github.com/unihub/unihub-api/internal/domain/entity"
	"github.com/unihub/unihub-api/internal/domain/utils/validator"
)

type createEventRequest struct {
	Name        string              `json:"name"`
	Description string              `json:"description"`
	Location    string              `json:"location"`
	StartTime   time.Time           `json:"start_time"`
	EndTime     time.Time           `json:"end_time"`
	Questions   []formQuestionInput `json:"questions"`
}

type formQuestionInput struct {
	Text string `json:"text"`
	Type string `json:"type"`
}

type attendEventRequest struct {
	Answers []formAnswerInput `json:"answers"`
}

type formAnswerInput struct {
	QuestionID string `json:"question_id"`
	Answer     string `json:"answer"`
}

func (s *Server) handleClubEvents(w http.ResponseWriter, r *http.Request) {
	events, err := s.events.GetByClub(r.Context(), chi.URLParam(r, "clubID"))
	if err != nil {
		writeError(w, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, events)
}

func (s *Server) handleCreateEvent(w http.ResponseWriter, r *http.Request) {
	var req createEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid body"})
		return
	}
	if !validator.EventName(req.Name) || req.StartTime.IsZero() {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "name and start_time are required"})
		return
	}

	questions := make([]dto.EventFormQuestionCreate, 0, len(req.Questions))
	for _, q := range req.Questions {
		questions = append(questions, dto.EventFormQuestionCreate{
			Text: q.Text,
			Type: entity.QuestionType(q.Type),
		})
	}

	event, err := s.events.Create(r.Context(), actorUID(r), chi.URLParam(r, "clubID"), dto.EventCreate{
		Name:        req.Name,
		Description: req.Description,
		Location:    req.Location,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Questions:   questions,
	})
	if err != nil {
		writeError(w, s.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, event)
}

func (s *Server) handleGetEvent(w http.ResponseWriter, r *http.Request) {
	event, err := s.events.Get(r.Context(), chi.URLParam(r, "eventID"))
	if err != nil {
		writeError(w, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, event)
}

func (s *Server) handleDeleteEvent(w http.ResponseWriter, r *http.Request) {
	if err := s.events.Delete(r.Context(), actorUID(r), chi.URLParam(r, "eventID")); err != nil {
		writeError(w, s.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleAttendEvent(w http.ResponseWriter, r *http.Request) {
	// The body is optional: events without a form are joined with no answers.
	var req attendEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid body"})
		return
	}
	answers := make([]dto.FormAnswerInput, 0, len(req.Answers))
	for _, a := range req.Answers {
		answers = append(answers, dto.FormAnswerInput{QuestionID: a.QuestionID, Text: a.Answer})
	}

	if err := s.events.Attend(r.Context(), actorUID(r), chi.URLParam(r, "eventID"), answers); err != nil {
		writeError(w, s.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleCheckIn(w http.ResponseWriter, r *http.Request) {
	if err := s.events.CheckIn(r.Context(), actorUID(r), chi.URLParam(r, "eventID")); err != nil {
		writeError(w, s.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleEventForm(w http.ResponseWriter, r *http.Request) {
	questions, err := s.events.FormQuestions(r.Context(), chi.URLParam(r, "eventID"))
	if err != nil {
		writeError(w, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, questions)
}

func (s *Server) handleEventSubmissions(w http.ResponseWriter, r *http.Request) {
	submissions, err := s.events.Submissions(r.Context(), actorUID(r), chi.URLParam(r, "eventID"))
	if err != nil {
		writeError(w, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, submissions)
}

func (s *Server) handleLeaveEvent(w http.ResponseWriter, r *http.Request) {
	if err := s.events.Leave(r.Context(), actorUID(r), chi.URLParam(r, "eventID")); err != nil {
		writeError(w, s.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleRemoveAttendee(w http.ResponseWriter, r *http.Request) {
	err := s.events.RemoveAttendee(r.Context(), actorUID(r), chi.URLParam(r, "eventID"), chi.URLParam(r, "userID"))
	if err != nil {
		writeError(w, s.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleClubCalendar(w http.ResponseWriter, r *http.Request) {
	cal, err := s.events.Calendar(r.Context(), chi.URLParam(r, "clubID"))
	if err != nil {
		writeError(w, s.logger, err)
		return
	}
	w.Header().Set("Content-Type", "text/calendar")
	_, _ = w.Write([]byte(cal))
}

func (s *Server) handleEventQR(w http.ResponseWriter, r *http.Request) {
	png, err := s.events.CheckInQR(r.Context(), actorUID(r), chi.URLParam(r, "eventID"))
	if err != nil {
		writeError(w, s.logger, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	_, _ = w.Write(png)
}
