package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/unihub/unihub-api/internal/ports/primary"
	"github.com/unihub/unihub-api/internal/ports/secondary"
	"github.com/unihub/unihub-api/pkg/logger/types"
)

// Server is the HTTP transport. Handlers stay thin: decode, call the
// service, encode. All authorization decisions live in the services.
type Server struct {
	logger   *types.Logger
	identity secondary.IdentityResolver

	users       primary.UserService
	clubs       primary.ClubService
	memberships primary.MembershipService
	events      primary.EventService
	posts       primary.PostService
	logs        primary.ClubLogService
	exports     primary.ExportService
}

func NewServer(
	logger *types.Logger,
	identity secondary.IdentityResolver,
	users primary.UserService,
	clubs primary.ClubService,
	memberships primary.MembershipService,
	events primary.EventService,
	posts primary.PostService,
	logs primary.ClubLogService,
	exports primary.ExportService,
) *Server {
	return &Server{
		logger:      logger,
		identity:    identity,
		users:       users,
		clubs:       clubs,
		memberships: memberships,
		events:      events,
		posts:       posts,
		logs:        logs,
		exports:     exports,
	}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(s.authMiddleware)

		r.Get("/me", s.handleMe)
		r.Put("/me", s.handleSyncMe)
		r.Get("/feed", s.handleFeed)

		r.Route("/clubs", func(r chi.Router) {
			r.Get("/", s.handleListClubs)
			r.Post("/", s.handleCreateClub)
			r.Get("/discovery", s.handleDiscovery)

			r.Route("/{clubID}", func(r chi.Router) {
				r.Get("/", s.handleGetClub)
				r.Patch("/", s.handleUpdateClub)
				r.Delete("/", s.handleDeleteClub)

				r.Post("/join", s.handleRequestToJoin)
				r.Delete("/join", s.handleWithdrawJoinRequest)
				r.Post("/leave", s.handleLeaveClub)
				r.Post("/transfer-ownership", s.handleTransferOwnership)

				r.Get("/members", s.handleMembers)
				r.Get("/members/pending", s.handlePendingMembers)
				r.Get("/members/export", s.handleExportMembers)
				r.Post("/members/{userID}/approve", s.handleApproveJoinRequest)
				r.Post("/members/{userID}/reject", s.handleRejectJoinRequest)
				r.Post("/members/{userID}/promote", s.handlePromoteMember)
				r.Post("/members/{userID}/demote", s.handleDemoteMember)
				r.Delete("/members/{userID}", s.handleRemoveMember)

				r.Patch("/notification-settings", s.handleNotificationSettings)

				r.Get("/logs", s.handleClubLogs)
				r.Delete("/logs/{logID}", s.handleDeleteClubLog)

				r.Get("/events", s.handleClubEvents)
				r.Post("/events", s.handleCreateEvent)
				r.Get("/calendar.ics", s.handleClubCalendar)

				r.Get("/posts", s.handleClubPosts)
				r.Post("/posts", s.handleCreatePost)
			})
		})

		r.Route("/events", func(r chi.Router) {
			r.Get("/{eventID}", s.handleGetEvent)
			r.Delete("/{eventID}", s.handleDeleteEvent)
			r.Post("/{eventID}/attend", s.handleAttendEvent)
			r.Delete("/{eventID}/attend", s.handleLeaveEvent)
			r.Delete("/{eventID}/attendees/{userID}", s.handleRemoveAttendee)
			r.Post("/{eventID}/check-in", s.handleCheckIn)
			r.Get("/{eventID}/form", s.handleEventForm)
			r.Get("/{eventID}/submissions", s.handleEventSubmissions)
			r.Get("/{eventID}/qr", s.handleEventQR)
		})

		r.Route("/posts", func(r chi.Router) {
			r.Delete("/{postID}", s.handleDeletePost)
			r.Post("/{postID}/like", s.handleToggleLike)
		})
	})

	return r
}
