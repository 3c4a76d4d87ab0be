package http

import (
	"context"
	"net/http"
	"strings"
)

type uidKey struct{}

// actorUID returns the external UID the auth middleware resolved for this
// request.
func actorUID(r *http.Request) string {
	uid, _ := r.Context().Value(uidKey{}).(string)
	return uid
}

// authMiddleware resolves the bearer token to an external UID and stores it
// in the request context. Requests without a resolvable token get a 401.
func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "missing bearer token"})
			return
		}

		uid, err := s.identity.Resolve(r.Context(), token)
		if err != nil {
			writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "invalid token"})
			return
		}

		ctx := context.WithValue(r.Context(), uidKey{}, uid)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
