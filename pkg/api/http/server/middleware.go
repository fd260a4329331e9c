package server

import (
	"net/http"

	"github.com/rs/zerolog/log"
)

// loggingMiddleware shims in a handler middleware that logs requests.
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.Debug().Str("method", r.Method).Str("uri", r.RequestURI).Int64("length", r.ContentLength).Msg("request")
		next.ServeHTTP(w, r)
	})
}

// admin gates a handler behind the configured admin bearer token.
// With no token configured the admin surface is disabled outright.
func (s *Server) admin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.adminToken == "" || bearerToken(r) != s.adminToken {
			http.Error(w, "authentication failed", http.StatusUnauthorized)
			return
		}
		next(w, r)
	}
}
