package rest

import (
	"context"
	"math"
	"net/http"
	"strconv"
	"strings"

	"rentaldesk-backend/internal/access"
	"rentaldesk-backend/internal/service"
)

type contextKey string

const actorKey contextKey = "actor"

// actorFrom returns the authenticated actor stored by the auth middleware.
func actorFrom(ctx context.Context) (service.Actor, bool) {
	actor, ok := ctx.Value(actorKey).(service.Actor)
	return actor, ok
}

// authMiddleware validates the Bearer token and stores the resolved actor
// in the request context. Requests without a valid token are rejected.
func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			s.writeError(w, http.StatusUnauthorized, "unauthorized", "missing bearer token", nil)
			return
		}
		claims, err := s.tokens.ValidateToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			s.writeError(w, http.StatusUnauthorized, "unauthorized", "invalid or expired token", nil)
			return
		}
		actor := service.Actor{
			ID:       claims.StaffID,
			Username: claims.Username,
			Roles:    access.ResolveRoles(claims.Groups),
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), actorKey, actor)))
	})
}

// requireRead gates a handler on read access to the resource. Returns the
// actor and false if the response has already been written.
func (s *Server) requireRead(w http.ResponseWriter, r *http.Request, res access.Resource) (service.Actor, bool) {
	actor, ok := actorFrom(r.Context())
	if !ok {
		s.writeError(w, http.StatusUnauthorized, "unauthorized", "authentication required", nil)
		return actor, false
	}
	if !access.CanRead(actor.Roles, res) {
		s.writeError(w, http.StatusForbidden, "permission_denied", "you are not allowed to view this resource", nil)
		return actor, false
	}
	return actor, true
}

// requireWrite gates a handler on write access. Services re-check at the
// mutation point as well; this keeps the HTTP error consistent and early.
func (s *Server) requireWrite(w http.ResponseWriter, r *http.Request, res access.Resource) (service.Actor, bool) {
	actor, ok := actorFrom(r.Context())
	if !ok {
		s.writeError(w, http.StatusUnauthorized, "unauthorized", "authentication required", nil)
		return actor, false
	}
	if !access.CanWrite(actor.Roles, res) {
		s.writeError(w, http.StatusForbidden, "permission_denied", "you are not allowed to modify this resource", nil)
		return actor, false
	}
	return actor, true
}

// pagination reads page and page_size query parameters, clamped to the
// configured bounds. The page cap keeps (page-1)*pageSize inside int32,
// so an absurd page number yields an empty page instead of a negative
// OFFSET.
func (s *Server) pagination(r *http.Request) (page, pageSize int32) {
	page = 1
	pageSize = int32(s.cfg.API.PageSize)
	if v, err := strconv.Atoi(r.URL.Query().Get("page_size")); err == nil && v > 0 {
		if v > s.cfg.API.MaxPageSize {
			v = s.cfg.API.MaxPageSize
		}
		pageSize = int32(v)
	}
	if v, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && v > 0 {
		maxPage := int64(math.MaxInt32) / int64(pageSize)
		page = int32(min(int64(v), maxPage))
	}
	return page, pageSize
}

func pathID(vars map[string]string, name string) (int32, bool) {
	v, err := strconv.Atoi(vars[name])
	if err != nil || v <= 0 {
		return 0, false
	}
	return int32(v), true
}
