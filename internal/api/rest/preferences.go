package rest

import (
	"errors"
	"net/http"

	"rentaldesk-backend/internal/access"
	"rentaldesk-backend/internal/domain"
)

// Preferences are always the caller's own; there is no cross-user access.

func (s *Server) handleGetPreferences(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(r.Context())
	if !ok {
		s.writeError(w, http.StatusUnauthorized, "unauthorized", "authentication required", nil)
		return
	}
	pref, err := s.store.PreferenceRepository.Get(r.Context(), actor.ID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.writeJSON(w, http.StatusOK, domain.DefaultPreferences(actor.ID))
			return
		}
		s.writeServiceError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, pref)
}

func (s *Server) handlePutPreferences(w http.ResponseWriter, r *http.Request) {
	actor, ok := s.requireWrite(w, r, access.ResourcePreferences)
	if !ok {
		return
	}
	var pref domain.UserPreference
	if err := decodeJSON(r, &pref); err != nil {
		s.writeBadRequest(w, "invalid request body")
		return
	}
	pref.StaffID = actor.ID
	if pref.Theme == "" {
		pref.Theme = domain.ThemeSystem
	}
	if err := s.store.PreferenceRepository.Upsert(r.Context(), &pref); err != nil {
		s.writeServiceError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, pref)
}

func (s *Server) handleListLogs(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.requireRead(w, r, access.ResourceLogs); !ok {
		return
	}
	page, pageSize := s.pagination(r)
	items, total, err := s.auditLogs.List(r.Context(), page, pageSize)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, pagedResponse{Items: items, Total: total, Page: page, PageSize: pageSize})
}
