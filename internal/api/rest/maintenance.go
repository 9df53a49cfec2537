package rest

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"rentaldesk-backend/internal/access"
	"rentaldesk-backend/internal/domain"
)

func (s *Server) handleListMaintenance(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.requireRead(w, r, access.ResourceMaintenance); !ok {
		return
	}
	page, pageSize := s.pagination(r)
	var equipmentID int32
	if v, err := strconv.Atoi(r.URL.Query().Get("equipment_id")); err == nil && v > 0 {
		equipmentID = int32(v)
	}
	items, total, err := s.maintenance.List(r.Context(), equipmentID, r.URL.Query().Get("status"), page, pageSize)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, pagedResponse{Items: items, Total: total, Page: page, PageSize: pageSize})
}

func (s *Server) handleGetMaintenance(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.requireRead(w, r, access.ResourceMaintenance); !ok {
		return
	}
	id, ok := pathID(mux.Vars(r), "id")
	if !ok {
		s.writeBadRequest(w, "invalid maintenance id")
		return
	}
	m, err := s.maintenance.Get(r.Context(), id)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, m)
}

func (s *Server) handleCreateMaintenance(w http.ResponseWriter, r *http.Request) {
	actor, ok := s.requireWrite(w, r, access.ResourceMaintenance)
	if !ok {
		return
	}
	var m domain.Maintenance
	if err := decodeJSON(r, &m); err != nil {
		s.writeBadRequest(w, "invalid request body")
		return
	}
	if err := s.maintenance.Schedule(r.Context(), actor, &m); err != nil {
		s.writeServiceError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, m)
}

func (s *Server) handleUpdateMaintenance(w http.ResponseWriter, r *http.Request) {
	actor, ok := s.requireWrite(w, r, access.ResourceMaintenance)
	if !ok {
		return
	}
	id, ok := pathID(mux.Vars(r), "id")
	if !ok {
		s.writeBadRequest(w, "invalid maintenance id")
		return
	}
	var m domain.Maintenance
	if err := decodeJSON(r, &m); err != nil {
		s.writeBadRequest(w, "invalid request body")
		return
	}
	m.ID = id
	if err := s.maintenance.Update(r.Context(), actor, &m); err != nil {
		s.writeServiceError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, m)
}

func (s *Server) handleDeleteMaintenance(w http.ResponseWriter, r *http.Request) {
	actor, ok := s.requireWrite(w, r, access.ResourceMaintenance)
	if !ok {
		return
	}
	id, ok := pathID(mux.Vars(r), "id")
	if !ok {
		s.writeBadRequest(w, "invalid maintenance id")
		return
	}
	if err := s.maintenance.Delete(r.Context(), actor, id); err != nil {
		s.writeServiceError(w, err)
		return
	}
	s.writeJSON(w, http.StatusNoContent, nil)
}
