package rest

import (
	"net/http"

	"github.com/gorilla/mux"

	"rentaldesk-backend/internal/access"
	"rentaldesk-backend/internal/domain"
)

// pagedResponse is the list envelope shared by all collection endpoints.
type pagedResponse struct {
	Items    interface{} `json:"items"`
	Total    int32       `json:"total"`
	Page     int32       `json:"page"`
	PageSize int32       `json:"page_size"`
}

func (s *Server) handleListEquipment(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.requireRead(w, r, access.ResourceEquipment); !ok {
		return
	}
	page, pageSize := s.pagination(r)
	items, total, err := s.equipment.ListEquipment(r.Context(), r.URL.Query().Get("status"), page, pageSize)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, pagedResponse{Items: items, Total: total, Page: page, PageSize: pageSize})
}

func (s *Server) handleGetEquipment(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.requireRead(w, r, access.ResourceEquipment); !ok {
		return
	}
	id, ok := pathID(mux.Vars(r), "id")
	if !ok {
		s.writeBadRequest(w, "invalid equipment id")
		return
	}
	eq, err := s.equipment.GetEquipment(r.Context(), id)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, eq)
}

func (s *Server) handleCreateEquipment(w http.ResponseWriter, r *http.Request) {
	actor, ok := s.requireWrite(w, r, access.ResourceEquipment)
	if !ok {
		return
	}
	var eq domain.Equipment
	if err := decodeJSON(r, &eq); err != nil {
		s.writeBadRequest(w, "invalid request body")
		return
	}
	if err := s.equipment.AddEquipment(r.Context(), actor, &eq); err != nil {
		s.writeServiceError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, eq)
}

func (s *Server) handleUpdateEquipment(w http.ResponseWriter, r *http.Request) {
	actor, ok := s.requireWrite(w, r, access.ResourceEquipment)
	if !ok {
		return
	}
	id, ok := pathID(mux.Vars(r), "id")
	if !ok {
		s.writeBadRequest(w, "invalid equipment id")
		return
	}
	var eq domain.Equipment
	if err := decodeJSON(r, &eq); err != nil {
		s.writeBadRequest(w, "invalid request body")
		return
	}
	eq.ID = id
	if err := s.equipment.UpdateEquipment(r.Context(), actor, &eq); err != nil {
		s.writeServiceError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, eq)
}

func (s *Server) handleDeleteEquipment(w http.ResponseWriter, r *http.Request) {
	actor, ok := s.requireWrite(w, r, access.ResourceEquipment)
	if !ok {
		return
	}
	id, ok := pathID(mux.Vars(r), "id")
	if !ok {
		s.writeBadRequest(w, "invalid equipment id")
		return
	}
	if err := s.equipment.DeleteEquipment(r.Context(), actor, id); err != nil {
		s.writeServiceError(w, err)
		return
	}
	s.writeJSON(w, http.StatusNoContent, nil)
}

type bulkStatusRequest struct {
	EquipmentIDs []int32                `json:"equipment_ids"`
	Status       domain.EquipmentStatus `json:"status"`
}

func (s *Server) handleBulkEquipmentStatus(w http.ResponseWriter, r *http.Request) {
	actor, ok := s.requireWrite(w, r, access.ResourceEquipment)
	if !ok {
		return
	}
	var req bulkStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeBadRequest(w, "invalid request body")
		return
	}
	updated, err := s.equipment.BulkUpdateStatus(r.Context(), actor, req.EquipmentIDs, req.Status)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]int64{"updated": updated})
}
