package rest

import (
	"net/http"

	"github.com/gorilla/mux"

	"rentaldesk-backend/internal/access"
	"rentaldesk-backend/internal/domain"
)

func (s *Server) handleListAddresses(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.requireRead(w, r, access.ResourceAddresses); !ok {
		return
	}
	page, pageSize := s.pagination(r)
	items, total, err := s.store.AddressRepository.List(r.Context(), page, pageSize)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, pagedResponse{Items: items, Total: total, Page: page, PageSize: pageSize})
}

func (s *Server) handleGetAddress(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.requireRead(w, r, access.ResourceAddresses); !ok {
		return
	}
	id, ok := pathID(mux.Vars(r), "id")
	if !ok {
		s.writeBadRequest(w, "invalid address id")
		return
	}
	addr, err := s.store.AddressRepository.GetByID(r.Context(), id)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, addr)
}

func (s *Server) handleCreateAddress(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.requireWrite(w, r, access.ResourceAddresses); !ok {
		return
	}
	var addr domain.Address
	if err := decodeJSON(r, &addr); err != nil {
		s.writeBadRequest(w, "invalid request body")
		return
	}
	if addr.City == "" || addr.Street == "" {
		s.writeBadRequest(w, "city and street are required")
		return
	}
	if err := s.store.AddressRepository.Create(r.Context(), &addr); err != nil {
		s.writeServiceError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, addr)
}

func (s *Server) handleUpdateAddress(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.requireWrite(w, r, access.ResourceAddresses); !ok {
		return
	}
	id, ok := pathID(mux.Vars(r), "id")
	if !ok {
		s.writeBadRequest(w, "invalid address id")
		return
	}
	var addr domain.Address
	if err := decodeJSON(r, &addr); err != nil {
		s.writeBadRequest(w, "invalid request body")
		return
	}
	addr.ID = id
	if err := s.store.AddressRepository.Update(r.Context(), &addr); err != nil {
		s.writeServiceError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, addr)
}

func (s *Server) handleDeleteAddress(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.requireWrite(w, r, access.ResourceAddresses); !ok {
		return
	}
	id, ok := pathID(mux.Vars(r), "id")
	if !ok {
		s.writeBadRequest(w, "invalid address id")
		return
	}
	if err := s.store.AddressRepository.Delete(r.Context(), id); err != nil {
		s.writeServiceError(w, err)
		return
	}
	s.writeJSON(w, http.StatusNoContent, nil)
}
