package rest

import (
	"net/http"

	"github.com/gorilla/mux"

	"rentaldesk-backend/internal/access"
	"rentaldesk-backend/internal/domain"
)

func (s *Server) handleListClients(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.requireRead(w, r, access.ResourceClients); !ok {
		return
	}
	page, pageSize := s.pagination(r)
	items, total, err := s.clients.ListClients(r.Context(), r.URL.Query().Get("type"), page, pageSize)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, pagedResponse{Items: items, Total: total, Page: page, PageSize: pageSize})
}

func (s *Server) handleGetClient(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.requireRead(w, r, access.ResourceClients); !ok {
		return
	}
	id, ok := pathID(mux.Vars(r), "id")
	if !ok {
		s.writeBadRequest(w, "invalid client id")
		return
	}
	client, err := s.clients.GetClient(r.Context(), id)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, client)
}

func (s *Server) handleCreateClient(w http.ResponseWriter, r *http.Request) {
	actor, ok := s.requireWrite(w, r, access.ResourceClients)
	if !ok {
		return
	}
	var client domain.Client
	if err := decodeJSON(r, &client); err != nil {
		s.writeBadRequest(w, "invalid request body")
		return
	}
	if err := s.clients.CreateClient(r.Context(), actor, &client); err != nil {
		s.writeServiceError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, client)
}

func (s *Server) handleUpdateClient(w http.ResponseWriter, r *http.Request) {
	actor, ok := s.requireWrite(w, r, access.ResourceClients)
	if !ok {
		return
	}
	id, ok := pathID(mux.Vars(r), "id")
	if !ok {
		s.writeBadRequest(w, "invalid client id")
		return
	}
	var client domain.Client
	if err := decodeJSON(r, &client); err != nil {
		s.writeBadRequest(w, "invalid request body")
		return
	}
	client.ID = id
	if err := s.clients.UpdateClient(r.Context(), actor, &client); err != nil {
		s.writeServiceError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, client)
}

func (s *Server) handleDeleteClient(w http.ResponseWriter, r *http.Request) {
	actor, ok := s.requireWrite(w, r, access.ResourceClients)
	if !ok {
		return
	}
	id, ok := pathID(mux.Vars(r), "id")
	if !ok {
		s.writeBadRequest(w, "invalid client id")
		return
	}
	if err := s.clients.DeleteClient(r.Context(), actor, id); err != nil {
		s.writeServiceError(w, err)
		return
	}
	s.writeJSON(w, http.StatusNoContent, nil)
}

// clientDetails carries the type-specific profile. Exactly one of the two
// branches is populated, matching the client's type.
type clientDetails struct {
	Individual *domain.IndClient  `json:"individual,omitempty"`
	Company    *domain.CompClient `json:"company,omitempty"`
}

func (s *Server) handleGetClientDetails(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.requireRead(w, r, access.ResourceClients); !ok {
		return
	}
	id, ok := pathID(mux.Vars(r), "id")
	if !ok {
		s.writeBadRequest(w, "invalid client id")
		return
	}
	client, err := s.clients.GetClient(r.Context(), id)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}

	var details clientDetails
	switch client.Type {
	case domain.ClientTypeIndividual:
		details.Individual, err = s.clients.GetIndDetails(r.Context(), id)
	case domain.ClientTypeCompany:
		details.Company, err = s.clients.GetCompDetails(r.Context(), id)
	}
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, details)
}

func (s *Server) handlePutClientDetails(w http.ResponseWriter, r *http.Request) {
	actor, ok := s.requireWrite(w, r, access.ResourceClients)
	if !ok {
		return
	}
	id, ok := pathID(mux.Vars(r), "id")
	if !ok {
		s.writeBadRequest(w, "invalid client id")
		return
	}
	var details clientDetails
	if err := decodeJSON(r, &details); err != nil {
		s.writeBadRequest(w, "invalid request body")
		return
	}

	var err error
	switch {
	case details.Individual != nil:
		details.Individual.ClientID = id
		err = s.clients.SetIndDetails(r.Context(), actor, details.Individual)
	case details.Company != nil:
		details.Company.ClientID = id
		err = s.clients.SetCompDetails(r.Context(), actor, details.Company)
	default:
		s.writeBadRequest(w, "either individual or company details are required")
		return
	}
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, details)
}

func (s *Server) handleClientHistory(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.requireRead(w, r, access.ResourceRents); !ok {
		return
	}
	id, ok := pathID(mux.Vars(r), "id")
	if !ok {
		s.writeBadRequest(w, "invalid client id")
		return
	}
	history, err := s.rental.ClientHistory(r.Context(), id)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, history)
}
