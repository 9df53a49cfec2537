package rest

import (
	"net/http"

	"github.com/gorilla/mux"
	"golang.org/x/crypto/bcrypt"

	"rentaldesk-backend/internal/access"
	"rentaldesk-backend/internal/domain"
)

func (s *Server) handleListStaff(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.requireRead(w, r, access.ResourceStaff); !ok {
		return
	}
	page, pageSize := s.pagination(r)
	items, total, err := s.store.StaffRepository.List(r.Context(), page, pageSize)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, pagedResponse{Items: items, Total: total, Page: page, PageSize: pageSize})
}

func (s *Server) handleGetStaff(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.requireRead(w, r, access.ResourceStaff); !ok {
		return
	}
	id, ok := pathID(mux.Vars(r), "id")
	if !ok {
		s.writeBadRequest(w, "invalid staff id")
		return
	}
	staff, err := s.store.StaffRepository.GetByID(r.Context(), id)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, staff)
}

type createStaffRequest struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
}

func (s *Server) handleCreateStaff(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(r.Context())
	if !ok || !access.IsAdmin(actor.Roles) {
		s.writeError(w, http.StatusForbidden, "permission_denied", "staff management requires admin rights", nil)
		return
	}
	var req createStaffRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeBadRequest(w, "invalid request body")
		return
	}
	if req.Username == "" || len(req.Password) < 8 {
		s.writeBadRequest(w, "username and a password of at least 8 characters are required")
		return
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	staff := &domain.Staff{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hash),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		IsActive:     true,
	}
	if err := s.store.StaffRepository.Create(r.Context(), staff); err != nil {
		s.writeServiceError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, staff)
}

type updateStaffRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password,omitempty"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	IsActive  bool   `json:"is_active"`
}

func (s *Server) handleUpdateStaff(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(r.Context())
	if !ok || !access.IsAdmin(actor.Roles) {
		s.writeError(w, http.StatusForbidden, "permission_denied", "staff management requires admin rights", nil)
		return
	}
	id, okID := pathID(mux.Vars(r), "id")
	if !okID {
		s.writeBadRequest(w, "invalid staff id")
		return
	}
	staff, err := s.store.StaffRepository.GetByID(r.Context(), id)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	var req updateStaffRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeBadRequest(w, "invalid request body")
		return
	}
	if req.Password != "" {
		if len(req.Password) < 8 {
			s.writeBadRequest(w, "password must be at least 8 characters")
			return
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			s.writeServiceError(w, err)
			return
		}
		staff.PasswordHash = string(hash)
	}
	staff.Email = req.Email
	staff.FirstName = req.FirstName
	staff.LastName = req.LastName
	staff.IsActive = req.IsActive
	if err := s.store.StaffRepository.Update(r.Context(), staff); err != nil {
		s.writeServiceError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, staff)
}

type setGroupsRequest struct {
	RoleIDs []int32 `json:"role_ids"`
}

func (s *Server) handleSetStaffGroups(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(r.Context())
	if !ok || !access.IsAdmin(actor.Roles) {
		s.writeError(w, http.StatusForbidden, "permission_denied", "role assignment requires admin rights", nil)
		return
	}
	id, okID := pathID(mux.Vars(r), "id")
	if !okID {
		s.writeBadRequest(w, "invalid staff id")
		return
	}
	var req setGroupsRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeBadRequest(w, "invalid request body")
		return
	}
	if err := s.store.StaffRepository.SetGroups(r.Context(), id, req.RoleIDs); err != nil {
		s.writeServiceError(w, err)
		return
	}
	staff, err := s.store.StaffRepository.GetByID(r.Context(), id)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, staff)
}
