package rest

import (
	"net/http"

	"github.com/gorilla/mux"

	"rentaldesk-backend/internal/access"
)

// Dictionary kinds map onto the flat reference tables. Everyone with a
// role can read them; writes require admin rights, except maintenance
// types, which technicians maintain alongside the maintenance records.
const (
	dictRoles            = "roles"
	dictCountries        = "countries"
	dictBrands           = "brands"
	dictModels           = "models"
	dictMaintenanceTypes = "maintenance-types"
)

type dictionaryEntry struct {
	Name string `json:"name"`
}

func (s *Server) handleListDictionary(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.requireRead(w, r, access.ResourceDictionary); !ok {
		return
	}
	ctx := r.Context()
	var (
		payload interface{}
		err     error
	)
	switch mux.Vars(r)["kind"] {
	case dictRoles:
		payload, err = s.store.DictionaryRepository.ListRoles(ctx)
	case dictCountries:
		payload, err = s.store.DictionaryRepository.ListCountries(ctx)
	case dictBrands:
		payload, err = s.store.DictionaryRepository.ListBrands(ctx)
	case dictModels:
		payload, err = s.store.DictionaryRepository.ListModels(ctx)
	case dictMaintenanceTypes:
		payload, err = s.store.DictionaryRepository.ListMaintenanceTypes(ctx)
	default:
		s.writeBadRequest(w, "unknown dictionary")
		return
	}
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, payload)
}

func (s *Server) canWriteDictionary(w http.ResponseWriter, r *http.Request, kind string) bool {
	actor, ok := actorFrom(r.Context())
	if !ok {
		s.writeError(w, http.StatusUnauthorized, "unauthorized", "authentication required", nil)
		return false
	}
	if kind == dictMaintenanceTypes {
		if access.CanWrite(actor.Roles, access.ResourceMaintenance) {
			return true
		}
	} else if access.IsAdmin(actor.Roles) {
		return true
	}
	s.writeError(w, http.StatusForbidden, "permission_denied", "you are not allowed to modify this dictionary", nil)
	return false
}

func (s *Server) handleCreateDictionary(w http.ResponseWriter, r *http.Request) {
	if !s.canWriteDictionary(w, r, mux.Vars(r)["kind"]) {
		return
	}
	var entry dictionaryEntry
	if err := decodeJSON(r, &entry); err != nil || entry.Name == "" {
		s.writeBadRequest(w, "name is required")
		return
	}
	ctx := r.Context()
	var (
		payload interface{}
		err     error
	)
	switch mux.Vars(r)["kind"] {
	case dictRoles:
		payload, err = s.store.DictionaryRepository.CreateRole(ctx, entry.Name)
	case dictCountries:
		payload, err = s.store.DictionaryRepository.CreateCountry(ctx, entry.Name)
	case dictBrands:
		payload, err = s.store.DictionaryRepository.CreateBrand(ctx, entry.Name)
	case dictModels:
		payload, err = s.store.DictionaryRepository.CreateModel(ctx, entry.Name)
	case dictMaintenanceTypes:
		payload, err = s.store.DictionaryRepository.CreateMaintenanceType(ctx, entry.Name)
	default:
		s.writeBadRequest(w, "unknown dictionary")
		return
	}
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, payload)
}

func (s *Server) handleDeleteDictionary(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	if !s.canWriteDictionary(w, r, vars["kind"]) {
		return
	}
	id, okID := pathID(vars, "id")
	if !okID {
		s.writeBadRequest(w, "invalid id")
		return
	}
	ctx := r.Context()
	var err error
	switch vars["kind"] {
	case dictRoles:
		err = s.store.DictionaryRepository.DeleteRole(ctx, id)
	case dictCountries:
		err = s.store.DictionaryRepository.DeleteCountry(ctx, id)
	case dictBrands:
		err = s.store.DictionaryRepository.DeleteBrand(ctx, id)
	case dictModels:
		err = s.store.DictionaryRepository.DeleteModel(ctx, id)
	case dictMaintenanceTypes:
		err = s.store.DictionaryRepository.DeleteMaintenanceType(ctx, id)
	default:
		s.writeBadRequest(w, "unknown dictionary")
		return
	}
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	s.writeJSON(w, http.StatusNoContent, nil)
}
