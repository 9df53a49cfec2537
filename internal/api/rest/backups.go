package rest

import (
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/gorilla/mux"

	"rentaldesk-backend/internal/access"
	"rentaldesk-backend/internal/domain"
	"rentaldesk-backend/internal/logger"
)

func (s *Server) requireAdmin(w http.ResponseWriter, r *http.Request) (actorID int32, ok bool) {
	actor, found := actorFrom(r.Context())
	if !found || !access.IsAdmin(actor.Roles) {
		s.writeError(w, http.StatusForbidden, "permission_denied", "backups require admin rights", nil)
		return 0, false
	}
	return actor.ID, true
}

func (s *Server) handleListBackups(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.requireAdmin(w, r); !ok {
		return
	}
	names, err := s.backups.List()
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	if names == nil {
		names = []string{}
	}
	s.writeJSON(w, http.StatusOK, map[string][]string{"backups": names})
}

func (s *Server) handleRunBackup(w http.ResponseWriter, r *http.Request) {
	actorID, ok := s.requireAdmin(w, r)
	if !ok {
		return
	}
	name, err := s.backups.Run(r.Context())
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	if err := s.store.AuditLogRepository.Create(r.Context(), &domain.AuditLog{
		StaffID:     &actorID,
		Action:      domain.ActionOther,
		Description: fmt.Sprintf("Created database backup %s", name),
		Success:     true,
	}); err != nil {
		logger.Warn("audit entry not recorded", "action", string(domain.ActionOther), "error", err)
	}
	s.writeJSON(w, http.StatusCreated, map[string]string{"file": name})
}

func (s *Server) handleDownloadBackup(w http.ResponseWriter, r *http.Request) {
	actorID, ok := s.requireAdmin(w, r)
	if !ok {
		return
	}
	name := mux.Vars(r)["filename"]
	file, err := s.backups.Open(name)
	if err != nil {
		if os.IsNotExist(err) {
			s.writeError(w, http.StatusNotFound, "not_found", "backup file does not exist", nil)
			return
		}
		s.writeBadRequest(w, "invalid backup name")
		return
	}
	defer file.Close()

	w.Header().Set("Content-Type", "application/sql")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	if _, err := io.Copy(w, file); err != nil {
		return
	}
	if err := s.store.AuditLogRepository.Create(r.Context(), &domain.AuditLog{
		StaffID:     &actorID,
		Action:      domain.ActionDownload,
		Description: fmt.Sprintf("Downloaded backup %s", name),
		Success:     true,
	}); err != nil {
		logger.Warn("audit entry not recorded", "action", string(domain.ActionDownload), "error", err)
	}
}
