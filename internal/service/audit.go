package service

import (
	"context"

	"rentaldesk-backend/internal/domain"
	"rentaldesk-backend/internal/logger"
	"rentaldesk-backend/internal/repository"
)

// recordAction writes an audit entry for the actor. Audit failures are
// logged and swallowed so they never abort the business operation.
func recordAction(ctx context.Context, audit repository.AuditLogRepository, actor Actor, action domain.ActionType, description string, success bool) {
	var staffID *int32
	if actor.ID != 0 {
		id := actor.ID
		staffID = &id
	}
	entry := &domain.AuditLog{
		StaffID:     staffID,
		Action:      action,
		Description: description,
		Success:     success,
	}
	if err := audit.Create(ctx, entry); err != nil {
		logger.Warn("audit entry not recorded", "action", string(action), "error", err)
	}
}

type AuditService interface {
	List(ctx context.Context, page, pageSize int32) ([]domain.AuditLog, int32, error)
}

type auditService struct {
	audit repository.AuditLogRepository
}

func NewAuditService(audit repository.AuditLogRepository) AuditService {
	return &auditService{audit: audit}
}

func (s *auditService) List(ctx context.Context, page, pageSize int32) ([]domain.AuditLog, int32, error) {
	return s.audit.List(ctx, page, pageSize)
}
