package service

import (
	"context"
	"fmt"

	"rentaldesk-backend/internal/access"
	"rentaldesk-backend/internal/domain"
	"rentaldesk-backend/internal/repository"
)

type maintenanceService struct {
	maintenance repository.MaintenanceRepository
	equipment   repository.EquipmentRepository
	audit       repository.AuditLogRepository
}

func NewMaintenanceService(maintenance repository.MaintenanceRepository, equipment repository.EquipmentRepository, audit repository.AuditLogRepository) MaintenanceService {
	return &maintenanceService{maintenance: maintenance, equipment: equipment, audit: audit}
}

func (s *maintenanceService) Schedule(ctx context.Context, actor Actor, m *domain.Maintenance) error {
	if !access.CanWrite(actor.Roles, access.ResourceMaintenance) {
		return domain.ErrPermissionDenied
	}
	if m.Status == "" {
		m.Status = domain.MaintenanceStatusPlanned
	}
	if !m.Status.Valid() {
		return domain.NewValidationError("unknown maintenance status %q", m.Status)
	}
	if _, err := s.equipment.GetByID(ctx, m.EquipmentID); err != nil {
		return err
	}
	if err := s.maintenance.Create(ctx, m); err != nil {
		return err
	}
	recordAction(ctx, s.audit, actor, domain.ActionCreate, fmt.Sprintf("Scheduled maintenance %d for equipment ID %d", m.ID, m.EquipmentID), true)
	return nil
}

func (s *maintenanceService) Update(ctx context.Context, actor Actor, m *domain.Maintenance) error {
	if !access.CanWrite(actor.Roles, access.ResourceMaintenance) {
		return domain.ErrPermissionDenied
	}
	if !m.Status.Valid() {
		return domain.NewValidationError("unknown maintenance status %q", m.Status)
	}
	if err := s.maintenance.Update(ctx, m); err != nil {
		return err
	}
	recordAction(ctx, s.audit, actor, domain.ActionUpdate, fmt.Sprintf("Updated maintenance %d (status %s)", m.ID, m.Status), true)
	return nil
}

func (s *maintenanceService) Delete(ctx context.Context, actor Actor, id int32) error {
	if !access.CanWrite(actor.Roles, access.ResourceMaintenance) {
		return domain.ErrPermissionDenied
	}
	if err := s.maintenance.Delete(ctx, id); err != nil {
		return err
	}
	recordAction(ctx, s.audit, actor, domain.ActionDelete, fmt.Sprintf("Deleted maintenance record ID %d", id), true)
	return nil
}

func (s *maintenanceService) Get(ctx context.Context, id int32) (*domain.Maintenance, error) {
	return s.maintenance.GetByID(ctx, id)
}

func (s *maintenanceService) List(ctx context.Context, equipmentID int32, status string, page, pageSize int32) ([]domain.Maintenance, int32, error) {
	return s.maintenance.List(ctx, equipmentID, status, page, pageSize)
}
