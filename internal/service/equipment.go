package service

import (
	"context"
	"fmt"

	"rentaldesk-backend/internal/access"
	"rentaldesk-backend/internal/domain"
	"rentaldesk-backend/internal/repository"
)

type equipmentService struct {
	db        TxBeginner
	equipment repository.EquipmentRepository
	audit     repository.AuditLogRepository
}

func NewEquipmentService(db TxBeginner, equipment repository.EquipmentRepository, audit repository.AuditLogRepository) EquipmentService {
	return &equipmentService{db: db, equipment: equipment, audit: audit}
}

func (s *equipmentService) AddEquipment(ctx context.Context, actor Actor, eq *domain.Equipment) error {
	if !access.CanWrite(actor.Roles, access.ResourceEquipment) {
		return domain.ErrPermissionDenied
	}
	if eq.Name == "" {
		return domain.NewValidationError("equipment name is required")
	}
	if eq.RentalPriceDay.IsNegative() {
		return domain.NewValidationError("rent price must not be negative")
	}
	if eq.Status == "" {
		eq.Status = domain.EquipmentStatusAvailable
	}
	if !eq.Status.Valid() {
		return domain.NewValidationError("unknown equipment status %q", eq.Status)
	}
	if err := s.equipment.Create(ctx, eq); err != nil {
		return err
	}
	recordAction(ctx, s.audit, actor, domain.ActionCreate, fmt.Sprintf("Added equipment %s (ID: %d)", eq.Name, eq.ID), true)
	return nil
}

func (s *equipmentService) UpdateEquipment(ctx context.Context, actor Actor, eq *domain.Equipment) error {
	if !access.CanWrite(actor.Roles, access.ResourceEquipment) {
		return domain.ErrPermissionDenied
	}
	if !eq.Status.Valid() {
		return domain.NewValidationError("unknown equipment status %q", eq.Status)
	}
	if err := s.equipment.Update(ctx, eq); err != nil {
		return err
	}
	recordAction(ctx, s.audit, actor, domain.ActionUpdate, fmt.Sprintf("Updated equipment %s (ID: %d)", eq.Name, eq.ID), true)
	return nil
}

func (s *equipmentService) DeleteEquipment(ctx context.Context, actor Actor, id int32) error {
	if !access.CanWrite(actor.Roles, access.ResourceEquipment) {
		return domain.ErrPermissionDenied
	}
	if err := s.equipment.Delete(ctx, id); err != nil {
		return err
	}
	recordAction(ctx, s.audit, actor, domain.ActionDelete, fmt.Sprintf("Deleted equipment ID %d", id), true)
	return nil
}

// BulkUpdateStatus flips all requested units in one transaction. Rows are
// locked first so a concurrent rent creation cannot interleave.
func (s *equipmentService) BulkUpdateStatus(ctx context.Context, actor Actor, ids []int32, status domain.EquipmentStatus) (int64, error) {
	if !access.CanWrite(actor.Roles, access.ResourceEquipment) {
		return 0, domain.ErrPermissionDenied
	}
	if len(ids) == 0 {
		return 0, domain.NewValidationError("no equipment selected")
	}
	if !status.Valid() {
		return 0, domain.NewValidationError("unknown equipment status %q", status)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := s.equipment.LockByIDsTx(ctx, tx, ids); err != nil {
		return 0, s.fail(ctx, actor, "lock equipment", err)
	}
	updated, err := s.equipment.UpdateStatusTx(ctx, tx, ids, status)
	if err != nil {
		return 0, s.fail(ctx, actor, "update status", err)
	}
	if err := tx.Commit(); err != nil {
		return 0, s.fail(ctx, actor, "commit bulk status update", err)
	}

	recordAction(ctx, s.audit, actor, domain.ActionChangeStatus, fmt.Sprintf("Set status %s on %d equipment unit(s)", status, updated), true)
	return updated, nil
}

// fail mirrors the rental service failure path: the failed bulk update is
// audited through the pool connection before the error goes back up.
func (s *equipmentService) fail(ctx context.Context, actor Actor, step string, err error) error {
	recordAction(ctx, s.audit, actor, domain.ActionChangeStatus, fmt.Sprintf("%s failed: %v", step, err), false)
	return fmt.Errorf("%s: %w", step, err)
}

func (s *equipmentService) GetEquipment(ctx context.Context, id int32) (*domain.Equipment, error) {
	return s.equipment.GetByID(ctx, id)
}

func (s *equipmentService) ListEquipment(ctx context.Context, status string, page, pageSize int32) ([]domain.Equipment, int32, error) {
	return s.equipment.List(ctx, status, page, pageSize)
}
