package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"rentaldesk-backend/internal/access"
	"rentaldesk-backend/internal/domain"
	"rentaldesk-backend/internal/logger"
	"rentaldesk-backend/internal/pricing"
	"rentaldesk-backend/internal/repository"
)

// TxBeginner is satisfied by *sql.DB. Services own the transaction
// boundary; repositories expose Tx-suffixed methods that run inside it.
type TxBeginner interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)
}

type rentalService struct {
	db          TxBeginner
	rents       repository.RentRepository
	equipment   repository.EquipmentRepository
	clients     repository.ClientRepository
	audit       repository.AuditLogRepository
	email       EmailService
	penaltyRate decimal.Decimal
	log         *slog.Logger
}

func NewRentalService(db TxBeginner, rents repository.RentRepository, equipment repository.EquipmentRepository, clients repository.ClientRepository, audit repository.AuditLogRepository, email EmailService, penaltyRate decimal.Decimal) RentalService {
	if penaltyRate.IsZero() {
		penaltyRate = pricing.DefaultPenaltyRate
	}
	return &rentalService{
		db:          db,
		rents:       rents,
		equipment:   equipment,
		clients:     clients,
		audit:       audit,
		email:       email,
		penaltyRate: penaltyRate,
		log:         logger.WithService("rental-service"),
	}
}

func (s *rentalService) CreateRent(ctx context.Context, actor Actor, clientID int32, equipmentIDs []int32, startDate, plannedEndDate time.Time) (*domain.Rent, error) {
	if !access.CanWrite(actor.Roles, access.ResourceRents) {
		return nil, domain.ErrPermissionDenied
	}
	if len(equipmentIDs) == 0 {
		return nil, domain.NewValidationError("at least one equipment item is required")
	}
	if plannedEndDate.Before(startDate) {
		return nil, domain.NewValidationError("planned end date must not precede start date")
	}

	client, err := s.clients.GetByID(ctx, clientID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NewValidationError("client %d does not exist", clientID)
		}
		return nil, fmt.Errorf("load client: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	locked, err := s.equipment.LockByIDsTx(ctx, tx, equipmentIDs)
	if err != nil {
		return nil, s.fail(ctx, actor, domain.ActionCreate, "lock equipment", err)
	}

	byID := make(map[int32]domain.Equipment, len(locked))
	for _, eq := range locked {
		byID[eq.ID] = eq
	}
	var offending []string
	for _, id := range equipmentIDs {
		eq, ok := byID[id]
		if !ok {
			offending = append(offending, fmt.Sprintf("equipment %d not found", id))
			continue
		}
		if eq.Status != domain.EquipmentStatusAvailable {
			offending = append(offending, fmt.Sprintf("%s (ID: %d)", eq.Name, eq.ID))
		}
	}
	if len(offending) > 0 {
		unavailable := &domain.EquipmentUnavailableError{Items: offending}
		recordAction(ctx, s.audit, actor, domain.ActionCreate, fmt.Sprintf("Rent creation rejected for client %s: %s", client.Email, unavailable.Error()), false)
		return nil, unavailable
	}

	cost, err := pricing.RentalCost(locked, startDate, plannedEndDate)
	if err != nil {
		return nil, err
	}

	number, err := s.rents.NextAgreementNumberTx(ctx, tx)
	if err != nil {
		return nil, s.fail(ctx, actor, domain.ActionCreate, "allocate agreement number", err)
	}

	rent := &domain.Rent{
		AgreementNumber: number,
		AgreementDate:   time.Now(),
		ClientID:        clientID,
		StaffID:         actor.ID,
		StartDate:       startDate,
		PlannedEndDate:  plannedEndDate,
		Status:          domain.RentStatusActive,
		TotalAmount:     cost,
	}
	if err := s.rents.CreateTx(ctx, tx, rent); err != nil {
		return nil, s.fail(ctx, actor, domain.ActionCreate, "create rent", err)
	}
	if err := s.rents.AddItemsTx(ctx, tx, rent.ID, equipmentIDs); err != nil {
		return nil, s.fail(ctx, actor, domain.ActionCreate, "attach rent items", err)
	}
	if _, err := s.equipment.UpdateStatusTx(ctx, tx, equipmentIDs, domain.EquipmentStatusRented); err != nil {
		return nil, s.fail(ctx, actor, domain.ActionCreate, "mark equipment rented", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, s.fail(ctx, actor, domain.ActionCreate, "commit rent creation", err)
	}

	s.log.Info("rent created", "rent_id", rent.ID, "agreement", rent.AgreementNumber, "client_id", clientID, "items", len(equipmentIDs))
	recordAction(ctx, s.audit, actor, domain.ActionCreate, fmt.Sprintf("Created rent %s for client %s with %d equipment unit(s), total %s", rent.AgreementNumber, client.Email, len(equipmentIDs), cost.StringFixed(2)), true)
	return rent, nil
}

func (s *rentalService) CompleteRent(ctx context.Context, actor Actor, rentID int32, actualEndDate time.Time) (*domain.Rent, error) {
	if !access.CanWrite(actor.Roles, access.ResourceRents) {
		return nil, domain.ErrPermissionDenied
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	rent, err := s.rents.GetForUpdateTx(ctx, tx, rentID)
	if err != nil {
		return nil, err
	}
	if rent.Status == domain.RentStatusCompleted {
		return nil, domain.NewValidationError("rent %s is already completed", rent.AgreementNumber)
	}
	if actualEndDate.Before(rent.StartDate) {
		return nil, domain.NewValidationError("actual end date must not precede start date")
	}

	ids, err := s.rents.EquipmentIDsTx(ctx, tx, rentID)
	if err != nil {
		return nil, s.fail(ctx, actor, domain.ActionUpdate, "load rent items", err)
	}

	rent.Status = domain.RentStatusCompleted
	rent.ActualEndDate = &actualEndDate
	if err := s.rents.UpdateTx(ctx, tx, rent); err != nil {
		return nil, s.fail(ctx, actor, domain.ActionUpdate, "update rent", err)
	}
	if len(ids) > 0 {
		if _, err := s.equipment.UpdateStatusTx(ctx, tx, ids, domain.EquipmentStatusAvailable); err != nil {
			return nil, s.fail(ctx, actor, domain.ActionUpdate, "release equipment", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, s.fail(ctx, actor, domain.ActionUpdate, "commit rent completion", err)
	}

	recordAction(ctx, s.audit, actor, domain.ActionUpdate, fmt.Sprintf("Completed rent %s, released %d equipment unit(s)", rent.AgreementNumber, len(ids)), true)
	return rent, nil
}

func (s *rentalService) ProcessPayment(ctx context.Context, actor Actor, rentID int32, method domain.PaymentMethod, transactionNumber string, paymentDate time.Time) (*domain.Rent, error) {
	if !access.CanWrite(actor.Roles, access.ResourceRents) {
		return nil, domain.ErrPermissionDenied
	}
	if !method.Valid() {
		return nil, domain.NewValidationError("unknown payment method %q", method)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	rent, err := s.rents.GetForUpdateTx(ctx, tx, rentID)
	if err != nil {
		return nil, err
	}
	if rent.IsPaid {
		recordAction(ctx, s.audit, actor, domain.ActionUpdate, fmt.Sprintf("Rejected duplicate payment for rent %s", rent.AgreementNumber), false)
		return nil, domain.ErrAlreadyPaid
	}

	rent.IsPaid = true
	rent.PaymentMethod = &method
	rent.PaymentDate = &paymentDate
	rent.TransactionNumber = transactionNumber
	if err := s.rents.UpdateTx(ctx, tx, rent); err != nil {
		return nil, s.fail(ctx, actor, domain.ActionUpdate, "update rent", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, s.fail(ctx, actor, domain.ActionUpdate, "commit payment", err)
	}

	recordAction(ctx, s.audit, actor, domain.ActionUpdate, fmt.Sprintf("Registered %s payment for rent %s, amount %s", method, rent.AgreementNumber, rent.TotalAmount.StringFixed(2)), true)

	if s.email != nil {
		if client, cerr := s.clients.GetByID(ctx, rent.ClientID); cerr == nil && client.Email != "" {
			if merr := s.email.SendPaymentReceipt(ctx, client.Email, rent.AgreementNumber, rent.TotalAmount); merr != nil {
				s.log.Warn("payment receipt not sent", "rent_id", rent.ID, "error", merr)
			}
		}
	}
	return rent, nil
}

func (s *rentalService) ExtendRent(ctx context.Context, actor Actor, rentID int32, newPlannedEnd time.Time) (*domain.Rent, error) {
	if !access.CanWrite(actor.Roles, access.ResourceRents) {
		return nil, domain.ErrPermissionDenied
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	rent, err := s.rents.GetForUpdateTx(ctx, tx, rentID)
	if err != nil {
		return nil, err
	}
	if rent.Status == domain.RentStatusCompleted {
		return nil, domain.NewValidationError("completed rent %s cannot be extended", rent.AgreementNumber)
	}
	if !newPlannedEnd.After(rent.PlannedEndDate) {
		return nil, domain.NewValidationError("new planned end must be later than the current one")
	}

	previousEnd := rent.PlannedEndDate
	rent.PlannedEndDate = newPlannedEnd
	rent.Status = domain.RentStatusExtended
	if err := s.rents.UpdateTx(ctx, tx, rent); err != nil {
		return nil, s.fail(ctx, actor, domain.ActionUpdate, "update rent", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, s.fail(ctx, actor, domain.ActionUpdate, "commit rent extension", err)
	}

	recordAction(ctx, s.audit, actor, domain.ActionUpdate, fmt.Sprintf("Extended rent %s from %s to %s", rent.AgreementNumber, previousEnd.Format("2006-01-02"), newPlannedEnd.Format("2006-01-02")), true)
	return rent, nil
}

func (s *rentalService) DeleteRent(ctx context.Context, actor Actor, rentID int32) error {
	if !access.IsAdmin(actor.Roles) {
		return domain.ErrPermissionDenied
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	rent, err := s.rents.GetForUpdateTx(ctx, tx, rentID)
	if err != nil {
		return err
	}
	ids, err := s.rents.EquipmentIDsTx(ctx, tx, rentID)
	if err != nil {
		return s.fail(ctx, actor, domain.ActionDelete, "load rent items", err)
	}
	if err := s.rents.DeleteTx(ctx, tx, rentID); err != nil {
		return s.fail(ctx, actor, domain.ActionDelete, "delete rent", err)
	}
	// Items of an active rent go back into circulation when the rent
	// record is removed.
	if rent.Status != domain.RentStatusCompleted && len(ids) > 0 {
		if _, err := s.equipment.UpdateStatusTx(ctx, tx, ids, domain.EquipmentStatusAvailable); err != nil {
			return s.fail(ctx, actor, domain.ActionDelete, "release equipment", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return s.fail(ctx, actor, domain.ActionDelete, "commit rent deletion", err)
	}

	recordAction(ctx, s.audit, actor, domain.ActionDelete, fmt.Sprintf("Deleted rent %s", rent.AgreementNumber), true)
	return nil
}

func (s *rentalService) QuoteCost(ctx context.Context, equipmentIDs []int32, startDate, endDate time.Time) (decimal.Decimal, error) {
	if len(equipmentIDs) == 0 {
		return decimal.Zero, domain.NewValidationError("at least one equipment item is required")
	}
	items := make([]domain.Equipment, 0, len(equipmentIDs))
	for _, id := range equipmentIDs {
		eq, err := s.equipment.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return decimal.Zero, domain.NewValidationError("equipment %d does not exist", id)
			}
			return decimal.Zero, err
		}
		items = append(items, *eq)
	}
	return pricing.RentalCost(items, startDate, endDate)
}

func (s *rentalService) LateFee(ctx context.Context, rentID int32) (decimal.Decimal, error) {
	rent, err := s.rents.GetByID(ctx, rentID)
	if err != nil {
		return decimal.Zero, err
	}
	return pricing.LateFee(rent, s.penaltyRate, time.Now()), nil
}

func (s *rentalService) GetRent(ctx context.Context, rentID int32) (*domain.Rent, []domain.RentItem, error) {
	rent, err := s.rents.GetByID(ctx, rentID)
	if err != nil {
		return nil, nil, err
	}
	items, err := s.rents.Items(ctx, rentID)
	if err != nil {
		return nil, nil, fmt.Errorf("load rent items: %w", err)
	}
	return rent, items, nil
}

func (s *rentalService) ListRents(ctx context.Context, status string, page, pageSize int32) ([]domain.Rent, int32, error) {
	return s.rents.List(ctx, status, page, pageSize)
}

func (s *rentalService) ClientHistory(ctx context.Context, clientID int32) ([]domain.RentHistoryEntry, error) {
	if _, err := s.clients.GetByID(ctx, clientID); err != nil {
		return nil, err
	}
	rents, err := s.rents.ListByClient(ctx, clientID)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	entries := make([]domain.RentHistoryEntry, 0, len(rents))
	for i := range rents {
		rent := rents[i]
		items, err := s.rents.Items(ctx, rent.ID)
		if err != nil {
			return nil, fmt.Errorf("load items for rent %d: %w", rent.ID, err)
		}
		entries = append(entries, domain.RentHistoryEntry{
			Rent:        rent,
			Items:       items,
			OverdueDays: pricing.OverdueDays(rent.PlannedEndDate, rent.ActualEndDate, now),
			LateFee:     pricing.LateFee(&rent, s.penaltyRate, now),
		})
	}
	return entries, nil
}

// fail records a failed audit entry for a write that died mid-flight and
// returns the step-wrapped error. The entry goes through the pool
// connection, so it survives the transaction rollback.
func (s *rentalService) fail(ctx context.Context, actor Actor, action domain.ActionType, step string, err error) error {
	recordAction(ctx, s.audit, actor, action, fmt.Sprintf("%s failed: %v", step, err), false)
	return fmt.Errorf("%s: %w", step, err)
}
