package service_test

import (
	"context"
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"rentaldesk-backend/internal/domain"
)

type MockEquipmentRepo struct {
	mock.Mock
}

func (m *MockEquipmentRepo) Create(ctx context.Context, eq *domain.Equipment) error {
	args := m.Called(ctx, eq)
	return args.Error(0)
}

func (m *MockEquipmentRepo) GetByID(ctx context.Context, id int32) (*domain.Equipment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Equipment), args.Error(1)
}

func (m *MockEquipmentRepo) Update(ctx context.Context, eq *domain.Equipment) error {
	args := m.Called(ctx, eq)
	return args.Error(0)
}

func (m *MockEquipmentRepo) Delete(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockEquipmentRepo) List(ctx context.Context, status string, page, pageSize int32) ([]domain.Equipment, int32, error) {
	args := m.Called(ctx, status, page, pageSize)
	return args.Get(0).([]domain.Equipment), args.Get(1).(int32), args.Error(2)
}

func (m *MockEquipmentRepo) ListAll(ctx context.Context) ([]domain.Equipment, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Equipment), args.Error(1)
}

func (m *MockEquipmentRepo) LockByIDsTx(ctx context.Context, tx *sql.Tx, ids []int32) ([]domain.Equipment, error) {
	args := m.Called(ctx, tx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Equipment), args.Error(1)
}

func (m *MockEquipmentRepo) UpdateStatusTx(ctx context.Context, tx *sql.Tx, ids []int32, status domain.EquipmentStatus) (int64, error) {
	args := m.Called(ctx, tx, ids, status)
	return args.Get(0).(int64), args.Error(1)
}

type MockRentRepo struct {
	mock.Mock
}

func (m *MockRentRepo) GetByID(ctx context.Context, id int32) (*domain.Rent, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rent), args.Error(1)
}

func (m *MockRentRepo) List(ctx context.Context, status string, page, pageSize int32) ([]domain.Rent, int32, error) {
	args := m.Called(ctx, status, page, pageSize)
	return args.Get(0).([]domain.Rent), args.Get(1).(int32), args.Error(2)
}

func (m *MockRentRepo) ListAll(ctx context.Context) ([]domain.Rent, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Rent), args.Error(1)
}

func (m *MockRentRepo) ListByClient(ctx context.Context, clientID int32) ([]domain.Rent, error) {
	args := m.Called(ctx, clientID)
	return args.Get(0).([]domain.Rent), args.Error(1)
}

func (m *MockRentRepo) ListOverdue(ctx context.Context, asOf time.Time) ([]domain.Rent, error) {
	args := m.Called(ctx, asOf)
	return args.Get(0).([]domain.Rent), args.Error(1)
}

func (m *MockRentRepo) Items(ctx context.Context, rentID int32) ([]domain.RentItem, error) {
	args := m.Called(ctx, rentID)
	return args.Get(0).([]domain.RentItem), args.Error(1)
}

func (m *MockRentRepo) ListItems(ctx context.Context, page, pageSize int32) ([]domain.RentItem, int32, error) {
	args := m.Called(ctx, page, pageSize)
	return args.Get(0).([]domain.RentItem), args.Get(1).(int32), args.Error(2)
}

func (m *MockRentRepo) NextAgreementNumberTx(ctx context.Context, tx *sql.Tx) (string, error) {
	args := m.Called(ctx, tx)
	return args.String(0), args.Error(1)
}

func (m *MockRentRepo) CreateTx(ctx context.Context, tx *sql.Tx, rent *domain.Rent) error {
	args := m.Called(ctx, tx, rent)
	return args.Error(0)
}

func (m *MockRentRepo) AddItemsTx(ctx context.Context, tx *sql.Tx, rentID int32, equipmentIDs []int32) error {
	args := m.Called(ctx, tx, rentID, equipmentIDs)
	return args.Error(0)
}

func (m *MockRentRepo) GetForUpdateTx(ctx context.Context, tx *sql.Tx, id int32) (*domain.Rent, error) {
	args := m.Called(ctx, tx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rent), args.Error(1)
}

func (m *MockRentRepo) UpdateTx(ctx context.Context, tx *sql.Tx, rent *domain.Rent) error {
	args := m.Called(ctx, tx, rent)
	return args.Error(0)
}

func (m *MockRentRepo) EquipmentIDsTx(ctx context.Context, tx *sql.Tx, rentID int32) ([]int32, error) {
	args := m.Called(ctx, tx, rentID)
	return args.Get(0).([]int32), args.Error(1)
}

func (m *MockRentRepo) DeleteTx(ctx context.Context, tx *sql.Tx, id int32) error {
	args := m.Called(ctx, tx, id)
	return args.Error(0)
}

type MockClientRepo struct {
	mock.Mock
}

func (m *MockClientRepo) Create(ctx context.Context, client *domain.Client) error {
	args := m.Called(ctx, client)
	return args.Error(0)
}

func (m *MockClientRepo) GetByID(ctx context.Context, id int32) (*domain.Client, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Client), args.Error(1)
}

func (m *MockClientRepo) Update(ctx context.Context, client *domain.Client) error {
	args := m.Called(ctx, client)
	return args.Error(0)
}

func (m *MockClientRepo) Delete(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockClientRepo) List(ctx context.Context, clientType string, page, pageSize int32) ([]domain.Client, int32, error) {
	args := m.Called(ctx, clientType, page, pageSize)
	return args.Get(0).([]domain.Client), args.Get(1).(int32), args.Error(2)
}

func (m *MockClientRepo) ListAll(ctx context.Context) ([]domain.Client, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Client), args.Error(1)
}

func (m *MockClientRepo) UpsertIndDetails(ctx context.Context, details *domain.IndClient) error {
	args := m.Called(ctx, details)
	return args.Error(0)
}

func (m *MockClientRepo) GetIndDetails(ctx context.Context, clientID int32) (*domain.IndClient, error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.IndClient), args.Error(1)
}

func (m *MockClientRepo) UpsertCompDetails(ctx context.Context, details *domain.CompClient) error {
	args := m.Called(ctx, details)
	return args.Error(0)
}

func (m *MockClientRepo) GetCompDetails(ctx context.Context, clientID int32) (*domain.CompClient, error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CompClient), args.Error(1)
}

type MockAuditRepo struct {
	mock.Mock
}

func (m *MockAuditRepo) Create(ctx context.Context, entry *domain.AuditLog) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockAuditRepo) List(ctx context.Context, page, pageSize int32) ([]domain.AuditLog, int32, error) {
	args := m.Called(ctx, page, pageSize)
	return args.Get(0).([]domain.AuditLog), args.Get(1).(int32), args.Error(2)
}

type MockStaffRepo struct {
	mock.Mock
}

func (m *MockStaffRepo) Create(ctx context.Context, staff *domain.Staff) error {
	args := m.Called(ctx, staff)
	return args.Error(0)
}

func (m *MockStaffRepo) GetByID(ctx context.Context, id int32) (*domain.Staff, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Staff), args.Error(1)
}

func (m *MockStaffRepo) GetByUsername(ctx context.Context, username string) (*domain.Staff, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Staff), args.Error(1)
}

func (m *MockStaffRepo) Update(ctx context.Context, staff *domain.Staff) error {
	args := m.Called(ctx, staff)
	return args.Error(0)
}

func (m *MockStaffRepo) List(ctx context.Context, page, pageSize int32) ([]domain.Staff, int32, error) {
	args := m.Called(ctx, page, pageSize)
	return args.Get(0).([]domain.Staff), args.Get(1).(int32), args.Error(2)
}

func (m *MockStaffRepo) SetGroups(ctx context.Context, staffID int32, roleIDs []int32) error {
	args := m.Called(ctx, staffID, roleIDs)
	return args.Error(0)
}

type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendOverdueReminder(ctx context.Context, to, agreementNumber string, overdueDays int64, fee decimal.Decimal) error {
	args := m.Called(ctx, to, agreementNumber, overdueDays, fee)
	return args.Error(0)
}

func (m *MockEmailService) SendPaymentReceipt(ctx context.Context, to, agreementNumber string, amount decimal.Decimal) error {
	args := m.Called(ctx, to, agreementNumber, amount)
	return args.Error(0)
}
