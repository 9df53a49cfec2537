package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"rentaldesk-backend/internal/access"
	"rentaldesk-backend/internal/domain"
)

// Actor identifies the staff member performing an operation. Mutating
// services re-check the actor's capabilities at the point of mutation, not
// just at HTTP dispatch.
type Actor struct {
	ID       int32
	Username string
	Roles    []access.Role
}

type RentalService interface {
	CreateRent(ctx context.Context, actor Actor, clientID int32, equipmentIDs []int32, startDate, plannedEndDate time.Time) (*domain.Rent, error)
	CompleteRent(ctx context.Context, actor Actor, rentID int32, actualEndDate time.Time) (*domain.Rent, error)
	ProcessPayment(ctx context.Context, actor Actor, rentID int32, method domain.PaymentMethod, transactionNumber string, paymentDate time.Time) (*domain.Rent, error)
	ExtendRent(ctx context.Context, actor Actor, rentID int32, newPlannedEnd time.Time) (*domain.Rent, error)
	DeleteRent(ctx context.Context, actor Actor, rentID int32) error
	QuoteCost(ctx context.Context, equipmentIDs []int32, startDate, endDate time.Time) (decimal.Decimal, error)
	LateFee(ctx context.Context, rentID int32) (decimal.Decimal, error)
	GetRent(ctx context.Context, rentID int32) (*domain.Rent, []domain.RentItem, error)
	ListRents(ctx context.Context, status string, page, pageSize int32) ([]domain.Rent, int32, error)
	ClientHistory(ctx context.Context, clientID int32) ([]domain.RentHistoryEntry, error)
}

type EquipmentService interface {
	AddEquipment(ctx context.Context, actor Actor, eq *domain.Equipment) error
	UpdateEquipment(ctx context.Context, actor Actor, eq *domain.Equipment) error
	DeleteEquipment(ctx context.Context, actor Actor, id int32) error
	BulkUpdateStatus(ctx context.Context, actor Actor, ids []int32, status domain.EquipmentStatus) (int64, error)
	GetEquipment(ctx context.Context, id int32) (*domain.Equipment, error)
	ListEquipment(ctx context.Context, status string, page, pageSize int32) ([]domain.Equipment, int32, error)
}

type ClientService interface {
	CreateClient(ctx context.Context, actor Actor, client *domain.Client) error
	UpdateClient(ctx context.Context, actor Actor, client *domain.Client) error
	DeleteClient(ctx context.Context, actor Actor, id int32) error
	GetClient(ctx context.Context, id int32) (*domain.Client, error)
	ListClients(ctx context.Context, clientType string, page, pageSize int32) ([]domain.Client, int32, error)
	SetIndDetails(ctx context.Context, actor Actor, details *domain.IndClient) error
	GetIndDetails(ctx context.Context, clientID int32) (*domain.IndClient, error)
	SetCompDetails(ctx context.Context, actor Actor, details *domain.CompClient) error
	GetCompDetails(ctx context.Context, clientID int32) (*domain.CompClient, error)
}

type MaintenanceService interface {
	Schedule(ctx context.Context, actor Actor, m *domain.Maintenance) error
	Update(ctx context.Context, actor Actor, m *domain.Maintenance) error
	Delete(ctx context.Context, actor Actor, id int32) error
	Get(ctx context.Context, id int32) (*domain.Maintenance, error)
	List(ctx context.Context, equipmentID int32, status string, page, pageSize int32) ([]domain.Maintenance, int32, error)
}

type AuthService interface {
	Login(ctx context.Context, username, password string) (string, *domain.Staff, error)
}

type EmailService interface {
	SendOverdueReminder(ctx context.Context, to, agreementNumber string, overdueDays int64, fee decimal.Decimal) error
	SendPaymentReceipt(ctx context.Context, to, agreementNumber string, amount decimal.Decimal) error
}
