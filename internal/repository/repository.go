package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/shopspring/decimal"

	"rentaldesk-backend/internal/domain"
)

// Methods with a Tx suffix run against a caller-owned transaction. The
// rental engine opens one transaction per multi-step mutation and the
// caller is responsible for commit or rollback.

type EquipmentRepository interface {
	Create(ctx context.Context, eq *domain.Equipment) error
	GetByID(ctx context.Context, id int32) (*domain.Equipment, error)
	Update(ctx context.Context, eq *domain.Equipment) error
	Delete(ctx context.Context, id int32) error
	List(ctx context.Context, status string, page, pageSize int32) ([]domain.Equipment, int32, error)
	ListAll(ctx context.Context) ([]domain.Equipment, error)

	// LockByIDsTx locks the given equipment rows with SELECT ... FOR UPDATE
	// and returns every row found. Missing ids are simply absent from the
	// result; callers decide whether that is an error.
	LockByIDsTx(ctx context.Context, tx *sql.Tx, ids []int32) ([]domain.Equipment, error)
	UpdateStatusTx(ctx context.Context, tx *sql.Tx, ids []int32, status domain.EquipmentStatus) (int64, error)
}

type RentRepository interface {
	GetByID(ctx context.Context, id int32) (*domain.Rent, error)
	List(ctx context.Context, status string, page, pageSize int32) ([]domain.Rent, int32, error)
	ListAll(ctx context.Context) ([]domain.Rent, error)
	ListByClient(ctx context.Context, clientID int32) ([]domain.Rent, error)
	ListOverdue(ctx context.Context, asOf time.Time) ([]domain.Rent, error)
	Items(ctx context.Context, rentID int32) ([]domain.RentItem, error)
	ListItems(ctx context.Context, page, pageSize int32) ([]domain.RentItem, int32, error)

	// NextAgreementNumberTx draws from the rent_agreement_seq sequence, so
	// concurrent calls never collide.
	NextAgreementNumberTx(ctx context.Context, tx *sql.Tx) (string, error)
	CreateTx(ctx context.Context, tx *sql.Tx, rent *domain.Rent) error
	AddItemsTx(ctx context.Context, tx *sql.Tx, rentID int32, equipmentIDs []int32) error
	GetForUpdateTx(ctx context.Context, tx *sql.Tx, id int32) (*domain.Rent, error)
	UpdateTx(ctx context.Context, tx *sql.Tx, rent *domain.Rent) error
	EquipmentIDsTx(ctx context.Context, tx *sql.Tx, rentID int32) ([]int32, error)
	DeleteTx(ctx context.Context, tx *sql.Tx, id int32) error
}

type ClientRepository interface {
	Create(ctx context.Context, client *domain.Client) error
	GetByID(ctx context.Context, id int32) (*domain.Client, error)
	Update(ctx context.Context, client *domain.Client) error
	Delete(ctx context.Context, id int32) error
	List(ctx context.Context, clientType string, page, pageSize int32) ([]domain.Client, int32, error)
	ListAll(ctx context.Context) ([]domain.Client, error)

	UpsertIndDetails(ctx context.Context, details *domain.IndClient) error
	GetIndDetails(ctx context.Context, clientID int32) (*domain.IndClient, error)
	UpsertCompDetails(ctx context.Context, details *domain.CompClient) error
	GetCompDetails(ctx context.Context, clientID int32) (*domain.CompClient, error)
}

type AddressRepository interface {
	Create(ctx context.Context, addr *domain.Address) error
	GetByID(ctx context.Context, id int32) (*domain.Address, error)
	Update(ctx context.Context, addr *domain.Address) error
	Delete(ctx context.Context, id int32) error
	List(ctx context.Context, page, pageSize int32) ([]domain.Address, int32, error)
}

type StaffRepository interface {
	Create(ctx context.Context, staff *domain.Staff) error
	GetByID(ctx context.Context, id int32) (*domain.Staff, error)
	GetByUsername(ctx context.Context, username string) (*domain.Staff, error)
	Update(ctx context.Context, staff *domain.Staff) error
	List(ctx context.Context, page, pageSize int32) ([]domain.Staff, int32, error)
	SetGroups(ctx context.Context, staffID int32, roleIDs []int32) error
}

type MaintenanceRepository interface {
	Create(ctx context.Context, m *domain.Maintenance) error
	GetByID(ctx context.Context, id int32) (*domain.Maintenance, error)
	Update(ctx context.Context, m *domain.Maintenance) error
	Delete(ctx context.Context, id int32) error
	List(ctx context.Context, equipmentID int32, status string, page, pageSize int32) ([]domain.Maintenance, int32, error)
}

// DictionaryRepository covers the flat reference tables: roles, equipment
// countries/brands/models and maintenance types.
type DictionaryRepository interface {
	ListRoles(ctx context.Context) ([]domain.RoleRecord, error)
	CreateRole(ctx context.Context, name string) (*domain.RoleRecord, error)
	DeleteRole(ctx context.Context, id int32) error

	ListCountries(ctx context.Context) ([]domain.EquipmentCountry, error)
	CreateCountry(ctx context.Context, country string) (*domain.EquipmentCountry, error)
	DeleteCountry(ctx context.Context, id int32) error

	ListBrands(ctx context.Context) ([]domain.EquipmentBrand, error)
	CreateBrand(ctx context.Context, brand string) (*domain.EquipmentBrand, error)
	DeleteBrand(ctx context.Context, id int32) error

	ListModels(ctx context.Context) ([]domain.EquipmentModel, error)
	CreateModel(ctx context.Context, name string) (*domain.EquipmentModel, error)
	DeleteModel(ctx context.Context, id int32) error

	ListMaintenanceTypes(ctx context.Context) ([]domain.MaintenanceType, error)
	CreateMaintenanceType(ctx context.Context, name string) (*domain.MaintenanceType, error)
	DeleteMaintenanceType(ctx context.Context, id int32) error
}

type AuditLogRepository interface {
	Create(ctx context.Context, entry *domain.AuditLog) error
	List(ctx context.Context, page, pageSize int32) ([]domain.AuditLog, int32, error)
}

type PreferenceRepository interface {
	Get(ctx context.Context, staffID int32) (*domain.UserPreference, error)
	Upsert(ctx context.Context, pref *domain.UserPreference) error
}

// StatsRepository backs the Prometheus business gauges. Every method
// aggregates over a trailing window starting at since.
type StatsRepository interface {
	BrandPopularitySince(ctx context.Context, since time.Time) (map[string]int64, error)
	MaintenanceCompletedSince(ctx context.Context, since time.Time) (map[string]int64, error)
	ManagerActivitySince(ctx context.Context, since time.Time, managerGroups []string) (map[string]int64, error)
	UserActivitySince(ctx context.Context, since time.Time) (map[string]int64, error)
	FinanceSince(ctx context.Context, since time.Time) (profit, debt decimal.Decimal, err error)
}
