package postgres

import (
	"context"
	"database/sql"

	"rentaldesk-backend/internal/repository"

	_ "github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.EquipmentRepository
	repository.RentRepository
	repository.ClientRepository
	repository.AddressRepository
	repository.StaffRepository
	repository.MaintenanceRepository
	repository.DictionaryRepository
	repository.AuditLogRepository
	repository.PreferenceRepository
	repository.StatsRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                    db,
		EquipmentRepository:   NewEquipmentRepository(db),
		RentRepository:        NewRentRepository(db),
		ClientRepository:      NewClientRepository(db),
		AddressRepository:     NewAddressRepository(db),
		StaffRepository:       NewStaffRepository(db),
		MaintenanceRepository: NewMaintenanceRepository(db),
		DictionaryRepository:  NewDictionaryRepository(db),
		AuditLogRepository:    NewAuditLogRepository(db),
		PreferenceRepository:  NewPreferenceRepository(db),
		StatsRepository:       NewStatsRepository(db),
	}
}

// BeginTx opens a database transaction for the multi-step rental
// operations.
func (s *Store) BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error) {
	return s.db.BeginTx(ctx, opts)
}
