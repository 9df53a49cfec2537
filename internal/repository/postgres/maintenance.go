package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"rentaldesk-backend/internal/domain"
	"rentaldesk-backend/internal/repository"
)

type maintenanceRepository struct {
	db *sql.DB
}

func NewMaintenanceRepository(db *sql.DB) repository.MaintenanceRepository {
	return &maintenanceRepository{db: db}
}

const maintenanceColumns = `id, maintenance_date, work_type_id, status, staff_id, equipment_id, description`

func scanMaintenance(row interface{ Scan(...any) error }) (*domain.Maintenance, error) {
	m := &domain.Maintenance{}
	var description sql.NullString
	err := row.Scan(&m.ID, &m.Date, &m.WorkTypeID, &m.Status, &m.StaffID, &m.EquipmentID, &description)
	if err != nil {
		return nil, err
	}
	m.Description = description.String
	return m, nil
}

func (r *maintenanceRepository) Create(ctx context.Context, m *domain.Maintenance) error {
	query := `INSERT INTO maintenance (maintenance_date, work_type_id, status, staff_id, equipment_id, description)
	          VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	return r.db.QueryRowContext(ctx, query, m.Date, m.WorkTypeID, m.Status, m.StaffID, m.EquipmentID,
		nullString(m.Description)).Scan(&m.ID)
}

func (r *maintenanceRepository) GetByID(ctx context.Context, id int32) (*domain.Maintenance, error) {
	query := `SELECT ` + maintenanceColumns + ` FROM maintenance WHERE id = $1`
	m, err := scanMaintenance(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return m, err
}

func (r *maintenanceRepository) Update(ctx context.Context, m *domain.Maintenance) error {
	query := `UPDATE maintenance SET maintenance_date=$1, work_type_id=$2, status=$3, staff_id=$4, equipment_id=$5, description=$6 WHERE id=$7`
	res, err := r.db.ExecContext(ctx, query, m.Date, m.WorkTypeID, m.Status, m.StaffID, m.EquipmentID,
		nullString(m.Description), m.ID)
	if err != nil {
		return err
	}
	return requireRowsAffected("maintenance.Update", res)
}

func (r *maintenanceRepository) Delete(ctx context.Context, id int32) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM maintenance WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireRowsAffected("maintenance.Delete", res)
}

func (r *maintenanceRepository) List(ctx context.Context, equipmentID int32, status string, page, pageSize int32) ([]domain.Maintenance, int32, error) {
	offset := (page - 1) * pageSize
	query := `SELECT ` + maintenanceColumns + ` FROM maintenance WHERE 1=1`

	var args []interface{}
	if equipmentID != 0 {
		args = append(args, equipmentID)
		query += fmt.Sprintf(" AND equipment_id = $%d", len(args))
	}
	if status != "" {
		args = append(args, status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}

	var count int32
	countQuery := "SELECT count(*) FROM (" + query + ") as sub"
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	query += fmt.Sprintf(" ORDER BY maintenance_date DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, pageSize, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var items []domain.Maintenance
	for rows.Next() {
		m, err := scanMaintenance(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, *m)
	}
	return items, count, rows.Err()
}
