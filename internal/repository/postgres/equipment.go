package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"rentaldesk-backend/internal/domain"
	"rentaldesk-backend/internal/logger"
	"rentaldesk-backend/internal/repository"
)

type equipmentRepository struct {
	db *sql.DB
}

func NewEquipmentRepository(db *sql.DB) repository.EquipmentRepository {
	return &equipmentRepository{db: db}
}

const equipmentColumns = `id, equipment_name, equipment_code, description, model_id, country_id, brand_id, power, weight, fuel_type, rental_price_day, status`

func scanEquipment(row interface{ Scan(...any) error }) (*domain.Equipment, error) {
	eq := &domain.Equipment{}
	var description sql.NullString
	err := row.Scan(&eq.ID, &eq.Name, &eq.Code, &description, &eq.ModelID, &eq.CountryID, &eq.BrandID,
		&eq.Power, &eq.Weight, &eq.FuelType, &eq.RentalPriceDay, &eq.Status)
	if err != nil {
		return nil, err
	}
	eq.Description = description.String
	return eq, nil
}

func (r *equipmentRepository) Create(ctx context.Context, eq *domain.Equipment) error {
	query := `INSERT INTO equipment (equipment_name, equipment_code, description, model_id, country_id, brand_id, power, weight, fuel_type, rental_price_day, status)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11) RETURNING id`
	return r.db.QueryRowContext(ctx, query, eq.Name, eq.Code, eq.Description, eq.ModelID, eq.CountryID, eq.BrandID,
		eq.Power, eq.Weight, eq.FuelType, eq.RentalPriceDay, eq.Status).Scan(&eq.ID)
}

func (r *equipmentRepository) GetByID(ctx context.Context, id int32) (*domain.Equipment, error) {
	query := `SELECT ` + equipmentColumns + ` FROM equipment WHERE id = $1`
	eq, err := scanEquipment(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return eq, err
}

func (r *equipmentRepository) Update(ctx context.Context, eq *domain.Equipment) error {
	query := `UPDATE equipment SET equipment_name=$1, equipment_code=$2, description=$3, model_id=$4, country_id=$5, brand_id=$6, power=$7, weight=$8, fuel_type=$9, rental_price_day=$10, status=$11 WHERE id=$12`
	res, err := r.db.ExecContext(ctx, query, eq.Name, eq.Code, eq.Description, eq.ModelID, eq.CountryID, eq.BrandID,
		eq.Power, eq.Weight, eq.FuelType, eq.RentalPriceDay, eq.Status, eq.ID)
	if err != nil {
		return err
	}
	return requireRowsAffected("equipment.Update", res)
}

func (r *equipmentRepository) Delete(ctx context.Context, id int32) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM equipment WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireRowsAffected("equipment.Delete", res)
}

func (r *equipmentRepository) List(ctx context.Context, status string, page, pageSize int32) ([]domain.Equipment, int32, error) {
	offset := (page - 1) * pageSize
	query := `SELECT ` + equipmentColumns + ` FROM equipment`

	var args []interface{}
	if status != "" {
		query += " WHERE status = $1"
		args = append(args, status)
	}

	var count int32
	countQuery := "SELECT count(*) FROM (" + query + ") as sub"
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	query += fmt.Sprintf(" ORDER BY id LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, pageSize, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var items []domain.Equipment
	for rows.Next() {
		eq, err := scanEquipment(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, *eq)
	}
	return items, count, rows.Err()
}

func (r *equipmentRepository) ListAll(ctx context.Context) ([]domain.Equipment, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+equipmentColumns+` FROM equipment ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.Equipment
	for rows.Next() {
		eq, err := scanEquipment(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *eq)
	}
	return items, rows.Err()
}

func (r *equipmentRepository) LockByIDsTx(ctx context.Context, tx *sql.Tx, ids []int32) ([]domain.Equipment, error) {
	query := `SELECT ` + equipmentColumns + ` FROM equipment WHERE id = ANY($1) ORDER BY id FOR UPDATE`
	rows, err := tx.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.Equipment
	for rows.Next() {
		eq, err := scanEquipment(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *eq)
	}
	return items, rows.Err()
}

func (r *equipmentRepository) UpdateStatusTx(ctx context.Context, tx *sql.Tx, ids []int32, status domain.EquipmentStatus) (int64, error) {
	res, err := tx.ExecContext(ctx, `UPDATE equipment SET status = $1 WHERE id = ANY($2)`, status, pq.Array(ids))
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func requireRowsAffected(operation string, res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		logger.DatabaseResult(operation, 0, err)
		return err
	}
	logger.DatabaseResult(operation, n, nil)
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
