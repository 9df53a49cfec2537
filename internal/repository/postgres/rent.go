package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"rentaldesk-backend/internal/domain"
	"rentaldesk-backend/internal/repository"
)

type rentRepository struct {
	db *sql.DB
}

func NewRentRepository(db *sql.DB) repository.RentRepository {
	return &rentRepository{db: db}
}

const rentColumns = `id, client_id, staff_id, rent_agreement_number, rent_agreement_date, start_date, planned_end_date, actual_end_date, rent_status, total_amount, is_paid, payment_date, payment_method, transaction_number`

func scanRent(row interface{ Scan(...any) error }) (*domain.Rent, error) {
	rt := &domain.Rent{}
	var method sql.NullString
	var txNumber sql.NullString
	err := row.Scan(&rt.ID, &rt.ClientID, &rt.StaffID, &rt.AgreementNumber, &rt.AgreementDate,
		&rt.StartDate, &rt.PlannedEndDate, &rt.ActualEndDate, &rt.Status, &rt.TotalAmount,
		&rt.IsPaid, &rt.PaymentDate, &method, &txNumber)
	if err != nil {
		return nil, err
	}
	if method.Valid {
		m := domain.PaymentMethod(method.String)
		rt.PaymentMethod = &m
	}
	rt.TransactionNumber = txNumber.String
	return rt, nil
}

func (r *rentRepository) GetByID(ctx context.Context, id int32) (*domain.Rent, error) {
	query := `SELECT ` + rentColumns + ` FROM rents WHERE id = $1`
	rt, err := scanRent(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return rt, err
}

func (r *rentRepository) List(ctx context.Context, status string, page, pageSize int32) ([]domain.Rent, int32, error) {
	offset := (page - 1) * pageSize
	query := `SELECT ` + rentColumns + ` FROM rents`

	var args []interface{}
	if status != "" {
		query += " WHERE rent_status = $1"
		args = append(args, status)
	}

	var count int32
	countQuery := "SELECT count(*) FROM (" + query + ") as sub"
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	query += fmt.Sprintf(" ORDER BY id DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, pageSize, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var rents []domain.Rent
	for rows.Next() {
		rt, err := scanRent(rows)
		if err != nil {
			return nil, 0, err
		}
		rents = append(rents, *rt)
	}
	return rents, count, rows.Err()
}

func (r *rentRepository) ListAll(ctx context.Context) ([]domain.Rent, error) {
	return r.queryRents(ctx, `SELECT `+rentColumns+` FROM rents ORDER BY id`)
}

func (r *rentRepository) ListByClient(ctx context.Context, clientID int32) ([]domain.Rent, error) {
	return r.queryRents(ctx, `SELECT `+rentColumns+` FROM rents WHERE client_id = $1 ORDER BY start_date DESC`, clientID)
}

func (r *rentRepository) ListOverdue(ctx context.Context, asOf time.Time) ([]domain.Rent, error) {
	query := `SELECT ` + rentColumns + ` FROM rents
	          WHERE rent_status IN ('active', 'extended') AND planned_end_date < $1
	          ORDER BY planned_end_date`
	return r.queryRents(ctx, query, asOf)
}

func (r *rentRepository) queryRents(ctx context.Context, query string, args ...interface{}) ([]domain.Rent, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rents []domain.Rent
	for rows.Next() {
		rt, err := scanRent(rows)
		if err != nil {
			return nil, err
		}
		rents = append(rents, *rt)
	}
	return rents, rows.Err()
}

func (r *rentRepository) Items(ctx context.Context, rentID int32) ([]domain.RentItem, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, rent_id, equipment_id FROM rent_items WHERE rent_id = $1 ORDER BY id`, rentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.RentItem
	for rows.Next() {
		var it domain.RentItem
		if err := rows.Scan(&it.ID, &it.RentID, &it.EquipmentID); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (r *rentRepository) ListItems(ctx context.Context, page, pageSize int32) ([]domain.RentItem, int32, error) {
	offset := (page - 1) * pageSize

	var count int32
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM rent_items`).Scan(&count); err != nil {
		return nil, 0, err
	}

	rows, err := r.db.QueryContext(ctx, `SELECT id, rent_id, equipment_id FROM rent_items ORDER BY id LIMIT $1 OFFSET $2`, pageSize, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var items []domain.RentItem
	for rows.Next() {
		var it domain.RentItem
		if err := rows.Scan(&it.ID, &it.RentID, &it.EquipmentID); err != nil {
			return nil, 0, err
		}
		items = append(items, it)
	}
	return items, count, rows.Err()
}

func (r *rentRepository) NextAgreementNumberTx(ctx context.Context, tx *sql.Tx) (string, error) {
	var seq int64
	if err := tx.QueryRowContext(ctx, `SELECT nextval('rent_agreement_seq')`).Scan(&seq); err != nil {
		return "", err
	}
	return fmt.Sprintf("AGR-%d-%06d", time.Now().UTC().Year(), seq), nil
}

func (r *rentRepository) CreateTx(ctx context.Context, tx *sql.Tx, rent *domain.Rent) error {
	query := `INSERT INTO rents (client_id, staff_id, rent_agreement_number, rent_agreement_date, start_date, planned_end_date, rent_status, total_amount, is_paid)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`
	return tx.QueryRowContext(ctx, query, rent.ClientID, rent.StaffID, rent.AgreementNumber, rent.AgreementDate,
		rent.StartDate, rent.PlannedEndDate, rent.Status, rent.TotalAmount, rent.IsPaid).Scan(&rent.ID)
}

func (r *rentRepository) AddItemsTx(ctx context.Context, tx *sql.Tx, rentID int32, equipmentIDs []int32) error {
	for _, eqID := range equipmentIDs {
		if _, err := tx.ExecContext(ctx, `INSERT INTO rent_items (rent_id, equipment_id) VALUES ($1, $2)`, rentID, eqID); err != nil {
			return err
		}
	}
	return nil
}

func (r *rentRepository) GetForUpdateTx(ctx context.Context, tx *sql.Tx, id int32) (*domain.Rent, error) {
	query := `SELECT ` + rentColumns + ` FROM rents WHERE id = $1 FOR UPDATE`
	rt, err := scanRent(tx.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return rt, err
}

func (r *rentRepository) UpdateTx(ctx context.Context, tx *sql.Tx, rent *domain.Rent) error {
	query := `UPDATE rents SET rent_status=$1, planned_end_date=$2, actual_end_date=$3, is_paid=$4, payment_date=$5, payment_method=$6, transaction_number=$7 WHERE id=$8`
	var method interface{}
	if rent.PaymentMethod != nil {
		method = string(*rent.PaymentMethod)
	}
	var txNumber interface{}
	if rent.TransactionNumber != "" {
		txNumber = rent.TransactionNumber
	}
	res, err := tx.ExecContext(ctx, query, rent.Status, rent.PlannedEndDate, rent.ActualEndDate,
		rent.IsPaid, rent.PaymentDate, method, txNumber, rent.ID)
	if err != nil {
		return err
	}
	return requireRowsAffected("rent.UpdateTx", res)
}

func (r *rentRepository) EquipmentIDsTx(ctx context.Context, tx *sql.Tx, rentID int32) ([]int32, error) {
	rows, err := tx.QueryContext(ctx, `SELECT equipment_id FROM rent_items WHERE rent_id = $1`, rentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int32
	for rows.Next() {
		var id int32
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *rentRepository) DeleteTx(ctx context.Context, tx *sql.Tx, id int32) error {
	// rent_items cascade on delete.
	res, err := tx.ExecContext(ctx, `DELETE FROM rents WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireRowsAffected("rent.DeleteTx", res)
}
