package postgres

import (
	"context"
	"database/sql"
	"errors"

	"rentaldesk-backend/internal/domain"
	"rentaldesk-backend/internal/repository"
)

type addressRepository struct {
	db *sql.DB
}

func NewAddressRepository(db *sql.DB) repository.AddressRepository {
	return &addressRepository{db: db}
}

func (r *addressRepository) Create(ctx context.Context, a *domain.Address) error {
	query := `INSERT INTO addresses (region, city, street, house, building, postal_code, full_address)
	          VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	return r.db.QueryRowContext(ctx, query, a.Region, a.City, a.Street, a.House, nullString(a.Building),
		a.PostalCode, a.FullAddress).Scan(&a.ID)
}

func (r *addressRepository) GetByID(ctx context.Context, id int32) (*domain.Address, error) {
	a := &domain.Address{}
	var building sql.NullString
	query := `SELECT id, region, city, street, house, building, postal_code, full_address FROM addresses WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&a.ID, &a.Region, &a.City, &a.Street, &a.House,
		&building, &a.PostalCode, &a.FullAddress)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	a.Building = building.String
	return a, nil
}

func (r *addressRepository) Update(ctx context.Context, a *domain.Address) error {
	query := `UPDATE addresses SET region=$1, city=$2, street=$3, house=$4, building=$5, postal_code=$6, full_address=$7 WHERE id=$8`
	res, err := r.db.ExecContext(ctx, query, a.Region, a.City, a.Street, a.House, nullString(a.Building),
		a.PostalCode, a.FullAddress, a.ID)
	if err != nil {
		return err
	}
	return requireRowsAffected("address.Update", res)
}

func (r *addressRepository) Delete(ctx context.Context, id int32) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM addresses WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireRowsAffected("address.Delete", res)
}

func (r *addressRepository) List(ctx context.Context, page, pageSize int32) ([]domain.Address, int32, error) {
	offset := (page - 1) * pageSize

	var count int32
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM addresses`).Scan(&count); err != nil {
		return nil, 0, err
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT id, region, city, street, house, building, postal_code, full_address FROM addresses ORDER BY id LIMIT $1 OFFSET $2`,
		pageSize, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var addrs []domain.Address
	for rows.Next() {
		var a domain.Address
		var building sql.NullString
		if err := rows.Scan(&a.ID, &a.Region, &a.City, &a.Street, &a.House, &building, &a.PostalCode, &a.FullAddress); err != nil {
			return nil, 0, err
		}
		a.Building = building.String
		addrs = append(addrs, a)
	}
	return addrs, count, rows.Err()
}
