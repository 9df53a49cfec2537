package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"rentaldesk-backend/internal/domain"
	"rentaldesk-backend/internal/repository"
)

type clientRepository struct {
	db *sql.DB
}

func NewClientRepository(db *sql.DB) repository.ClientRepository {
	return &clientRepository{db: db}
}

func (r *clientRepository) Create(ctx context.Context, c *domain.Client) error {
	query := `INSERT INTO clients (email, phone_number, client_type) VALUES ($1, $2, $3) RETURNING id`
	return r.db.QueryRowContext(ctx, query, c.Email, c.PhoneNumber, c.Type).Scan(&c.ID)
}

func (r *clientRepository) GetByID(ctx context.Context, id int32) (*domain.Client, error) {
	c := &domain.Client{}
	query := `SELECT id, email, phone_number, client_type FROM clients WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&c.ID, &c.Email, &c.PhoneNumber, &c.Type)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *clientRepository) Update(ctx context.Context, c *domain.Client) error {
	query := `UPDATE clients SET email=$1, phone_number=$2, client_type=$3 WHERE id=$4`
	res, err := r.db.ExecContext(ctx, query, c.Email, c.PhoneNumber, c.Type, c.ID)
	if err != nil {
		return err
	}
	return requireRowsAffected("client.Update", res)
}

func (r *clientRepository) Delete(ctx context.Context, id int32) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM clients WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireRowsAffected("client.Delete", res)
}

func (r *clientRepository) List(ctx context.Context, clientType string, page, pageSize int32) ([]domain.Client, int32, error) {
	offset := (page - 1) * pageSize
	query := `SELECT id, email, phone_number, client_type FROM clients`

	var args []interface{}
	if clientType != "" {
		query += " WHERE client_type = $1"
		args = append(args, clientType)
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

	var clients []domain.Client
	for rows.Next() {
		var c domain.Client
		if err := rows.Scan(&c.ID, &c.Email, &c.PhoneNumber, &c.Type); err != nil {
			return nil, 0, err
		}
		clients = append(clients, c)
	}
	return clients, count, rows.Err()
}

func (r *clientRepository) ListAll(ctx context.Context) ([]domain.Client, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, email, phone_number, client_type FROM clients ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var clients []domain.Client
	for rows.Next() {
		var c domain.Client
		if err := rows.Scan(&c.ID, &c.Email, &c.PhoneNumber, &c.Type); err != nil {
			return nil, err
		}
		clients = append(clients, c)
	}
	return clients, rows.Err()
}

func (r *clientRepository) UpsertIndDetails(ctx context.Context, d *domain.IndClient) error {
	query := `INSERT INTO ind_clients (client_id, last_name, first_name, patronymic, passport_number, passport_issued_by, passport_issued_date, passport_code, birth_date, registration_address_id, actual_address_id, inn)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	          ON CONFLICT (client_id) DO UPDATE SET
	            last_name=EXCLUDED.last_name, first_name=EXCLUDED.first_name, patronymic=EXCLUDED.patronymic,
	            passport_number=EXCLUDED.passport_number, passport_issued_by=EXCLUDED.passport_issued_by,
	            passport_issued_date=EXCLUDED.passport_issued_date, passport_code=EXCLUDED.passport_code,
	            birth_date=EXCLUDED.birth_date, registration_address_id=EXCLUDED.registration_address_id,
	            actual_address_id=EXCLUDED.actual_address_id, inn=EXCLUDED.inn`
	_, err := r.db.ExecContext(ctx, query, d.ClientID, d.LastName, d.FirstName, nullString(d.Patronymic),
		d.PassportNumber, d.PassportIssuedBy, d.PassportIssuedDate, d.PassportCode, d.BirthDate,
		d.RegistrationAddressID, d.ActualAddressID, nullString(d.INN))
	return err
}

func (r *clientRepository) GetIndDetails(ctx context.Context, clientID int32) (*domain.IndClient, error) {
	d := &domain.IndClient{}
	var patronymic, inn sql.NullString
	query := `SELECT client_id, last_name, first_name, patronymic, passport_number, passport_issued_by, passport_issued_date, passport_code, birth_date, registration_address_id, actual_address_id, inn
	          FROM ind_clients WHERE client_id = $1`
	err := r.db.QueryRowContext(ctx, query, clientID).Scan(&d.ClientID, &d.LastName, &d.FirstName, &patronymic,
		&d.PassportNumber, &d.PassportIssuedBy, &d.PassportIssuedDate, &d.PassportCode, &d.BirthDate,
		&d.RegistrationAddressID, &d.ActualAddressID, &inn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	d.Patronymic = patronymic.String
	d.INN = inn.String
	return d, nil
}

func (r *clientRepository) UpsertCompDetails(ctx context.Context, d *domain.CompClient) error {
	query := `INSERT INTO comp_clients (client_id, company_name, address_id, inn, kpp, ogrn, bank_name, bank_bik, bank_account, bank_corr, director_first_name, director_last_name, director_patronymic, position, attorney_number, attorney_date)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	          ON CONFLICT (client_id) DO UPDATE SET
	            company_name=EXCLUDED.company_name, address_id=EXCLUDED.address_id, inn=EXCLUDED.inn,
	            kpp=EXCLUDED.kpp, ogrn=EXCLUDED.ogrn, bank_name=EXCLUDED.bank_name, bank_bik=EXCLUDED.bank_bik,
	            bank_account=EXCLUDED.bank_account, bank_corr=EXCLUDED.bank_corr,
	            director_first_name=EXCLUDED.director_first_name, director_last_name=EXCLUDED.director_last_name,
	            director_patronymic=EXCLUDED.director_patronymic, position=EXCLUDED.position,
	            attorney_number=EXCLUDED.attorney_number, attorney_date=EXCLUDED.attorney_date`
	_, err := r.db.ExecContext(ctx, query, d.ClientID, d.CompanyName, d.AddressID, d.INN, d.KPP, d.OGRN,
		d.BankName, d.BankBIK, d.BankAccount, d.BankCorr, d.DirectorFirstName, d.DirectorLastName,
		nullString(d.DirectorPatronymic), d.Position, nullString(d.AttorneyNumber), d.AttorneyDate)
	return err
}

func (r *clientRepository) GetCompDetails(ctx context.Context, clientID int32) (*domain.CompClient, error) {
	d := &domain.CompClient{}
	var patronymic, attorneyNumber sql.NullString
	query := `SELECT client_id, company_name, address_id, inn, kpp, ogrn, bank_name, bank_bik, bank_account, bank_corr, director_first_name, director_last_name, director_patronymic, position, attorney_number, attorney_date
	          FROM comp_clients WHERE client_id = $1`
	err := r.db.QueryRowContext(ctx, query, clientID).Scan(&d.ClientID, &d.CompanyName, &d.AddressID, &d.INN,
		&d.KPP, &d.OGRN, &d.BankName, &d.BankBIK, &d.BankAccount, &d.BankCorr,
		&d.DirectorFirstName, &d.DirectorLastName, &patronymic, &d.Position, &attorneyNumber, &d.AttorneyDate)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	d.DirectorPatronymic = patronymic.String
	d.AttorneyNumber = attorneyNumber.String
	return d, nil
}

func nullString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
