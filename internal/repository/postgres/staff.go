package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/lib/pq"

	"rentaldesk-backend/internal/domain"
	"rentaldesk-backend/internal/repository"
)

type staffRepository struct {
	db *sql.DB
}

func NewStaffRepository(db *sql.DB) repository.StaffRepository {
	return &staffRepository{db: db}
}

func (r *staffRepository) Create(ctx context.Context, s *domain.Staff) error {
	query := `INSERT INTO staff (username, email, password_hash, first_name, last_name, is_active, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	return r.db.QueryRowContext(ctx, query, s.Username, s.Email, s.PasswordHash, s.FirstName, s.LastName,
		s.IsActive, time.Now()).Scan(&s.ID)
}

func (r *staffRepository) GetByID(ctx context.Context, id int32) (*domain.Staff, error) {
	return r.getOne(ctx, `WHERE s.id = $1`, id)
}

func (r *staffRepository) GetByUsername(ctx context.Context, username string) (*domain.Staff, error) {
	return r.getOne(ctx, `WHERE s.username = $1`, username)
}

func (r *staffRepository) getOne(ctx context.Context, where string, arg interface{}) (*domain.Staff, error) {
	s := &domain.Staff{}
	var groups pq.StringArray
	query := `SELECT s.id, s.username, s.email, s.password_hash, s.first_name, s.last_name, s.is_active, s.created_on,
	                 COALESCE(array_agg(r.role_name) FILTER (WHERE r.role_name IS NOT NULL), '{}')
	          FROM staff s
	          LEFT JOIN staff_roles sr ON sr.staff_id = s.id
	          LEFT JOIN roles r ON r.id = sr.role_id
	          ` + where + `
	          GROUP BY s.id`
	err := r.db.QueryRowContext(ctx, query, arg).Scan(&s.ID, &s.Username, &s.Email, &s.PasswordHash,
		&s.FirstName, &s.LastName, &s.IsActive, &s.CreatedOn, &groups)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	s.Groups = groups
	return s, nil
}

func (r *staffRepository) Update(ctx context.Context, s *domain.Staff) error {
	query := `UPDATE staff SET username=$1, email=$2, password_hash=$3, first_name=$4, last_name=$5, is_active=$6 WHERE id=$7`
	res, err := r.db.ExecContext(ctx, query, s.Username, s.Email, s.PasswordHash, s.FirstName, s.LastName, s.IsActive, s.ID)
	if err != nil {
		return err
	}
	return requireRowsAffected("staff.Update", res)
}

func (r *staffRepository) List(ctx context.Context, page, pageSize int32) ([]domain.Staff, int32, error) {
	offset := (page - 1) * pageSize

	var count int32
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM staff`).Scan(&count); err != nil {
		return nil, 0, err
	}

	query := `SELECT s.id, s.username, s.email, s.password_hash, s.first_name, s.last_name, s.is_active, s.created_on,
	                 COALESCE(array_agg(r.role_name) FILTER (WHERE r.role_name IS NOT NULL), '{}')
	          FROM staff s
	          LEFT JOIN staff_roles sr ON sr.staff_id = s.id
	          LEFT JOIN roles r ON r.id = sr.role_id
	          GROUP BY s.id
	          ORDER BY s.id LIMIT $1 OFFSET $2`
	rows, err := r.db.QueryContext(ctx, query, pageSize, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var members []domain.Staff
	for rows.Next() {
		var s domain.Staff
		var groups pq.StringArray
		if err := rows.Scan(&s.ID, &s.Username, &s.Email, &s.PasswordHash, &s.FirstName, &s.LastName,
			&s.IsActive, &s.CreatedOn, &groups); err != nil {
			return nil, 0, err
		}
		s.Groups = groups
		members = append(members, s)
	}
	return members, count, rows.Err()
}

func (r *staffRepository) SetGroups(ctx context.Context, staffID int32, roleIDs []int32) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM staff_roles WHERE staff_id = $1`, staffID); err != nil {
		return err
	}
	for _, roleID := range roleIDs {
		if _, err := tx.ExecContext(ctx, `INSERT INTO staff_roles (staff_id, role_id) VALUES ($1, $2)`, staffID, roleID); err != nil {
			return err
		}
	}
	return tx.Commit()
}
