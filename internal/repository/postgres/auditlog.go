package postgres

import (
	"context"
	"database/sql"
	"time"

	"rentaldesk-backend/internal/domain"
	"rentaldesk-backend/internal/repository"
)

type auditLogRepository struct {
	db *sql.DB
}

func NewAuditLogRepository(db *sql.DB) repository.AuditLogRepository {
	return &auditLogRepository{db: db}
}

func (r *auditLogRepository) Create(ctx context.Context, entry *domain.AuditLog) error {
	if entry.LogDate.IsZero() {
		entry.LogDate = time.Now().UTC()
	}
	query := `INSERT INTO audit_logs (staff_id, log_date, action_type, success_status, description_text)
	          VALUES ($1, $2, $3, $4, $5) RETURNING id`
	return r.db.QueryRowContext(ctx, query, entry.StaffID, entry.LogDate, entry.Action, entry.Success,
		nullString(entry.Description)).Scan(&entry.ID)
}

func (r *auditLogRepository) List(ctx context.Context, page, pageSize int32) ([]domain.AuditLog, int32, error) {
	offset := (page - 1) * pageSize

	var count int32
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM audit_logs`).Scan(&count); err != nil {
		return nil, 0, err
	}

	query := `SELECT id, staff_id, log_date, action_type, success_status, description_text
	          FROM audit_logs ORDER BY log_date DESC LIMIT $1 OFFSET $2`
	rows, err := r.db.QueryContext(ctx, query, pageSize, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var entries []domain.AuditLog
	for rows.Next() {
		var e domain.AuditLog
		var description sql.NullString
		if err := rows.Scan(&e.ID, &e.StaffID, &e.LogDate, &e.Action, &e.Success, &description); err != nil {
			return nil, 0, err
		}
		e.Description = description.String
		entries = append(entries, e)
	}
	return entries, count, rows.Err()
}
