package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"rentaldesk-backend/internal/domain"
	"rentaldesk-backend/internal/repository"
)

type preferenceRepository struct {
	db *sql.DB
}

func NewPreferenceRepository(db *sql.DB) repository.PreferenceRepository {
	return &preferenceRepository{db: db}
}

func (r *preferenceRepository) Get(ctx context.Context, staffID int32) (*domain.UserPreference, error) {
	p := &domain.UserPreference{}
	query := `SELECT staff_id, theme, date_format, number_format, page_size, saved_filters, updated_at
	          FROM user_preferences WHERE staff_id = $1`
	err := r.db.QueryRowContext(ctx, query, staffID).Scan(&p.StaffID, &p.Theme, &p.DateFormat,
		&p.NumberFormat, &p.PageSize, &p.SavedFilters, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *preferenceRepository) Upsert(ctx context.Context, p *domain.UserPreference) error {
	if len(p.SavedFilters) == 0 {
		p.SavedFilters = []byte("{}")
	}
	p.UpdatedAt = time.Now().UTC()
	query := `INSERT INTO user_preferences (staff_id, theme, date_format, number_format, page_size, saved_filters, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)
	          ON CONFLICT (staff_id) DO UPDATE SET
	            theme=EXCLUDED.theme, date_format=EXCLUDED.date_format, number_format=EXCLUDED.number_format,
	            page_size=EXCLUDED.page_size, saved_filters=EXCLUDED.saved_filters, updated_at=EXCLUDED.updated_at`
	_, err := r.db.ExecContext(ctx, query, p.StaffID, p.Theme, p.DateFormat, p.NumberFormat, p.PageSize,
		[]byte(p.SavedFilters), p.UpdatedAt)
	return err
}
