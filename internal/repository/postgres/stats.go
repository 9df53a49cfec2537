package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"rentaldesk-backend/internal/repository"
)

type statsRepository struct {
	db *sql.DB
}

func NewStatsRepository(db *sql.DB) repository.StatsRepository {
	return &statsRepository{db: db}
}

func (r *statsRepository) BrandPopularitySince(ctx context.Context, since time.Time) (map[string]int64, error) {
	query := `SELECT COALESCE(b.brand, 'unknown'), count(ri.id)
	          FROM rent_items ri
	          JOIN rents rt ON rt.id = ri.rent_id
	          JOIN equipment e ON e.id = ri.equipment_id
	          LEFT JOIN equipment_brands b ON b.id = e.brand_id
	          WHERE rt.start_date >= $1
	          GROUP BY b.brand`
	return r.queryCounts(ctx, query, since)
}

func (r *statsRepository) MaintenanceCompletedSince(ctx context.Context, since time.Time) (map[string]int64, error) {
	query := `SELECT COALESCE(s.username, 'unknown'), count(m.id)
	          FROM maintenance m
	          LEFT JOIN staff s ON s.id = m.staff_id
	          WHERE m.maintenance_date >= $1 AND m.status = 'completed'
	          GROUP BY s.username`
	return r.queryCounts(ctx, query, since)
}

func (r *statsRepository) ManagerActivitySince(ctx context.Context, since time.Time, managerGroups []string) (map[string]int64, error) {
	query := `SELECT COALESCE(s.username, 'unknown'), count(l.id)
	          FROM audit_logs l
	          JOIN staff s ON s.id = l.staff_id
	          JOIN staff_roles sr ON sr.staff_id = s.id
	          JOIN roles r ON r.id = sr.role_id
	          WHERE l.log_date >= $1 AND l.success_status AND lower(r.role_name) = ANY($2)
	          GROUP BY s.username`
	return r.queryCounts(ctx, query, since, pq.Array(managerGroups))
}

func (r *statsRepository) UserActivitySince(ctx context.Context, since time.Time) (map[string]int64, error) {
	query := `SELECT COALESCE(s.username, 'unknown'), count(l.id)
	          FROM audit_logs l
	          LEFT JOIN staff s ON s.id = l.staff_id
	          WHERE l.log_date >= $1
	          GROUP BY s.username`
	return r.queryCounts(ctx, query, since)
}

func (r *statsRepository) FinanceSince(ctx context.Context, since time.Time) (decimal.Decimal, decimal.Decimal, error) {
	var profit, debt decimal.Decimal
	profitQuery := `SELECT COALESCE(sum(total_amount), 0) FROM rents
	                WHERE start_date >= $1 AND rent_status = 'completed' AND is_paid`
	if err := r.db.QueryRowContext(ctx, profitQuery, since).Scan(&profit); err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	debtQuery := `SELECT COALESCE(sum(total_amount), 0) FROM rents
	              WHERE start_date >= $1 AND NOT is_paid`
	if err := r.db.QueryRowContext(ctx, debtQuery, since).Scan(&debt); err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	return profit, debt, nil
}

func (r *statsRepository) queryCounts(ctx context.Context, query string, args ...interface{}) (map[string]int64, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int64)
	for rows.Next() {
		var label string
		var cnt int64
		if err := rows.Scan(&label, &cnt); err != nil {
			return nil, err
		}
		counts[label] = cnt
	}
	return counts, rows.Err()
}
