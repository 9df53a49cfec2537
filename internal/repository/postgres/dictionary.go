package postgres

import (
	"context"
	"database/sql"

	"rentaldesk-backend/internal/domain"
	"rentaldesk-backend/internal/repository"
)

type dictionaryRepository struct {
	db *sql.DB
}

func NewDictionaryRepository(db *sql.DB) repository.DictionaryRepository {
	return &dictionaryRepository{db: db}
}

func (r *dictionaryRepository) ListRoles(ctx context.Context) ([]domain.RoleRecord, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, role_name FROM roles ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var roles []domain.RoleRecord
	for rows.Next() {
		var rec domain.RoleRecord
		if err := rows.Scan(&rec.ID, &rec.RoleName); err != nil {
			return nil, err
		}
		roles = append(roles, rec)
	}
	return roles, rows.Err()
}

func (r *dictionaryRepository) CreateRole(ctx context.Context, name string) (*domain.RoleRecord, error) {
	rec := &domain.RoleRecord{RoleName: name}
	err := r.db.QueryRowContext(ctx, `INSERT INTO roles (role_name) VALUES ($1) RETURNING id`, name).Scan(&rec.ID)
	if err != nil {
		return nil, err
	}
	return rec, nil
}

func (r *dictionaryRepository) DeleteRole(ctx context.Context, id int32) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM roles WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireRowsAffected("dictionary.DeleteRole", res)
}

func (r *dictionaryRepository) ListCountries(ctx context.Context) ([]domain.EquipmentCountry, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, country FROM equipment_countries ORDER BY country`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.EquipmentCountry
	for rows.Next() {
		var c domain.EquipmentCountry
		if err := rows.Scan(&c.ID, &c.Country); err != nil {
			return nil, err
		}
		items = append(items, c)
	}
	return items, rows.Err()
}

func (r *dictionaryRepository) CreateCountry(ctx context.Context, country string) (*domain.EquipmentCountry, error) {
	c := &domain.EquipmentCountry{Country: country}
	err := r.db.QueryRowContext(ctx, `INSERT INTO equipment_countries (country) VALUES ($1) RETURNING id`, country).Scan(&c.ID)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *dictionaryRepository) DeleteCountry(ctx context.Context, id int32) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM equipment_countries WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireRowsAffected("dictionary.DeleteCountry", res)
}

func (r *dictionaryRepository) ListBrands(ctx context.Context) ([]domain.EquipmentBrand, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, brand FROM equipment_brands ORDER BY brand`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.EquipmentBrand
	for rows.Next() {
		var b domain.EquipmentBrand
		if err := rows.Scan(&b.ID, &b.Brand); err != nil {
			return nil, err
		}
		items = append(items, b)
	}
	return items, rows.Err()
}

func (r *dictionaryRepository) CreateBrand(ctx context.Context, brand string) (*domain.EquipmentBrand, error) {
	b := &domain.EquipmentBrand{Brand: brand}
	err := r.db.QueryRowContext(ctx, `INSERT INTO equipment_brands (brand) VALUES ($1) RETURNING id`, brand).Scan(&b.ID)
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (r *dictionaryRepository) DeleteBrand(ctx context.Context, id int32) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM equipment_brands WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireRowsAffected("dictionary.DeleteBrand", res)
}

func (r *dictionaryRepository) ListModels(ctx context.Context) ([]domain.EquipmentModel, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, model_name FROM equipment_models ORDER BY model_name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.EquipmentModel
	for rows.Next() {
		var m domain.EquipmentModel
		if err := rows.Scan(&m.ID, &m.ModelName); err != nil {
			return nil, err
		}
		items = append(items, m)
	}
	return items, rows.Err()
}

func (r *dictionaryRepository) CreateModel(ctx context.Context, name string) (*domain.EquipmentModel, error) {
	m := &domain.EquipmentModel{ModelName: name}
	err := r.db.QueryRowContext(ctx, `INSERT INTO equipment_models (model_name) VALUES ($1) RETURNING id`, name).Scan(&m.ID)
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (r *dictionaryRepository) DeleteModel(ctx context.Context, id int32) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM equipment_models WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireRowsAffected("dictionary.DeleteModel", res)
}

func (r *dictionaryRepository) ListMaintenanceTypes(ctx context.Context) ([]domain.MaintenanceType, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, type_name FROM maintenance_types ORDER BY type_name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.MaintenanceType
	for rows.Next() {
		var t domain.MaintenanceType
		if err := rows.Scan(&t.ID, &t.TypeName); err != nil {
			return nil, err
		}
		items = append(items, t)
	}
	return items, rows.Err()
}

func (r *dictionaryRepository) CreateMaintenanceType(ctx context.Context, name string) (*domain.MaintenanceType, error) {
	t := &domain.MaintenanceType{TypeName: name}
	err := r.db.QueryRowContext(ctx, `INSERT INTO maintenance_types (type_name) VALUES ($1) RETURNING id`, name).Scan(&t.ID)
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (r *dictionaryRepository) DeleteMaintenanceType(ctx context.Context, id int32) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM maintenance_types WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireRowsAffected("dictionary.DeleteMaintenanceType", res)
}
