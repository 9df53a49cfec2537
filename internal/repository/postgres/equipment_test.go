package postgres

import (
	"context"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rentaldesk-backend/internal/domain"
)

func newMockDB(t *testing.T) (repo *equipmentRepository, mock sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return &equipmentRepository{db: db}, mock
}

var equipmentRowColumns = []string{
	"id", "equipment_name", "equipment_code", "description", "model_id", "country_id", "brand_id",
	"power", "weight", "fuel_type", "rental_price_day", "status",
}

func TestEquipmentRepository_GetByID(t *testing.T) {
	ctx := context.Background()

	t.Run("Found", func(t *testing.T) {
		repo, mock := newMockDB(t)
		mock.ExpectQuery(`SELECT .+ FROM equipment WHERE id = \$1`).
			WithArgs(int32(10)).
			WillReturnRows(sqlmock.NewRows(equipmentRowColumns).
				AddRow(10, "Drill", "EQ-010", "cordless", nil, nil, nil, "0.9", "2.5", "electric", "1000", "available"))

		eq, err := repo.GetByID(ctx, 10)
		require.NoError(t, err)
		assert.Equal(t, "Drill", eq.Name)
		assert.True(t, eq.RentalPriceDay.Equal(decimal.NewFromInt(1000)))
		assert.Equal(t, domain.EquipmentStatusAvailable, eq.Status)
		assert.Nil(t, eq.BrandID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("NotFound", func(t *testing.T) {
		repo, mock := newMockDB(t)
		mock.ExpectQuery(`SELECT .+ FROM equipment WHERE id = \$1`).
			WithArgs(int32(99)).
			WillReturnRows(sqlmock.NewRows(equipmentRowColumns))

		_, err := repo.GetByID(ctx, 99)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestEquipmentRepository_List(t *testing.T) {
	ctx := context.Background()
	repo, mock := newMockDB(t)

	mock.ExpectQuery(`SELECT count\(\*\) FROM`).
		WithArgs("available").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(`SELECT .+ FROM equipment WHERE status = \$1 ORDER BY id LIMIT \$2 OFFSET \$3`).
		WithArgs("available", int32(20), int32(0)).
		WillReturnRows(sqlmock.NewRows(equipmentRowColumns).
			AddRow(10, "Drill", "EQ-010", nil, nil, nil, nil, "0.9", "2.5", "electric", "1000", "available"))

	items, total, err := repo.List(ctx, "available", 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int32(1), total)
	require.Len(t, items, 1)
	assert.Equal(t, int32(10), items[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEquipmentRepository_LockByIDsTx(t *testing.T) {
	ctx := context.Background()
	repo, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT .+ FROM equipment WHERE id = ANY\(\$1\) ORDER BY id FOR UPDATE`).
		WithArgs(pq.Array([]int32{10, 11})).
		WillReturnRows(sqlmock.NewRows(equipmentRowColumns).
			AddRow(10, "Drill", "EQ-010", nil, nil, nil, nil, "0.9", "2.5", "electric", "1000", "available").
			AddRow(11, "Saw", "EQ-011", nil, nil, nil, nil, "1.2", "4.0", "petrol", "500", "rented"))
	mock.ExpectCommit()

	tx, err := repo.db.BeginTx(ctx, nil)
	require.NoError(t, err)

	items, err := repo.LockByIDsTx(ctx, tx, []int32{10, 11})
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, domain.EquipmentStatusRented, items[1].Status)

	require.NoError(t, tx.Commit())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEquipmentRepository_UpdateStatusTx(t *testing.T) {
	ctx := context.Background()
	repo, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE equipment SET status = \$1 WHERE id = ANY\(\$2\)`).
		WithArgs("rented", pq.Array([]int32{10, 11})).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	tx, err := repo.db.BeginTx(ctx, nil)
	require.NoError(t, err)

	n, err := repo.UpdateStatusTx(ctx, tx, []int32{10, 11}, domain.EquipmentStatusRented)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	require.NoError(t, tx.Commit())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEquipmentRepository_UpdateNotFound(t *testing.T) {
	ctx := context.Background()
	repo, mock := newMockDB(t)

	mock.ExpectExec(`UPDATE equipment SET`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Update(ctx, &domain.Equipment{ID: 99, Name: "Gone", Status: domain.EquipmentStatusAvailable})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
