package service_test

import (
	"context"
	"errors"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"rentaldesk-backend/internal/domain"
	"rentaldesk-backend/internal/service"
)

type equipmentFixture struct {
	dbMock sqlmock.Sqlmock
	eq     *MockEquipmentRepo
	audit  *MockAuditRepo
	svc    service.EquipmentService
}

func newEquipmentFixture(t *testing.T) *equipmentFixture {
	t.Helper()
	db, dbMock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	f := &equipmentFixture{
		dbMock: dbMock,
		eq:     new(MockEquipmentRepo),
		audit:  new(MockAuditRepo),
	}
	f.svc = service.NewEquipmentService(db, f.eq, f.audit)
	return f
}

func TestEquipmentService_BulkUpdateStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		f := newEquipmentFixture(t)
		f.dbMock.ExpectBegin()
		f.dbMock.ExpectCommit()

		f.eq.On("LockByIDsTx", ctx, mock.Anything, []int32{10, 11}).Return([]domain.Equipment{
			{ID: 10}, {ID: 11},
		}, nil).Once()
		f.eq.On("UpdateStatusTx", ctx, mock.Anything, []int32{10, 11}, domain.EquipmentStatusMaintenance).Return(int64(2), nil).Once()
		f.audit.On("Create", ctx, mock.MatchedBy(func(l *domain.AuditLog) bool {
			return l.Action == domain.ActionChangeStatus && l.Success
		})).Return(nil).Once()

		updated, err := f.svc.BulkUpdateStatus(ctx, managerActor, []int32{10, 11}, domain.EquipmentStatusMaintenance)
		require.NoError(t, err)
		assert.Equal(t, int64(2), updated)
		assert.NoError(t, f.dbMock.ExpectationsWereMet())
	})

	t.Run("LeaderDenied", func(t *testing.T) {
		f := newEquipmentFixture(t)
		_, err := f.svc.BulkUpdateStatus(ctx, leaderActor, []int32{10}, domain.EquipmentStatusAvailable)
		assert.ErrorIs(t, err, domain.ErrPermissionDenied)
	})

	t.Run("StorageFailureIsAudited", func(t *testing.T) {
		f := newEquipmentFixture(t)
		f.dbMock.ExpectBegin()
		f.dbMock.ExpectRollback()

		f.eq.On("LockByIDsTx", ctx, mock.Anything, []int32{10}).Return([]domain.Equipment{{ID: 10}}, nil).Once()
		f.eq.On("UpdateStatusTx", ctx, mock.Anything, []int32{10}, domain.EquipmentStatusAvailable).Return(int64(0), errors.New("connection reset")).Once()
		f.audit.On("Create", ctx, mock.MatchedBy(func(l *domain.AuditLog) bool {
			return l.Action == domain.ActionChangeStatus && !l.Success
		})).Return(nil).Once()

		_, err := f.svc.BulkUpdateStatus(ctx, managerActor, []int32{10}, domain.EquipmentStatusAvailable)
		require.Error(t, err)
		assert.NoError(t, f.dbMock.ExpectationsWereMet())
		f.audit.AssertExpectations(t)
	})
}
