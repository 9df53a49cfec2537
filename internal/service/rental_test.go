package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"rentaldesk-backend/internal/access"
	"rentaldesk-backend/internal/domain"
	"rentaldesk-backend/internal/service"
)

var (
	managerActor = service.Actor{ID: 7, Username: "manager1", Roles: []access.Role{access.RoleManager}}
	leaderActor  = service.Actor{ID: 8, Username: "leader1", Roles: []access.Role{access.RoleLeader}}
	adminActor   = service.Actor{ID: 1, Username: "admin", Roles: []access.Role{access.RoleAdmin}}
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

type rentalFixture struct {
	dbMock sqlmock.Sqlmock
	rents  *MockRentRepo
	eq     *MockEquipmentRepo
	cl     *MockClientRepo
	audit  *MockAuditRepo
	email  *MockEmailService
	svc    service.RentalService
}

func newRentalFixture(t *testing.T) *rentalFixture {
	t.Helper()
	db, dbMock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	f := &rentalFixture{
		dbMock: dbMock,
		rents:  new(MockRentRepo),
		eq:     new(MockEquipmentRepo),
		cl:     new(MockClientRepo),
		audit:  new(MockAuditRepo),
		email:  new(MockEmailService),
	}
	f.svc = service.NewRentalService(db, f.rents, f.eq, f.cl, f.audit, f.email, decimal.NewFromFloat(0.1))
	return f
}

func TestRentalService_CreateRent(t *testing.T) {
	ctx := context.Background()
	start := date(2024, time.January, 1)
	end := date(2024, time.January, 4)

	t.Run("Success", func(t *testing.T) {
		f := newRentalFixture(t)
		f.dbMock.ExpectBegin()
		f.dbMock.ExpectCommit()

		f.cl.On("GetByID", ctx, int32(3)).Return(&domain.Client{ID: 3, Email: "c@test.com", Type: domain.ClientTypeIndividual}, nil).Once()
		f.eq.On("LockByIDsTx", ctx, mock.Anything, []int32{10, 11}).Return([]domain.Equipment{
			{ID: 10, Name: "Drill", Status: domain.EquipmentStatusAvailable, RentalPriceDay: decimal.NewFromInt(1000)},
			{ID: 11, Name: "Saw", Status: domain.EquipmentStatusAvailable, RentalPriceDay: decimal.NewFromInt(500)},
		}, nil).Once()
		f.rents.On("NextAgreementNumberTx", ctx, mock.Anything).Return("AGR-2024-000042", nil).Once()
		f.rents.On("CreateTx", ctx, mock.Anything, mock.MatchedBy(func(r *domain.Rent) bool {
			return r.ClientID == 3 && r.StaffID == 7 &&
				r.Status == domain.RentStatusActive &&
				r.AgreementNumber == "AGR-2024-000042" &&
				r.TotalAmount.Equal(decimal.NewFromInt(4500))
		})).Run(func(args mock.Arguments) {
			args.Get(2).(*domain.Rent).ID = 100
		}).Return(nil).Once()
		f.rents.On("AddItemsTx", ctx, mock.Anything, int32(100), []int32{10, 11}).Return(nil).Once()
		f.eq.On("UpdateStatusTx", ctx, mock.Anything, []int32{10, 11}, domain.EquipmentStatusRented).Return(int64(2), nil).Once()
		f.audit.On("Create", ctx, mock.MatchedBy(func(l *domain.AuditLog) bool {
			return l.Action == domain.ActionCreate && l.Success
		})).Return(nil).Once()

		rent, err := f.svc.CreateRent(ctx, managerActor, 3, []int32{10, 11}, start, end)
		require.NoError(t, err)
		assert.Equal(t, int32(100), rent.ID)
		assert.True(t, rent.TotalAmount.Equal(decimal.NewFromInt(4500)))

		assert.NoError(t, f.dbMock.ExpectationsWereMet())
		f.rents.AssertExpectations(t)
		f.eq.AssertExpectations(t)
		f.audit.AssertExpectations(t)
	})

	t.Run("AllOffendersReported", func(t *testing.T) {
		f := newRentalFixture(t)
		f.dbMock.ExpectBegin()
		f.dbMock.ExpectRollback()

		f.cl.On("GetByID", ctx, int32(3)).Return(&domain.Client{ID: 3, Email: "c@test.com"}, nil).Once()
		// 11 is rented, 12 does not exist.
		f.eq.On("LockByIDsTx", ctx, mock.Anything, []int32{10, 11, 12}).Return([]domain.Equipment{
			{ID: 10, Name: "Drill", Status: domain.EquipmentStatusAvailable, RentalPriceDay: decimal.NewFromInt(1000)},
			{ID: 11, Name: "Saw", Status: domain.EquipmentStatusRented, RentalPriceDay: decimal.NewFromInt(500)},
		}, nil).Once()
		f.audit.On("Create", ctx, mock.MatchedBy(func(l *domain.AuditLog) bool {
			return l.Action == domain.ActionCreate && !l.Success
		})).Return(nil).Once()

		_, err := f.svc.CreateRent(ctx, managerActor, 3, []int32{10, 11, 12}, start, end)

		var unavailable *domain.EquipmentUnavailableError
		require.ErrorAs(t, err, &unavailable)
		assert.Len(t, unavailable.Items, 2)
		assert.True(t, errors.Is(err, domain.ErrValidation))
		assert.NoError(t, f.dbMock.ExpectationsWereMet())
	})

	t.Run("LeaderDenied", func(t *testing.T) {
		f := newRentalFixture(t)
		_, err := f.svc.CreateRent(ctx, leaderActor, 3, []int32{10}, start, end)
		assert.ErrorIs(t, err, domain.ErrPermissionDenied)
		f.cl.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})

	t.Run("EndBeforeStart", func(t *testing.T) {
		f := newRentalFixture(t)
		_, err := f.svc.CreateRent(ctx, managerActor, 3, []int32{10}, end, start)
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("NoEquipment", func(t *testing.T) {
		f := newRentalFixture(t)
		_, err := f.svc.CreateRent(ctx, managerActor, 3, nil, start, end)
		assert.ErrorIs(t, err, domain.ErrValidation)
	})
}

func TestRentalService_CompleteRent(t *testing.T) {
	ctx := context.Background()

	t.Run("ReleasesEquipment", func(t *testing.T) {
		f := newRentalFixture(t)
		f.dbMock.ExpectBegin()
		f.dbMock.ExpectCommit()

		rent := &domain.Rent{
			ID: 100, AgreementNumber: "AGR-2024-000042",
			StartDate: date(2024, time.January, 1), PlannedEndDate: date(2024, time.January, 4),
			Status: domain.RentStatusActive,
		}
		f.rents.On("GetForUpdateTx", ctx, mock.Anything, int32(100)).Return(rent, nil).Once()
		f.rents.On("EquipmentIDsTx", ctx, mock.Anything, int32(100)).Return([]int32{10, 11}, nil).Once()
		f.rents.On("UpdateTx", ctx, mock.Anything, mock.MatchedBy(func(r *domain.Rent) bool {
			return r.Status == domain.RentStatusCompleted && r.ActualEndDate != nil
		})).Return(nil).Once()
		f.eq.On("UpdateStatusTx", ctx, mock.Anything, []int32{10, 11}, domain.EquipmentStatusAvailable).Return(int64(2), nil).Once()
		f.audit.On("Create", ctx, mock.Anything).Return(nil).Once()

		got, err := f.svc.CompleteRent(ctx, managerActor, 100, date(2024, time.January, 3))
		require.NoError(t, err)
		assert.Equal(t, domain.RentStatusCompleted, got.Status)
		assert.NoError(t, f.dbMock.ExpectationsWereMet())
	})

	t.Run("AlreadyCompleted", func(t *testing.T) {
		f := newRentalFixture(t)
		f.dbMock.ExpectBegin()
		f.dbMock.ExpectRollback()

		done := date(2024, time.January, 3)
		f.rents.On("GetForUpdateTx", ctx, mock.Anything, int32(100)).Return(&domain.Rent{
			ID: 100, AgreementNumber: "AGR-2024-000042",
			Status: domain.RentStatusCompleted, ActualEndDate: &done,
		}, nil).Once()

		_, err := f.svc.CompleteRent(ctx, managerActor, 100, done)
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("StorageFailureIsAudited", func(t *testing.T) {
		f := newRentalFixture(t)
		f.dbMock.ExpectBegin()
		f.dbMock.ExpectRollback()

		f.rents.On("GetForUpdateTx", ctx, mock.Anything, int32(100)).Return(&domain.Rent{
			ID: 100, AgreementNumber: "AGR-2024-000042",
			StartDate: date(2024, time.January, 1), PlannedEndDate: date(2024, time.January, 4),
			Status: domain.RentStatusActive,
		}, nil).Once()
		f.rents.On("EquipmentIDsTx", ctx, mock.Anything, int32(100)).Return([]int32{10}, nil).Once()
		f.rents.On("UpdateTx", ctx, mock.Anything, mock.Anything).Return(errors.New("disk full")).Once()
		f.audit.On("Create", ctx, mock.MatchedBy(func(l *domain.AuditLog) bool {
			return l.Action == domain.ActionUpdate && !l.Success &&
				l.StaffID != nil && *l.StaffID == managerActor.ID
		})).Return(nil).Once()

		_, err := f.svc.CompleteRent(ctx, managerActor, 100, date(2024, time.January, 3))
		require.Error(t, err)
		assert.NoError(t, f.dbMock.ExpectationsWereMet())
		f.audit.AssertExpectations(t)
	})
}

func TestRentalService_ProcessPayment(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		f := newRentalFixture(t)
		f.dbMock.ExpectBegin()
		f.dbMock.ExpectCommit()

		f.rents.On("GetForUpdateTx", ctx, mock.Anything, int32(100)).Return(&domain.Rent{
			ID: 100, AgreementNumber: "AGR-2024-000042", ClientID: 3,
			TotalAmount: decimal.NewFromInt(4500),
		}, nil).Once()
		f.rents.On("UpdateTx", ctx, mock.Anything, mock.MatchedBy(func(r *domain.Rent) bool {
			return r.IsPaid && r.PaymentMethod != nil && *r.PaymentMethod == domain.PaymentMethodCard &&
				r.TransactionNumber == "TX-1"
		})).Return(nil).Once()
		f.audit.On("Create", ctx, mock.Anything).Return(nil).Once()
		f.cl.On("GetByID", ctx, int32(3)).Return(&domain.Client{ID: 3, Email: "c@test.com"}, nil).Once()
		f.email.On("SendPaymentReceipt", ctx, "c@test.com", "AGR-2024-000042", mock.Anything).Return(nil).Once()

		rent, err := f.svc.ProcessPayment(ctx, managerActor, 100, domain.PaymentMethodCard, "TX-1", date(2024, time.January, 5))
		require.NoError(t, err)
		assert.True(t, rent.IsPaid)
		f.email.AssertExpectations(t)
	})

	t.Run("AlreadyPaid", func(t *testing.T) {
		f := newRentalFixture(t)
		f.dbMock.ExpectBegin()
		f.dbMock.ExpectRollback()

		f.rents.On("GetForUpdateTx", ctx, mock.Anything, int32(100)).Return(&domain.Rent{
			ID: 100, AgreementNumber: "AGR-2024-000042", IsPaid: true,
		}, nil).Once()
		f.audit.On("Create", ctx, mock.MatchedBy(func(l *domain.AuditLog) bool {
			return !l.Success
		})).Return(nil).Once()

		_, err := f.svc.ProcessPayment(ctx, managerActor, 100, domain.PaymentMethodCash, "", date(2024, time.January, 5))
		assert.ErrorIs(t, err, domain.ErrAlreadyPaid)
		f.rents.AssertNotCalled(t, "UpdateTx", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("UnknownMethod", func(t *testing.T) {
		f := newRentalFixture(t)
		_, err := f.svc.ProcessPayment(ctx, managerActor, 100, "barter", "", date(2024, time.January, 5))
		assert.ErrorIs(t, err, domain.ErrValidation)
	})
}

func TestRentalService_ExtendRent(t *testing.T) {
	ctx := context.Background()

	t.Run("MovesPlannedEnd", func(t *testing.T) {
		f := newRentalFixture(t)
		f.dbMock.ExpectBegin()
		f.dbMock.ExpectCommit()

		f.rents.On("GetForUpdateTx", ctx, mock.Anything, int32(100)).Return(&domain.Rent{
			ID: 100, AgreementNumber: "AGR-2024-000042",
			Status: domain.RentStatusActive, PlannedEndDate: date(2024, time.January, 4),
		}, nil).Once()
		f.rents.On("UpdateTx", ctx, mock.Anything, mock.MatchedBy(func(r *domain.Rent) bool {
			return r.Status == domain.RentStatusExtended && r.PlannedEndDate.Equal(date(2024, time.January, 10))
		})).Return(nil).Once()
		f.audit.On("Create", ctx, mock.Anything).Return(nil).Once()

		rent, err := f.svc.ExtendRent(ctx, managerActor, 100, date(2024, time.January, 10))
		require.NoError(t, err)
		assert.Equal(t, domain.RentStatusExtended, rent.Status)
	})

	t.Run("NotLater", func(t *testing.T) {
		f := newRentalFixture(t)
		f.dbMock.ExpectBegin()
		f.dbMock.ExpectRollback()

		f.rents.On("GetForUpdateTx", ctx, mock.Anything, int32(100)).Return(&domain.Rent{
			ID: 100, Status: domain.RentStatusActive, PlannedEndDate: date(2024, time.January, 4),
		}, nil).Once()

		_, err := f.svc.ExtendRent(ctx, managerActor, 100, date(2024, time.January, 4))
		assert.ErrorIs(t, err, domain.ErrValidation)
	})
}

func TestRentalService_DeleteRent(t *testing.T) {
	ctx := context.Background()

	t.Run("AdminOnly", func(t *testing.T) {
		f := newRentalFixture(t)
		err := f.svc.DeleteRent(ctx, managerActor, 100)
		assert.ErrorIs(t, err, domain.ErrPermissionDenied)
	})

	t.Run("ReleasesActiveItems", func(t *testing.T) {
		f := newRentalFixture(t)
		f.dbMock.ExpectBegin()
		f.dbMock.ExpectCommit()

		f.rents.On("GetForUpdateTx", ctx, mock.Anything, int32(100)).Return(&domain.Rent{
			ID: 100, AgreementNumber: "AGR-2024-000042", Status: domain.RentStatusActive,
		}, nil).Once()
		f.rents.On("EquipmentIDsTx", ctx, mock.Anything, int32(100)).Return([]int32{10}, nil).Once()
		f.rents.On("DeleteTx", ctx, mock.Anything, int32(100)).Return(nil).Once()
		f.eq.On("UpdateStatusTx", ctx, mock.Anything, []int32{10}, domain.EquipmentStatusAvailable).Return(int64(1), nil).Once()
		f.audit.On("Create", ctx, mock.Anything).Return(nil).Once()

		err := f.svc.DeleteRent(ctx, adminActor, 100)
		require.NoError(t, err)
		assert.NoError(t, f.dbMock.ExpectationsWereMet())
	})
}

func TestRentalService_ClientHistory(t *testing.T) {
	ctx := context.Background()
	f := newRentalFixture(t)

	done := date(2024, time.January, 6)
	f.cl.On("GetByID", ctx, int32(3)).Return(&domain.Client{ID: 3}, nil).Once()
	f.rents.On("ListByClient", ctx, int32(3)).Return([]domain.Rent{
		{
			ID: 100, Status: domain.RentStatusCompleted,
			PlannedEndDate: date(2024, time.January, 4), ActualEndDate: &done,
			TotalAmount: decimal.NewFromInt(4500),
		},
	}, nil).Once()
	f.rents.On("Items", ctx, int32(100)).Return([]domain.RentItem{{ID: 1, RentID: 100, EquipmentID: 10}}, nil).Once()

	history, err := f.svc.ClientHistory(ctx, 3)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, int64(2), history[0].OverdueDays)
	// 4500 * 0.1 * 2 overdue days
	assert.True(t, history[0].LateFee.Equal(decimal.NewFromInt(900)), "got %s", history[0].LateFee)
}
