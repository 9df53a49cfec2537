package pricing

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"rentaldesk-backend/internal/domain"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func equip(price string) domain.Equipment {
	return domain.Equipment{RentalPriceDay: decimal.RequireFromString(price)}
}

func TestChargeableDays(t *testing.T) {
	t.Run("HalfOpenRange", func(t *testing.T) {
		days, err := ChargeableDays(day(2024, 1, 1), day(2024, 1, 4))
		assert.NoError(t, err)
		assert.Equal(t, int64(3), days)
	})

	t.Run("SameDayChargesOneDay", func(t *testing.T) {
		days, err := ChargeableDays(day(2024, 1, 1), day(2024, 1, 1))
		assert.NoError(t, err)
		assert.Equal(t, int64(1), days)
	})

	t.Run("EndBeforeStart", func(t *testing.T) {
		_, err := ChargeableDays(day(2024, 1, 4), day(2024, 1, 1))
		assert.ErrorIs(t, err, ErrEndBeforeStart)
	})

	t.Run("TimeOfDayIgnored", func(t *testing.T) {
		start := time.Date(2024, 1, 1, 23, 0, 0, 0, time.UTC)
		end := time.Date(2024, 1, 2, 1, 0, 0, 0, time.UTC)
		days, err := ChargeableDays(start, end)
		assert.NoError(t, err)
		assert.Equal(t, int64(1), days)
	})
}

func TestRentalCost(t *testing.T) {
	t.Run("ThreeDayRental", func(t *testing.T) {
		// E1 at 1000/day and E2 at 500/day over three days.
		cost, err := RentalCost(
			[]domain.Equipment{equip("1000"), equip("500")},
			day(2024, 1, 1), day(2024, 1, 4),
		)
		assert.NoError(t, err)
		assert.True(t, cost.Equal(decimal.RequireFromString("4500")), "got %s", cost)
	})

	t.Run("AdditiveOverDisjointSets", func(t *testing.T) {
		start, end := day(2024, 3, 10), day(2024, 3, 17)
		a := []domain.Equipment{equip("199.99"), equip("350")}
		b := []domain.Equipment{equip("75.50")}

		costA, err := RentalCost(a, start, end)
		assert.NoError(t, err)
		costB, err := RentalCost(b, start, end)
		assert.NoError(t, err)
		costAB, err := RentalCost(append(append([]domain.Equipment{}, a...), b...), start, end)
		assert.NoError(t, err)

		assert.True(t, costAB.Equal(costA.Add(costB)))
	})

	t.Run("MonotonicInRangeLength", func(t *testing.T) {
		eq := []domain.Equipment{equip("120")}
		prev := decimal.Zero
		for d := 0; d < 10; d++ {
			cost, err := RentalCost(eq, day(2024, 5, 1), day(2024, 5, 1+d))
			assert.NoError(t, err)
			assert.True(t, cost.GreaterThanOrEqual(prev))
			prev = cost
		}
	})

	t.Run("DecimalPrecision", func(t *testing.T) {
		// 0.1 + 0.2 style drift must not appear.
		cost, err := RentalCost(
			[]domain.Equipment{equip("0.10"), equip("0.20")},
			day(2024, 1, 1), day(2024, 1, 2),
		)
		assert.NoError(t, err)
		assert.True(t, cost.Equal(decimal.RequireFromString("0.30")), "got %s", cost)
	})

	t.Run("NoEquipment", func(t *testing.T) {
		cost, err := RentalCost(nil, day(2024, 1, 1), day(2024, 1, 2))
		assert.NoError(t, err)
		assert.True(t, cost.IsZero())
	})
}

func TestLateFee(t *testing.T) {
	now := day(2024, 6, 1)

	t.Run("ThreeDaysOverdue", func(t *testing.T) {
		actual := day(2024, 1, 13)
		rent := &domain.Rent{
			PlannedEndDate: day(2024, 1, 10),
			ActualEndDate:  &actual,
			TotalAmount:    decimal.RequireFromString("4500"),
		}
		fee := LateFee(rent, DefaultPenaltyRate, now)
		assert.True(t, fee.Equal(decimal.RequireFromString("1350")), "got %s", fee)
	})

	t.Run("OnTimeReturnIsZero", func(t *testing.T) {
		actual := day(2024, 1, 10)
		rent := &domain.Rent{
			PlannedEndDate: day(2024, 1, 10),
			ActualEndDate:  &actual,
			TotalAmount:    decimal.RequireFromString("4500"),
		}
		assert.True(t, LateFee(rent, DefaultPenaltyRate, now).IsZero())
	})

	t.Run("EarlyReturnNeverNegative", func(t *testing.T) {
		actual := day(2024, 1, 5)
		rent := &domain.Rent{
			PlannedEndDate: day(2024, 1, 10),
			ActualEndDate:  &actual,
			TotalAmount:    decimal.RequireFromString("4500"),
		}
		fee := LateFee(rent, DefaultPenaltyRate, now)
		assert.True(t, fee.IsZero())
		assert.False(t, fee.IsNegative())
	})

	t.Run("OpenRentAccruesAgainstNow", func(t *testing.T) {
		rent := &domain.Rent{
			PlannedEndDate: day(2024, 5, 30),
			TotalAmount:    decimal.RequireFromString("1000"),
		}
		// Two days overdue as of June 1st.
		fee := LateFee(rent, DefaultPenaltyRate, now)
		assert.True(t, fee.Equal(decimal.RequireFromString("200")), "got %s", fee)
	})

	t.Run("ProportionalToOverdueDays", func(t *testing.T) {
		rent := &domain.Rent{
			PlannedEndDate: day(2024, 5, 1),
			TotalAmount:    decimal.RequireFromString("100"),
		}
		one := LateFee(rent, DefaultPenaltyRate, day(2024, 5, 2))
		three := LateFee(rent, DefaultPenaltyRate, day(2024, 5, 4))
		assert.True(t, three.Equal(one.Mul(decimal.NewFromInt(3))))
	})
}
