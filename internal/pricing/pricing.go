// Package pricing holds the rental cost and late fee formulas as pure
// functions over explicit inputs. All money math is decimal; float64 never
// touches an amount.
package pricing

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"rentaldesk-backend/internal/domain"
)

var ErrEndBeforeStart = errors.New("end date must not be before start date")

// DefaultPenaltyRate is the late fee rate applied per overdue day.
var DefaultPenaltyRate = decimal.NewFromFloat(0.1)

// ChargeableDays counts whole days in the half-open range [start, end).
// A same-day rental still charges one day.
func ChargeableDays(start, end time.Time) (int64, error) {
	start = truncateToDay(start)
	end = truncateToDay(end)
	if end.Before(start) {
		return 0, ErrEndBeforeStart
	}
	days := int64(end.Sub(start).Hours() / 24)
	if days == 0 {
		days = 1
	}
	return days, nil
}

// RentalCost sums rental_price_day × chargeable days over the given
// equipment. Additive over disjoint equipment sets and monotonic in the
// range length.
func RentalCost(equipment []domain.Equipment, start, end time.Time) (decimal.Decimal, error) {
	days, err := ChargeableDays(start, end)
	if err != nil {
		return decimal.Zero, err
	}
	dayCount := decimal.NewFromInt(days)
	total := decimal.Zero
	for _, eq := range equipment {
		total = total.Add(eq.RentalPriceDay.Mul(dayCount))
	}
	return total, nil
}

// OverdueDays reports the whole days by which the effective end exceeds the
// planned end. Early or on-time returns yield zero.
func OverdueDays(plannedEnd time.Time, actualEnd *time.Time, now time.Time) int64 {
	effective := now
	if actualEnd != nil {
		effective = *actualEnd
	}
	planned := truncateToDay(plannedEnd)
	effective = truncateToDay(effective)
	if !effective.After(planned) {
		return 0
	}
	return int64(effective.Sub(planned).Hours() / 24)
}

// LateFee is total_amount × rate × overdue days, never negative. An open
// rent accrues against "now".
func LateFee(rent *domain.Rent, rate decimal.Decimal, now time.Time) decimal.Decimal {
	overdue := OverdueDays(rent.PlannedEndDate, rent.ActualEndDate, now)
	if overdue == 0 {
		return decimal.Zero
	}
	return rent.TotalAmount.Mul(rate).Mul(decimal.NewFromInt(overdue))
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
