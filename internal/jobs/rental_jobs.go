package jobs

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"rentaldesk-backend/internal/logger"
	"rentaldesk-backend/internal/pricing"
)

// SendOverdueReminders mails the responsible manager for every rent past
// its planned end date, including the late fee accrued so far.
func (jr *JobRunner) SendOverdueReminders() {
	jr.runWithRecovery("SendOverdueReminders", func() {
		ctx := context.Background()
		now := time.Now()

		rate, err := decimal.NewFromString(jr.config.Rental.PenaltyRate)
		if err != nil {
			logger.Error("Invalid penalty rate, using default", "rate", jr.config.Rental.PenaltyRate, "error", err)
			rate = pricing.DefaultPenaltyRate
		}

		overdue, err := jr.store.RentRepository.ListOverdue(ctx, now)
		if err != nil {
			logger.Error("Failed to list overdue rents", "error", err)
			return
		}
		if len(overdue) == 0 {
			logger.Info("No overdue rents found")
			return
		}

		sent := 0
		for i := range overdue {
			rent := overdue[i]
			staff, err := jr.store.StaffRepository.GetByID(ctx, rent.StaffID)
			if err != nil {
				logger.Error("Failed to load staff for overdue rent",
					"rent_id", rent.ID,
					"staff_id", rent.StaffID,
					"error", err)
				continue
			}
			if staff.Email == "" {
				continue
			}

			days := pricing.OverdueDays(rent.PlannedEndDate, rent.ActualEndDate, now)
			fee := pricing.LateFee(&rent, rate, now)
			if err := jr.email.SendOverdueReminder(ctx, staff.Email, rent.AgreementNumber, days, fee); err != nil {
				logger.Error("Failed to send overdue reminder",
					"rent_id", rent.ID,
					"agreement", rent.AgreementNumber,
					"error", err)
				continue
			}
			sent++
		}

		logger.Info("Overdue reminders processed", "overdue", len(overdue), "sent", sent)
	})
}
