package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type RentStatus string

const (
	RentStatusActive    RentStatus = "active"
	RentStatusCompleted RentStatus = "completed"
	RentStatusExtended  RentStatus = "extended"
)

type PaymentMethod string

const (
	PaymentMethodCash     PaymentMethod = "cash"
	PaymentMethodCard     PaymentMethod = "card"
	PaymentMethodTransfer PaymentMethod = "transfer"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentMethodCash, PaymentMethodCard, PaymentMethodTransfer:
		return true
	}
	return false
}

type Rent struct {
	ID                  int32           `json:"id"`
	ClientID            int32           `json:"client_id"`
	StaffID             int32           `json:"staff_id"`
	AgreementNumber     string          `json:"rent_agreement_number"`
	AgreementDate       time.Time       `json:"rent_agreement_date"`
	StartDate           time.Time       `json:"start_date"`
	PlannedEndDate      time.Time       `json:"planned_end_date"`
	ActualEndDate       *time.Time      `json:"actual_end_date,omitempty"`
	Status              RentStatus      `json:"rent_status"`
	// TotalAmount is fixed at creation from the cost formula and never
	// recalculated afterwards.
	TotalAmount         decimal.Decimal `json:"total_amount"`
	IsPaid              bool            `json:"is_paid"`
	PaymentDate         *time.Time      `json:"payment_date,omitempty"`
	PaymentMethod       *PaymentMethod  `json:"payment_method,omitempty"`
	TransactionNumber   string          `json:"transaction_number,omitempty"`
}

type RentItem struct {
	ID          int32 `json:"id"`
	RentID      int32 `json:"rent_id"`
	EquipmentID int32 `json:"equipment_id"`
}

// RentHistoryEntry is one row of a client's rental history, enriched with
// the current late fee for open or overdue agreements.
type RentHistoryEntry struct {
	Rent        Rent            `json:"rent"`
	Items       []RentItem      `json:"items"`
	OverdueDays int64           `json:"overdue_days"`
	LateFee     decimal.Decimal `json:"late_fee"`
}
