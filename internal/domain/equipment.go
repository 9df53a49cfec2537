package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type EquipmentStatus string

const (
	EquipmentStatusAvailable   EquipmentStatus = "available"
	EquipmentStatusRented      EquipmentStatus = "rented"
	EquipmentStatusMaintenance EquipmentStatus = "maintenance"
)

func (s EquipmentStatus) Valid() bool {
	switch s {
	case EquipmentStatusAvailable, EquipmentStatusRented, EquipmentStatusMaintenance:
		return true
	}
	return false
}

type FuelType string

const (
	FuelTypePetrol   FuelType = "petrol"
	FuelTypeDiesel   FuelType = "diesel"
	FuelTypeElectric FuelType = "electric"
	FuelTypeHybrid   FuelType = "hybrid"
	FuelTypeGas      FuelType = "gas"
	FuelTypeOther    FuelType = "other"
)

type Equipment struct {
	ID             int32           `json:"id"`
	Name           string          `json:"equipment_name"`
	Code           string          `json:"equipment_code"`
	Description    string          `json:"description,omitempty"`
	ModelID        *int32          `json:"model_id,omitempty"`
	CountryID      *int32          `json:"country_id,omitempty"`
	BrandID        *int32          `json:"brand_id,omitempty"`
	Power          decimal.Decimal `json:"power"`
	Weight         decimal.Decimal `json:"weight"`
	FuelType       FuelType        `json:"fuel_type"`
	RentalPriceDay decimal.Decimal `json:"rental_price_day"`
	Status         EquipmentStatus `json:"status"`
}

type EquipmentCountry struct {
	ID      int32  `json:"id"`
	Country string `json:"country"`
}

type EquipmentBrand struct {
	ID    int32  `json:"id"`
	Brand string `json:"brand"`
}

type EquipmentModel struct {
	ID        int32  `json:"id"`
	ModelName string `json:"model_name"`
}

type MaintenanceStatus string

const (
	MaintenanceStatusPlanned    MaintenanceStatus = "planned"
	MaintenanceStatusInProgress MaintenanceStatus = "in_progress"
	MaintenanceStatusCompleted  MaintenanceStatus = "completed"
)

func (s MaintenanceStatus) Valid() bool {
	switch s {
	case MaintenanceStatusPlanned, MaintenanceStatusInProgress, MaintenanceStatusCompleted:
		return true
	}
	return false
}

type MaintenanceType struct {
	ID       int32  `json:"id"`
	TypeName string `json:"type_name"`
}

type Maintenance struct {
	ID          int32             `json:"id"`
	Date        time.Time         `json:"maintenance_date"`
	WorkTypeID  *int32            `json:"work_type_id,omitempty"`
	Status      MaintenanceStatus `json:"status"`
	StaffID     *int32            `json:"staff_id,omitempty"`
	EquipmentID int32             `json:"equipment_id"`
	Description string            `json:"description,omitempty"`
}
