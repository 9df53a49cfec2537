package domain

import (
	"encoding/json"
	"time"
)

type Staff struct {
	ID           int32     `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	FirstName    string    `json:"first_name,omitempty"`
	LastName     string    `json:"last_name,omitempty"`
	IsActive     bool      `json:"is_active"`
	CreatedOn    time.Time `json:"created_on"`
	// Group names as stored, e.g. "Менеджер". Resolution to a business
	// role happens in the access package.
	Groups []string `json:"groups,omitempty"`
}

type RoleRecord struct {
	ID       int32  `json:"id"`
	RoleName string `json:"role_name"`
}

type Theme string

const (
	ThemeLight  Theme = "light"
	ThemeDark   Theme = "dark"
	ThemeSystem Theme = "system"
)

// DefaultPreferences is what a staff member sees before saving anything.
func DefaultPreferences(staffID int32) *UserPreference {
	return &UserPreference{
		StaffID:      staffID,
		Theme:        ThemeSystem,
		DateFormat:   "DD.MM.YYYY",
		NumberFormat: "1 234,56",
		PageSize:     50,
	}
}

type UserPreference struct {
	StaffID      int32           `json:"staff_id"`
	Theme        Theme           `json:"theme"`
	DateFormat   string          `json:"date_format"`
	NumberFormat string          `json:"number_format"`
	PageSize     int32           `json:"page_size"`
	SavedFilters json.RawMessage `json:"saved_filters,omitempty"`
	UpdatedAt    time.Time       `json:"updated_at"`
}
